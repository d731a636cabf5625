// Package orchestration runs sequence generators under a context alongside a
// progress reporter, and compares results when several generators run at
// once. Presentation is reached only through the ProgressReporter and
// ResultPresenter interfaces.
package orchestration
