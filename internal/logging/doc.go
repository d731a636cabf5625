// Package logging defines the Logger interface used by fibseq components,
// with a zerolog backend for the application and a *log.Logger backend for
// callers that already hold one.
package logging
