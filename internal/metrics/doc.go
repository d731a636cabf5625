// Package metrics records generation runs in a private prometheus registry
// and exports them in the node-exporter textfile format. It also provides
// runtime memory snapshots for the details view.
package metrics
