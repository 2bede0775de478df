// Package watch reruns work when a document file changes.
//
// `svast watch` uses it to rerun the configured pipeline each time the
// document is saved. Bursts of file events are collapsed by a Debouncer
// so that one save triggers one run.
package watch
