// Package scan drives accessibility scan sessions: a single-flight
// concurrency guard with a cooldown, a chunked cooperative scheduler
// that walks the document tree under per-chunk and wall-clock budgets,
// an engine tying configuration, rules, and annotations together, and
// a batch runner for scanning many documents concurrently.
package scan
