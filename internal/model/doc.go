// Package model defines the core data types shared across the scanner:
// severity levels, findings, the session-scoped finding log, scan session
// state, and the aggregated audit report consumed by report writers.
//
// Types in this package are plain values with no behavior beyond
// construction, aggregation, and formatting. All scanning logic lives in
// the rules and scan packages; all presentation lives in the report
// package. Keeping the model free of dependencies lets every other
// package import it without cycles.
package model
