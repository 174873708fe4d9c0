// Package rules implements the rule catalog: stateless accessibility
// checkers, one family per element kind, dispatched through a Catalog
// bound to one configuration snapshot.
//
// Checkers are pure with respect to the element and the configuration:
// they read the tree through the dom package's accessors and never
// mutate it. Each family is gated by its category's enabled flag, and
// every individual check has its own toggle, so a finding is only ever
// produced when both are on.
//
// Catalog.Evaluate runs the per-element checks for one element;
// Catalog.EvaluateDocument runs the one-shot whole-document checks
// (currently landmark presence). The scheduler calls the former once
// per element and the latter once per session.
package rules
