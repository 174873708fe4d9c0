// Package config defines the rule configuration tree, its built-in
// defaults, and the YAML-backed loader that merges user overrides over
// those defaults.
//
// The persisted layout is a versionless nested tree of booleans and
// numbers. Merging is an explicit recursive merge with documented
// precedence: user leaf values override defaults, nested mappings merge
// key-wise, and unspecified keys keep their default. A missing or broken
// config file is never fatal; callers fall back to Default().
//
// A loaded RuleConfig is treated as a read-only snapshot for the
// lifetime of one scan session. Reconfiguring takes effect on the next
// session, never mid-traversal.
package config
