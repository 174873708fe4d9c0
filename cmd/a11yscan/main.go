// Package main provides the entry point for the a11yscan CLI.
//
// a11yscan is an accessibility auditing tool for HTML documents. It
// detects common accessibility defects (missing alternative text,
// unlabeled form controls, empty links, layout tables) and reports
// them with severity and location information.
//
// Usage:
//
//	a11yscan scan <file.html>
//	a11yscan scan --json page.html
//
// See --help for all available options.
package main

// main is the entry point for a11yscan.
func main() {
	Execute()
}
