// Package overlay manages the visual markers bound 1:1 to findings.
//
// The Manager owns the annotation lifecycle: it validates creation
// requests, sanitizes messages and snippets, snapshots element
// geometry, registers markers through the Renderer boundary, and
// appends the finding to the session log. RemoveAll tears everything
// down atomically: in-flight session cancelled, markers destroyed, log
// emptied, navigation cursor reset.
//
// Rendering is behind the narrow Renderer interface so the engine can
// be tested against the in-memory implementation without a rendering
// surface. Marker geometry is a snapshot taken at creation time; it
// goes stale after layout changes until the next scan.
package overlay
