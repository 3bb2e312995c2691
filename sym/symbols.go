// Package sym defines canonical symbols for ansigraph CLI output.
// These symbols are stable across CLI help text and diagnostics.
package sym

// Glyph string constants, the visual expression of each symbol.
const (
	Graph = "◉" // graph — the diagram being built
	Play  = "▶" // play — a play within a playbook
	Role  = "⧉" // role — a reusable role bundle
	Dep   = "↳" // dep — a role dependency link
	Warn  = "△" // warn — a skipped or dangling reference
)
