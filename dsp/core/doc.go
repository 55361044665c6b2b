// Package core holds the small shared vocabulary of the control stack:
// numeric helpers, the element-type constraint used by the generic filter
// and controller paths, the per-sample processor interface and loop
// configuration options.
package core
