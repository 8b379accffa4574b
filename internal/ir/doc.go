// Package ir defines the statement and expression representation produced by the
// read-dispatch and write-sequence compilers.
//
// The IR is independent of any target syntax: internal/interp executes it against
// Go values and internal/gen renders it as Go source.
package ir
