// Package poly resolves the order in which the concrete types of a polymorphic
// field are tested at write time.
//
// Runtime type tests are sequential, so a more derived type must be tested before
// any of its ancestors; otherwise the ancestor test would shadow the derived match.
// Order performs a deterministic topological sort over the strict-subtype relation.
package poly
