// Package match ranks known names against a misspelled one so diagnostics and
// runtime lookup errors can suggest what was probably meant.
//
// Key functions:
//   - NormalizeIdent: folds Go identifiers, XML names and type ids to a comparable form
//   - Levenshtein: computes edit distance between strings
//   - Rank: orders known names by similarity to a query
//   - DidYouMean: formats the best suggestion for an error message
package match
