// Package plan compiles a linked field model into adapter plans consumed by the
// interpreter and the code generator.
//
// Compilation pipeline per declared type:
//  1. Link the model (once) and validate it → diagnostics
//  2. Allocate constructor temporaries from a per-type Context
//  3. Read dispatch: attribute loop, child loop (inline cases + binder lookup), text
//  4. Write sequence: begin, attributes, text, members in declaration order, end
//  5. Binder plans for placeholder elements, recursively
//
// Types with error diagnostics are skipped and reported; they never affect the plans
// of other types.
package plan
