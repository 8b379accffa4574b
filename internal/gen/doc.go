// Package gen provides deterministic Go code generation for compiled adapter plans.
//
// Generation approach uses text/template + go/format for readable,
// reflection-free Go code that implements xmlbind.TypeAdapter.
//
// Codegen patterns:
//   - Attribute and child dispatch (if/else for one name, switch for many)
//   - Typed reader accessors for scalars, guarded converter calls otherwise
//   - Pointer lift for optional members, nil and zero checks on write
//   - Nested child element binders for placeholder paths
//   - Ordered type tests for polymorphic members
//   - Constructor temporaries collected in a generated holder struct
package gen
