// Package ir provides the intermediate representation for compiled
// template model declarations.
//
// This package contains type definitions and their canonical
// serialization only. All other internal packages import ir; ir
// imports nothing internal. This keeps the IR the foundational layer
// with no circular dependencies.
//
// Key design constraints:
//   - Field order in a TemplateSpec follows declaration order; it is
//     never re-sorted, because generated code must mirror the source.
//   - Identity (SpecHash) is computed over canonical JSON so that
//     hashes are stable across runs, platforms, and map iteration.
//   - All JSON tags use snake_case-free lower case names to match the
//     generation manifest.
package ir
