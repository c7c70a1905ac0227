// Package core defines the shared language of the gumcodegen system.
//
// This package contains:
//   - Layout document entities (Element, Instance, State, Category, Variable)
//   - The Value variant carried by variables
//   - Per-element code output settings
//   - The generation ledger interface (Store) and its records
//
// The Golden Rule: pkg/core imports ONLY pkg/units and stdlib.
// All other packages depend on core, not the reverse.
package core
