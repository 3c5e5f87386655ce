// Package core defines the shared data layer of sqlbridge.
//
// This package contains:
//   - The AST node model (statements, expressions, structural nodes)
//   - DataType, the rendered form of SQL column types
//   - DialectConfig, the pure-data description of a SQL dialect
//
// Everything here is plain data produced by pkg/parser and consumed by
// pkg/format and pkg/lineage.
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
