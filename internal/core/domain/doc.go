// Package domain defines the core business entities for zirar.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CandidateList: An ordered, duplicate-free list of passwords to try
//   - SubstitutionTable: The immutable character substitution table
//   - ArchiveReference: An archive path and its format family
//   - TrialOutcome: The tri-state result of one verification
//   - RunResult: The single terminal outcome of a cracking job
//   - RunRecord: A finished run as kept in history
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
