// Package conv provides overflow-checked integer arithmetic and conversion
// utilities for allocation sizes.
//
// Every byte count handed to an allocator is computed through this package.
// The checks run before memory is requested, so a request that cannot be
// represented is detected instead of wrapping around or tripping a runtime
// panic inside make.
//
// Use cases:
//   - Element count times element size for a backing region
//   - Validating counts and lengths decoded from untrusted snapshot input
//   - Narrowing stored integers to a fixed width
package conv
