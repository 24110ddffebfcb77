// Package testutil provides utilities for testing setup-project components.
//
// Key components:
//   - MockStore and MockPrompter: testify mocks for cache.Store and prompt.Prompter
//   - NewRepo: in-memory repository fixtures built from a path -> content map
//   - ReadTree: snapshot of every regular file below a directory
//
// All test data should be defined inline, not in external files.
package testutil
