// Package types defines the core types and interfaces shared by the setup
// pipeline: the filesystem abstraction, the ordered mapping of resolved
// placeholder values, and the files selected for substitution.
package types
