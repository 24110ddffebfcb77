package types

// FileTarget is one file selected for substitution
type FileTarget struct {
	// Rel is the path relative to the repository root
	Rel string

	// Abs is the absolute path on the filesystem
	Abs string
}
