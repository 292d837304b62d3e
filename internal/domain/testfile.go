package domain

// TestFile is a test file discovered on disk.
type TestFile struct {
	Path string // Full path to the test file
	Name string // Just the base name
}
