package sparkify

// FileLocator discovers input files below a root directory.
type FileLocator interface {
	// Find returns the absolute paths of all regular files under root whose
	// extension equals ext, in directory traversal order. A missing or empty
	// root yields an empty result, not an error.
	Find(root, ext string) ([]string, error)
}
