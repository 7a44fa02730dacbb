package ports

// SignatureResolver locates signature files. The directory is chosen from,
// in order: an explicit override, the SIGIL_SIGNATURES environment
// variable, the configuration, and the user data directory.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type SignatureResolver interface {
	// Dir returns the active signature directory.
	Dir() (string, error)
	// List returns the PDF files in the active directory, sorted by name.
	List() ([]string, error)
	// Resolve maps a name or path to an existing signature file. An
	// absolute or relative path is used as given; a bare name is looked
	// up in the active directory, with or without the .pdf extension. An
	// empty name selects the first listed file.
	Resolve(name string) (string, error)
}
