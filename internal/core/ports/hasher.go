package ports

// Digester computes content stamps for input files. The pipeline compares
// stamps, never contents, to decide whether a document changed on disk.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Digester interface {
	// DigestFile returns a hex-encoded content hash covering the file's
	// bytes.
	DigestFile(path string) (string, error)
}
