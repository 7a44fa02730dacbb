package domain

import "go.trai.ch/zerr"

var (
	// ErrTargetNotFound is returned when the target document does not exist or is not readable.
	ErrTargetNotFound = zerr.New("target document not found")

	// ErrInvalidPageSpec is returned when a page flag is neither a keyword nor a positive number.
	ErrInvalidPageSpec = zerr.New("invalid page spec")

	// ErrPageOutOfRange is returned when a resolved page number exceeds the document's page count.
	ErrPageOutOfRange = zerr.New("page out of range")

	// ErrInvalidPlacement is returned when an anchor, offset or scale value cannot be used.
	ErrInvalidPlacement = zerr.New("invalid placement")

	// ErrNoSignatures is returned when the signature directory holds no usable files.
	ErrNoSignatures = zerr.New("no signature files found")

	// ErrSignatureNotFound is returned when a named signature cannot be located.
	ErrSignatureNotFound = zerr.New("signature file not found")

	// ErrToolNotFound is returned when an external tool required by the selected toolchain is not on PATH.
	ErrToolNotFound = zerr.New("required tool not found")

	// ErrToolFailed is returned when an external tool exits non-zero.
	ErrToolFailed = zerr.New("tool execution failed")

	// ErrNoToolchain is returned when neither the external tools nor the embedded toolkit can serve a request.
	ErrNoToolchain = zerr.New("no usable pdf toolchain")

	// ErrInvalidConfig is returned when the configuration file cannot be parsed or validated.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrNotATerminal is returned when the interactive preview is started without a TTY.
	ErrNotATerminal = zerr.New("interactive preview requires a terminal")

	// ErrHistoryCorrupt is returned when a stored placement cannot be decoded.
	ErrHistoryCorrupt = zerr.New("placement history entry corrupt")
)
