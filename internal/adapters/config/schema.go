package config

// File mirrors the .sigil.yaml structure. Absent fields keep their
// defaults, so most values map zero to "not set". DX and DY use pointers
// because zero is a valid offset.
type File struct {
	SignatureDir string       `yaml:"signature_dir"`
	Signature    string       `yaml:"signature"`
	Toolchain    string       `yaml:"toolchain"`
	DPI          int          `yaml:"dpi"`
	Placement    PlacementDTO `yaml:"placement"`
}

// PlacementDTO mirrors the placement block.
type PlacementDTO struct {
	Anchor string   `yaml:"anchor"`
	DX     *float64 `yaml:"dx"`
	DY     *float64 `yaml:"dy"`
	Scale  float64  `yaml:"scale"`
}
