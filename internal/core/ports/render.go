package ports

// FrameRenderer turns a raster image on disk into a block of terminal
// cells.
//
//go:generate mockgen -source=render.go -destination=mocks/mock_render.go -package=mocks
type FrameRenderer interface {
	// RenderFile reads an image and renders it into at most cols by rows
	// terminal cells, preserving aspect ratio. The result contains ANSI
	// color sequences and newlines.
	RenderFile(path string, cols, rows int) (string, error)
}
