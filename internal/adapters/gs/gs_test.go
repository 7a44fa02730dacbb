package gs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/sigil/internal/adapters/gs"
	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/sigil/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestPlaceSignatureCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockExec := mocks.NewMockExecutor(ctrl)

	var got ports.Command
	mockExec.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd ports.Command) (ports.Result, error) {
			got = cmd
			return ports.Result{}, nil
		},
	)

	p := gs.NewPlacer(mockExec)
	out, err := p.PlaceSignature(context.Background(), ports.PlaceRequest{
		Signature: domain.Signature{Path: "/sigs/initials.pdf", Page: 2},
		Canvas:    domain.Size{W: 612, H: 792},
		Position:  domain.Point{X: 376, Y: 36},
		Scale:     0.5,
		OutPath:   "/work/overlay.pdf",
	})
	require.NoError(t, err)
	require.Equal(t, "/work/overlay.pdf", out)

	require.Equal(t, "gs", got.Name)
	require.Contains(t, got.Args, "-sDEVICE=pdfwrite")
	require.Contains(t, got.Args, "-dDEVICEWIDTHPOINTS=612")
	require.Contains(t, got.Args, "-dDEVICEHEIGHTPOINTS=792")
	require.Contains(t, got.Args, "-dFirstPage=2")
	require.Contains(t, got.Args, "-dLastPage=2")
	require.Contains(t, got.Args, "<</BeginPage {376 36 translate 0.5 0.5 scale}>> setpagedevice")
	require.Equal(t, "/sigs/initials.pdf", got.Args[len(got.Args)-1])
}

func TestRasterizeCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockExec := mocks.NewMockExecutor(ctrl)

	var got ports.Command
	mockExec.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd ports.Command) (ports.Result, error) {
			got = cmd
			return ports.Result{}, nil
		},
	)

	r := gs.NewRasterizer(mockExec)
	out, err := r.Rasterize(context.Background(), ports.RasterRequest{
		Path:    "/work/stamped.pdf",
		DPI:     96,
		OutPath: "/work/preview.png",
	})
	require.NoError(t, err)
	require.Equal(t, "/work/preview.png", out)

	require.Equal(t, "gs", got.Name)
	require.Contains(t, got.Args, "-sDEVICE=png16m")
	require.Contains(t, got.Args, "-r96")
	require.Equal(t, "/work/stamped.pdf", got.Args[len(got.Args)-1])
}
