package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/sigil/internal/core/domain"
)

func TestParsePageSpec(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    domain.PageSpec
		wantErr bool
	}{
		{name: "empty means first", in: "", want: domain.PageSpec{}},
		{name: "first keyword", in: "first", want: domain.PageSpec{}},
		{name: "last keyword", in: "last", want: domain.PageSpec{Last: true}},
		{name: "number", in: "3", want: domain.PageSpec{Number: 3}},
		{name: "zero", in: "0", wantErr: true},
		{name: "negative", in: "-2", wantErr: true},
		{name: "garbage", in: "threeish", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParsePageSpec(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidPageSpec)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPageSpecResolve(t *testing.T) {
	first := domain.PageSpec{}
	last := domain.PageSpec{Last: true}
	third := domain.PageSpec{Number: 3}

	n, err := first.Resolve(5)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = last.Resolve(5)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	n, err = third.Resolve(5)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = third.Resolve(2)
	require.ErrorIs(t, err, domain.ErrPageOutOfRange)

	_, err = first.Resolve(0)
	require.ErrorIs(t, err, domain.ErrPageOutOfRange)
}

func TestSignedOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "report.pdf", want: "report.signed.pdf"},
		{in: "/tmp/a/report.pdf", want: "/tmp/a/report.signed.pdf"},
		{in: "noext", want: "noext.signed"},
	}
	for _, tt := range tests {
		if got := domain.SignedOutputPath(tt.in); got != tt.want {
			t.Errorf("SignedOutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := domain.DefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Toolchain = "imagemagick"
	require.ErrorIs(t, bad.Validate(), domain.ErrInvalidConfig)

	bad = cfg
	bad.DPI = 0
	require.ErrorIs(t, bad.Validate(), domain.ErrInvalidConfig)

	bad = cfg
	bad.Placement.Scale = -1
	require.ErrorIs(t, bad.Validate(), domain.ErrInvalidConfig)

	bad = cfg
	bad.Placement.Anchor = "nw"
	require.ErrorIs(t, bad.Validate(), domain.ErrInvalidPlacement)
}
