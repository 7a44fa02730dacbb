package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/sigil/internal/app"
)

func (c *CLI) newSignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign <target.pdf>",
		Short: "Apply the signature in one shot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Sign(cmd.Context(), signOptions(cmd, args[0]))
		},
	}
	registerSignFlags(cmd)
	return cmd
}

// registerSignFlags adds the flags shared by sign and preview.
func registerSignFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output path (default: <target>.signed.pdf)")
	cmd.Flags().StringP("page", "p", "", "Page to sign: first, last, or a page number")
	cmd.Flags().StringP("signature", "s", "", "Signature name or path")
	cmd.Flags().Int("signature-page", 0, "Page inside a multi-page signature file")
	cmd.Flags().StringP("anchor", "a", "", "Placement anchor: bl, br, tl, tr, or c")
	cmd.Flags().Float64("dx", 0, "Horizontal offset from the anchor in points")
	cmd.Flags().Float64("dy", 0, "Vertical offset from the anchor in points")
	cmd.Flags().Float64("scale", 0, "Signature scale factor")
	cmd.Flags().Int("dpi", 0, "Preview raster resolution")
	cmd.Flags().String("signature-dir", "", "Directory holding signature files")
	cmd.Flags().String("toolchain", "", "PDF backend: auto, exec, or embedded")
	cmd.Flags().Bool("no-history", false, "Ignore and do not update the stored placement")
}

// signOptions collects the shared flags into app.SignOptions.
func signOptions(cmd *cobra.Command, target string) app.SignOptions {
	flags := cmd.Flags()
	output, _ := flags.GetString("output")
	page, _ := flags.GetString("page")
	signature, _ := flags.GetString("signature")
	signaturePage, _ := flags.GetInt("signature-page")
	anchor, _ := flags.GetString("anchor")
	dx, _ := flags.GetFloat64("dx")
	dy, _ := flags.GetFloat64("dy")
	scale, _ := flags.GetFloat64("scale")
	dpi, _ := flags.GetInt("dpi")
	signatureDir, _ := flags.GetString("signature-dir")
	toolchain, _ := flags.GetString("toolchain")
	noHistory, _ := flags.GetBool("no-history")

	return app.SignOptions{
		Target:        target,
		Output:        output,
		Page:          page,
		Signature:     signature,
		SignaturePage: signaturePage,
		Anchor:        anchor,
		DX:            dx,
		DY:            dy,
		HasOffset:     flags.Changed("dx") || flags.Changed("dy"),
		Scale:         scale,
		DPI:           dpi,
		SignatureDir:  signatureDir,
		Toolchain:     toolchain,
		NoHistory:     noHistory,
	}
}
