package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (c *CLI) newSignaturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signatures",
		Short: "List the discovered signature files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("signature-dir")
			activeDir, files, err := c.app.Signatures(dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s\n", activeDir)
			for _, f := range files {
				_, _ = fmt.Fprintf(out, "  %s\n", filepath.Base(f))
			}
			return nil
		},
	}
	cmd.Flags().String("signature-dir", "", "Directory holding signature files")
	return cmd
}
