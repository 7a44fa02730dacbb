package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.trai.ch/sigil/internal/core/domain"
)

func (c *CLI) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <target.pdf>",
		Short: "Show page count, page sizes and the active toolchain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.app.Info(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s\n", result.Doc.Path)
			_, _ = fmt.Fprintf(out, "  size:  %s\n", humanize.Bytes(uint64(result.Doc.FileSize)))
			_, _ = fmt.Fprintf(out, "  pages: %d\n", result.Doc.PageCount)
			for _, page := range result.Doc.Pages {
				_, _ = fmt.Fprintf(out, "    %3d: %.0f x %.0f pt (%.0f x %.0f mm)\n",
					page.Number,
					page.Size.W, page.Size.H,
					page.Size.W*domain.MMPerPoint, page.Size.H*domain.MMPerPoint,
				)
			}
			_, _ = fmt.Fprintf(out, "  toolchain (%s):\n", result.Report.Mode)
			for _, role := range result.Report.Roles {
				_, _ = fmt.Fprintf(out, "    %-8s %s\n", role.Name, role.Tool)
			}
			return nil
		},
	}
}
