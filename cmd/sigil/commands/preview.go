package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <target.pdf>",
		Short: "Place the signature interactively",
		Long: "Preview opens a full-screen terminal preview of the chosen page. " +
			"Arrow keys drag the signature, +/- rescale it, n/p turn pages, " +
			"tab cycles signatures, and w writes the signed document.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Preview(cmd.Context(), signOptions(cmd, args[0]))
		},
	}
	registerSignFlags(cmd)
	return cmd
}
