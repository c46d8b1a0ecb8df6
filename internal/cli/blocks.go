package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailforge/pkg/blocks"
)

// NewBlocksCommand lists the block palette.
func NewBlocksCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List the block types offered by the palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := blocks.Palette()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tLABEL\tCATEGORY")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", it.Type, it.Label, it.Category)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
