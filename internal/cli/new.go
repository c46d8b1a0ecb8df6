package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailforge/pkg/blocks"
	"github.com/dmitrymomot/mailforge/pkg/document"
)

// NewNewCommand prints a starter template built from palette blocks.
func NewNewCommand() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:     "new [flags] BLOCK...",
		Short:   "Print a template made of default blocks",
		Example: "  mailforge new header hero button footer > welcome.json",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := blocks.NewFactory()
			t := document.Template{Components: make([]document.Component, 0, len(args))}
			for _, arg := range args {
				typ := document.Type(arg)
				if !typ.Valid() {
					return fmt.Errorf("%w: %q", ErrUnknownBlock, arg)
				}
				t.Components = append(t.Components, f.New(typ))
			}
			return writeTemplate(cmd.OutOrStdout(), t, asYAML)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of JSON")
	return cmd
}
