package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/htmlgen"
	"github.com/dmitrymomot/mailforge/pkg/plaintext"
	"github.com/dmitrymomot/mailforge/pkg/sourcegen"
)

// Output formats of the render command.
const (
	FormatHTML   = "html"
	FormatSource = "source"
	FormatText   = "text"
)

// NewRenderCommand renders a template file.
func NewRenderCommand() *cobra.Command {
	var (
		format   string
		output   string
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "render [flags] FILE",
		Short: "Render a template to HTML, React Email source or plain text",
		Long: `Reads a JSON or YAML template and prints the rendered email.
Use "-" as FILE to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTemplate(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if validate {
				if err := document.Validate(t.Components); err != nil {
					return errors.Join(ErrInvalidTemplate, err)
				}
			}

			out, err := render(t.Components, format)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			_, err = io.WriteString(w, out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatHTML, "output format: html, source or text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&validate, "validate", true, "reject templates with duplicate ids, unknown types or broken grids")
	return cmd
}

func render(nodes []document.Component, format string) (string, error) {
	switch format {
	case FormatHTML:
		return htmlgen.Render(nodes), nil
	case FormatSource:
		return sourcegen.Render(nodes), nil
	case FormatText:
		return plaintext.FromTree(nodes)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
