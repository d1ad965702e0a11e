package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/pipeline"
	"github.com/matzehuels/diagramkit/pkg/render/nodelink"
)

// Preview formats.
const (
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		format   string
		output   string
		kind     string
		detailed bool
		scale    float64
	)

	cmd := &cobra.Command{
		Use:   "preview <input-file>",
		Short: "Render a diagram to SVG, PNG or PDF via Graphviz",
		Long: `Preview lays out a diagram with Graphviz and writes an image. PNG and PDF
are converted from SVG with rsvg-convert, which must be installed.`,
		Example: `  diagramkit preview flow.mmd
  diagramkit preview flow.mmd -f png -o flow.png --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if format != formatSVG && format != formatPNG && format != formatPDF {
				return errUnknownFormat(format)
			}
			if output == "" {
				output = basePath(input) + "." + format
			}
			if err := errors.ValidatePath(output); err != nil {
				return err
			}

			src, err := readSource(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}
			if err := errors.ValidateSource(src); err != nil {
				return err
			}

			opts := c.config().PipelineOptions(pipeline.FormatMermaid, pipeline.FormatDOT)
			opts.Kind = kind
			if cmd.Flags().Changed("detailed") {
				opts.Detailed = detailed
			}
			result, err := pipeline.Translate(src, opts)
			if err != nil {
				return err
			}

			spin := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "Rendering "+format+" with Graphviz...")
			spin.Start()
			data, err := renderPreview(cmd.Context(), string(result.Output), format, scale)
			if err != nil {
				spin.StopWithError("Rendering failed")
				return err
			}
			spin.Stop()

			if err := writeFile(output, data); err != nil {
				return err
			}
			printSuccess("Rendered %s", format)
			printStats(result.Stats, false)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "image format: svg, png, pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVar(&kind, "kind", "", "force diagram kind: "+kindNames())
	cmd.Flags().BoolVar(&detailed, "detailed", false, "add ID and level to node labels")
	cmd.Flags().Float64Var(&scale, "scale", 2.0, "PNG scale factor")

	return cmd
}

func renderPreview(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	switch format {
	case formatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case formatPNG:
		return nodelink.RenderPNG(ctx, dot, scale)
	case formatPDF:
		return nodelink.RenderPDF(ctx, dot)
	default:
		return nil, errUnknownFormat(format)
	}
}

func errUnknownFormat(format string) error {
	return errors.New(errors.ErrCodeInvalidInput, "unknown preview format %q (want svg, png or pdf)", format)
}
