package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/render/excalidraw"
)

// errInvalidDocument is returned when validation finds problems, so the
// command exits non-zero.
var errInvalidDocument = errors.New(errors.ErrCodeInvalidInput, "document failed validation")

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate <file.excalidraw>",
		Short: "Check an Excalidraw document for broken references",
		Long: `Validate checks that every element has an id, type and geometry, that
IDs are unique, and that boundElements, containerId and arrow bindings
resolve in both directions. It also reports the scene's cognitive load.

Use "-" to read stdin. The command exits non-zero when problems are found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			data := []byte(src)

			report := excalidraw.Validate(data)
			c.Logger.Debug("validated", "file", args[0], "valid", report.Valid, "errors", len(report.Errors))

			if !report.Valid {
				printError("%s has %d problems", args[0], len(report.Errors))
				printProblems(report.Errors)
				return errInvalidDocument
			}
			if quiet {
				return nil
			}

			printSuccess("%s is valid", args[0])
			doc, err := excalidraw.Unmarshal(data)
			if err != nil {
				return nil
			}
			load := excalidraw.CognitiveLoad(doc)
			printLoad(load)
			if !load.WithinLimit {
				printWarning("Cognitive load too high: %s", load.Recommendation())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only report problems")
	return cmd
}
