package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/notation"
	"github.com/matzehuels/diagramkit/pkg/pipeline"
	"github.com/matzehuels/diagramkit/pkg/render/excalidraw"
)

// stdio is the path argument meaning stdin or stdout.
const stdio = "-"

// translateFlags holds the per-invocation overrides shared by translate and batch.
type translateFlags struct {
	kind       string
	ids        string
	gridSize   int
	detailed   bool
	hgap       float64
	vgap       float64
	nodeWidth  float64
	nodeHeight float64
	noCache    bool
	refresh    bool
}

func (f *translateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "kind", "", "force diagram kind: "+kindNames()+" (default: detect)")
	cmd.Flags().StringVar(&f.ids, "ids", "", "excalidraw element IDs: counter, uuid")
	cmd.Flags().IntVar(&f.gridSize, "grid-size", 0, "excalidraw gridSize (0 = none)")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "add ID and level to DOT labels")
	cmd.Flags().Float64Var(&f.hgap, "hgap", 0, "horizontal distance between levels")
	cmd.Flags().Float64Var(&f.vgap, "vgap", 0, "vertical distance within a level")
	cmd.Flags().Float64Var(&f.nodeWidth, "node-width", 0, "node width")
	cmd.Flags().Float64Var(&f.nodeHeight, "node-height", 0, "node height")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "skip the cache lookup and recompute")
	_ = cmd.RegisterFlagCompletionFunc("kind", completeKinds)
}

// kindNames lists the diagram kinds accepted by --kind.
func kindNames() string {
	names := make([]string, len(notation.Kinds))
	for i, k := range notation.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// apply overlays flags that were set on the command line onto opts.
func (f *translateFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if f.kind != "" {
		opts.Kind = f.kind
	}
	if f.ids != "" {
		opts.IDs = excalidraw.IDStrategy(f.ids)
	}
	if changed("grid-size") {
		opts.GridSize = f.gridSize
	}
	if changed("detailed") {
		opts.Detailed = f.detailed
	}
	if changed("hgap") {
		opts.Layout.HGap = f.hgap
	}
	if changed("vgap") {
		opts.Layout.VGap = f.vgap
	}
	if changed("node-width") {
		opts.Layout.NodeWidth = f.nodeWidth
	}
	if changed("node-height") {
		opts.Layout.NodeHeight = f.nodeHeight
	}
	opts.Refresh = f.refresh
}

// translateCommand creates the translate command.
func (c *CLI) translateCommand() *cobra.Command {
	var flags translateFlags

	cmd := &cobra.Command{
		Use:   "translate <input-format> <output-format> <input-file> [output-file]",
		Short: "Translate a diagram to another notation",
		Long: `Translate a Mermaid-style diagram to PlantUML, Excalidraw or DOT.

Use "-" as input-file to read stdin. Without output-file, or with "-",
the result is written to stdout.

Supported translations:
  mermaid → plantuml
  mermaid → excalidraw
  mermaid → dot`,
		Example: `  diagramkit translate mermaid excalidraw flow.mmd flow.excalidraw
  diagramkit translate mermaid plantuml states.mmd states.puml
  cat flow.mmd | diagramkit translate mermaid dot -`,
		Args:              cobra.RangeArgs(3, 4),
		ValidArgsFunction: completeFormats,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := stdio
			if len(args) == 4 {
				output = args[3]
			}
			return c.runTranslate(cmd, args[0], args[1], args[2], output, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

// completeFormats completes the input and output format arguments and falls
// back to file names for the paths.
func completeFormats(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return sortedKeys(pipeline.ValidInputs), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return sortedKeys(pipeline.ValidOutputs), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveDefault
}

func completeKinds(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return strings.Split(kindNames(), ", "), cobra.ShellCompDirectiveNoFileComp
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (c *CLI) runTranslate(cmd *cobra.Command, input, output, inPath, outPath string, flags *translateFlags) error {
	// The pair is checked before any file is touched.
	input, output, err := pipeline.ResolveTranslation(input, output)
	if err != nil {
		return err
	}
	if outPath != stdio {
		if err := errors.ValidatePath(outPath); err != nil {
			return err
		}
	}

	src, err := readSource(cmd.InOrStdin(), inPath)
	if err != nil {
		return err
	}
	if err := errors.ValidateSource(src); err != nil {
		return err
	}

	opts := c.config().PipelineOptions(input, output)
	flags.apply(cmd, &opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, cached, err := runner.TranslateWithCacheInfo(ctx, src, opts)
	if err != nil {
		return err
	}

	if outPath == stdio {
		_, err := cmd.OutOrStdout().Write(result.Output)
		return err
	}
	if err := writeFile(outPath, result.Output); err != nil {
		return err
	}
	prog.done("Translated "+inPath, "output", output, "cached", cached)

	printSuccess("Translated %s → %s", input, output)
	printStats(result.Stats, cached)
	printFile(outPath)
	reportDocument(result)
	if output == pipeline.FormatExcalidraw {
		fmt.Println()
		printNextStep("Check the scene", "diagramkit validate "+outPath)
	}
	return nil
}

// readSource reads path, or stdin for "-".
func readSource(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == stdio {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s", path)
		}
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return string(data), nil
}

// writeFile writes data to path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// extension returns the conventional file extension for an output format.
func extension(output string) string {
	switch output {
	case pipeline.FormatPlantUML:
		return ".puml"
	case pipeline.FormatExcalidraw:
		return ".excalidraw"
	default:
		return "." + output
	}
}

// basePath strips the extension from a file name.
func basePath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
