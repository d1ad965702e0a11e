package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/pipeline"
)

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		flags       translateFlags
		input       string
		outDir      string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch <output-format> <files or globs...>",
		Short: "Translate many diagrams concurrently",
		Long: `Translate every matching file to the output format. Results are written
to --out-dir (default: next to each input) with the format's extension.
A failing file is reported and does not stop the others.`,
		Example: `  diagramkit batch excalidraw 'docs/*.mmd' --out-dir build/
  diagramkit batch plantuml a.mmd b.mmd -j 8`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output, err := pipeline.ResolveTranslation(input, args[0])
			if err != nil {
				return err
			}

			files, err := expandInputs(args[1:])
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New(errors.ErrCodeFileNotFound, "no input files matched")
			}

			jobs := make([]pipeline.Job, 0, len(files))
			for _, f := range files {
				src, err := readSource(cmd.InOrStdin(), f)
				if err != nil {
					return err
				}
				opts := c.config().PipelineOptions(input, output)
				flags.apply(cmd, &opts)
				jobs = append(jobs, pipeline.Job{Name: f, Source: src, Options: opts})
			}

			if !cmd.Flags().Changed("concurrency") {
				concurrency = c.config().Server.Concurrency
			}

			runner, err := c.newRunner(cmd.Context(), flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			spin := newSpinner(cmd.Context(), cmd.ErrOrStderr(), batchStatus(0, len(jobs)))
			runner.OnJobDone = func(done, total int) {
				spin.SetMessage("%s", batchStatus(done, total))
			}
			spin.Start()
			results, err := runner.TranslateBatch(cmd.Context(), jobs, concurrency)
			spin.Stop()
			if spin.Cancelled() {
				printWarning("Batch interrupted")
			}
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					printError("%s: %s", r.Name, errors.UserMessage(r.Err))
					continue
				}
				dir := outDir
				if dir == "" {
					dir = filepath.Dir(r.Name)
				}
				path := filepath.Join(dir, basePath(r.Name)+extension(output))
				if err := writeFile(path, r.Result.Output); err != nil {
					failed++
					printError("%s: %v", r.Name, err)
					continue
				}
				printFile(path)
				reportDocument(r.Result)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d translations failed", failed, len(results))
			}
			printSuccess("Translated %d files", len(results))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", pipeline.FormatMermaid, "input format")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "output directory")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "parallel translations (default: server.concurrency)")

	return cmd
}

// expandInputs resolves glob patterns. Arguments without glob
// metacharacters are kept even if they do not exist, so the read reports
// a clear error.
func expandInputs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad pattern %q", arg)
		}
		if matches == nil && !hasMeta(arg) {
			matches = []string{arg}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

func hasMeta(path string) bool {
	for _, r := range path {
		switch r {
		case '*', '?', '[', '\\':
			return true
		}
	}
	return false
}
