// Package batch handles batch processing of files
package batch

import (
	"errors"
	"fmt"

	"fjacquet/camt-fix/cmd/common"
	"fjacquet/camt-fix/cmd/root"
	"fjacquet/camt-fix/internal/batch"
	"fjacquet/camt-fix/internal/logging"

	"github.com/spf13/cobra"
)

var (
	workers      int
	manifestPath string
	reportPath   string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch rewrite statements from a directory",
	Long: `Batch rewrite every .xml statement in an input directory and write the results to another directory.

Files are rewritten in parallel and independently: a malformed file is reported
and skipped, the others are still written. Files that already carry the output
suffix are left out. With --manifest a CSV line per input records the outcome.

Example:
  camt-fix batch -i input_dir/ -o output_dir/ --workers 4 --manifest manifest.csv`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().IntVar(&workers, "workers", 0, "Number of files rewritten at once (default: batch.workers, then one per CPU)")
	Cmd.Flags().StringVar(&manifestPath, "manifest", "", "Write a CSV manifest of the run (default: batch.manifest)")
	Cmd.Flags().StringVar(&reportPath, "report", "", "Write the rewrite reports of all fixed files (.yaml or .json)")

	// Override the usage text for the input/output flags in batch context
	Cmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags (for batch, -i/-o refer to directories):
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`)
}

func batchFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	logger := c.GetLogger()

	inputDir, outputDir := root.SharedFlags.Input, root.SharedFlags.Output
	manifest := manifestPath
	if manifest == "" {
		manifest = c.GetConfig().Batch.Manifest
	}

	logger.Info("Batch command called",
		logging.F("input_dir", inputDir),
		logging.F("output_dir", outputDir))

	results, err := common.FixDirectory(cmd.Context(), c, inputDir, outputDir, workers, root.SharedFlags.Validate, manifest)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil && r.Status == batch.StatusFailed {
			cmd.PrintErrln(r.Err)
		}
	}

	if err := common.WriteReport(c, reportPath, common.FixedReports(results)...); err != nil {
		return err
	}

	summary := batch.Summarize(results)
	if len(results) == 0 {
		logger.Warn("No statements found in input directory", logging.F(logging.FieldFile, inputDir))
	}
	logger.Info("Batch processing completed",
		logging.F("fixed", summary.Fixed),
		logging.F("failed", summary.Failed),
		logging.F("skipped", summary.Skipped))
	fmt.Fprintln(cmd.OutOrStdout(), summary.String())

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d statements failed", summary.Failed, len(results))
	}
	return nil
}
