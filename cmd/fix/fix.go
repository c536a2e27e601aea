// Package fix handles the single-statement rewrite command
package fix

import (
	"errors"
	"fmt"
	"os"

	"fjacquet/camt-fix/cmd/common"
	"fjacquet/camt-fix/cmd/root"
	"fjacquet/camt-fix/internal/camtfix"
	"fjacquet/camt-fix/internal/container"
	"fjacquet/camt-fix/internal/logging"

	"github.com/spf13/cobra"
)

var reportPath string

// Cmd represents the fix command
var Cmd = &cobra.Command{
	Use:   "fix",
	Short: "Rewrite one CAMT.053.001.10 statement as CAMT.053.001.02",
	Long: `Rewrite one Wise CAMT.053.001.10 statement as CAMT.053.001.02.

The output is written next to the input with the configured suffix inserted
before the extension unless --output is given. Use "-" to read the statement
from stdin or write it to stdout. Malformed XML is reported on one line and
no output file is written.

Example:
  camt-fix fix -i statement.xml
  camt-fix fix -i statement.xml -o fixed.xml --report report.yaml
  camt-fix fix -i - -o - < statement.xml > fixed.xml`,
	RunE: fixFunc,
}

func init() {
	Cmd.Flags().StringVar(&reportPath, "report", "", "Write a rewrite report (.yaml or .json)")
}

func fixFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	logger := c.GetLogger()

	input, output := root.SharedFlags.Input, root.SharedFlags.Output
	logger.Debug("Fix command called",
		logging.F(logging.FieldInputFile, input),
		logging.F(logging.FieldOutputFile, output))

	var (
		report *camtfix.Report
		err    error
	)
	switch {
	case input == common.StdStream:
		if output != "" && output != common.StdStream {
			return errors.New("reading from stdin writes to stdout; drop --output or set it to -")
		}
		report, err = common.FixStream(c, input, cmd.InOrStdin(), cmd.OutOrStdout(), root.SharedFlags.Validate)
	case output == common.StdStream:
		report, err = fixToStdout(cmd, c, input)
	default:
		report, err = common.FixFile(cmd.Context(), c, input, output, root.SharedFlags.Validate)
	}
	if err != nil {
		return err
	}

	return common.WriteReport(c, reportPath, report)
}

func fixToStdout(cmd *cobra.Command, c *container.Container, input string) (*camtfix.Report, error) {
	if input == "" {
		return nil, errors.New("input file must be specified with --input")
	}
	f, err := os.Open(input) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			c.GetLogger().WithError(cerr).Warn("Failed to close input file")
		}
	}()
	return common.FixStream(c, input, f, cmd.OutOrStdout(), root.SharedFlags.Validate)
}
