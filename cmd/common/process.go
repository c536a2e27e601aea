// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/camt-fix/internal/batch"
	"fjacquet/camt-fix/internal/camtfix"
	"fjacquet/camt-fix/internal/container"
	"fjacquet/camt-fix/internal/fileutils"
	"fjacquet/camt-fix/internal/logging"
	"fjacquet/camt-fix/internal/parsererror"
	"fjacquet/camt-fix/internal/xmlutils"
)

// StdStream is the file name standing for stdin or stdout.
const StdStream = "-"

const stdinSource = "<stdin>"

// FixFile rewrites one statement file. An empty output writes next to the
// input with the configured suffix. Nothing is written when the input does
// not parse.
func FixFile(ctx context.Context, c *container.Container, input, output string, validate bool) (*camtfix.Report, error) {
	if input == "" {
		return nil, errors.New("input file must be specified with --input")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	proc := c.NewProcessor(validate, 1)
	if output == "" {
		output = proc.OutputPath(input, "")
	}
	if samePath(input, output) {
		return nil, fmt.Errorf("refusing to overwrite input file %s", input)
	}

	res := proc.ProcessFile(ctx, input, output)
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Report, nil
}

// FixStream rewrites a statement read from r and writes it to w. source
// names the input in errors and the report; empty means stdin.
func FixStream(c *container.Container, source string, r io.Reader, w io.Writer, validate bool) (*camtfix.Report, error) {
	if source == "" || source == StdStream {
		source = stdinSource
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	out, report, err := c.GetRewriter().TransformWithReport(data)
	if err != nil {
		var pe *parsererror.ParseError
		if errors.As(err, &pe) {
			return nil, pe.WithSource(source)
		}
		return nil, err
	}
	report.Source = source

	if validate {
		if err := xmlutils.ValidateStatement(source, out); err != nil {
			return nil, err
		}
	}

	if _, err := w.Write(out); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	return report, nil
}

// WriteReport writes reports to path when one is given.
func WriteReport(c *container.Container, path string, reports ...*camtfix.Report) error {
	if path == "" || len(reports) == 0 {
		return nil
	}
	return c.GetReportGenerator().WriteFile(path, reports...)
}

// FixDirectory rewrites every statement in inDir and writes the manifest
// when manifestPath is set.
func FixDirectory(ctx context.Context, c *container.Container, inDir, outDir string, workers int, validate bool, manifestPath string) ([]batch.Result, error) {
	if inDir == "" {
		return nil, errors.New("input directory must be specified with --input")
	}
	if !fileutils.DirectoryExists(inDir) {
		return nil, fmt.Errorf("input directory does not exist: %s", inDir)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	proc := c.NewProcessor(validate, workers)
	results, err := proc.ProcessDirectory(ctx, inDir, outDir)
	if manifestPath != "" && results != nil {
		if merr := batch.WriteManifest(manifestPath, results); merr != nil {
			return results, merr
		}
		c.GetLogger().Info("Wrote batch manifest", logging.F(logging.FieldOutputFile, manifestPath))
	}
	return results, err
}

// FixedReports returns the reports of the successfully rewritten files.
func FixedReports(results []batch.Result) []*camtfix.Report {
	var reports []*camtfix.Report
	for _, r := range results {
		if r.Status == batch.StatusFixed && r.Report != nil {
			reports = append(reports, r.Report)
		}
	}
	return reports
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
