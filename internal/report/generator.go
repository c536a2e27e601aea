// Package report renders camtfix rewrite reports for the CLI.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/camt-fix/internal/camtfix"
	"fjacquet/camt-fix/internal/fileutils"
	"fjacquet/camt-fix/internal/logging"

	"gopkg.in/yaml.v3"
)

// Generator renders rewrite reports as YAML or JSON.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator. A nil logger discards log output.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Generator{logger: logger.WithField("component", "ReportGenerator")}
}

// Generate renders the reports in the given format ("yaml" or "json").
func (g *Generator) Generate(reports []*camtfix.Report, format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return g.generateYAML(reports)
	case "json":
		return g.generateJSON(reports)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteFile renders the reports in the format named by the file extension
// and writes them atomically.
func (g *Generator) WriteFile(path string, reports ...*camtfix.Report) error {
	out, err := g.Generate(reports, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := fileutils.WriteFileAtomic(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	g.logger.Debug("Wrote rewrite report",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(reports)))
	return nil
}

// FormatFromPath maps a report file name to a format, defaulting to yaml.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

func (g *Generator) generateYAML(reports []*camtfix.Report) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if len(reports) == 1 {
		out, err = yaml.Marshal(reports[0])
	} else {
		out, err = yaml.Marshal(reports)
	}
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}

func (g *Generator) generateJSON(reports []*camtfix.Report) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if len(reports) == 1 {
		out, err = json.MarshalIndent(reports[0], "", "  ")
	} else {
		out, err = json.MarshalIndent(reports, "", "  ")
	}
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}
