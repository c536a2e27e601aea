package batch

import (
	"fmt"

	"fjacquet/camt-fix/internal/fileutils"

	"github.com/gocarina/gocsv"
)

// ManifestRow is one line of the batch manifest CSV.
type ManifestRow struct {
	Input   string `csv:"input"`
	Output  string `csv:"output"`
	Status  string `csv:"status"`
	Entries int    `csv:"entries"`
	Error   string `csv:"error"`
}

// ManifestRows converts results to manifest rows.
func ManifestRows(results []Result) []*ManifestRow {
	rows := make([]*ManifestRow, 0, len(results))
	for _, r := range results {
		row := &ManifestRow{
			Input:   r.Input,
			Output:  r.Output,
			Status:  r.Status,
			Entries: r.Entries(),
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		if r.Status != StatusFixed {
			row.Output = ""
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteManifest writes one CSV row per result to path.
func WriteManifest(path string, results []Result) error {
	rows := ManifestRows(results)
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := fileutils.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) ([]*ManifestRow, error) {
	data, err := fileutils.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []*ManifestRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return rows, nil
}
