package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Format represents the output format of the report.
type Format string

const (
	XLSXFormat Format = "xlsx"
	JSONFormat Format = "json"
)

// Options defines options for writing a report.
type Options struct {
	Format    Format
	OutputDir string
	Filename  string // without extension; defaults to a timestamped name
}

// Writer renders an assembled report to disk.
type Writer struct{}

// NewWriter creates a new report writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write renders the report and returns the path of the written file. The
// output directory is created if it does not exist.
func (w *Writer) Write(report *Report, options *Options) (string, error) {
	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := options.Filename
	if filename == "" {
		filename = fmt.Sprintf("oracle_audit_rollup_%s", report.GeneratedAt.Format("20060102_150405"))
	}
	path := filepath.Join(options.OutputDir, fmt.Sprintf("%s.%s", filename, fileExtension(options.Format)))

	var err error
	switch options.Format {
	case JSONFormat:
		err = w.writeJSON(report, path)
	default:
		err = w.writeWorkbook(report, path)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func fileExtension(format Format) string {
	if format == JSONFormat {
		return "json"
	}
	return "xlsx"
}

// writeWorkbook renders one sheet per table, in report order, with the
// header row frozen. Placeholder tables without columns become empty sheets.
func (w *Writer) writeWorkbook(report *Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, table := range report.Tables {
		if i == 0 {
			// Rename the default sheet instead of leaving it dangling.
			if err := f.SetSheetName("Sheet1", table.Name); err != nil {
				return fmt.Errorf("failed to create sheet %q: %w", table.Name, err)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", table.Name, err)
		}
		if err := writeSheet(f, table); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, table Table) error {
	if len(table.Columns) == 0 {
		return nil
	}

	header := make([]any, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(table.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", table.Name, err)
	}

	for r, row := range table.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(table.Name, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", r+1, table.Name, err)
		}
	}

	return f.SetPanes(table.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (w *Writer) writeJSON(report *Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report to file: %w", err)
	}
	return nil
}
