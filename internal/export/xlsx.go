package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"

	"github.com/wandb/tschart/internal/dataset"
	"github.com/wandb/tschart/internal/surface"
)

const (
	dataSheet = "Data"
	dateStyle = "mmm d, yyyy"
)

// WriteXLSX writes ds as a spreadsheet: one date column, one column per
// series and a native line chart over them in the series colors.
func WriteXLSX(fs afero.Fs, path string, ds *dataset.Dataset, loc *time.Location) error {
	if err := ds.Validate(); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}

	lines := ds.Lines()
	n := ds.SampleCount()

	header := []any{"Date"}
	for _, col := range lines {
		header = append(header, ds.Name(col.Key))
	}
	if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
		return fmt.Errorf("export: xlsx: header: %w", err)
	}

	for i := range n {
		ts, _ := ds.Timestamp(i)
		row := []any{ts.In(loc)}
		for _, col := range lines {
			row = append(row, col.Values[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: xlsx: %w", err)
		}
		if err := f.SetSheetRow(dataSheet, cell, &row); err != nil {
			return fmt.Errorf("export: xlsx: row %d: %w", i, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: ptr(dateStyle)})
	if err != nil {
		return fmt.Errorf("export: xlsx: style: %w", err)
	}
	lastDate, _ := excelize.CoordinatesToCellName(1, n+1)
	if err := f.SetCellStyle(dataSheet, "A2", lastDate, style); err != nil {
		return fmt.Errorf("export: xlsx: style: %w", err)
	}

	chart, err := lineChart(ds, lines, n)
	if err != nil {
		return err
	}
	anchor, _ := excelize.CoordinatesToCellName(len(lines)+3, 2)
	if err := f.AddChart(dataSheet, anchor, chart); err != nil {
		return fmt.Errorf("export: xlsx: chart: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create %s: %w", dir, err)
		}
	}
	out, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if _, err := f.WriteTo(out); err != nil {
		_ = out.Close()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	return nil
}

func lineChart(ds *dataset.Dataset, lines []dataset.Column, n int) (*excelize.Chart, error) {
	categories := fmt.Sprintf("%s!$A$2:$A$%d", dataSheet, n+1)

	series := make([]excelize.ChartSeries, 0, len(lines))
	for i, col := range lines {
		name, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return nil, fmt.Errorf("export: xlsx: %w", err)
		}
		c, err := surface.ParseColor(ds.Color(col.Key))
		if err != nil {
			return nil, fmt.Errorf("export: xlsx: series %s: %w", col.Key, err)
		}

		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", dataSheet, name),
			Categories: categories,
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", dataSheet, name, name, n+1),
			Fill: excelize.Fill{
				Type:    "pattern",
				Pattern: 1,
				Color:   []string{strings.ToUpper(fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B))},
			},
			Line:   excelize.ChartLine{Width: 2},
			Marker: excelize.ChartMarker{Symbol: "none"},
		})
	}

	return &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Legend: excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{
			Width:  600,
			Height: 320,
		},
	}, nil
}

func ptr[T any](v T) *T {
	return &v
}
