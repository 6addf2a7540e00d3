// =============================================================================
// Coverage Report Generator - XLSX Export
// =============================================================================
//
// This module exports report views as Excel workbooks.
//
// WORKBOOK STRUCTURE:
//   | Sheet         | Content                                             |
//   |---------------|-----------------------------------------------------|
//   | Summary       | one row per circle plus the "Overall Total" row     |
//   | <circle name> | area: Zone / Ward rows and a circle total row       |
//   |               | fleet: vehicle rows, then the absent vehicle routes |
//
// Sheet names follow Excel's rules: at most 31 characters, none of : \ / ? * [ ]
// and unique within the workbook (case-insensitive).
//
// =============================================================================

package xlsxreport

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/coverage-report/internal/types"
)

// SummarySheet is the name of the first sheet.
const SummarySheet = "Summary"

// maxSheetName is Excel's sheet name length limit.
const maxSheetName = 31

var (
	summaryHeaders = []string{"Circle", "Total Wards", "Total Households", "Covered Households", "Percentage(%)"}
	areaHeaders    = []string{"Zone", "Ward", "Total", "Covered", "Not Covered", "Percentage(%)"}
	fleetHeaders   = []string{"Vehicle No.", "Total Households", "Covered Households", "Not Covered", "Percentage(%)", "Wards Covered", "Route Name"}
	absentHeaders  = []string{"Route Name", "Ward Name", "Total", "Covered", "Not Covered"}
)

// =============================================================================
// WORKBOOK BUILDER
// =============================================================================

// workbook wraps an excelize file with the shared styles.
type workbook struct {
	f      *excelize.File
	header int
	total  int
	absent int
	names  map[string]bool
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E4E7EB"}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	total, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create total style: %w", err)
	}
	absent, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Color: "C62828"}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create absent style: %w", err)
	}

	// NewFile starts with "Sheet1"; it becomes the summary sheet.
	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}

	return &workbook{
		f:      f,
		header: header,
		total:  total,
		absent: absent,
		names:  map[string]bool{strings.ToLower(SummarySheet): true},
	}, nil
}

// row writes values starting at column A of the given 1-based row.
func (w *workbook) row(sheet string, row int, values []interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("sheet %q row %d: %w", sheet, row, err)
	}
	if style == 0 || len(values) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(sheet, cell, last, style)
}

func (w *workbook) headerRow(sheet string, row int, headers []string, style int) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := w.row(sheet, row, values, style); err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	return w.f.SetColWidth(sheet, "A", last, 18)
}

// newSheet adds a sheet for a circle and returns its sanitized name.
func (w *workbook) newSheet(circle string) (string, error) {
	name := SheetName(circle, w.names)
	if _, err := w.f.NewSheet(name); err != nil {
		return "", fmt.Errorf("failed to add sheet %q: %w", name, err)
	}
	return name, nil
}

func (w *workbook) summary(circles []types.CircleSummary, overall types.CircleSummary) error {
	if err := w.headerRow(SummarySheet, 1, summaryHeaders, w.header); err != nil {
		return err
	}
	r := 2
	for _, c := range circles {
		if err := w.row(SummarySheet, r, summaryValues(c), 0); err != nil {
			return err
		}
		r++
	}
	return w.row(SummarySheet, r, summaryValues(overall), w.total)
}

func summaryValues(c types.CircleSummary) []interface{} {
	return []interface{}{c.Name, c.WardCount, c.Total, c.Covered, percentCell(c.Percentage)}
}

// percentCell stores formatted percentages as numbers so spreadsheets can
// sort and chart them.
func percentCell(s string) interface{} {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}

func (w *workbook) write(out io.Writer) error {
	w.f.SetActiveSheet(0)
	if err := w.f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// WriteArea writes an area report workbook to out.
func WriteArea(out io.Writer, view types.AreaView) error {
	w, err := newWorkbook()
	if err != nil {
		return err
	}
	defer w.f.Close()

	summaries := make([]types.CircleSummary, 0, len(view.Circles))
	for _, c := range view.Circles {
		summaries = append(summaries, c.Summary)
	}
	if err := w.summary(summaries, view.Overall); err != nil {
		return err
	}

	for _, c := range view.Circles {
		sheet, err := w.newSheet(c.Summary.Name)
		if err != nil {
			return err
		}
		if err := w.headerRow(sheet, 1, areaHeaders, w.header); err != nil {
			return err
		}
		r := 2
		for _, ward := range c.Wards {
			values := []interface{}{ward.Zone, ward.Ward, ward.Total, ward.Covered, ward.NotCovered, percentCell(ward.Percentage)}
			if err := w.row(sheet, r, values, 0); err != nil {
				return err
			}
			r++
		}
		s := c.Summary
		totals := []interface{}{"Circle Total", "", s.Total, s.Covered, s.NotCovered, percentCell(s.Percentage)}
		if err := w.row(sheet, r, totals, w.total); err != nil {
			return err
		}
	}

	return w.write(out)
}

// WriteFleet writes a fleet report workbook to out. Absent vehicle routes
// follow the vehicle rows of their circle after one blank row.
func WriteFleet(out io.Writer, view types.FleetView) error {
	w, err := newWorkbook()
	if err != nil {
		return err
	}
	defer w.f.Close()

	summaries := make([]types.CircleSummary, 0, len(view.Circles))
	for _, c := range view.Circles {
		summaries = append(summaries, c.Summary)
	}
	if err := w.summary(summaries, view.Overall); err != nil {
		return err
	}

	for _, c := range view.Circles {
		sheet, err := w.newSheet(c.Summary.Name)
		if err != nil {
			return err
		}
		if err := w.headerRow(sheet, 1, fleetHeaders, w.header); err != nil {
			return err
		}
		r := 2
		for _, v := range c.Vehicles {
			values := []interface{}{
				v.Vehicle, v.Total, v.Covered, v.NotCovered, percentCell(v.Percentage),
				strings.Join(v.Wards, ", "), strings.Join(v.RouteNames, ", "),
			}
			if err := w.row(sheet, r, values, 0); err != nil {
				return err
			}
			r++
		}

		if len(c.AbsentRoutes) == 0 {
			continue
		}
		r++
		if err := w.row(sheet, r, []interface{}{"ABSENT VEHICLE ROUTE"}, w.absent); err != nil {
			return err
		}
		r++
		if err := w.headerRow(sheet, r, absentHeaders, w.header); err != nil {
			return err
		}
		r++
		for _, a := range c.AbsentRoutes {
			values := []interface{}{a.RouteName, a.WardName, a.Total, a.Covered, a.NotCovered}
			if err := w.row(sheet, r, values, 0); err != nil {
				return err
			}
			r++
		}
	}

	return w.write(out)
}

// =============================================================================
// SHEET NAMES
// =============================================================================

// SheetName turns a circle name into a valid, unused sheet name and marks it
// used. used is keyed by lower-cased names.
func SheetName(name string, used map[string]bool) string {
	base := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	base = strings.Trim(base, "'")
	if base == "" {
		base = "Circle"
	}
	base = truncate(base, maxSheetName)

	candidate := base
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
