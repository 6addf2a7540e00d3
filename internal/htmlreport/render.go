// =============================================================================
// Coverage Report Generator - HTML Renderer
// =============================================================================
//
// This module renders report views as standalone, printable HTML pages.
//
// PAGE STRUCTURE:
//   Area report:
//     - print header (title, source, generation time)
//     - "Overall Circle Summary" table with an "Overall Total" row
//     - one "Circle N: Name" section per circle (Zone / Ward rows)
//
//   Fleet report:
//     - print header and circle summary table
//     - one "Circle: Name" section per circle (vehicle rows)
//     - an "ABSENT VEHICLE ROUTE" table where routes had no vehicle
//
// PRINT VARIANTS:
//   - SummaryOnly: only the summary table
//   - Circle:      a single circle section (no summary table)
//
// Values are escaped by html/template.
//
// =============================================================================

package htmlreport

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/ginjaninja78/coverage-report/internal/types"
)

// PrintDateLayout formats the generation time the way the printed reports
// show it, e.g. "19/10/2026, 03:04 pm".
const PrintDateLayout = "02/01/2006, 03:04 pm"

// ErrUnknownCircle is returned when Options.Circle names a circle that is not
// in the report.
var ErrUnknownCircle = errors.New("circle not found in report")

var pages = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": func(items []string) string { return strings.Join(items, ", ") },
}).Parse(pageTemplate))

// Options selects a print variant.
type Options struct {
	// SummaryOnly renders only the summary table.
	SummaryOnly bool

	// Circle restricts the page to one circle section.
	Circle string
}

// page is the template data of both report kinds.
type page struct {
	Title       string
	Source      string
	PrintDate   string
	SummaryOnly bool
	ShowSummary bool
	IsArea      bool
	Summaries   []types.CircleSummary
	Overall     types.CircleSummary
	Area        []types.AreaCircle
	Fleet       []types.FleetCircle
}

// FormatPrintDate formats t with PrintDateLayout. A zero time renders as an
// empty string.
func FormatPrintDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(PrintDateLayout)
}

// =============================================================================
// RENDERING
// =============================================================================

// RenderArea writes an area report page.
//
// PARAMETERS:
//   - w: The destination.
//   - view: The flattened area tree.
//   - opts: The print variant.
//
// RETURNS:
//   - ErrUnknownCircle (wrapped) if opts.Circle is not in the view.
//   - An error if the template fails to execute.
func RenderArea(w io.Writer, view types.AreaView, opts Options) error {
	p := newPage(view.Title, view.Source, view.GeneratedAt, view.Overall, opts)
	p.IsArea = true

	for _, c := range view.Circles {
		if opts.Circle != "" && c.Summary.Name != opts.Circle {
			continue
		}
		p.Summaries = append(p.Summaries, c.Summary)
		p.Area = append(p.Area, c)
	}
	if opts.Circle != "" && len(p.Area) == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownCircle, opts.Circle)
	}

	return execute(w, p)
}

// RenderFleet writes a fleet report page.
func RenderFleet(w io.Writer, view types.FleetView, opts Options) error {
	p := newPage(view.Title, view.Source, view.GeneratedAt, view.Overall, opts)

	for _, c := range view.Circles {
		if opts.Circle != "" && c.Summary.Name != opts.Circle {
			continue
		}
		p.Summaries = append(p.Summaries, c.Summary)
		p.Fleet = append(p.Fleet, c)
	}
	if opts.Circle != "" && len(p.Fleet) == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownCircle, opts.Circle)
	}

	return execute(w, p)
}

func newPage(title, source string, generatedAt time.Time, overall types.CircleSummary, opts Options) *page {
	return &page{
		Title:       title,
		Source:      source,
		PrintDate:   FormatPrintDate(generatedAt),
		SummaryOnly: opts.SummaryOnly,
		// A single-circle print has no summary table.
		ShowSummary: opts.SummaryOnly || opts.Circle == "",
		Overall:     overall,
	}
}

func execute(w io.Writer, p *page) error {
	if err := pages.ExecuteTemplate(w, "page", p); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}
