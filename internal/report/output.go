package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/coverage-report/internal/config"
	"github.com/ginjaninja78/coverage-report/internal/htmlreport"
	"github.com/ginjaninja78/coverage-report/internal/types"
	"github.com/ginjaninja78/coverage-report/internal/xlsxreport"
	"github.com/ginjaninja78/coverage-report/internal/xmlreport"
)

// =============================================================================
// OUTPUT RENDERING
// =============================================================================

// rendered renders one report view in any supported format.
type rendered struct {
	html func(io.Writer) error
	xlsx func(io.Writer) error
	json func(io.Writer) error
	xml  func(io.Writer) error
}

// jsonDocument is the JSON output. Circles are arrays so the order of first
// appearance survives serialization.
type jsonDocument struct {
	Kind types.ReportKind `json:"kind"`
	View interface{}      `json:"report"`
}

func areaOutput(view types.AreaView, opts htmlreport.Options) rendered {
	return rendered{
		html: func(w io.Writer) error { return htmlreport.RenderArea(w, view, opts) },
		xlsx: func(w io.Writer) error { return xlsxreport.WriteArea(w, view) },
		json: func(w io.Writer) error { return writeJSON(w, jsonDocument{Kind: types.AreaReport, View: view}) },
		xml:  func(w io.Writer) error { return xmlreport.WriteArea(w, view, xmlreport.DefaultOptions()) },
	}
}

func fleetOutput(view types.FleetView, opts htmlreport.Options) rendered {
	return rendered{
		html: func(w io.Writer) error { return htmlreport.RenderFleet(w, view, opts) },
		xlsx: func(w io.Writer) error { return xlsxreport.WriteFleet(w, view) },
		json: func(w io.Writer) error { return writeJSON(w, jsonDocument{Kind: types.FleetReport, View: view}) },
		xml:  func(w io.Writer) error { return xmlreport.WriteFleet(w, view, xmlreport.DefaultOptions()) },
	}
}

func writeJSON(w io.Writer, doc jsonDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

// render writes the report in the given format to w.
func (r rendered) render(format string, w io.Writer) error {
	switch format {
	case config.FormatHTML:
		return r.html(w)
	case config.FormatXLSX:
		return r.xlsx(w)
	case config.FormatJSON:
		return r.json(w)
	case config.FormatXML:
		return r.xml(w)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// write renders into memory first so a failed render leaves no partial file.
func (r rendered) write(format, path string) error {
	var buf bytes.Buffer
	if err := r.render(format, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
