// =============================================================================
// Coverage Report Generator - XML Report Writer
// =============================================================================
//
// This module writes a report view as an XML document for systems that
// import coverage figures in bulk.
//
// XML STRUCTURE (area report):
//
//   <areaReport title="..." source="survey.csv" generated="2026-10-19T15:04:05Z">
//     <summary total="160" covered="110" notCovered="50" percentage="68.75"/>
//     <circle n="1" name="Aniket" wards="1" total="150" ... percentage="73.33">
//       <ward n="1" zone="Z1" name="09-Gandhi Nagar" total="150" .../>
//     </circle>
//     <circle n="2" name="Other Circles" ...>
//       <ward n="2" zone="Z2" name="Nowhere" .../>   <!-- numbering continues -->
//     </circle>
//   </areaReport>
//
// XML STRUCTURE (fleet report):
//
//   <fleetReport ...>
//     <summary .../>
//     <circle n="1" name="North" ...>
//       <vehicle n="1" number="UP85-1" total="11" ...>
//         <ward>W1</ward>
//         <route>R1</route>
//       </vehicle>
//       <absentRoute route="R2" ward="W2" total="8" .../>
//     </circle>
//   </fleetReport>
//
// =============================================================================

package xmlreport

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/ginjaninja78/coverage-report/internal/types"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// Options contains options for XML generation.
type Options struct {
	// Indent is the string used for indentation. Empty writes one line.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration writes the <?xml ...?> header.
	// Default: true
	IncludeXMLDeclaration bool

	// GlobalNumbering numbers ward and vehicle rows across the whole report.
	// If false, numbering restarts at 1 in every circle.
	// Default: true
	GlobalNumbering bool
}

// DefaultOptions returns the default generation options.
func DefaultOptions() Options {
	return Options{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		GlobalNumbering:       true,
	}
}

// =============================================================================
// XML DOCUMENT TYPES
// =============================================================================

type counts struct {
	Total      int    `xml:"total,attr"`
	Covered    int    `xml:"covered,attr"`
	NotCovered int    `xml:"notCovered,attr"`
	Percentage string `xml:"percentage,attr,omitempty"`
}

func newCounts(c types.Counts, pct string) counts {
	return counts{Total: c.Total, Covered: c.Covered, NotCovered: c.NotCovered, Percentage: pct}
}

type header struct {
	Title     string `xml:"title,attr"`
	Source    string `xml:"source,attr"`
	Generated string `xml:"generated,attr,omitempty"`
}

func newHeader(title, source string, at time.Time) header {
	h := header{Title: title, Source: source}
	if !at.IsZero() {
		h.Generated = at.Format(time.RFC3339)
	}
	return h
}

type circleAttrs struct {
	N         int    `xml:"n,attr"`
	Name      string `xml:"name,attr"`
	WardCount int    `xml:"wards,attr"`
	counts
}

func newCircleAttrs(s types.CircleSummary) circleAttrs {
	return circleAttrs{N: s.Number, Name: s.Name, WardCount: s.WardCount, counts: newCounts(s.Counts, s.Percentage)}
}

type areaDocument struct {
	XMLName xml.Name `xml:"areaReport"`
	header
	Summary counts       `xml:"summary"`
	Circles []areaCircle `xml:"circle"`
}

type areaCircle struct {
	circleAttrs
	Wards []ward `xml:"ward"`
}

type ward struct {
	N    int    `xml:"n,attr"`
	Zone string `xml:"zone,attr"`
	Name string `xml:"name,attr"`
	counts
}

type fleetDocument struct {
	XMLName xml.Name `xml:"fleetReport"`
	header
	Summary counts        `xml:"summary"`
	Circles []fleetCircle `xml:"circle"`
}

type fleetCircle struct {
	circleAttrs
	Vehicles []vehicle     `xml:"vehicle"`
	Absent   []absentRoute `xml:"absentRoute"`
}

type vehicle struct {
	N      int    `xml:"n,attr"`
	Number string `xml:"number,attr"`
	counts
	Wards  []string `xml:"ward"`
	Routes []string `xml:"route"`
}

type absentRoute struct {
	Route string `xml:"route,attr"`
	Ward  string `xml:"ward,attr"`
	counts
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// WriteArea writes an area report view as XML.
func WriteArea(w io.Writer, view types.AreaView, options Options) error {
	doc := areaDocument{
		header:  newHeader(view.Title, view.Source, view.GeneratedAt),
		Summary: newCounts(view.Overall.Counts, view.Overall.Percentage),
	}

	n := 0
	for _, c := range view.Circles {
		if !options.GlobalNumbering {
			n = 0
		}
		circle := areaCircle{circleAttrs: newCircleAttrs(c.Summary)}
		for _, row := range c.Wards {
			n++
			circle.Wards = append(circle.Wards, ward{
				N:      n,
				Zone:   row.Zone,
				Name:   row.Ward,
				counts: newCounts(row.Counts, row.Percentage),
			})
		}
		doc.Circles = append(doc.Circles, circle)
	}

	return encode(w, doc, options)
}

// WriteFleet writes a fleet report view as XML. Absent routes carry no
// percentage, matching the printed report.
func WriteFleet(w io.Writer, view types.FleetView, options Options) error {
	doc := fleetDocument{
		header:  newHeader(view.Title, view.Source, view.GeneratedAt),
		Summary: newCounts(view.Overall.Counts, view.Overall.Percentage),
	}

	n := 0
	for _, c := range view.Circles {
		if !options.GlobalNumbering {
			n = 0
		}
		circle := fleetCircle{circleAttrs: newCircleAttrs(c.Summary)}
		for _, row := range c.Vehicles {
			n++
			circle.Vehicles = append(circle.Vehicles, vehicle{
				N:      n,
				Number: row.Vehicle,
				counts: newCounts(row.Counts, row.Percentage),
				Wards:  row.Wards,
				Routes: row.RouteNames,
			})
		}
		for _, r := range c.AbsentRoutes {
			circle.Absent = append(circle.Absent, absentRoute{
				Route:  r.RouteName,
				Ward:   r.WardName,
				counts: newCounts(r.Counts, ""),
			})
		}
		doc.Circles = append(doc.Circles, circle)
	}

	return encode(w, doc, options)
}

// encode writes the declaration and the indented document.
func encode(w io.Writer, doc interface{}, options Options) error {
	if options.IncludeXMLDeclaration {
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", options.Indent)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal XML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")
	return err
}
