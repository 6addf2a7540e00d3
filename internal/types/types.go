// =============================================================================
// Coverage Report Generator - Shared Types
// =============================================================================
//
// This package contains the flattened report views shared by the aggregator
// and the renderers. Keeping them here lets the renderers avoid importing
// the aggregation package. Types defined here are used by:
//   - aggregate   (builds them from the aggregate tree)
//   - htmlreport  (HTML output)
//   - xlsxreport  (workbook output)
//   - xmlreport   (XML output)
//   - report      (JSON output)
//
// All slices are in first-appearance order of the input file.
//
// =============================================================================

package types

import "time"

// =============================================================================
// REPORT KINDS
// =============================================================================

// ReportKind selects the aggregation shape.
type ReportKind string

const (
	// AreaReport groups circle -> zone -> ward.
	AreaReport ReportKind = "area"

	// FleetReport groups circle -> vehicle.
	FleetReport ReportKind = "fleet"
)

// =============================================================================
// SHARED ROWS
// =============================================================================

// Counts holds the three household counters of a report row.
type Counts struct {
	Total      int `json:"total"`
	Covered    int `json:"covered"`
	NotCovered int `json:"notCovered"`
}

// CircleSummary is one line of the overall summary table.
type CircleSummary struct {
	// Number is the 1-based position of the circle in the report.
	Number int `json:"number"`

	// Name is the circle name (or the sentinel group name).
	Name string `json:"name"`

	// WardCount is the number of distinct zone/ward leaves (area report) or
	// distinct wards served (fleet report).
	WardCount int `json:"wardCount"`

	Counts

	// Percentage is the formatted coverage, e.g. "73.33".
	Percentage string `json:"percentage"`
}

// =============================================================================
// AREA REPORT
// =============================================================================

// WardRow is one leaf of the area tree.
type WardRow struct {
	Zone string `json:"zone"`
	Ward string `json:"ward"`
	Counts
	Percentage string `json:"percentage"`
}

// AreaCircle is one circle section of the area report.
type AreaCircle struct {
	Summary CircleSummary `json:"summary"`
	Wards   []WardRow     `json:"wards"`
}

// AreaView is everything the renderers need for an area report.
type AreaView struct {
	Title       string        `json:"title"`
	Source      string        `json:"source"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Circles     []AreaCircle  `json:"circles"`
	Overall     CircleSummary `json:"overall"`
}

// =============================================================================
// FLEET REPORT
// =============================================================================

// VehicleRow is one vehicle bucket of the fleet tree.
type VehicleRow struct {
	Vehicle string `json:"vehicle"`
	Counts
	Percentage string   `json:"percentage"`
	Wards      []string `json:"wards"`
	RouteNames []string `json:"routeNames"`
}

// AbsentRoute is a fleet record without a vehicle number.
type AbsentRoute struct {
	RouteName string `json:"routeName"`
	WardName  string `json:"wardName"`
	Counts
}

// FleetCircle is one circle section of the fleet report.
type FleetCircle struct {
	Summary      CircleSummary `json:"summary"`
	Vehicles     []VehicleRow  `json:"vehicles"`
	AbsentRoutes []AbsentRoute `json:"absentRoutes"`
}

// FleetView is everything the renderers need for a fleet report.
type FleetView struct {
	Title       string        `json:"title"`
	Source      string        `json:"source"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Circles     []FleetCircle `json:"circles"`
	Overall     CircleSummary `json:"overall"`
}
