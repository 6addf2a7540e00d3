// =============================================================================
// Coverage Report Generator - Aggregation Core
// =============================================================================
//
// This package folds parsed survey records into a nested, insertion-ordered
// aggregate tree:
//
//   Area report:   circle -> zone -> ward -> Node
//   Fleet report:  circle -> vehicle -> VehicleNode (+ absent-vehicle routes)
//
// The fold is pure and single-pass. Numeric results do not depend on record
// order; group and subgroup order is the order of first appearance. Rollups
// (circle totals, grand totals) are never stored: they are recomputed by
// walking the tree, so they always match the leaves.
//
// Data-quality problems never surface as errors. Unknown wards go to the
// sentinel group and unparsable counters contribute zero.
//
// =============================================================================

package aggregate

import (
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/coverage-report/internal/types"
)

// DefaultSentinel is the group of records whose ward is in no circle.
const DefaultSentinel = "Other Circles"

// =============================================================================
// FIELD NAMES AND OPTIONS
// =============================================================================

// Fields names the record fields the aggregator reads.
type Fields struct {
	Zone       string `yaml:"zone"`
	Ward       string `yaml:"ward"`
	Total      string `yaml:"total"`
	Covered    string `yaml:"covered"`
	NotCovered string `yaml:"not_covered"`
	Vehicle    string `yaml:"vehicle"`
	RouteName  string `yaml:"route_name"`
}

// DefaultFields returns the header names of the survey export.
func DefaultFields() Fields {
	return Fields{
		Zone:       "Zone",
		Ward:       "Ward",
		Total:      "Total",
		Covered:    "Covered",
		NotCovered: "Not Covered",
		Vehicle:    "Vehicle Number",
		RouteName:  "Route Name",
	}
}

// WithDefaults fills blank names from DefaultFields.
func (f Fields) WithDefaults() Fields {
	d := DefaultFields()
	if f.Zone == "" {
		f.Zone = d.Zone
	}
	if f.Ward == "" {
		f.Ward = d.Ward
	}
	if f.Total == "" {
		f.Total = d.Total
	}
	if f.Covered == "" {
		f.Covered = d.Covered
	}
	if f.NotCovered == "" {
		f.NotCovered = d.NotCovered
	}
	if f.Vehicle == "" {
		f.Vehicle = d.Vehicle
	}
	if f.RouteName == "" {
		f.RouteName = d.RouteName
	}
	return f
}

// Options configures a fold.
type Options struct {
	// Fields overrides header names. Blank names use the defaults.
	Fields Fields

	// Sentinel is the fallback group. Default: DefaultSentinel.
	Sentinel string
}

func (o Options) normalized() Options {
	o.Fields = o.Fields.WithDefaults()
	if o.Sentinel == "" {
		o.Sentinel = DefaultSentinel
	}
	return o
}

// =============================================================================
// COUNTERS
// =============================================================================

// Node accumulates the three household counters. Counters only grow.
type Node struct {
	Total      int
	Covered    int
	NotCovered int
}

func (n *Node) add(total, covered, notCovered int) {
	n.Total += total
	n.Covered += covered
	n.NotCovered += notCovered
}

func (n *Node) merge(o Node) {
	n.add(o.Total, o.Covered, o.NotCovered)
}

// Percentage returns the node's coverage percentage.
func (n Node) Percentage() float64 {
	return Percentage(n.Covered, n.Total)
}

// Counts converts the node to the shared row type.
func (n Node) Counts() types.Counts {
	return types.Counts{Total: n.Total, Covered: n.Covered, NotCovered: n.NotCovered}
}

// Percentage returns covered/total*100 rounded to two decimals, and 0 when
// total is not positive.
func Percentage(covered, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(covered)/float64(total)*100*100) / 100
}

// FormatPercentage renders a coverage percentage with two decimals, e.g.
// "30.00". Ties round up ("3.13" for 1/32). A zero total renders as "0".
func FormatPercentage(covered, total int) string {
	if total <= 0 {
		return "0"
	}
	return strconv.FormatFloat(Percentage(covered, total), 'f', 2, 64)
}

// CoerceCount converts a counter field to an integer.
//
// It reads an optional sign followed by the leading decimal digits after
// surrounding whitespace ("12abc" -> 12, "3.9" -> 3, "-5" -> -5). Anything
// without leading digits and values too large for an int become 0.
func CoerceCount(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	start := 0
	if s[0] == '+' || s[0] == '-' {
		start = 1
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// IsNumeric reports whether a counter field is a plain non-negative integer.
// The aggregator does not need it; validation uses it to flag coercions.
func IsNumeric(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
