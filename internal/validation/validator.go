// =============================================================================
// Coverage Report Generator - Data Quality Checks
// =============================================================================
//
// This module inspects survey data and membership tables for problems that
// would silently distort a report. Nothing here stops processing: counters
// that are not numbers still aggregate as 0 and ambiguous wards still land in
// exactly one circle. The checks exist so the operator can see what happened.
//
// CHECKS:
//   - Required headers:   a report column is absent from the header line
//   - Numeric counters:   Total / Covered / Not Covered is not a plain integer
//   - Counter balance:    Covered + Not Covered differs from Total
//   - Duplicate wards:    a ward is listed under more than one circle
//   - Missing vehicle:    a fleet row has no vehicle number
//
// Issues are collected, not returned as errors.
//
// =============================================================================

package validation

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ginjaninja78/coverage-report/internal/aggregate"
	"github.com/ginjaninja78/coverage-report/internal/csvparser"
	"github.com/ginjaninja78/coverage-report/internal/membership"
	"github.com/ginjaninja78/coverage-report/internal/types"
)

// =============================================================================
// ISSUE TYPES
// =============================================================================

// Severity levels.
const (
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Rule names.
const (
	RuleRequiredHeader = "required_header"
	RuleNumeric        = "numeric"
	RuleBalance        = "balance"
	RuleDuplicateWard  = "duplicate_ward"
	RuleMissingVehicle = "missing_vehicle"
)

// Issue is a single data-quality finding.
type Issue struct {
	// Severity is "warning" or "info".
	Severity string `json:"severity"`

	// Rule is the check that produced the issue.
	Rule string `json:"rule"`

	// Field is the column (or ward, for membership issues) concerned.
	Field string `json:"field,omitempty"`

	// Value is the offending value.
	Value string `json:"value,omitempty"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// LineNumber is the 1-based source line, 0 when not tied to a line.
	LineNumber int `json:"line,omitempty"`
}

// Error implements the error interface.
func (i *Issue) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", strings.ToUpper(i.Severity))
	if i.LineNumber > 0 {
		fmt.Fprintf(&b, "Line %d, ", i.LineNumber)
	}
	if i.Field != "" {
		fmt.Fprintf(&b, "Field '%s': ", i.Field)
	}
	b.WriteString(i.Message)
	if i.Value != "" {
		fmt.Fprintf(&b, " (value: '%s')", i.Value)
	}
	return b.String()
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Result contains the findings of one run.
type Result struct {
	// Issues lists every finding in discovery order.
	Issues []*Issue

	// WarningCount is the number of warnings.
	WarningCount int

	// RowsChecked is the number of records inspected.
	RowsChecked int
}

func (r *Result) add(issue *Issue) {
	r.Issues = append(r.Issues, issue)
	if issue.Severity == SeverityWarning {
		r.WarningCount++
	}
}

// Clean reports whether no warning was found.
func (r *Result) Clean() bool {
	return r.WarningCount == 0
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Options tunes the checks.
type Options struct {
	// MaxIssuesPerRule caps the issues kept per rule so a broken column does
	// not produce one warning per row. 0 means no cap.
	MaxIssuesPerRule int

	// CheckBalance enables the Covered + Not Covered == Total check.
	CheckBalance bool
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{MaxIssuesPerRule: 50, CheckBalance: true}
}

// Validator inspects a parsed dataset for one report kind.
type Validator struct {
	kind    types.ReportKind
	fields  aggregate.Fields
	options Options
	counts  map[string]int
}

// NewValidator creates a validator for the given report kind and column
// names.
func NewValidator(kind types.ReportKind, fields aggregate.Fields, options Options) *Validator {
	return &Validator{
		kind:    kind,
		fields:  fields.WithDefaults(),
		options: options,
		counts:  make(map[string]int),
	}
}

// RequiredHeaders returns the columns a report kind reads.
func (v *Validator) RequiredHeaders() []string {
	f := v.fields
	if v.kind == types.FleetReport {
		return []string{f.Vehicle, f.Ward, f.RouteName, f.Total, f.Covered, f.NotCovered}
	}
	return []string{f.Zone, f.Ward, f.Total, f.Covered, f.NotCovered}
}

// Validate runs the header and row checks over a dataset.
//
// PARAMETERS:
//   - data: The parsed survey data.
//
// RETURNS:
//   - The collected findings. Never nil.
func (v *Validator) Validate(data *csvparser.CSVData) *Result {
	result := &Result{}

	// =========================================================================
	// STEP 1: HEADER CHECKS
	// =========================================================================
	for _, h := range v.RequiredHeaders() {
		if !data.HasHeader(h) {
			v.emit(result, &Issue{
				Severity: SeverityWarning,
				Rule:     RuleRequiredHeader,
				Field:    h,
				Message:  "required column is missing; its values are treated as empty",
			})
		}
	}

	// =========================================================================
	// STEP 2: ROW CHECKS
	// =========================================================================
	for i, rec := range data.Rows {
		line := 0
		if i < len(data.LineNumbers) {
			line = data.LineNumbers[i]
		}
		v.validateRow(result, rec, line)
		result.RowsChecked++
	}

	return result
}

// validateRow checks the counters (and the vehicle for fleet data) of one
// record.
func (v *Validator) validateRow(result *Result, rec csvparser.Record, line int) {
	counters := []string{v.fields.Total, v.fields.Covered, v.fields.NotCovered}

	numeric := true
	for _, field := range counters {
		raw, present := rec[field]
		if !present {
			numeric = false
			continue
		}
		if !aggregate.IsNumeric(raw) {
			numeric = false
			v.emit(result, &Issue{
				Severity:   SeverityWarning,
				Rule:       RuleNumeric,
				Field:      field,
				Value:      raw,
				Message:    fmt.Sprintf("not a non-negative integer; counted as %d", aggregate.CoerceCount(raw)),
				LineNumber: line,
			})
		}
	}

	if v.options.CheckBalance && numeric {
		total := aggregate.CoerceCount(rec[v.fields.Total])
		covered := aggregate.CoerceCount(rec[v.fields.Covered])
		notCovered := aggregate.CoerceCount(rec[v.fields.NotCovered])
		if covered+notCovered != total {
			v.emit(result, &Issue{
				Severity:   SeverityInfo,
				Rule:       RuleBalance,
				Field:      v.fields.Total,
				Value:      fmt.Sprintf("%d+%d", covered, notCovered),
				Message:    fmt.Sprintf("covered plus not covered does not equal total %d", total),
				LineNumber: line,
			})
		}
	}

	if v.kind == types.FleetReport && strings.TrimSpace(rec.Get(v.fields.Vehicle)) == "" {
		v.emit(result, &Issue{
			Severity:   SeverityInfo,
			Rule:       RuleMissingVehicle,
			Field:      v.fields.Vehicle,
			Value:      rec.Get(v.fields.RouteName),
			Message:    "no vehicle assigned; listed as an absent vehicle route",
			LineNumber: line,
		})
	}
}

// emit records an issue unless its rule has reached the cap.
func (v *Validator) emit(result *Result, issue *Issue) {
	v.counts[issue.Rule]++
	if v.options.MaxIssuesPerRule > 0 && v.counts[issue.Rule] > v.options.MaxIssuesPerRule {
		return
	}
	result.add(issue)
}

// =============================================================================
// MEMBERSHIP CHECKS
// =============================================================================

// ValidateMembership reports wards listed under several circles, naming the
// circle the policy resolves them to.
func ValidateMembership(table *membership.Table, policy membership.Policy) *Result {
	result := &Result{}
	index := table.Index(policy)

	for _, d := range table.Duplicates() {
		winner, _ := index.Lookup(d.Member)
		result.add(&Issue{
			Severity: SeverityWarning,
			Rule:     RuleDuplicateWard,
			Field:    d.Member,
			Value:    strings.Join(d.Groups, ", "),
			Message:  fmt.Sprintf("ward is listed under %d circles; %s-wins assigns it to %s", len(d.Groups), policy, winner),
		})
	}

	return result
}

// Merge appends the findings of other results.
func (r *Result) Merge(others ...*Result) *Result {
	for _, o := range others {
		if o == nil {
			continue
		}
		for _, issue := range o.Issues {
			r.add(issue)
		}
		r.RowsChecked += o.RowsChecked
	}
	return r
}

// =============================================================================
// ERROR REPORTING
// =============================================================================

// FormatIssues formats issues into a human-readable string.
func FormatIssues(issues []*Issue) string {
	if len(issues) == 0 {
		return "No data quality issues."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d issue(s):\n\n", len(issues)))

	for i, issue := range issues {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, issue.Error()))
	}

	return builder.String()
}

// WriteErrorLog writes the issues of a run to a log file.
//
// PARAMETERS:
//   - source: The input file the issues belong to.
//   - issues: The issues to write.
//   - filePath: The path to the output file.
//
// RETURNS:
//   - An error if writing fails.
func WriteErrorLog(source string, issues []*Issue, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "Source:    %s\n", source)
	fmt.Fprintf(w, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
	w.WriteString(FormatIssues(issues))

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write error log: %w", err)
	}
	return nil
}
