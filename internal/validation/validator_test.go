package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/coverage-report/internal/aggregate"
	"github.com/ginjaninja78/coverage-report/internal/csvparser"
	"github.com/ginjaninja78/coverage-report/internal/membership"
	"github.com/ginjaninja78/coverage-report/internal/types"
)

func rules(issues []*Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Rule)
	}
	return out
}

func TestValidate_CleanAreaData(t *testing.T) {
	t.Parallel()

	data := csvparser.Parse("Zone,Ward,Total,Covered,Not Covered\nZ1,08-Atas,10,4,6\n")
	result := NewValidator(types.AreaReport, aggregate.Fields{}, DefaultOptions()).Validate(data)

	assert.True(t, result.Clean())
	assert.Empty(t, result.Issues)
	assert.Equal(t, 1, result.RowsChecked)
}

func TestValidate_MissingHeaders(t *testing.T) {
	t.Parallel()

	data := csvparser.Parse("Zone,Ward,Total\nZ1,08-Atas,10\n")
	result := NewValidator(types.AreaReport, aggregate.Fields{}, DefaultOptions()).Validate(data)

	require.Len(t, result.Issues, 2)
	assert.Equal(t, "Covered", result.Issues[0].Field)
	assert.Equal(t, "Not Covered", result.Issues[1].Field)
	assert.Equal(t, []string{RuleRequiredHeader, RuleRequiredHeader}, rules(result.Issues))
	assert.Equal(t, 2, result.WarningCount)
}

func TestValidate_NonNumericAndBalance(t *testing.T) {
	t.Parallel()

	data := csvparser.Parse("Zone,Ward,Total,Covered,Not Covered\n" +
		"Z1,08-Atas,12abc,4,6\n" +
		"\n" +
		"Z1,13-Sunrakh,10,4,5\n")
	result := NewValidator(types.AreaReport, aggregate.Fields{}, DefaultOptions()).Validate(data)

	require.Len(t, result.Issues, 2)

	numeric := result.Issues[0]
	assert.Equal(t, RuleNumeric, numeric.Rule)
	assert.Equal(t, "12abc", numeric.Value)
	assert.Equal(t, 2, numeric.LineNumber)
	assert.Contains(t, numeric.Message, "counted as 12")

	balance := result.Issues[1]
	assert.Equal(t, RuleBalance, balance.Rule)
	assert.Equal(t, SeverityInfo, balance.Severity)
	assert.Equal(t, 4, balance.LineNumber)

	assert.Equal(t, 1, result.WarningCount)
}

func TestValidate_FleetMissingVehicle(t *testing.T) {
	t.Parallel()

	data := csvparser.Parse("Vehicle Number,Ward,Route Name,Total,Covered,Not Covered\n" +
		",W1,R7,3,1,2\n" +
		"V1,W1,R1,3,3,0\n")
	result := NewValidator(types.FleetReport, aggregate.Fields{}, DefaultOptions()).Validate(data)

	require.Len(t, result.Issues, 1)
	assert.Equal(t, RuleMissingVehicle, result.Issues[0].Rule)
	assert.Equal(t, "R7", result.Issues[0].Value)
	assert.True(t, result.Clean())
}

func TestValidate_IssueCap(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("Zone,Ward,Total,Covered,Not Covered\n")
	for i := 0; i < 10; i++ {
		b.WriteString("Z1,08-Atas,x,0,0\n")
	}

	opts := Options{MaxIssuesPerRule: 3}
	result := NewValidator(types.AreaReport, aggregate.Fields{}, opts).Validate(csvparser.Parse(b.String()))

	assert.Len(t, result.Issues, 3)
	assert.Equal(t, 10, result.RowsChecked)
}

func TestValidateMembership(t *testing.T) {
	t.Parallel()

	table := membership.ParseWardList("A Wards:\n- w1\nB Wards:\n- w1\n- w2\n")

	first := ValidateMembership(table, membership.FirstWins)
	require.Len(t, first.Issues, 1)
	assert.Equal(t, "w1", first.Issues[0].Field)
	assert.Equal(t, "A, B", first.Issues[0].Value)
	assert.Contains(t, first.Issues[0].Message, "assigns it to A")

	last := ValidateMembership(table, membership.LastWins)
	assert.Contains(t, last.Issues[0].Message, "assigns it to B")

	merged := (&Result{}).Merge(first, nil, last)
	assert.Len(t, merged.Issues, 2)
	assert.Equal(t, 2, merged.WarningCount)
}

func TestIssueError(t *testing.T) {
	t.Parallel()

	issue := &Issue{Severity: SeverityWarning, Field: "Total", Value: "x", Message: "bad", LineNumber: 3}
	assert.Equal(t, "[WARNING] Line 3, Field 'Total': bad (value: 'x')", issue.Error())

	var err error = issue
	assert.EqualError(t, err, issue.Error())
}

func TestWriteErrorLog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "errors.log")
	issues := []*Issue{{Severity: SeverityWarning, Rule: RuleNumeric, Field: "Total", Message: "bad"}}

	require.NoError(t, WriteErrorLog("survey.csv", issues, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Source:    survey.csv")
	assert.Contains(t, string(content), "1 issue(s)")
	assert.Contains(t, string(content), "1. [WARNING] Field 'Total': bad")

	assert.Equal(t, "No data quality issues.", FormatIssues(nil))
}
