package xlsxreport

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/coverage-report/internal/types"
)

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestSheetName(t *testing.T) {
	t.Parallel()

	used := map[string]bool{"summary": true}

	assert.Equal(t, "Aniket", SheetName("Aniket", used))
	assert.Equal(t, "Aniket (2)", SheetName("aniket", used))
	assert.Equal(t, "Summary (2)", SheetName("Summary", used))
	assert.Equal(t, "North_South _A_", SheetName("North/South [A]", used))
	assert.Equal(t, "Circle", SheetName("  ", used))

	long := strings.Repeat("x", 40)
	first := SheetName(long, used)
	second := SheetName(long, used)
	assert.Len(t, first, 31)
	assert.Len(t, second, 31)
	assert.True(t, strings.HasSuffix(second, " (2)"))
}

func TestWriteArea(t *testing.T) {
	t.Parallel()

	view := types.AreaView{
		Circles: []types.AreaCircle{
			{
				Summary: types.CircleSummary{Number: 1, Name: "Aniket", WardCount: 1, Counts: types.Counts{Total: 150, Covered: 110, NotCovered: 40}, Percentage: "73.33"},
				Wards: []types.WardRow{
					{Zone: "Z1", Ward: "09-Gandhi Nagar", Counts: types.Counts{Total: 150, Covered: 110, NotCovered: 40}, Percentage: "73.33"},
				},
			},
		},
		Overall: types.CircleSummary{Name: "Overall Total", WardCount: 1, Counts: types.Counts{Total: 150, Covered: 110, NotCovered: 40}, Percentage: "73.33"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteArea(&buf, view))

	f := openWorkbook(t, buf.Bytes())
	assert.Equal(t, []string{"Summary", "Aniket"}, f.GetSheetList())

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, []string{"Circle", "Total Wards", "Total Households", "Covered Households", "Percentage(%)"}, summary[0])
	assert.Equal(t, []string{"Aniket", "1", "150", "110", "73.33"}, summary[1])
	assert.Equal(t, "Overall Total", summary[2][0])

	circle, err := f.GetRows("Aniket")
	require.NoError(t, err)
	require.Len(t, circle, 3)
	assert.Equal(t, []string{"Z1", "09-Gandhi Nagar", "150", "110", "40", "73.33"}, circle[1])
	assert.Equal(t, "Circle Total", circle[2][0])
}

func TestWriteFleet(t *testing.T) {
	t.Parallel()

	view := types.FleetView{
		Circles: []types.FleetCircle{
			{
				Summary: types.CircleSummary{Number: 1, Name: "North", WardCount: 2, Counts: types.Counts{Total: 11, Covered: 6, NotCovered: 5}, Percentage: "54.55"},
				Vehicles: []types.VehicleRow{
					{Vehicle: "UP85-1", Counts: types.Counts{Total: 11, Covered: 6, NotCovered: 5}, Percentage: "54.55", Wards: []string{"W1", "W2"}, RouteNames: []string{"R1"}},
				},
				AbsentRoutes: []types.AbsentRoute{{RouteName: "R2", WardName: "W2", Counts: types.Counts{Total: 8, Covered: 2, NotCovered: 6}}},
			},
			{
				Summary: types.CircleSummary{Number: 2, Name: "Other Circles", Percentage: "0"},
			},
		},
		Overall: types.CircleSummary{Name: "Overall Total", Percentage: "54.55"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFleet(&buf, view))

	f := openWorkbook(t, buf.Bytes())
	assert.Equal(t, []string{"Summary", "North", "Other Circles"}, f.GetSheetList())

	rows, err := f.GetRows("North")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"UP85-1", "11", "6", "5", "54.55", "W1, W2", "R1"}, rows[1])
	assert.Equal(t, []string{"ABSENT VEHICLE ROUTE"}, rows[3])
	assert.Equal(t, []string{"R2", "W2", "8", "2", "6"}, rows[5])
}

func TestReadSurvey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "survey.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Zone", " Ward ", "Total", "Covered", "Not Covered"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Z1", "09-Gandhi Nagar", 100, 60, 40}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{"Z1", "08-Atas", 5}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	data, err := ReadSurvey(path, "")
	require.NoError(t, err)

	assert.Equal(t, path, data.SourceFile)
	assert.Equal(t, []string{"Zone", "Ward", "Total", "Covered", "Not Covered"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "100", data.Rows[0].Get("Total"))
	assert.Equal(t, "", data.Rows[1].Get("Covered"))
	assert.Equal(t, []int{2, 4}, data.LineNumbers)

	_, err = ReadSurvey(path, "Missing")
	assert.Error(t, err)

	_, err = ReadSurvey(filepath.Join(t.TempDir(), "none.xlsx"), "")
	assert.Error(t, err)
}
