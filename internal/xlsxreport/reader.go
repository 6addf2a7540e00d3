package xlsxreport

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/coverage-report/internal/csvparser"
)

// ReadSurvey reads survey rows from a workbook. The first row of the sheet
// is the header and the same blank-row and trimming rules as CSV input
// apply.
//
// PARAMETERS:
//   - path: The .xlsx file.
//   - sheet: The sheet to read. Empty means the first sheet.
//
// RETURNS:
//   - The parsed data, with SourceFile set to path.
//   - An error if the workbook cannot be opened or the sheet does not exist.
func ReadSurvey(path, sheet string) (*csvparser.CSVData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", sheet, err)
	}

	data := csvparser.FromRows(rows)
	data.SourceFile = path
	return data, nil
}
