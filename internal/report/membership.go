package report

import (
	"fmt"

	"github.com/ginjaninja78/coverage-report/internal/config"
	"github.com/ginjaninja78/coverage-report/internal/membership"
	"github.com/ginjaninja78/coverage-report/internal/types"
)

// LoadMembership returns the circle table of a report kind.
//
// The area report uses the built-in circles unless a ward list is given.
// The fleet report always reads its ward list; a missing file is an error
// because every record would otherwise land in the sentinel group.
//
// PARAMETERS:
//   - kind: The report kind.
//   - cfg: The main configuration.
//   - override: A ward list path from the command line. Empty uses cfg.
func LoadMembership(kind types.ReportKind, cfg *config.MainConfig, override string) (*membership.Table, error) {
	path := override
	if path == "" {
		path = cfg.Area.WardList
		if kind == types.FleetReport {
			path = cfg.Fleet.WardList
		}
	}

	if path == "" {
		return membership.FromLists(membership.DefaultCircles()), nil
	}

	table, err := membership.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load ward list: %w", err)
	}
	if table.Len() == 0 {
		return nil, fmt.Errorf("ward list %s defines no circles", path)
	}
	return table, nil
}
