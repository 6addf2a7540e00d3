package aggregate

import (
	"github.com/ginjaninja78/coverage-report/internal/types"
)

// =============================================================================
// REPORT VIEWS
// =============================================================================
// Views flatten a tree into rows for the renderers. They are rebuilt from the
// leaves every time, never cached.

func summaryOf(number int, name string, wardCount int, n Node) types.CircleSummary {
	return types.CircleSummary{
		Number:     number,
		Name:       name,
		WardCount:  wardCount,
		Counts:     n.Counts(),
		Percentage: FormatPercentage(n.Covered, n.Total),
	}
}

// View flattens the area tree. Title, Source and GeneratedAt are left for
// the caller.
func (t *AreaTree) View() types.AreaView {
	view := types.AreaView{Circles: []types.AreaCircle{}}

	var overall Node
	overallWards := 0
	for i, name := range t.Circles.Keys() {
		zones, _ := t.Circles.Get(name)

		circle := types.AreaCircle{Wards: []types.WardRow{}}
		zones.Each(func(zone string, wards *Ordered[*Node]) {
			wards.Each(func(ward string, n *Node) {
				circle.Wards = append(circle.Wards, types.WardRow{
					Zone:       zone,
					Ward:       ward,
					Counts:     n.Counts(),
					Percentage: FormatPercentage(n.Covered, n.Total),
				})
			})
		})

		totals := t.CircleTotals(name)
		wardCount := t.WardCount(name)
		circle.Summary = summaryOf(i+1, name, wardCount, totals)
		view.Circles = append(view.Circles, circle)

		overall.merge(totals)
		overallWards += wardCount
	}

	view.Overall = summaryOf(0, "Overall Total", overallWards, overall)
	return view
}

// View flattens the fleet tree.
func (t *FleetTree) View() types.FleetView {
	view := types.FleetView{Circles: []types.FleetCircle{}}

	var overall Node
	overallWards := 0
	for i, name := range t.Circles.Keys() {
		c, _ := t.Circles.Get(name)

		circle := types.FleetCircle{
			Vehicles:     []types.VehicleRow{},
			AbsentRoutes: []types.AbsentRoute{},
		}
		c.Vehicles.Each(func(vehicle string, v *VehicleNode) {
			circle.Vehicles = append(circle.Vehicles, types.VehicleRow{
				Vehicle:    vehicle,
				Counts:     v.Counts(),
				Percentage: FormatPercentage(v.Covered, v.Total),
				Wards:      v.Wards(),
				RouteNames: v.RouteNames(),
			})
		})
		for _, u := range c.Unassigned {
			circle.AbsentRoutes = append(circle.AbsentRoutes, types.AbsentRoute{
				RouteName: u.RouteName,
				WardName:  u.WardName,
				Counts:    u.Counts(),
			})
		}

		totals := t.CircleTotals(name)
		wardCount := t.WardCount(name)
		circle.Summary = summaryOf(i+1, name, wardCount, totals)
		view.Circles = append(view.Circles, circle)

		overall.merge(totals)
		overallWards += wardCount
	}

	view.Overall = summaryOf(0, "Overall Total", overallWards, overall)
	return view
}
