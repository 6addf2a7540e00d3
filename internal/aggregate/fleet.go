package aggregate

import (
	"strings"

	"github.com/ginjaninja78/coverage-report/internal/csvparser"
	"github.com/ginjaninja78/coverage-report/internal/membership"
)

// =============================================================================
// FLEET TREE
// =============================================================================

// VehicleNode is a vehicle bucket: counters plus the distinct wards served
// and route names driven, in order of first appearance.
type VehicleNode struct {
	Node
	wards  *labelSet
	routes *labelSet
}

func newVehicleNode() *VehicleNode {
	return &VehicleNode{wards: newLabelSet(), routes: newLabelSet()}
}

// Wards returns the distinct wards served by the vehicle.
func (v *VehicleNode) Wards() []string {
	return v.wards.list()
}

// RouteNames returns the distinct routes driven by the vehicle.
func (v *VehicleNode) RouteNames() []string {
	return v.routes.list()
}

// UnassignedRoute is a record with a blank vehicle number.
type UnassignedRoute struct {
	RouteName string
	WardName  string
	Node
}

// FleetCircle holds the vehicles and absent-vehicle routes of one circle.
type FleetCircle struct {
	Vehicles   *Ordered[*VehicleNode]
	Unassigned []UnassignedRoute
}

// FleetTree is circle -> vehicle -> VehicleNode, with the absent-vehicle
// routes of each circle kept beside the vehicle map.
type FleetTree struct {
	Circles *Ordered[*FleetCircle]

	// Records is the number of records folded in.
	Records int
}

func newFleetCircle() *FleetCircle {
	return &FleetCircle{Vehicles: newOrdered[*VehicleNode]()}
}

// AggregateFleet folds records into a fleet tree.
//
// Records sharing a circle and vehicle number merge into one bucket whose
// ward and route sets are unioned. Records whose vehicle number is blank are
// appended to the circle's unassigned list and kept out of the vehicle map.
func AggregateFleet(records []csvparser.Record, index membership.Index, opts Options) *FleetTree {
	opts = opts.normalized()
	f := opts.Fields

	tree := &FleetTree{Circles: newOrdered[*FleetCircle]()}
	for _, rec := range records {
		ward := rec.Get(f.Ward)
		route := rec.Get(f.RouteName)
		vehicle := rec.Get(f.Vehicle)
		circle := tree.Circles.getOrCreate(index.Classify(ward, opts.Sentinel), newFleetCircle)

		total := CoerceCount(rec.Get(f.Total))
		covered := CoerceCount(rec.Get(f.Covered))
		notCovered := CoerceCount(rec.Get(f.NotCovered))
		tree.Records++

		if strings.TrimSpace(vehicle) == "" {
			u := UnassignedRoute{RouteName: route, WardName: ward}
			u.add(total, covered, notCovered)
			circle.Unassigned = append(circle.Unassigned, u)
			continue
		}

		node := circle.Vehicles.getOrCreate(vehicle, newVehicleNode)
		node.add(total, covered, notCovered)
		node.wards.add(ward)
		node.routes.add(route)
	}
	return tree
}

// CircleNames returns circles in order of first appearance, including
// circles that only have absent-vehicle routes.
func (t *FleetTree) CircleNames() []string {
	return t.Circles.Keys()
}

// CircleTotals sums the vehicle buckets of a circle. Absent-vehicle routes
// are not included; see UnassignedTotals.
func (t *FleetTree) CircleTotals(circle string) Node {
	var sum Node
	c, ok := t.Circles.Get(circle)
	if !ok {
		return sum
	}
	c.Vehicles.Each(func(_ string, v *VehicleNode) {
		sum.merge(v.Node)
	})
	return sum
}

// UnassignedTotals sums the absent-vehicle routes of a circle.
func (t *FleetTree) UnassignedTotals(circle string) Node {
	var sum Node
	c, ok := t.Circles.Get(circle)
	if !ok {
		return sum
	}
	for _, u := range c.Unassigned {
		sum.merge(u.Node)
	}
	return sum
}

// Unassigned returns the absent-vehicle routes of a circle.
func (t *FleetTree) Unassigned(circle string) []UnassignedRoute {
	c, ok := t.Circles.Get(circle)
	if !ok {
		return nil
	}
	return append([]UnassignedRoute(nil), c.Unassigned...)
}

// WardCount returns the distinct wards served by the vehicles of a circle.
func (t *FleetTree) WardCount(circle string) int {
	c, ok := t.Circles.Get(circle)
	if !ok {
		return 0
	}
	wards := newLabelSet()
	c.Vehicles.Each(func(_ string, v *VehicleNode) {
		for _, w := range v.wards.items {
			wards.add(w)
		}
	})
	return len(wards.items)
}

// GrandTotal sums every vehicle bucket of the tree.
func (t *FleetTree) GrandTotal() Node {
	var sum Node
	for _, circle := range t.Circles.Keys() {
		sum.merge(t.CircleTotals(circle))
	}
	return sum
}

// Vehicle returns the bucket of a vehicle in a circle.
func (t *FleetTree) Vehicle(circle, vehicle string) (*VehicleNode, bool) {
	c, ok := t.Circles.Get(circle)
	if !ok {
		return nil, false
	}
	return c.Vehicles.Get(vehicle)
}
