package aggregate

import (
	"github.com/ginjaninja78/coverage-report/internal/csvparser"
	"github.com/ginjaninja78/coverage-report/internal/membership"
)

// =============================================================================
// AREA TREE
// =============================================================================

// AreaTree is circle -> zone -> ward -> Node.
type AreaTree struct {
	Circles *Ordered[*Ordered[*Ordered[*Node]]]

	// Records is the number of records folded in.
	Records int
}

// AggregateArea folds records into an area tree. Each record is classified
// by its ward; rows repeating the same circle/zone/ward merge by addition.
func AggregateArea(records []csvparser.Record, index membership.Index, opts Options) *AreaTree {
	opts = opts.normalized()
	f := opts.Fields

	tree := &AreaTree{Circles: newOrdered[*Ordered[*Ordered[*Node]]]()}
	for _, rec := range records {
		ward := rec.Get(f.Ward)
		zone := rec.Get(f.Zone)
		circle := index.Classify(ward, opts.Sentinel)

		zones := tree.Circles.getOrCreate(circle, newOrdered[*Ordered[*Node]])
		wards := zones.getOrCreate(zone, newOrdered[*Node])
		node := wards.getOrCreate(ward, func() *Node { return &Node{} })

		node.add(
			CoerceCount(rec.Get(f.Total)),
			CoerceCount(rec.Get(f.Covered)),
			CoerceCount(rec.Get(f.NotCovered)),
		)
		tree.Records++
	}
	return tree
}

// CircleNames returns circles in order of first appearance.
func (t *AreaTree) CircleNames() []string {
	return t.Circles.Keys()
}

// CircleTotals sums every ward leaf of a circle.
func (t *AreaTree) CircleTotals(circle string) Node {
	var sum Node
	zones, ok := t.Circles.Get(circle)
	if !ok {
		return sum
	}
	zones.Each(func(_ string, wards *Ordered[*Node]) {
		wards.Each(func(_ string, n *Node) {
			sum.merge(*n)
		})
	})
	return sum
}

// WardCount returns the number of zone/ward leaves of a circle.
func (t *AreaTree) WardCount(circle string) int {
	zones, ok := t.Circles.Get(circle)
	if !ok {
		return 0
	}
	count := 0
	zones.Each(func(_ string, wards *Ordered[*Node]) {
		count += wards.Len()
	})
	return count
}

// GrandTotal sums every leaf of the tree.
func (t *AreaTree) GrandTotal() Node {
	var sum Node
	for _, circle := range t.Circles.Keys() {
		sum.merge(t.CircleTotals(circle))
	}
	return sum
}

// Leaf returns the node at circle/zone/ward.
func (t *AreaTree) Leaf(circle, zone, ward string) (Node, bool) {
	zones, ok := t.Circles.Get(circle)
	if !ok {
		return Node{}, false
	}
	wards, ok := zones.Get(zone)
	if !ok {
		return Node{}, false
	}
	n, ok := wards.Get(ward)
	if !ok {
		return Node{}, false
	}
	return *n, true
}
