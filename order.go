package dpl

import "sort"

// placeOrderKey sorts cells the way the placer wants to visit them:
// largest area first, ties broken by distance from the core center
// (closer first), ties on that broken lexicographically by name so the
// order -- and therefore the placement -- is deterministic (§4.4).
type placeOrderKey struct {
	centerX, centerY int
}

func newPlaceOrderKey(core Rect) placeOrderKey {
	return placeOrderKey{
		centerX: (core.XMin + core.XMax) / 2,
		centerY: (core.YMin + core.YMax) / 2,
	}
}

// centerDist measures from the cell's initial location, not its current
// one: at ordering time a movable cell has not been placed yet, so c.X/
// c.Y are still zero (cell.go: "Valid only once Placed is true") and would
// collapse this tie-break to a constant for every such cell.
func (k placeOrderKey) centerDist(c *Cell) int {
	return absInt(c.InitX-k.centerX) + absInt(c.InitY-k.centerY)
}

// less reports whether c1 sorts before c2 under the order key.
func (k placeOrderKey) less(c1, c2 *Cell) bool {
	a1, a2 := c1.Area(), c2.Area()
	if a1 != a2 {
		return a1 > a2
	}
	d1, d2 := k.centerDist(c1), k.centerDist(c2)
	if d1 != d2 {
		return d1 < d2
	}
	return c1.Name < c2.Name
}

// sortByPlaceOrder sorts cells in place by the §4.4 order key.
func sortByPlaceOrder(cells []*Cell, core Rect) {
	key := newPlaceOrderKey(core)
	sort.SliceStable(cells, func(i, j int) bool { return key.less(cells[i], cells[j]) })
}
