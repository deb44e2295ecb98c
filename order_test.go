package dpl

import "testing"

func TestSortByPlaceOrderBreaksTiesByInitialDistanceThenName(t *testing.T) {
	core := NewRect(0, 0, 2000, 1000) // center (1000, 500)
	m := &Master{Name: "M1", Width: 200, Height: 1000, Type: MasterStd}

	// All three cells have equal area (same master) and are unplaced --
	// c1.X/c1.Y are still zero -- so the tie-break must come from InitX/
	// InitY, not X/Y, or every cell ties on distance 0 and the order
	// collapses to name order alone.
	far := &Cell{Name: "far", Master: m, InitX: 0, InitY: 0}       // dist 1500
	near := &Cell{Name: "near", Master: m, InitX: 900, InitY: 500} // dist 100
	mid := &Cell{Name: "mid", Master: m, InitX: 1700, InitY: 500}  // dist 700

	cells := []*Cell{far, near, mid}
	sortByPlaceOrder(cells, core)

	want := []string{"near", "mid", "far"}
	for i, c := range cells {
		if c.Name != want[i] {
			t.Fatalf("position %d: got %s, want %s (order: %v)", i, c.Name, want[i], names(cells))
		}
	}
}

func TestSortByPlaceOrderLargerAreaFirst(t *testing.T) {
	core := NewRect(0, 0, 2000, 1000)
	small := &Master{Name: "SMALL", Width: 200, Height: 1000, Type: MasterStd}
	big := &Master{Name: "BIG", Width: 800, Height: 1000, Type: MasterStd}

	c1 := &Cell{Name: "c1", Master: small, InitX: 0, InitY: 0}
	c2 := &Cell{Name: "c2", Master: big, InitX: 1900, InitY: 900}

	cells := []*Cell{c1, c2}
	sortByPlaceOrder(cells, core)

	if cells[0].Name != "c2" {
		t.Fatalf("expected the larger-area cell first regardless of distance, got order %v", names(cells))
	}
}

func TestSortByPlaceOrderNameBreaksFinalTie(t *testing.T) {
	core := NewRect(0, 0, 2000, 1000)
	m := &Master{Name: "M1", Width: 200, Height: 1000, Type: MasterStd}

	// Same area, same distance from center (both 500 on opposite sides) --
	// only the name tie-break can order these deterministically.
	b := &Cell{Name: "b", Master: m, InitX: 1500, InitY: 500}
	a := &Cell{Name: "a", Master: m, InitX: 500, InitY: 500}

	cells := []*Cell{b, a}
	sortByPlaceOrder(cells, core)

	if cells[0].Name != "a" || cells[1].Name != "b" {
		t.Fatalf("expected lexicographic name tie-break, got order %v", names(cells))
	}
}

func names(cells []*Cell) []string {
	ns := make([]string, len(cells))
	for i, c := range cells {
		ns[i] = c.Name
	}
	return ns
}
