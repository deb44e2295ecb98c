package dpl

import "testing"

func testContext(t *testing.T, siteCount int, cfg Config) (*Context, *Master) {
	t.Helper()
	core := NewRect(0, 0, siteCount*200, 1000)
	rows := []RowSpec{
		{OriginX: 0, OriginY: 0, SiteWidth: 200, Height: 1000, SiteCount: siteCount, Orient: R0},
	}
	master := &Master{Name: "INV_X1", Width: 200, Height: 1000, Type: MasterStd}
	grid := NewGrid(core, rows, []*Master{master})
	ctx := newContext(cfg, grid, nil, nil, nil)
	return ctx, master
}

func TestDiamondSearchFindsInitialBin(t *testing.T) {
	cfg := DefaultConfig()
	ctx, m := testContext(t, 10, cfg)
	c := &Cell{Name: "c1", Master: m}
	pt := diamondSearch(ctx, c, 3, 0)
	if !pt.found() {
		t.Fatal("expected diamond search to find the empty initial bin")
	}
	if pt.X != 3 || pt.Y != 0 {
		t.Errorf("expected (3, 0), got (%d, %d)", pt.X, pt.Y)
	}
}

func TestDiamondSearchAvoidsOccupiedSite(t *testing.T) {
	cfg := DefaultConfig()
	ctx, m := testContext(t, 10, cfg)
	occupant := &Cell{Name: "occ", Master: m}
	ctx.Grid.Paint(occupant, 3, 0)

	c := &Cell{Name: "c1", Master: m}
	pt := diamondSearch(ctx, c, 3, 0)
	if !pt.found() {
		t.Fatal("expected diamond search to find a free site nearby")
	}
	if pt.X == 3 {
		t.Error("diamond search should not return the occupied site")
	}
}

func TestDiamondSearchRespectsDisplacementBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDisplacementX = 1
	cfg.MaxDisplacementY = 0
	ctx, m := testContext(t, 20, cfg)
	// Occupy every site within the budget window around x=10.
	for x := 9; x <= 11; x++ {
		occ := &Cell{Name: "occ", Master: m}
		ctx.Grid.Paint(occ, x, 0)
	}
	c := &Cell{Name: "c1", Master: m}
	pt := diamondSearch(ctx, c, 10, 0)
	if pt.found() {
		t.Error("expected diamond search to fail when every site within budget is occupied")
	}
}

func TestDiamondSearchFailsReturnsEmpty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDisplacementX = 0
	cfg.MaxDisplacementY = 0
	ctx, m := testContext(t, 5, cfg)
	occ := &Cell{Name: "occ", Master: m}
	ctx.Grid.Paint(occ, 2, 0)

	c := &Cell{Name: "c1", Master: m}
	pt := diamondSearch(ctx, c, 2, 0)
	if pt.found() {
		t.Error("expected no feasible point with a zero displacement budget on an occupied site")
	}
}
