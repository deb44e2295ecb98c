package dpl

import "math/rand"

// Context is the state of one legalization call: the grid, the cells and
// groups it operates on, configuration, and an observer. It is built fresh
// by Legalize and discarded at the end of the call -- per the Design
// Notes, "encapsulate as a Placement Context value constructed per
// legalization call; avoid singletons."
type Context struct {
	Config   Config
	Grid     *Grid
	Cells    []*Cell
	Groups   []*Group
	Observer Observer

	haveMultiRow bool
	failures     []PlacementFailure
	rng          *rand.Rand
}

func newContext(cfg Config, grid *Grid, cells []*Cell, groups []*Group, obs Observer) *Context {
	ctx := &Context{
		Config:   cfg,
		Grid:     grid,
		Cells:    cells,
		Groups:   groups,
		Observer: observerOrNoop(obs),
		rng:      rand.New(rand.NewSource(cfg.RandSeed)), //nolint:gosec // deterministic legalization, not cryptographic
	}
	base := grid.BaseRowHeight()
	for _, c := range cells {
		if c.isMultiRow(base) {
			ctx.haveMultiRow = true
			break
		}
	}
	return ctx
}

func (ctx *Context) fail(cellName, reason string) {
	ctx.failures = append(ctx.failures, PlacementFailure{CellName: cellName, Reason: reason})
}

func (ctx *Context) groupByName(name string) *Group {
	for _, g := range ctx.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// cellFitsInCore reports whether cell's padded footprint fits within the
// grid's dimensions for its row height (§7 ConfigurationError condition).
func (ctx *Context) cellFitsInCore(c *Cell) bool {
	l := ctx.Grid.layerFor(c)
	if l == nil {
		return false
	}
	return GridPaddedWidth(c, l.siteWidth) <= l.siteCount && GridHeight(c) <= l.rowCount
}

func (ctx *Context) fitError(c *Cell) error {
	l := ctx.Grid.layerFor(c)
	if l == nil {
		return &ConfigurationError{Code: CodeNoLayer,
			Message: "no row of height " + c.Master.Name + " for instance " + c.Name}
	}
	if GridPaddedWidth(c, l.siteWidth) > l.siteCount {
		return &ConfigurationError{Code: CodeCellTooWide,
			Message: "instance " + c.Name + " does not fit inside the row core area"}
	}
	return &ConfigurationError{Code: CodeCellTooTall,
		Message: "instance " + c.Name + " does not fit inside the row core area"}
}

// place is the global placer pass (§4.4): order key, two-phase (multi-row
// then single-row) placement via mapMove, falling back to shiftMove.
func (ctx *Context) place() error {
	var cells []*Cell
	for _, c := range ctx.Cells {
		if c.Fixed || c.InGroup() || c.Placed || c.Master.Type == MasterIgnored {
			continue
		}
		cells = append(cells, c)
	}
	for _, c := range cells {
		if !ctx.cellFitsInCore(c) {
			return ctx.fitError(c)
		}
	}

	sortByPlaceOrder(cells, ctx.Grid.Core())

	base := ctx.Grid.BaseRowHeight()
	if ctx.haveMultiRow {
		for _, c := range cells {
			if c.isMultiRow(base) {
				ctx.placeOrShift(c)
			}
		}
	}
	for _, c := range cells {
		if !c.isMultiRow(base) {
			ctx.placeOrShift(c)
		}
	}
	return nil
}

func (ctx *Context) placeOrShift(c *Cell) {
	if !ctx.mapMove(c) {
		ctx.shiftMove(c)
	}
}

// mapMove resolves cell's own legal starting point and attempts a diamond
// search from there.
func (ctx *Context) mapMove(c *Cell) bool {
	gx, gy := legalGridPtInit(ctx, c)
	return ctx.mapMoveAt(c, gx, gy)
}

// mapMoveAt attempts a diamond search from the given grid point and paints
// the cell on success.
func (ctx *Context) mapMoveAt(c *Cell, gx, gy int) bool {
	pt := diamondSearch(ctx, c, gx, gy)
	if !pt.found() {
		return false
	}
	from := c.Pos()
	ctx.Grid.Paint(c, pt.X, pt.Y)
	c.Orient = RowOrientation(pt.Y, ctx.Config.OrientParityOffset)
	ctx.Observer.PlaceInstance(c, from, c.Pos())
	return true
}

// shiftMove is the fallback invoked when diamond search fails for cell
// (§4.5): evict every non-fixed, group-compatible neighbor within a
// boundary_margin-scaled region, retry the target, then re-place every
// evicted cell.
//
// Re-placement failures -- including the target's own, and any evicted
// neighbor's -- are all recorded against the target cell's name. This
// mirrors the original's attribution exactly (Design Notes §9): it looks
// like a bug (the neighbor that actually failed is not the one named) but
// is preserved for parity with legacy output.
func (ctx *Context) shiftMove(c *Cell) {
	grid := ctx.Grid
	l := grid.layerFor(c)
	if l == nil {
		ctx.fail(c.Name, "no layer for row height")
		return
	}
	gx, gy := legalGridPtInit(ctx, c)

	margin := ctx.Config.ShiftMoveMargin
	marginWidth := GridPaddedWidth(c, l.siteWidth) * margin

	seen := map[*Cell]bool{}
	var region []*Cell
	for x := gx - marginWidth; x < gx+marginWidth; x++ {
		for y := gy - margin; y < gy+margin; y++ {
			px := l.pixel(x, y)
			if px == nil || px.Cell == nil || px.Cell.Fixed || seen[px.Cell] {
				continue
			}
			seen[px.Cell] = true
			region = append(region, px.Cell)
		}
	}

	var evicted []*Cell
	for _, other := range region {
		if other.InGroup() == c.InGroup() {
			grid.Erase(other)
			evicted = append(evicted, other)
		}
	}
	ctx.Observer.ShiftMove(c, len(evicted))

	if !ctx.mapMove(c) {
		ctx.fail(c.Name, "shift move could not place target cell")
	}

	for _, other := range evicted {
		if !ctx.mapMove(other) {
			ctx.fail(c.Name, "shift move could not re-place evicted cell "+other.Name)
		}
	}
}
