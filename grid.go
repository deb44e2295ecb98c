package dpl

import "sort"

// Pixel is one grid cell at (row, site) on a particular layer.
type Pixel struct {
	// Cell is the occupant, or nil if empty.
	Cell *Cell
	// Valid is true iff a row exists here for this layer's row height.
	Valid bool
	// Group restricts occupancy to cells of that group; nil means any
	// groupless cell may land here.
	Group *Group
	// Hopeless pixels are where no diamond search should even start --
	// conservatively, anywhere under a macro block.
	Hopeless bool
}

// layer is one (row_height, site_width) plane of the grid. Cells are always
// painted onto the layer whose row height matches their own height.
type layer struct {
	rowHeight int
	siteWidth int
	siteCount int
	rowCount  int
	pixels    [][]Pixel // [row][site]
}

func newLayer(rowHeight, siteWidth, siteCount, rowCount int) *layer {
	pixels := make([][]Pixel, rowCount)
	for r := range pixels {
		pixels[r] = make([]Pixel, siteCount)
	}
	return &layer{
		rowHeight: rowHeight,
		siteWidth: siteWidth,
		siteCount: siteCount,
		rowCount:  rowCount,
		pixels:    pixels,
	}
}

func (l *layer) pixel(x, y int) *Pixel {
	if l == nil || x < 0 || y < 0 || x >= l.siteCount || y >= l.rowCount {
		return nil
	}
	return &l.pixels[y][x]
}

// Grid is the 3-D (layer, row, site) occupancy array described in §4.1.
// One layer exists per distinct row height among the rows the grid was
// initialized with.
type Grid struct {
	core Rect
	// baseRowHeight is the shortest row height, used as the reference for
	// scaling the vertical displacement budget to taller cells' grids.
	baseRowHeight int
	layers        map[int]*layer
	masters       []*Master
}

// NewGrid builds the per-row-height layers described by rows and marks
// pixel validity from each row's actual column span (rows with gaps --
// e.g. split around a macro -- simply contribute fewer valid columns).
// masters is the design's full master library (§4.1's init(core, rows,
// sites, masters) contract); it is retained for lookup by callers (see
// Masters). The grid itself does not read it: SetFixedGridCells finds the
// layers a fixed cell overlaps from the layers built here.
func NewGrid(core Rect, rows []RowSpec, masters []*Master) *Grid {
	g := &Grid{core: core, layers: map[int]*layer{}, masters: masters}
	if len(rows) == 0 {
		return g
	}

	heights := map[int]RowSpec{}
	for _, rs := range rows {
		if _, ok := heights[rs.Height]; !ok {
			heights[rs.Height] = rs
		}
		if rs.Height < g.baseRowHeight || g.baseRowHeight == 0 {
			g.baseRowHeight = rs.Height
		}
	}

	for h, sample := range heights {
		siteWidth := sample.SiteWidth
		rowCount := divFloor(core.Dy(), h)
		siteCount := divFloor(core.Dx(), siteWidth)
		l := newLayer(h, siteWidth, siteCount, rowCount)
		g.layers[h] = l
	}

	for _, rs := range rows {
		l := g.layers[rs.Height]
		r := divFloor(rs.OriginY-core.YMin, rs.Height)
		colStart := divFloor(rs.OriginX-core.XMin, rs.SiteWidth)
		if r < 0 || r >= l.rowCount {
			continue
		}
		for s := colStart; s < colStart+rs.SiteCount; s++ {
			if px := l.pixel(s, r); px != nil {
				px.Valid = true
			}
		}
	}
	return g
}

// Layer returns the layer for the given row height, or nil if no row of
// that height was supplied to NewGrid.
func (g *Grid) Layer(rowHeight int) *layer { return g.layers[rowHeight] }

// layerFor returns the layer a cell must be painted/erased on.
func (g *Grid) layerFor(c *Cell) *layer { return g.layers[c.Height()] }

// SiteWidth returns the site width of the layer matching the cell's row
// height.
func (g *Grid) SiteWidth(c *Cell) int {
	if l := g.layerFor(c); l != nil {
		return l.siteWidth
	}
	return 0
}

// RowHeight returns the cell's own row height (it is always painted on the
// layer keyed by exactly this height).
func (g *Grid) RowHeight(c *Cell) int { return c.Height() }

// BaseRowHeight is the shortest row height among the grid's layers, used as
// the scaling reference for the vertical displacement budget (§4.2, §9).
func (g *Grid) BaseRowHeight() int { return g.baseRowHeight }

// Core returns the core rectangle the grid was built for.
func (g *Grid) Core() Rect { return g.core }

// Masters returns the master library the grid was built with.
func (g *Grid) Masters() []*Master { return g.masters }

// Pixel returns the pixel at (x, y) on the layer for rowHeight, or nil if
// out of bounds or no such layer exists.
func (g *Grid) Pixel(rowHeight, x, y int) *Pixel {
	return g.layers[rowHeight].pixel(x, y)
}

// GridPaddedWidth returns the number of sites the cell occupies including
// left/right padding (padding applies only to MasterStd cells).
func GridPaddedWidth(c *Cell, siteWidth int) int {
	sites := divCeil(c.Width(), siteWidth)
	if c.Master.Type == MasterStd {
		sites += c.PadLeft + c.PadRight
	}
	return sites
}

// GridHeight returns the number of rows the cell occupies on its own
// layer -- always 1, since a cell is painted on the layer keyed by its own
// height. Kept as a named function (rather than inlining the constant 1)
// to mirror the original's gridHeight and because a future layer scheme
// with sub-row granularity would change this.
func GridHeight(_ *Cell) int { return 1 }

// GridX converts a design-unit x coordinate to a site index.
func GridX(x, siteWidth int) int { return divFloor(x, siteWidth) }

// GridY converts a design-unit y coordinate to a row index.
func GridY(y, rowHeight int) int { return divFloor(y, rowHeight) }

// CheckEmpty reports whether every pixel in the cell's footprint at grid
// point (x, y) on its own layer is valid, empty, and group-compatible
// (G3). When disallowOneSiteGaps is set, placements that would leave a
// single empty site abutting another cell at one of the footprint's four
// corners are also rejected.
func (g *Grid) CheckEmpty(c *Cell, x, y int, disallowOneSiteGaps bool) bool {
	l := g.layerFor(c)
	if l == nil {
		return false
	}
	siteWidth := l.siteWidth
	xEnd := x + GridPaddedWidth(c, siteWidth)
	yEnd := y + GridHeight(c)
	if xEnd > l.siteCount {
		return false
	}

	for y1 := y; y1 < yEnd; y1++ {
		for x1 := x; x1 < xEnd; x1++ {
			px := l.pixel(x1, y1)
			if px == nil || px.Cell != nil || !px.Valid {
				return false
			}
			if c.InGroup() {
				if px.Group == nil || px.Group.Name != c.GroupName {
					return false
				}
			} else if px.Group != nil {
				return false
			}
		}
	}
	if disallowOneSiteGaps && !checkNoOneSiteGap(l, x, y, xEnd, yEnd) {
		return false
	}
	return true
}

// checkNoOneSiteGap rejects a placement that would leave a single empty
// site diagonally outside one of the footprint's four corners, abutting an
// already-placed cell one site further out. It inspects the row immediately
// above and the row immediately below the footprint (not the footprint's
// own rows), exactly as the original's checkPixels does with its four
// corner checks.
func checkNoOneSiteGap(l *layer, x, y, xEnd, yEnd int) bool {
	xBegin := maxInt(0, x-1)
	yBegin := maxInt(0, y-1)
	xFinish := minInt(xEnd, l.siteCount-1)
	yFinish := minInt(yEnd, l.rowCount-1)

	isAbutted := func(x, y int) bool {
		px := l.pixel(x, y)
		return px == nil || px.Cell != nil
	}
	cellAtSite := func(x, y int) bool {
		px := l.pixel(x, y)
		return px != nil && px.Cell != nil
	}

	if !isAbutted(xBegin, yBegin) && cellAtSite(xBegin-1, yBegin) {
		return false
	}
	if !isAbutted(xBegin, yFinish) && cellAtSite(xBegin-1, yFinish) {
		return false
	}
	if !isAbutted(xFinish, yBegin) && cellAtSite(xFinish+1, yBegin) {
		return false
	}
	if !isAbutted(xFinish, yFinish) && cellAtSite(xFinish+1, yFinish) {
		return false
	}
	return true
}

// Paint marks the cell's footprint occupied at grid point (x, y) on its
// own layer, updates the cell's current location, and sets Placed. It
// panics (InvariantViolation) if any pixel in the footprint is already
// occupied.
func (g *Grid) Paint(c *Cell, x, y int) {
	l := g.layerFor(c)
	siteWidth := l.siteWidth
	xEnd := x + GridPaddedWidth(c, siteWidth)
	yEnd := y + GridHeight(c)

	for y1 := y; y1 < yEnd; y1++ {
		for x1 := x; x1 < xEnd; x1++ {
			px := l.pixel(x1, y1)
			if px == nil {
				panic(InvariantViolation{Code: CodePaintOutOfBounds,
					Message: "paint out of grid bounds for " + c.Name})
			}
			if px.Cell != nil && px.Cell != c {
				panic(InvariantViolation{Code: CodePaintOccupied,
					Message: "paint onto non-empty footprint for " + c.Name})
			}
			px.Cell = c
		}
	}
	c.X = x * siteWidth
	c.Y = y * l.rowHeight
	c.Placed = true
}

// Erase clears the cell's footprint at its current location and unsets
// Placed. It panics (InvariantViolation) if the cell is not currently
// placed.
func (g *Grid) Erase(c *Cell) {
	if !c.Placed {
		panic(InvariantViolation{Code: CodeEraseUnplaced,
			Message: "erase of unplaced cell " + c.Name})
	}
	l := g.layerFor(c)
	siteWidth := l.siteWidth
	x := GridX(c.X, siteWidth)
	y := GridY(c.Y, l.rowHeight)
	xEnd := x + GridPaddedWidth(c, siteWidth)
	yEnd := y + GridHeight(c)

	for y1 := y; y1 < yEnd; y1++ {
		for x1 := x; x1 < xEnd; x1++ {
			if px := l.pixel(x1, y1); px != nil && px.Cell == c {
				px.Cell = nil
			}
		}
	}
	c.Placed = false
}

// SetFixedGridCells paints every fixed cell onto the grid and marks fixed
// macro blocks' footprints as hopeless, so std cells searching near them
// are pushed off rather than merely finding the pixels occupied. A fixed
// cell is marked on every layer its bbox overlaps, not only the layer
// keyed by its own height -- a tall macro block (e.g. height 2000 sitting
// across two height-1000 rows) has no layer of its own and must still be
// painted, and marked hopeless, on every single-row-height layer it
// physically covers (§4.1: "covered by a macro block on any layer").
func (g *Grid) SetFixedGridCells(cells []*Cell) {
	heights := make([]int, 0, len(g.layers))
	for h := range g.layers {
		heights = append(heights, h)
	}
	sort.Ints(heights)

	for _, c := range cells {
		if !c.Fixed {
			continue
		}
		for _, h := range heights {
			l := g.layers[h]
			var colStart, colEnd, rowStart, rowEnd int
			if h == c.Height() {
				colStart = GridX(c.X, l.siteWidth)
				colEnd = colStart + GridPaddedWidth(c, l.siteWidth)
				rowStart = GridY(c.Y, h)
				rowEnd = rowStart + GridHeight(c)
			} else {
				colStart = divFloor(c.X-g.core.XMin, l.siteWidth)
				colEnd = divCeil(c.X+c.Width()-g.core.XMin, l.siteWidth)
				rowStart = divFloor(c.Y-g.core.YMin, h)
				rowEnd = divCeil(c.Y+c.Height()-g.core.YMin, h)
			}
			for y1 := maxInt(0, rowStart); y1 < minInt(l.rowCount, rowEnd); y1++ {
				for x1 := maxInt(0, colStart); x1 < minInt(l.siteCount, colEnd); x1++ {
					if px := l.pixel(x1, y1); px != nil {
						px.Cell = c
						if c.isBlock() {
							px.Hopeless = true
						}
					}
				}
			}
		}
	}
}

// AssignGroupRegions marks, on every layer, the pixels that lie entirely
// within one of a group's regions as belonging to that group. A pixel only
// partially covered by a region is invalidated instead of assigned, so
// group membership (G3) and core/region containment stay exact without
// tracking fractional utilization.
func (g *Grid) AssignGroupRegions(groups []*Group) {
	heights := make([]int, 0, len(g.layers))
	for h := range g.layers {
		heights = append(heights, h)
	}
	sort.Ints(heights)

	for _, h := range heights {
		l := g.layers[h]
		for _, group := range groups {
			for _, rect := range group.Regions {
				rowStart := divCeil(rect.YMin-g.core.YMin, h)
				rowEnd := divFloor(rect.YMax-g.core.YMin, h)
				colStart := divCeil(rect.XMin-g.core.XMin, l.siteWidth)
				colEnd := divFloor(rect.XMax-g.core.XMin, l.siteWidth)
				outerRowStart := divFloor(rect.YMin-g.core.YMin, h)
				outerRowEnd := divCeil(rect.YMax-g.core.YMin, h)
				outerColStart := divFloor(rect.XMin-g.core.XMin, l.siteWidth)
				outerColEnd := divCeil(rect.XMax-g.core.XMin, l.siteWidth)

				for r := maxInt(0, outerRowStart); r < minInt(l.rowCount, outerRowEnd); r++ {
					for s := maxInt(0, outerColStart); s < minInt(l.siteCount, outerColEnd); s++ {
						px := l.pixel(s, r)
						if px == nil {
							continue
						}
						if r >= rowStart && r < rowEnd && s >= colStart && s < colEnd {
							px.Group = group
						} else {
							px.Valid = false
						}
					}
				}
			}
		}
	}
}
