package dpl

import (
	"fmt"
	"sort"
)

// placeGroups runs the full group-placement pipeline (§4.6): assign each
// cell to the region it starts in, pre-place and hold cells that start
// outside their group or inside another group's region, bulk-place, fall back
// to brick packing on failure, then refine/random-swap for up to
// Config.RefinePasses rounds per group.
func (ctx *Context) placeGroups() error {
	ctx.assignCellRegions()

	for _, g := range ctx.Groups {
		if g.Util > 1.0 {
			return &ConfigurationError{Code: CodeGroupOverUtilized,
				Message: fmt.Sprintf("group %s utilization %.3f exceeds 1.0", g.Name, g.Util)}
		}
	}

	ctx.prePlaceGroups()
	ctx.prePlace()

	if err := ctx.placeGroups2(); err != nil {
		return err
	}

	for _, g := range ctx.Groups {
		for pass := 0; pass < ctx.Config.RefinePasses; pass++ {
			refineCount := ctx.groupRefine(g)
			swapCount := ctx.randomSwap(g)
			if refineCount < ctx.Config.RefineEarlyExit || swapCount < ctx.Config.AnnealEarlyExit {
				break
			}
		}
	}
	return nil
}

// assignCellRegions recomputes each group's utilization from the grid's
// actual group-tagged valid area (not merely trusted from the input), and
// assigns each cell to the index of the region it initially lies inside,
// defaulting to region 0 for a cell inside none.
func (ctx *Context) assignCellRegions() {
	for _, g := range ctx.Groups {
		if len(g.Cells) > 0 {
			if l := ctx.Grid.layerFor(g.Cells[0]); l != nil {
				siteArea := int64(l.rowHeight) * int64(l.siteWidth)
				var totalSiteArea int64
				for x := 0; x < l.siteCount; x++ {
					for y := 0; y < l.rowCount; y++ {
						px := l.pixel(x, y)
						if px.Valid && px.Group == g {
							totalSiteArea += siteArea
						}
					}
				}
				if totalSiteArea > 0 {
					var cellArea int64
					for _, c := range g.Cells {
						cellArea += c.Area()
					}
					g.Util = float64(cellArea) / float64(totalSiteArea)
				}
			}
		}

		for _, c := range g.Cells {
			c.Region = -1
			for i, rect := range g.Regions {
				if isInsideRect(c, rect) {
					c.Region = i
					break
				}
			}
			if c.Region == -1 && len(g.Regions) > 0 {
				c.Region = 0
			}
		}
	}
}

// prePlaceGroups pins every unplaced, non-fixed group cell that does not
// already lie inside one of its group's regions to the nearest legal point
// on its nearest region (§4.6 step 1).
func (ctx *Context) prePlaceGroups() {
	for _, g := range ctx.Groups {
		ctx.Observer.GroupPhase("prePlaceGroups", g)
		for _, c := range g.Cells {
			if c.Fixed || c.Placed {
				continue
			}
			inGroup := false
			bestDist := -1
			nearestIdx := -1
			for i, rect := range g.Regions {
				if isInsideRect(c, rect) {
					inGroup = true
				}
				d := distToRect(c, rect)
				if bestDist == -1 || d < bestDist {
					bestDist, nearestIdx = d, i
				}
			}
			if nearestIdx == -1 {
				continue
			}
			if !inGroup {
				nearest := nearestPt(c, g.Regions[nearestIdx])
				gx, gy := legalGridPt(ctx.Grid, c, nearest)
				if ctx.mapMoveAt(c, gx, gy) {
					c.Hold = true
				}
			}
		}
	}
}

// prePlace pins every unplaced, groupless cell whose initial footprint
// overlaps a group region to the nearest legal point outside that region
// (§4.6 step 2).
func (ctx *Context) prePlace() {
	for _, c := range ctx.Cells {
		if c.InGroup() || c.Placed || c.Fixed {
			continue
		}
		overlapIdx, overlapGroup := -1, -1
		for gi, g := range ctx.Groups {
			for ri, rect := range g.Regions {
				if checkOverlap(c, rect) {
					overlapGroup, overlapIdx = gi, ri
				}
			}
		}
		if overlapIdx == -1 {
			continue
		}
		rect := ctx.Groups[overlapGroup].Regions[overlapIdx]
		nearest := nearestPt(c, rect)
		gx, gy := legalGridPt(ctx.Grid, c, nearest)
		if ctx.mapMoveAt(c, gx, gy) {
			c.Hold = true
		}
	}
}

// placeGroups2 bulk-places each group's remaining cells (multi-row, then
// single-row) in order-key order; on any failure it erases the whole
// group and falls back to brick packing (§4.6 steps 3-4).
func (ctx *Context) placeGroups2() error {
	base := ctx.Grid.BaseRowHeight()
	for _, g := range ctx.Groups {
		ctx.Observer.GroupPhase("placeGroups2", g)

		var cells []*Cell
		for _, c := range g.Cells {
			if !c.Fixed && !c.Placed {
				cells = append(cells, c)
			}
		}
		sortByPlaceOrder(cells, ctx.Grid.Core())

		multiOK := true
		for _, c := range cells {
			if !c.Fixed && !c.Placed && c.isMultiRow(base) {
				if !ctx.mapMove(c) {
					multiOK = false
					break
				}
			}
		}
		singleOK := true
		if multiOK {
			for _, c := range cells {
				if !c.Fixed && !c.Placed && !c.isMultiRow(base) {
					if !ctx.mapMove(c) {
						singleOK = false
						break
					}
				}
			}
		}

		if multiOK && singleOK {
			continue
		}

		for _, c := range g.Cells {
			if c.Placed {
				ctx.Grid.Erase(c)
			}
		}

		var err error
		if g.Util > ctx.Config.BrickUtilThreshold {
			err = ctx.brickPlace1(g)
		} else {
			err = ctx.brickPlace2(g)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// brickPlace1 places every cell of the group at the corner of the group's
// overall boundary nearest that cell's initial location, in ascending
// order of that corner distance (§4.6 step 4, brickUtilThreshold branch).
// Failure is fatal: the group cannot be legalized under its constraints.
func (ctx *Context) brickPlace1(g *Group) error {
	ctx.Observer.GroupPhase("brickPlace1", g)
	cells := append([]*Cell(nil), g.Cells...)
	sort.SliceStable(cells, func(i, j int) bool {
		return rectCornerDist(cells[i], g.Boundary) < rectCornerDist(cells[j], g.Boundary)
	})
	for _, c := range cells {
		corner := rectCorner(c, g.Boundary)
		gx, gy := legalGridPt(ctx.Grid, c, corner)
		if !ctx.mapMoveAt(c, gx, gy) {
			return &ConfigurationError{Code: CodeGroupOverUtilized,
				Message: "cannot brick-place instance " + c.Name + " in group " + g.Name}
		}
	}
	return nil
}

// brickPlace2 places every non-held cell at the corner of its own assigned
// region nearest its initial location, in ascending order of that corner
// distance (§4.6 step 4, default branch).
func (ctx *Context) brickPlace2(g *Group) error {
	ctx.Observer.GroupPhase("brickPlace2", g)
	regionOf := func(c *Cell) Rect {
		if c.Region >= 0 && c.Region < len(g.Regions) {
			return g.Regions[c.Region]
		}
		return g.Boundary
	}
	cells := append([]*Cell(nil), g.Cells...)
	sort.SliceStable(cells, func(i, j int) bool {
		return rectCornerDist(cells[i], regionOf(cells[i])) < rectCornerDist(cells[j], regionOf(cells[j]))
	})
	for _, c := range cells {
		if c.Hold {
			continue
		}
		rect := regionOf(c)
		corner := rectCorner(c, rect)
		gx, gy := legalGridPt(ctx.Grid, c, corner)
		if !ctx.mapMoveAt(c, gx, gy) {
			return &ConfigurationError{Code: CodeGroupOverUtilized,
				Message: "cannot brick-place instance " + c.Name + " in group " + g.Name}
		}
	}
	return nil
}

// groupRefine attempts refineMove on the top GroupRefinePercent fraction
// of the group's cells, ordered by descending displacement.
func (ctx *Context) groupRefine(g *Group) int {
	ctx.Observer.GroupPhase("groupRefine", g)
	cells := append([]*Cell(nil), g.Cells...)
	sort.SliceStable(cells, func(i, j int) bool {
		return disp(cells[i]) > disp(cells[j])
	})
	n := int(float64(len(cells)) * ctx.Config.GroupRefinePercent)
	if n > len(cells) {
		n = len(cells)
	}
	count := 0
	for i := 0; i < n; i++ {
		c := cells[i]
		if !c.Hold && ctx.refineMove(c) {
			count++
		}
	}
	return count
}

// randomSwap draws AnnealItersPerCell*len(group.Cells) uniformly random
// pairs from the group and attempts swapCells on each. Despite the
// original's name ("anneal"), there is no temperature and no uphill
// acceptance -- it is plain random pairwise swapping, so this port names
// it for what it does (Design Notes §9).
//
// The RNG is reseeded from Config.RandSeed at the top of every call, not
// just once per legalization run, reproducing the original's srand(seed)
// placement exactly: every randomSwap call within a run draws the same
// sequence of candidate pairs, even across refine passes. This looks
// surprising but is preserved for parity (§4.6 Determinism, §9).
func (ctx *Context) randomSwap(g *Group) int {
	ctx.Observer.GroupPhase("randomSwap", g)
	n := len(g.Cells)
	if n == 0 {
		return 0
	}
	ctx.reseed()
	count := 0
	iters := ctx.Config.AnnealItersPerCell * n
	for i := 0; i < iters; i++ {
		c1 := g.Cells[ctx.rng.Intn(n)]
		c2 := g.Cells[ctx.rng.Intn(n)]
		if ctx.swapCells(c1, c2) {
			count++
		}
	}
	return count
}

func (ctx *Context) reseed() {
	ctx.rng.Seed(ctx.Config.RandSeed)
}

// swapCells accepts the swap iff both cells are movable, same size, and
// the combined displacement change is strictly negative (§4.7); on accept
// it erases and repaints each at the other's grid coordinates.
func (ctx *Context) swapCells(c1, c2 *Cell) bool {
	if c1 == c2 || c1.Hold || c2.Hold || c1.Fixed || c2.Fixed {
		return false
	}
	if c1.Width() != c2.Width() || c1.Height() != c2.Height() {
		return false
	}
	p1, p2 := c1.Pos(), c2.Pos()
	delta := dispChange(c1, p2) + dispChange(c2, p1)
	if delta >= 0 {
		return false
	}

	l1, l2 := ctx.Grid.SiteWidth(c1), ctx.Grid.RowHeight(c1)
	l1b, l2b := ctx.Grid.SiteWidth(c2), ctx.Grid.RowHeight(c2)

	ctx.Grid.Erase(c1)
	ctx.Grid.Erase(c2)
	gx1, gy1 := GridX(p2.X, l1), GridY(p2.Y, l2)
	gx2, gy2 := GridX(p1.X, l1b), GridY(p1.Y, l2b)
	ctx.Grid.Paint(c1, gx1, gy1)
	ctx.Grid.Paint(c2, gx2, gy2)
	c1.Orient = RowOrientation(gy1, ctx.Config.OrientParityOffset)
	c2.Orient = RowOrientation(gy2, ctx.Config.OrientParityOffset)
	return true
}

// refineMove (§4.8) resolves cell's own legal point, runs a diamond
// search, and accepts the result only if it is within the displacement
// budget and strictly improves total displacement.
func (ctx *Context) refineMove(c *Cell) bool {
	gx, gy := legalGridPtInit(ctx, c)
	pt := diamondSearch(ctx, c, gx, gy)
	if !pt.found() {
		return false
	}

	dx := ctx.Config.MaxDisplacementX
	dy := scaledMaxDisplacementY(ctx.Config, ctx.Grid, c)
	if absInt(gx-pt.X) > dx || absInt(gy-pt.Y) > dy {
		return false
	}

	l := ctx.Grid.layerFor(c)
	newPos := Pt{X: pt.X * l.siteWidth, Y: pt.Y * l.rowHeight}
	if dispChange(c, newPos) >= 0 {
		return false
	}

	ctx.Grid.Erase(c)
	ctx.Grid.Paint(c, pt.X, pt.Y)
	c.Orient = RowOrientation(pt.Y, ctx.Config.OrientParityOffset)
	return true
}

// disp is the L1 displacement of a cell from its initial location.
func disp(c *Cell) int { return l1Dist(c.Init(), c.Pos()) }

// dispChange is the change in displacement cell would undergo by moving to
// to: negative means improvement.
func dispChange(c *Cell, to Pt) int {
	return l1Dist(c.Init(), to) - l1Dist(c.Init(), c.Pos())
}

// isInsideRect reports whether cell's initial footprint lies entirely
// inside rect.
func isInsideRect(c *Cell, rect Rect) bool {
	x, y := c.InitX, c.InitY
	return x >= rect.XMin && x+c.Width() <= rect.XMax &&
		y >= rect.YMin && y+c.Height() <= rect.YMax
}

// checkOverlap reports whether cell's initial footprint shares any
// positive area with rect.
func checkOverlap(c *Cell, rect Rect) bool {
	x, y := c.InitX, c.InitY
	return x+c.Width() > rect.XMin && x < rect.XMax &&
		y+c.Height() > rect.YMin && y < rect.YMax
}

// distToRect is the L1 distance cell's initial footprint would need to
// travel to no longer exceed rect's bounds (zero if already inside).
func distToRect(c *Cell, rect Rect) int {
	x, y := c.InitX, c.InitY
	w, h := c.Width(), c.Height()
	var distX, distY int
	if x < rect.XMin {
		distX = rect.XMin - x
	} else if x+w > rect.XMax {
		distX = x + w - rect.XMax
	}
	if y < rect.YMin {
		distY = rect.YMin - y
	} else if y+h > rect.YMax {
		distY = y + h - rect.YMax
	}
	return distX + distY
}

// nearestPt is the axial push-out of cell's initial location that
// minimizes displacement while landing it outside rect if it currently
// overlaps, or inside rect if it doesn't (§4.6 step 2).
func nearestPt(c *Cell, rect Rect) Pt {
	x, y := c.InitX, c.InitY
	w, h := c.Width(), c.Height()
	tempX, tempY := x, y

	if checkOverlap(c, rect) {
		var distX, distY int
		if absInt(x+w-rect.XMin) > absInt(rect.XMax-x) {
			distX = absInt(rect.XMax - x)
			tempX = rect.XMax
		} else {
			distX = absInt(x - rect.XMin)
			tempX = rect.XMin - w
		}
		if absInt(y+h-rect.YMin) > absInt(rect.YMax-y) {
			distY = absInt(rect.YMax - y)
			tempY = rect.YMax
		} else {
			distY = absInt(y - rect.YMin)
			tempY = rect.YMin - h
		}
		if distX < distY {
			return Pt{X: tempX, Y: y}
		}
		return Pt{X: x, Y: tempY}
	}

	if x < rect.XMin {
		tempX = rect.XMin
	} else if x+w > rect.XMax {
		tempX = rect.XMax - w
	}
	if y < rect.YMin {
		tempY = rect.YMin
	} else if y+h > rect.YMax {
		tempY = rect.YMax - h
	}
	return Pt{X: tempX, Y: tempY}
}

// rectCorner is the corner of rect nearest cell's initial location, chosen
// by which half of rect the cell's initial (lower-left) point falls in on
// each axis. This
// preserves the original's corner semantic verbatim (Design Notes §9):
// starting a search from the nearest point on rect's boundary would be
// more correct, but legacy output depends on the corner behavior.
func rectCorner(c *Cell, rect Rect) Pt {
	x, y := c.InitX, c.InitY
	var cx, cy int
	if x > (rect.XMin+rect.XMax)/2 {
		cx = rect.XMax
	} else {
		cx = rect.XMin
	}
	if y > (rect.YMin+rect.YMax)/2 {
		cy = rect.YMax
	} else {
		cy = rect.YMin
	}
	return Pt{X: cx, Y: cy}
}

// rectCornerDist is the L1 distance from cell's initial location to
// rectCorner(c, rect).
func rectCornerDist(c *Cell, rect Rect) int {
	return l1Dist(c.Init(), rectCorner(c, rect))
}
