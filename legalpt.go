package dpl

// legalPt snaps pt to a legal starting grid-aligned design-unit point for
// cell: clamp inside the core, then round to the nearest row/site with
// divRound (§4.3 steps 1-2). It does not consult hopeless pixels or macro blocks -- callers that
// want the full resolution starting from a cell's own initial location use
// legalPtInit.
func legalPt(grid *Grid, c *Cell, pt Pt) Pt {
	l := grid.layerFor(c)
	if l == nil {
		return pt
	}
	siteWidth, rowHeight := l.siteWidth, l.rowHeight

	coreX := clampInt(pt.X, 0, l.siteCount*siteWidth-c.Width())
	coreY := clampInt(pt.Y, 0, l.rowCount*rowHeight-c.Height())

	gx := divRound(coreX, siteWidth)
	gy := divRound(coreY, rowHeight)
	return Pt{X: gx * siteWidth, Y: gy * rowHeight}
}

// legalGridPt is legalPt converted to (site, row) grid coordinates.
func legalGridPt(grid *Grid, c *Cell, pt Pt) (int, int) {
	legal := legalPt(grid, c, pt)
	l := grid.layerFor(c)
	if l == nil {
		return 0, 0
	}
	return GridX(legal.X, l.siteWidth), GridY(legal.Y, l.rowHeight)
}

// legalPtInit runs the full §4.3 resolution starting from cell's own
// initial location: clamp/align (legalPt), then push off hopeless pixels
// (moveHopeless) and off a macro block's footprint (nearestBlockEdge).
// It panics with an InvariantViolation if called on a fixed cell -- the
// original asserts this too, since a fixed cell's location is never
// resolved, only read.
func legalPtInit(ctx *Context, c *Cell) Pt {
	if c.Fixed {
		panic(InvariantViolation{Code: CodeLegalizeFixed,
			Message: "legalPt called on fixed cell " + c.Name})
	}
	grid := ctx.Grid
	l := grid.layerFor(c)
	if l == nil {
		panic(InvariantViolation{Code: CodeNoLayer,
			Message: "no layer for row height of cell " + c.Name})
	}

	legal := legalPt(grid, c, c.Init())
	gx := GridX(legal.X, l.siteWidth)
	gy := GridY(legal.Y, l.rowHeight)

	px := l.pixel(gx, gy)
	if px == nil {
		return legal
	}

	if px.Hopeless {
		if nx, ny, ok := moveHopeless(grid, c, gx, gy); ok {
			gx, gy = nx, ny
			legal = Pt{X: gx * l.siteWidth, Y: gy * l.rowHeight}
			px = l.pixel(gx, gy)
		}
	}

	if px != nil && px.Cell != nil && px.Cell.isBlock() {
		bbox := px.Cell.Bbox()
		if legal.X+c.Width() >= bbox.XMin && legal.X <= bbox.XMax &&
			legal.Y+c.Height() >= bbox.YMin && legal.Y <= bbox.YMax {
			legal = nearestBlockEdge(grid, c, legal, bbox)
		}
	}

	return legal
}

// legalGridPtInit is legalPtInit converted to grid coordinates.
func legalGridPtInit(ctx *Context, c *Cell) (int, int) {
	legal := legalPtInit(ctx, c)
	l := ctx.Grid.layerFor(c)
	return GridX(legal.X, l.siteWidth), GridY(legal.Y, l.rowHeight)
}

// moveHopeless finds the nearest valid (not necessarily empty) pixel by
// probing left, right, below, and above from (gx, gy) in turn, and returns
// the direction with smallest L1 distance. Ties are broken by probe order
// (left < right < below < above), matching the strict less-than comparison
// in the original.
func moveHopeless(grid *Grid, c *Cell, gx, gy int) (int, int, bool) {
	l := grid.layerFor(c)
	siteWidth, rowHeight := l.siteWidth, l.rowHeight

	bestX, bestY := gx, gy
	bestDist := -1

	for x := gx - 1; x >= 0; x-- {
		if px := l.pixel(x, gy); px != nil && px.Valid {
			bestDist = (gx - x - 1) * siteWidth
			bestX, bestY = x, gy
			break
		}
	}
	for x := gx + 1; x < l.siteCount; x++ {
		if px := l.pixel(x, gy); px != nil && px.Valid {
			dist := (x-gx)*siteWidth - c.Width()
			if bestDist == -1 || dist < bestDist {
				bestDist, bestX, bestY = dist, x, gy
			}
			break
		}
	}
	for y := gy - 1; y >= 0; y-- {
		if px := l.pixel(gx, y); px != nil && px.Valid {
			dist := (gy - y - 1) * rowHeight
			if bestDist == -1 || dist < bestDist {
				bestDist, bestX, bestY = dist, gx, y
			}
			break
		}
	}
	for y := gy + 1; y < l.rowCount; y++ {
		if px := l.pixel(gx, y); px != nil && px.Valid {
			dist := (y-gy)*rowHeight - c.Height()
			if bestDist == -1 || dist < bestDist {
				bestDist, bestX, bestY = dist, gx, y
			}
			break
		}
	}
	if bestDist == -1 {
		return gx, gy, false
	}
	return bestX, bestY, true
}

// nearestBlockEdge moves legal to just outside block's nearest edge,
// choosing the side (left/right/below/above) with smallest axial distance.
func nearestBlockEdge(grid *Grid, c *Cell, legal Pt, block Rect) Pt {
	l := grid.layerFor(c)
	rowHeight := l.rowHeight

	xMinDist := absInt(legal.X - block.XMin)
	xMaxDist := absInt(block.XMax - (legal.X + c.Width()))
	yMinDist := absInt(legal.Y - block.YMin)
	yMaxDist := absInt(block.YMax - (legal.Y + c.Height()))

	switch {
	case xMinDist < xMaxDist && xMinDist < yMinDist && xMinDist < yMaxDist:
		return legalPt(grid, c, Pt{X: block.XMin - c.Width(), Y: legal.Y})
	case xMaxDist <= xMinDist && xMaxDist <= yMinDist && xMaxDist <= yMaxDist:
		return legalPt(grid, c, Pt{X: block.XMax, Y: legal.Y})
	case yMinDist <= xMinDist && yMinDist <= xMaxDist && yMinDist <= yMaxDist:
		return legalPt(grid, c, Pt{X: legal.X, Y: divFloor(block.YMin, rowHeight)*rowHeight - c.Height()})
	default:
		return legalPt(grid, c, Pt{X: legal.X, Y: divCeil(block.YMax, rowHeight) * rowHeight})
	}
}
