package dpl

// PixelPt pairs a feasible pixel with the grid coordinate it sits at.
type PixelPt struct {
	Pixel *Pixel
	X, Y  int
}

func (p PixelPt) found() bool { return p.Pixel != nil }

// scaledMaxDisplacementY scales the microns-valued vertical displacement
// budget by the ratio of the grid's base row height to the given cell's
// own row height, floored. This reproduces map_coordinates/
// scaled_max_displacement_y_ from the original exactly, including the
// mixed-row-height scaling the Design Notes flag as a known concern
// (§4.2, §9) -- it is preserved rather than "fixed."
func scaledMaxDisplacementY(cfg Config, grid *Grid, c *Cell) int {
	base := grid.BaseRowHeight()
	h := c.Height()
	if h == 0 {
		return 0
	}
	return cfg.MaxDisplacementY * base / h
}

// diamondSearch finds the feasible grid point nearest (x, y) for cell,
// searching expanding L1-radius diamonds as described in §4.2. It returns
// the zero PixelPt (Pixel == nil) if no radius up to the displacement
// budget yields a feasible site.
func diamondSearch(ctx *Context, c *Cell, x, y int) PixelPt {
	grid := ctx.Grid
	cfg := ctx.Config
	l := grid.layerFor(c)
	if l == nil {
		return PixelPt{}
	}
	siteWidth, rowHeight := l.siteWidth, l.rowHeight

	dx := cfg.MaxDisplacementX
	dy := scaledMaxDisplacementY(cfg, grid, c)

	xMin, xMax := x-dx, x+dx
	yMin, yMax := y-dy, y+dy

	if c.InGroup() {
		if g := ctx.groupByName(c.GroupName); g != nil {
			gb := NewRect(
				divCeil(g.Boundary.XMin-grid.core.XMin, siteWidth),
				divCeil(g.Boundary.YMin-grid.core.YMin, rowHeight),
				(g.Boundary.XMax-grid.core.XMin)/siteWidth,
				(g.Boundary.YMax-grid.core.YMin)/rowHeight,
			)
			min := gb.ClosestPtInside(Pt{X: xMin, Y: yMin})
			max := gb.ClosestPtInside(Pt{X: xMax, Y: yMax})
			xMin, yMin = min.X, min.Y
			xMax, yMax = max.X, max.Y
		}
	}

	xMin = maxInt(0, xMin)
	yMin = maxInt(0, yMin)
	xMax = minInt(l.siteCount, xMax)
	yMax = minInt(l.rowCount, yMax)

	if pt := binSearch(ctx, c, x, x, y, xMin, xMax); pt.found() {
		ctx.Observer.BinSearch(c, 0, true)
		return pt
	}

	limit := maxInt(dx, dy)
	for i := 1; i < limit; i++ {
		var best PixelPt
		bestDist := 0
		found := false

		consider := func(bx, by int) {
			bx = clampInt(bx, xMin, xMax)
			by = clampInt(by, yMin, yMax)
			pt := binSearch(ctx, c, x, bx, by, xMin, xMax)
			if !pt.found() {
				return
			}
			dist := absInt(x-pt.X)*siteWidth + absInt(y-pt.Y)*rowHeight
			if !found || dist < bestDist {
				best, bestDist, found = pt, dist, true
			}
		}

		// Left wing: columns left of x0, radius i.
		for j := 1; j < 2*i; j++ {
			xOff := -((j + 1) / 2)
			yOff := (2*i - j) / 2
			if absInt(xOff) < dx && absInt(yOff) < dy {
				if j%2 == 1 {
					yOff = -yOff
				}
				consider(x+xOff*cfg.BinSearchWidth, y+yOff)
			}
		}
		// Right wing: x0's own column and columns right of it, radius i+1.
		for j := 1; j < 2*(i+1); j++ {
			xOff := (j - 1) / 2
			yOff := (2*(i+1) - j) / 2
			if absInt(xOff) < dx && absInt(yOff) < dy {
				if j%2 == 1 {
					yOff = -yOff
				}
				consider(x+xOff*cfg.BinSearchWidth, y+yOff)
			}
		}

		ctx.Observer.BinSearch(c, i, found)
		if found {
			return best
		}
	}
	return PixelPt{}
}

// binSearch scans a contiguous run of cfg.BinSearchWidth sites around
// (binX, binY), moving toward x first (the column the diamond search is
// centered on), and returns the first feasible position. Sites outside
// the search window [xMin, xMax] are skipped.
func binSearch(ctx *Context, c *Cell, x, binX, binY, xMin, xMax int) PixelPt {
	grid := ctx.Grid
	l := grid.layerFor(c)
	if l == nil {
		return PixelPt{}
	}
	yEnd := binY + GridHeight(c)
	if yEnd > l.rowCount {
		return PixelPt{}
	}

	width := ctx.Config.BinSearchWidth
	inWindow := func(s int) bool { return s >= xMin && s <= xMax }
	if x > binX {
		for i := width - 1; i >= 0; i-- {
			if inWindow(binX+i) && grid.CheckEmpty(c, binX+i, binY, ctx.Config.DisallowOneSiteGaps) {
				return PixelPt{Pixel: l.pixel(binX+i, binY), X: binX + i, Y: binY}
			}
		}
	} else {
		for i := 0; i < width; i++ {
			if inWindow(binX+i) && grid.CheckEmpty(c, binX+i, binY, ctx.Config.DisallowOneSiteGaps) {
				return PixelPt{Pixel: l.pixel(binX+i, binY), X: binX + i, Y: binY}
			}
		}
	}
	return PixelPt{}
}
