package dpl

import "github.com/google/uuid"

// Input bundles everything Legalize needs for one call: the fixed
// geometry of the design (core, rows) and every cell and group the design
// database collaborator has already constructed (§1, §6 -- the core never
// reads a database directly, only the values this struct carries).
type Input struct {
	Core     Rect
	Rows     []RowSpec
	Cells    []*Cell
	Groups   []*Group
	Config   Config
	Observer Observer
}

// Stats summarizes displacement across every placed cell. HPWL and other
// net-aware statistics are an external collaborator's job (§1) -- they
// need geometry the core doesn't own -- but raw L1 displacement is cheap
// to compute from data Legalize already has, so it's returned directly.
type Stats struct {
	TotalDisplacement   int64
	MaxDisplacement     int
	AverageDisplacement float64
	PlacedCount         int
}

// Result is everything Legalize hands back: the (mutated in place) cells,
// any placement failures accumulated along the way, and displacement
// statistics.
type Result struct {
	RunID    string
	Cells    []*Cell
	Failures []PlacementFailure
	Stats    Stats
}

// Legalize runs one full legalization pass over in: Grid construction and
// fixed-cell painting, group pre-placement/bulk-placement/brick-packing/
// refine/swap (if any groups are present), then the global placer pass
// (§2 data flow). A fresh Context is constructed for the call and
// discarded when it returns.
//
// It returns a *ConfigurationError for any fatal pre-placement problem
// (§7): no rows, a cell that cannot fit any row, or a group whose
// utilization exceeds 1.0, or that fails brick packing. Any other
// placement failure is collected into Result.Failures rather than
// returned as an error.
func Legalize(in Input) (*Result, error) {
	if len(in.Rows) == 0 {
		return nil, &ConfigurationError{Code: CodeNoRows,
			Message: "legalization requires at least one row"}
	}

	grid := NewGrid(in.Core, in.Rows, distinctMasters(in.Cells))
	grid.SetFixedGridCells(in.Cells)
	grid.AssignGroupRegions(in.Groups)

	ctx := newContext(in.Config, grid, in.Cells, in.Groups, in.Observer)
	ctx.Observer.StartPlacement(len(in.Cells))

	if len(in.Groups) > 0 {
		if err := ctx.placeGroups(); err != nil {
			return nil, err
		}
	}
	if err := ctx.place(); err != nil {
		return nil, err
	}

	placed := 0
	for _, c := range in.Cells {
		if c.Placed {
			placed++
		}
	}
	ctx.Observer.EndPlacement(placed, len(ctx.failures))

	return &Result{
		RunID:    uuid.NewString(),
		Cells:    in.Cells,
		Failures: ctx.failures,
		Stats:    displacementStats(in.Cells),
	}, nil
}

// distinctMasters collects the set of masters referenced by cells, in
// first-seen order, for NewGrid's masters parameter.
func distinctMasters(cells []*Cell) []*Master {
	seen := map[*Master]bool{}
	var masters []*Master
	for _, c := range cells {
		if c.Master != nil && !seen[c.Master] {
			seen[c.Master] = true
			masters = append(masters, c.Master)
		}
	}
	return masters
}

// displacementStats computes sum/average/max L1 displacement across every
// placed cell, mirroring findDisplacementStats from the original.
func displacementStats(cells []*Cell) Stats {
	var stats Stats
	var total int64
	for _, c := range cells {
		if !c.Placed {
			continue
		}
		d := l1Dist(c.Init(), c.Pos())
		total += int64(d)
		if d > stats.MaxDisplacement {
			stats.MaxDisplacement = d
		}
		stats.PlacedCount++
	}
	stats.TotalDisplacement = total
	if stats.PlacedCount > 0 {
		stats.AverageDisplacement = float64(total) / float64(stats.PlacedCount)
	}
	return stats
}
