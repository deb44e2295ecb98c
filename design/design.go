// Package design defines the boundary between the legalizer core and the
// design database it reads cells from and writes results back to. The core
// package never imports design; Source and Sink are the two halves any
// caller must provide.
package design

import "github.com/liujizhe/OpenROAD"

// MasterSpec is the design-database shape of a dpl.Master.
type MasterSpec struct {
	Name   string
	Width  int
	Height int
	Type   dpl.MasterType
}

// CellSpec is the design-database shape of a dpl.Cell.
type CellSpec struct {
	Name      string
	Master    string
	InitX     int
	InitY     int
	PadLeft   int
	PadRight  int
	GroupName string
	Fixed     bool
	Hold      bool
	X         int
	Y         int
	Orient    dpl.Orient
}

// GroupSpec is the design-database shape of a dpl.Group.
type GroupSpec struct {
	Name     string
	Cells    []string
	Regions  []dpl.Rect
	Boundary dpl.Rect
}

// Source reads a placement problem from a design database. Rows, masters,
// cells, and groups are returned as plain specs; building the dpl.Cell
// graph (resolving master and group names to pointers) is the adapter's
// job, not the core's (§1, §6: "the design database" is external).
type Source interface {
	Core() dpl.Rect
	Rows() []dpl.RowSpec
	Masters() []MasterSpec
	Cells() []CellSpec
	Groups() []GroupSpec
}

// Sink receives the outcome of a legalization run: the final location and
// orientation of every successfully placed cell, and the name of every
// cell that failed to place.
type Sink interface {
	SetLocation(name string, x, y int, orient dpl.Orient)
	RecordFailure(name string)
}

// BuildInput resolves a Source's specs into a dpl.Input ready for
// dpl.Legalize: master names become *dpl.Master pointers, group names
// become *dpl.Cell membership, and region containment is left to
// dpl.Legalize itself.
func BuildInput(src Source, cfg dpl.Config, obs dpl.Observer) dpl.Input {
	masters := make(map[string]*dpl.Master, len(src.Masters()))
	for _, m := range src.Masters() {
		masters[m.Name] = &dpl.Master{Name: m.Name, Width: m.Width, Height: m.Height, Type: m.Type}
	}

	cellsByName := make(map[string]*dpl.Cell, len(src.Cells()))
	var cells []*dpl.Cell
	for _, cs := range src.Cells() {
		c := &dpl.Cell{
			Name:      cs.Name,
			Master:    masters[cs.Master],
			InitX:     cs.InitX,
			InitY:     cs.InitY,
			X:         cs.X,
			Y:         cs.Y,
			PadLeft:   cs.PadLeft,
			PadRight:  cs.PadRight,
			GroupName: cs.GroupName,
			Fixed:     cs.Fixed,
			Hold:      cs.Hold,
			Orient:    cs.Orient,
			Placed:    cs.Fixed,
		}
		cells = append(cells, c)
		cellsByName[cs.Name] = c
	}

	var groups []*dpl.Group
	for _, gs := range src.Groups() {
		g := &dpl.Group{Name: gs.Name, Regions: gs.Regions, Boundary: gs.Boundary}
		for _, name := range gs.Cells {
			if c, ok := cellsByName[name]; ok {
				g.Cells = append(g.Cells, c)
			}
		}
		groups = append(groups, g)
	}

	return dpl.Input{
		Core:     src.Core(),
		Rows:     src.Rows(),
		Cells:    cells,
		Groups:   groups,
		Config:   cfg,
		Observer: obs,
	}
}

// ApplyResult writes every cell's outcome from a dpl.Result into sink.
func ApplyResult(res *dpl.Result, sink Sink) {
	failed := make(map[string]bool, len(res.Failures))
	for _, f := range res.Failures {
		failed[f.CellName] = true
	}
	for _, c := range res.Cells {
		if c.Placed {
			sink.SetLocation(c.Name, c.X, c.Y, c.Orient)
		}
	}
	for name := range failed {
		sink.RecordFailure(name)
	}
}
