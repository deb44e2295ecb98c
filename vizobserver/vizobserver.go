// Package vizobserver renders a legalization run as a Graphviz diagram. It
// implements dpl.Observer so it can be attached to dpl.Legalize like any
// other observer, but it is never imported by the core package itself --
// the "GUI visualization" collaborator the core only describes by
// interface.
package vizobserver

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/liujizhe/OpenROAD"
)

// Recorder accumulates every painted instance during a legalization run
// and renders the final placement as a Graphviz diagram on demand.
type Recorder struct {
	placements map[string]placement
	failures   map[string]bool
	order      []string
}

type placement struct {
	cell  *dpl.Cell
	group string
}

// New returns an empty Recorder, ready to be passed as dpl.Input.Observer.
func New() *Recorder {
	return &Recorder{placements: map[string]placement{}, failures: map[string]bool{}}
}

func (r *Recorder) StartPlacement(cellCount int) {}

func (r *Recorder) EndPlacement(placed, failed int) {}

func (r *Recorder) PlaceInstance(c *dpl.Cell, from, to dpl.Pt) {
	if _, ok := r.placements[c.Name]; !ok {
		r.order = append(r.order, c.Name)
	}
	r.placements[c.Name] = placement{cell: c, group: c.GroupName}
}

func (r *Recorder) BinSearch(c *dpl.Cell, radius int, found bool) {}

func (r *Recorder) GroupPhase(name string, g *dpl.Group) {}

func (r *Recorder) ShiftMove(c *dpl.Cell, evictedCount int) {}

var groupPalette = []string{"lightblue", "lightyellow", "lightpink", "lightgreen", "lightgrey"}

func colorFor(group string, index map[string]int) string {
	if group == "" {
		return "white"
	}
	i, ok := index[group]
	if !ok {
		i = len(index)
		index[group] = i
	}
	return groupPalette[i%len(groupPalette)]
}

// ToDOT renders every recorded placement as a Graphviz DOT graph: one
// cluster per row, one node per placed cell, colored by group membership.
func (r *Recorder) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph placement {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=filled, fontsize=10];\n\n")

	names := append([]string(nil), r.order...)
	sort.Strings(names)

	byRow := map[int][]string{}
	for _, name := range names {
		p := r.placements[name]
		byRow[p.cell.Y] = append(byRow[p.cell.Y], name)
	}
	rows := make([]int, 0, len(byRow))
	for y := range byRow {
		rows = append(rows, y)
	}
	sort.Ints(rows)

	groupIndex := map[string]int{}
	for _, y := range rows {
		fmt.Fprintf(&buf, "  subgraph cluster_row_%d {\n", y)
		fmt.Fprintf(&buf, "    label=\"row y=%d\";\n", y)
		cellNames := byRow[y]
		sort.Slice(cellNames, func(i, j int) bool {
			return r.placements[cellNames[i]].cell.X < r.placements[cellNames[j]].cell.X
		})
		for _, name := range cellNames {
			p := r.placements[name]
			label := fmt.Sprintf("%s\\n(%d,%d)", name, p.cell.X, p.cell.Y)
			fmt.Fprintf(&buf, "    %q [label=%q, fillcolor=%q];\n", name, label, colorFor(p.group, groupIndex))
		}
		buf.WriteString("  }\n")
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the recorded placement directly to SVG.
func (r *Recorder) RenderSVG() ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(r.ToDOT()))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// Legend returns a short human-readable summary of the group-to-color
// mapping used by the most recent ToDOT call's cluster, for CLI output.
func (r *Recorder) Legend() string {
	// Visit cells in ToDOT's order (row by row, then by x) so colors are
	// assigned to groups the same way.
	visit := append([]string(nil), r.order...)
	sort.Slice(visit, func(i, j int) bool {
		a, b := r.placements[visit[i]].cell, r.placements[visit[j]].cell
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	groupIndex := map[string]int{}
	for _, name := range visit {
		colorFor(r.placements[name].group, groupIndex)
	}
	if len(groupIndex) == 0 {
		return "no groups recorded"
	}
	names := make([]string, 0, len(groupIndex))
	for g := range groupIndex {
		names = append(names, g)
	}
	sort.Strings(names)
	var parts []string
	for _, g := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", g, groupPalette[groupIndex[g]%len(groupPalette)]))
	}
	return strings.Join(parts, ", ")
}
