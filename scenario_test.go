package dpl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func oneRowInput(siteCount int, cells []*Cell) Input {
	return Input{
		Core: NewRect(0, 0, siteCount*200, 1000),
		Rows: []RowSpec{
			{OriginX: 0, OriginY: 0, SiteWidth: 200, Height: 1000, SiteCount: siteCount, Orient: R0},
		},
		Cells:  cells,
		Config: DefaultConfig(),
	}
}

func TestScenarioSingleCellEmptyCore(t *testing.T) {
	m := &Master{Name: "M2", Width: 400, Height: 1000, Type: MasterStd}
	c := &Cell{Name: "c1", Master: m, InitX: 500, InitY: 0}
	in := oneRowInput(10, []*Cell{c})

	res, err := Legalize(in)
	require.NoError(t, err)
	require.Empty(t, res.Failures)
	require.True(t, c.Placed)
	require.Equal(t, 400, c.X)
	require.Equal(t, 0, c.Y)
}

func TestScenarioExactFitChain(t *testing.T) {
	m := &Master{Name: "M1", Width: 200, Height: 1000, Type: MasterStd}
	xs := []int{0, 200, 400, 600}
	var cells []*Cell
	for i, x := range xs {
		cells = append(cells, &Cell{Name: "c" + string(rune('A'+i)), Master: m, InitX: x, InitY: 0})
	}
	in := oneRowInput(4, cells)

	res, err := Legalize(in)
	require.NoError(t, err)
	require.Empty(t, res.Failures)
	for i, c := range res.Cells {
		require.Equal(t, xs[i], c.X, "cell %s should not move from its initial site", c.Name)
		require.Equal(t, 0, c.Y)
	}
}

func TestScenarioDisplacedChain(t *testing.T) {
	m := &Master{Name: "M1", Width: 200, Height: 1000, Type: MasterStd}
	xs := []int{50, 250, 450, 650}
	want := []int{0, 200, 400, 600}
	var cells []*Cell
	for i, x := range xs {
		cells = append(cells, &Cell{Name: "c" + string(rune('A'+i)), Master: m, InitX: x, InitY: 0})
	}
	in := oneRowInput(4, cells)

	res, err := Legalize(in)
	require.NoError(t, err)
	require.Empty(t, res.Failures)

	seen := map[int]bool{}
	for _, c := range res.Cells {
		require.True(t, c.Placed)
		require.False(t, seen[c.X], "site %d occupied twice", c.X)
		seen[c.X] = true
	}
	for _, x := range want {
		require.True(t, seen[x], "expected a cell at site %d", x)
	}
}

func TestScenarioCollisionRequiringShift(t *testing.T) {
	m := &Master{Name: "M1", Width: 200, Height: 1000, Type: MasterStd}
	a := &Cell{Name: "A", Master: m, InitX: 0, InitY: 0}
	b := &Cell{Name: "B", Master: m, InitX: 0, InitY: 0}
	in := oneRowInput(2, []*Cell{a, b})

	res, err := Legalize(in)
	require.NoError(t, err)
	require.Empty(t, res.Failures)
	require.Equal(t, 0, a.X)
	require.Equal(t, 200, b.X)
}

func TestScenarioCollisionRequiringShiftSingleSiteFails(t *testing.T) {
	m := &Master{Name: "M1", Width: 200, Height: 1000, Type: MasterStd}
	a := &Cell{Name: "A", Master: m, InitX: 0, InitY: 0}
	b := &Cell{Name: "B", Master: m, InitX: 0, InitY: 0}
	in := oneRowInput(1, []*Cell{a, b})

	res, err := Legalize(in)
	require.NoError(t, err)
	require.NotEmpty(t, res.Failures, "with only one site for two cells, one must be recorded in placement_failures")
}

func TestScenarioGroupConstraint(t *testing.T) {
	m := &Master{Name: "M1", Width: 200, Height: 1000, Type: MasterStd}
	// Region spans rows 1-2 only (not the full core height), so pushing a
	// cell out of it vertically always has somewhere to land.
	region := NewRect(800, 1000, 1600, 3000)
	g := &Group{Name: "G", Regions: []Rect{region}, Boundary: region}

	c1 := &Cell{Name: "g1", Master: m, InitX: 0, InitY: 0, GroupName: "G"}
	c2 := &Cell{Name: "g2", Master: m, InitX: 1800, InitY: 0, GroupName: "G"}
	g.Cells = []*Cell{c1, c2}

	evicted := &Cell{Name: "outsider", Master: m, InitX: 1000, InitY: 1500}

	var rows []RowSpec
	for i := 0; i < 4; i++ {
		orient := R0
		if i%2 == 1 {
			orient = MX
		}
		rows = append(rows, RowSpec{OriginX: 0, OriginY: i * 1000, SiteWidth: 200, Height: 1000, SiteCount: 10, Orient: orient})
	}

	in := Input{
		Core:   NewRect(0, 0, 2000, 4000),
		Rows:   rows,
		Cells:  []*Cell{c1, c2, evicted},
		Groups: []*Group{g},
		Config: DefaultConfig(),
	}

	res, err := Legalize(in)
	require.NoError(t, err)
	require.Empty(t, res.Failures)

	for _, c := range []*Cell{c1, c2} {
		require.True(t, c.Placed)
		require.True(t, region.ContainsRect(c.Bbox()), "group cell %s should land inside the group region", c.Name)
	}
	require.False(t, c1.X == c2.X && c1.Y == c2.Y, "group cells must not overlap")

	require.True(t, evicted.Placed)
	require.False(t, region.Overlaps(evicted.Bbox()), "non-group cell initially inside the region must be evicted outside it")
}

func TestScenarioSwapImprovesDisplacement(t *testing.T) {
	m := &Master{Name: "M1", Width: 200, Height: 1000, Type: MasterStd}
	c1 := &Cell{Name: "c1", Master: m, InitX: 0, InitY: 0}
	c2 := &Cell{Name: "c2", Master: m, InitX: 1800, InitY: 0}
	g := &Group{Name: "G", Regions: []Rect{NewRect(0, 0, 2000, 1000)}, Boundary: NewRect(0, 0, 2000, 1000), Cells: []*Cell{c1, c2}}
	c1.GroupName, c2.GroupName = "G", "G"

	in := oneRowInput(10, []*Cell{c1, c2})
	in.Groups = []*Group{g}

	ctx := newContext(in.Config, NewGrid(in.Core, in.Rows, []*Master{m}), in.Cells, in.Groups, nil)
	ctx.Grid.AssignGroupRegions(in.Groups)
	ctx.Grid.Paint(c1, 9, 0)
	ctx.Grid.Paint(c2, 0, 0)

	before := disp(c1) + disp(c2)
	swapped := ctx.swapCells(c1, c2)
	require.True(t, swapped)
	after := disp(c1) + disp(c2)

	delta := before - after
	wantDelta := 2 * absInt(c1.InitX-c2.InitX)
	require.Equal(t, wantDelta, delta, "a mirror-image swap should reduce total displacement by 2*|delta|")
}
