package design

import "github.com/liujizhe/OpenROAD"

// MemSource is a Source/Sink backed entirely by in-memory slices, for
// embedding dpl directly without a file format.
type MemSource struct {
	CoreRect   dpl.Rect
	RowSpecs   []dpl.RowSpec
	MasterList []MasterSpec
	CellList   []CellSpec
	GroupList  []GroupSpec

	Located map[string][3]int // name -> x, y, orient
	Failed  map[string]bool
}

// NewMemSource returns an empty MemSource ready to be populated by its
// exported fields.
func NewMemSource() *MemSource {
	return &MemSource{Located: map[string][3]int{}, Failed: map[string]bool{}}
}

func (m *MemSource) Core() dpl.Rect        { return m.CoreRect }
func (m *MemSource) Rows() []dpl.RowSpec   { return m.RowSpecs }
func (m *MemSource) Masters() []MasterSpec { return m.MasterList }
func (m *MemSource) Cells() []CellSpec     { return m.CellList }
func (m *MemSource) Groups() []GroupSpec   { return m.GroupList }

func (m *MemSource) SetLocation(name string, x, y int, orient dpl.Orient) {
	m.Located[name] = [3]int{x, y, int(orient)}
}

func (m *MemSource) RecordFailure(name string) { m.Failed[name] = true }
