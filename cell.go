package dpl

// Orient is the row/cell orientation. The core only distinguishes the two
// values a row-alternation pattern produces; mirroring about other axes is
// a concern of the design database, not the legalizer.
type Orient int

const (
	// R0 is the unrotated, unmirrored orientation.
	R0 Orient = iota
	// MX mirrors the cell about the X axis (flips it top-to-bottom), used
	// on alternating rows so abutting rows share a power rail.
	MX
)

func (o Orient) String() string {
	if o == MX {
		return "MX"
	}
	return "R0"
}

// MasterType partitions cell masters the way the design database's
// masterType does: whether the grid should treat instances of it as an
// immovable macro, an ordinary standard cell subject to padding, a
// pre-padded cell, or something the legalizer should not place at all.
type MasterType int

const (
	// MasterStd is an ordinary standard cell; Cell.PadLeft/PadRight sites
	// of empty space are reserved on either side of it.
	MasterStd MasterType = iota
	// MasterPadded is a cell whose footprint already includes any padding;
	// the grid does not add further padding sites.
	MasterPadded
	// MasterBlock is a macro block. Fixed instances of it mark their
	// footprint as "hopeless" (see Pixel.Hopeless) so std cells are pushed
	// off of it rather than merely finding it occupied.
	MasterBlock
	// MasterIgnored masters (cover cells, rings, fill) are never placed or
	// painted onto the grid.
	MasterIgnored
)

// Master describes the geometry shared by every instance of a cell type.
type Master struct {
	Name   string
	Width  int
	Height int
	Type   MasterType
}

// Cell is one instance -- movable or fixed -- on the placement grid.
//
// The grid owns occupancy (which pixels reference this cell); the cell owns
// its own current location. Paint/erase keep the two in sync.
type Cell struct {
	Name   string
	Master *Master

	// InitX, InitY is the initial (illegal) location from the upstream
	// placer, relative to the core origin.
	InitX, InitY int

	// X, Y is the current legal location, relative to the core origin.
	// Valid only once Placed is true.
	X, Y int

	// PadLeft, PadRight are whole sites of padding, applied only when
	// Master.Type == MasterStd.
	PadLeft, PadRight int

	// GroupName is "" for cells with no group membership.
	GroupName string
	// Region is the sub-rectangle of the group (by index into
	// Group.Regions) this cell was assigned to. Meaningless when
	// GroupName == "".
	Region int

	Placed bool
	Hold   bool
	Fixed  bool

	// Orient is set to the landing row's orientation whenever the cell is
	// painted.
	Orient Orient
}

// Width is the master's design-unit width.
func (c *Cell) Width() int { return c.Master.Width }

// Height is the master's design-unit height.
func (c *Cell) Height() int { return c.Master.Height }

// Area is width * height, in design units squared.
func (c *Cell) Area() int64 { return int64(c.Width()) * int64(c.Height()) }

// InGroup reports whether the cell is bound to a region group.
func (c *Cell) InGroup() bool { return c.GroupName != "" }

// Init returns the cell's initial location as a point.
func (c *Cell) Init() Pt { return Pt{X: c.InitX, Y: c.InitY} }

// Pos returns the cell's current location as a point.
func (c *Cell) Pos() Pt { return Pt{X: c.X, Y: c.Y} }

// Bbox returns the cell's footprint at its current location.
func (c *Cell) Bbox() Rect {
	return NewRect(c.X, c.Y, c.X+c.Width(), c.Y+c.Height())
}

// isBlock reports whether the cell's master is a macro block.
func (c *Cell) isBlock() bool { return c.Master.Type == MasterBlock }

// isMultiRow reports whether the cell spans more than one base row height.
func (c *Cell) isMultiRow(baseRowHeight int) bool {
	return c.Height() > baseRowHeight
}

// Group is a named constraint binding a set of cells to a union of
// rectangular regions inside the core.
type Group struct {
	Name      string
	Cells     []*Cell
	Regions   []Rect
	Boundary  Rect
	Util      float64
}

// RowSpec describes one physical placement row, as read from the design
// database.
type RowSpec struct {
	OriginX, OriginY int
	SiteWidth        int
	Height           int
	SiteCount        int
	Orient           Orient
	TopPower         bool
}

// RowOrientation derives the orientation a row at rowIndex should have from
// the alternating-rail parity pattern: even rows (relative to parityOffset)
// land R0, odd rows land MX, so abutting rows share a power rail. The
// placer, swapCells and refineMove use it to set a placed cell's Orient
// from the grid row it lands on; RowSpec.Orient is not consulted for that.
func RowOrientation(rowIndex, parityOffset int) Orient {
	if (rowIndex-parityOffset)%2 == 0 {
		return R0
	}
	return MX
}
