package dpl

// Observer receives notifications as Legalize runs. The core never logs or
// renders anything itself (that belongs to an external collaborator); an
// Observer is how a caller taps into the run without the core depending on
// any particular logging or visualization library. A nil Observer is
// treated as noopObserver, so callers that don't care can pass nil.
type Observer interface {
	// StartPlacement fires once, before any cell moves.
	StartPlacement(cellCount int)
	// EndPlacement fires once, after every pass completes.
	EndPlacement(placed, failed int)
	// PlaceInstance fires each time mapMoveAt paints a cell at a diamond
	// search result (global placer pass, shiftMove, group pre-placement,
	// bulk placement and brick packing). Moves made by refineMove and
	// swapCells do not fire it.
	PlaceInstance(cell *Cell, from, to Pt)
	// BinSearch fires once per diamond search step, reporting the radius
	// reached and whether it found a legal point.
	BinSearch(cell *Cell, radius int, found bool)
	// GroupPhase fires at the start of each named per-group phase
	// (prePlaceGroups, placeGroups2, brickPlace1, brickPlace2, groupRefine,
	// randomSwap). prePlace, which is not per group, does not fire it.
	GroupPhase(name string, group *Group)
	// ShiftMove fires when shiftMove evicts neighbors to make room,
	// reporting how many cells were evicted.
	ShiftMove(cell *Cell, evicted int)
}

// noopObserver discards every notification. It is the zero-value fallback
// used whenever Legalize is called with a nil Observer.
type noopObserver struct{}

func (noopObserver) StartPlacement(int)          {}
func (noopObserver) EndPlacement(int, int)       {}
func (noopObserver) PlaceInstance(*Cell, Pt, Pt) {}
func (noopObserver) BinSearch(*Cell, int, bool)  {}
func (noopObserver) GroupPhase(string, *Group)   {}
func (noopObserver) ShiftMove(*Cell, int)        {}

func observerOrNoop(o Observer) Observer {
	if o == nil {
		return noopObserver{}
	}
	return o
}
