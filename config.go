package dpl

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable the placement algorithms depend on. None of
// these have a "natural" value derivable from the design itself; changing
// any of them changes the legalized output, so they must be set explicitly
// rather than inferred.
type Config struct {
	// MaxDisplacementX bounds the diamond search horizontally, in sites.
	MaxDisplacementX int `toml:"max_displacement_x"`
	// MaxDisplacementY bounds the diamond search vertically, in microns,
	// scaled internally to the grid's base row height.
	MaxDisplacementY int `toml:"max_displacement_y"`
	// BinSearchWidth is the number of candidate x-positions scanned per row
	// during a diamond search step.
	BinSearchWidth int `toml:"bin_search_width"`
	// ShiftMoveMargin multiplies a cell's padded width to get the eviction
	// radius shiftMove searches within.
	ShiftMoveMargin int `toml:"shift_move_margin"`
	// BrickUtilThreshold selects the brick-packing variant placeGroups2 falls
	// back to after a failed bulk placement: above it brickPlace1 (pack
	// toward the group boundary), otherwise brickPlace2 (pack toward each
	// cell's region).
	BrickUtilThreshold float64 `toml:"brick_util_threshold"`
	// AnnealItersPerCell scales the number of random-swap iterations in the
	// group anneal pass: iterations = AnnealItersPerCell * len(cells).
	AnnealItersPerCell int `toml:"anneal_iters_per_cell"`
	// RefinePasses is the number of refine/anneal rounds run per group.
	RefinePasses int `toml:"refine_passes"`
	// RefineEarlyExit ends a group's refine/anneal rounds once a round's
	// refine step moves fewer than this many cells.
	RefineEarlyExit int `toml:"refine_early_exit"`
	// AnnealEarlyExit ends a group's refine/anneal rounds once a round's
	// random-swap step accepts fewer than this many swaps.
	AnnealEarlyExit int `toml:"anneal_early_exit"`
	// GroupRefinePercent is the fraction of a group's cells, most displaced
	// first, that groupRefine tries to move each round (1.0 = all). The
	// random-swap step is not limited by it.
	GroupRefinePercent float64 `toml:"group_refine_percent"`
	// DisallowOneSiteGaps rejects placements that would leave a single
	// empty site abutting another cell.
	DisallowOneSiteGaps bool `toml:"disallow_one_site_gaps"`
	// OrientParityOffset shifts which row index is considered "even" when
	// deriving row orientation from the alternating-rail parity pattern.
	OrientParityOffset int `toml:"orient_parity_offset"`
	// RandSeed seeds the random pair selection of the group random-swap
	// step (reapplied at the start of every randomSwap call), so a run is
	// reproducible. Brick packing uses no randomness.
	RandSeed int64 `toml:"rand_seed"`
}

// DefaultConfig returns the tuning the original legalizer ships with.
// Every value here was chosen to match observed-good behavior on real
// designs, not derived from first principles -- do not "simplify" them.
func DefaultConfig() Config {
	return Config{
		MaxDisplacementX:    500,
		MaxDisplacementY:    100,
		BinSearchWidth:      5,
		ShiftMoveMargin:     3,
		BrickUtilThreshold:  0.95,
		AnnealItersPerCell:  100,
		RefinePasses:        3,
		RefineEarlyExit:     10,
		AnnealEarlyExit:     100,
		GroupRefinePercent:  1.0,
		DisallowOneSiteGaps: false,
		OrientParityOffset:  0,
		RandSeed:            0,
	}
}

// LoadConfig reads a TOML file and overlays it on DefaultConfig, so a file
// that sets only a handful of fields still gets sane values for the rest.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
