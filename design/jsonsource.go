package design

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/liujizhe/OpenROAD"
)

var masterTypeFromString = map[string]dpl.MasterType{
	"std":     dpl.MasterStd,
	"padded":  dpl.MasterPadded,
	"block":   dpl.MasterBlock,
	"ignored": dpl.MasterIgnored,
}

var orientFromString = map[string]dpl.Orient{"R0": dpl.R0, "MX": dpl.MX}

type snapshot struct {
	Core    rectJSON     `json:"core"`
	Rows    []rowJSON    `json:"rows"`
	Masters []masterJSON `json:"masters"`
	Cells   []cellJSON   `json:"cells"`
	Groups  []groupJSON  `json:"groups,omitempty"`
}

type rectJSON struct {
	XMin, YMin, XMax, YMax int
}

type rowJSON struct {
	OriginX, OriginY int
	SiteWidth        int
	Height           int
	SiteCount        int
	Orient           string
	TopPower         bool `json:",omitempty"`
}

type masterJSON struct {
	Name   string
	Width  int
	Height int
	Type   string
}

type cellJSON struct {
	Name      string
	Master    string
	InitX     int
	InitY     int
	PadLeft   int    `json:",omitempty"`
	PadRight  int    `json:",omitempty"`
	GroupName string `json:",omitempty"`
	Fixed     bool   `json:",omitempty"`
	X         int    `json:",omitempty"`
	Y         int    `json:",omitempty"`
	Orient    string `json:",omitempty"`
}

type groupJSON struct {
	Name     string
	Cells    []string
	Regions  []rectJSON
	Boundary rectJSON
}

func toRect(r rectJSON) dpl.Rect { return dpl.NewRect(r.XMin, r.YMin, r.XMax, r.YMax) }

func fromRect(r dpl.Rect) rectJSON {
	return rectJSON{XMin: r.XMin, YMin: r.YMin, XMax: r.XMax, YMax: r.YMax}
}

// JSONSource reads a design snapshot from JSON and accumulates placement
// results (via Sink) in memory for later re-encoding. Round trip usage is
// ReadJSONSource, then design.BuildInput, dpl.Legalize, design.ApplyResult,
// then WriteJSON.
type JSONSource struct {
	snap     snapshot
	failures map[string]bool
}

// ReadJSONSource decodes a design snapshot from r.
func ReadJSONSource(r io.Reader) (*JSONSource, error) {
	var snap snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode design snapshot: %w", err)
	}
	return &JSONSource{snap: snap, failures: map[string]bool{}}, nil
}

// ImportJSONSource opens path and decodes it with ReadJSONSource.
func ImportJSONSource(path string) (*JSONSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSONSource(f)
}

func (s *JSONSource) Core() dpl.Rect { return toRect(s.snap.Core) }

func (s *JSONSource) Rows() []dpl.RowSpec {
	rows := make([]dpl.RowSpec, len(s.snap.Rows))
	for i, r := range s.snap.Rows {
		rows[i] = dpl.RowSpec{
			OriginX: r.OriginX, OriginY: r.OriginY,
			SiteWidth: r.SiteWidth, Height: r.Height, SiteCount: r.SiteCount,
			Orient: orientFromString[r.Orient], TopPower: r.TopPower,
		}
	}
	return rows
}

func (s *JSONSource) Masters() []MasterSpec {
	masters := make([]MasterSpec, len(s.snap.Masters))
	for i, m := range s.snap.Masters {
		masters[i] = MasterSpec{Name: m.Name, Width: m.Width, Height: m.Height, Type: masterTypeFromString[m.Type]}
	}
	return masters
}

func (s *JSONSource) Cells() []CellSpec {
	cells := make([]CellSpec, len(s.snap.Cells))
	for i, c := range s.snap.Cells {
		cells[i] = CellSpec{
			Name: c.Name, Master: c.Master, InitX: c.InitX, InitY: c.InitY,
			PadLeft: c.PadLeft, PadRight: c.PadRight, GroupName: c.GroupName,
			Fixed: c.Fixed, X: c.X, Y: c.Y, Orient: orientFromString[c.Orient],
		}
	}
	return cells
}

func (s *JSONSource) Groups() []GroupSpec {
	groups := make([]GroupSpec, len(s.snap.Groups))
	for i, g := range s.snap.Groups {
		regions := make([]dpl.Rect, len(g.Regions))
		for j, r := range g.Regions {
			regions[j] = toRect(r)
		}
		groups[i] = GroupSpec{Name: g.Name, Cells: g.Cells, Regions: regions, Boundary: toRect(g.Boundary)}
	}
	return groups
}

// SetLocation implements Sink by recording the outcome for later encoding.
func (s *JSONSource) SetLocation(name string, x, y int, orient dpl.Orient) {
	for i, c := range s.snap.Cells {
		if c.Name == name {
			s.snap.Cells[i].X, s.snap.Cells[i].Y = x, y
			s.snap.Cells[i].Orient = orient.String()
			return
		}
	}
}

// RecordFailure implements Sink by remembering which cells failed. The set
// is kept in memory only; WriteJSON does not write it.
func (s *JSONSource) RecordFailure(name string) { s.failures[name] = true }

// WriteJSON re-encodes the (now updated) snapshot to w.
func (s *JSONSource) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.snap); err != nil {
		return fmt.Errorf("encode design snapshot: %w", err)
	}
	return nil
}

// ExportJSON writes the updated snapshot to path.
func (s *JSONSource) ExportJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return s.WriteJSON(f)
}

// resultReport is the shape WriteResultJSON and ReadResultReport use for
// `legalize report`'s prior-run artifact.
type resultReport struct {
	RunID               string   `json:"run_id"`
	PlacedCount         int      `json:"placed_count"`
	TotalDisplacement   int64    `json:"total_displacement"`
	MaxDisplacement     int      `json:"max_displacement"`
	AverageDisplacement float64  `json:"average_displacement"`
	Failures            []string `json:"failures,omitempty"`
}

// WriteResultJSON writes res's stats and failures as a small report
// artifact, separate from the design snapshot.
func WriteResultJSON(res *dpl.Result, w io.Writer) error {
	rep := resultReport{
		RunID:               res.RunID,
		PlacedCount:         res.Stats.PlacedCount,
		TotalDisplacement:   res.Stats.TotalDisplacement,
		MaxDisplacement:     res.Stats.MaxDisplacement,
		AverageDisplacement: res.Stats.AverageDisplacement,
	}
	for _, f := range res.Failures {
		rep.Failures = append(rep.Failures, f.CellName)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode result report: %w", err)
	}
	return nil
}

// ReadResultReport decodes a report previously written by WriteResultJSON,
// for `legalize report`.
func ReadResultReport(r io.Reader) (runID string, placed int, totalDisp int64, maxDisp int, avgDisp float64, failures []string, err error) {
	var rep resultReport
	if err = json.NewDecoder(r).Decode(&rep); err != nil {
		err = fmt.Errorf("decode result report: %w", err)
		return
	}
	return rep.RunID, rep.PlacedCount, rep.TotalDisplacement, rep.MaxDisplacement, rep.AverageDisplacement, rep.Failures, nil
}
