// Package cliobserver adapts dpl.Observer notifications to
// charmbracelet/log, the way matzehuels-stacktower/internal/cli attaches a
// log.Logger through its command tree.
package cliobserver

import (
	"github.com/charmbracelet/log"

	"github.com/liujizhe/OpenROAD"
)

// Observer logs every dpl.Observer notification at debug level through l.
type Observer struct {
	l *log.Logger
}

// New returns an Observer that logs through l.
func New(l *log.Logger) *Observer {
	return &Observer{l: l}
}

func (o *Observer) StartPlacement(cellCount int) {
	o.l.Debug("placement started", "cells", cellCount)
}

func (o *Observer) EndPlacement(placed, failed int) {
	o.l.Debug("placement finished", "placed", placed, "failed", failed)
}

func (o *Observer) PlaceInstance(c *dpl.Cell, from, to dpl.Pt) {
	o.l.Debug("placed instance", "cell", c.Name, "from", from, "to", to)
}

func (o *Observer) BinSearch(c *dpl.Cell, radius int, found bool) {
	o.l.Debug("bin search step", "cell", c.Name, "radius", radius, "found", found)
}

func (o *Observer) GroupPhase(name string, g *dpl.Group) {
	o.l.Debug("group phase", "phase", name, "group", g.Name)
}

func (o *Observer) ShiftMove(c *dpl.Cell, evicted int) {
	o.l.Debug("shift move", "cell", c.Name, "evicted", evicted)
}
