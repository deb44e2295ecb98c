package design

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/liujizhe/OpenROAD"
)

const sampleSnapshot = `{
  "core": {"XMin": 0, "YMin": 0, "XMax": 2000, "YMax": 1000},
  "rows": [
    {"OriginX": 0, "OriginY": 0, "SiteWidth": 200, "Height": 1000, "SiteCount": 10, "Orient": "R0"}
  ],
  "masters": [
    {"Name": "INV_X1", "Width": 200, "Height": 1000, "Type": "std"}
  ],
  "cells": [
    {"Name": "c1", "Master": "INV_X1", "InitX": 50, "InitY": 0},
    {"Name": "c2", "Master": "INV_X1", "InitX": 250, "InitY": 0}
  ]
}`

func TestReadJSONSourceRoundTrip(t *testing.T) {
	src, err := ReadJSONSource(strings.NewReader(sampleSnapshot))
	require.NoError(t, err)

	require.Equal(t, dpl.NewRect(0, 0, 2000, 1000), src.Core())
	require.Len(t, src.Rows(), 1)
	require.Equal(t, 200, src.Rows()[0].SiteWidth)
	require.Len(t, src.Masters(), 1)
	require.Equal(t, dpl.MasterStd, src.Masters()[0].Type)
	require.Len(t, src.Cells(), 2)

	src.SetLocation("c1", 0, 0, dpl.R0)
	src.SetLocation("c2", 200, 0, dpl.R0)
	src.RecordFailure("c3")

	var buf bytes.Buffer
	require.NoError(t, src.WriteJSON(&buf))

	roundTripped, err := ReadJSONSource(&buf)
	require.NoError(t, err)
	cells := roundTripped.Cells()
	require.Equal(t, 0, cells[0].X)
	require.Equal(t, 200, cells[1].X)
	require.Equal(t, dpl.R0, cells[0].Orient)
}

func TestBuildInputAndApplyResult(t *testing.T) {
	src, err := ReadJSONSource(strings.NewReader(sampleSnapshot))
	require.NoError(t, err)

	in := BuildInput(src, dpl.DefaultConfig(), nil)
	require.Len(t, in.Cells, 2)
	require.NotNil(t, in.Cells[0].Master)

	res, err := dpl.Legalize(in)
	require.NoError(t, err)
	require.Empty(t, res.Failures)

	ApplyResult(res, src)
	updated := src.Cells()
	require.Equal(t, 0, updated[0].X, "c1 should have landed on the first site")
	require.Equal(t, 200, updated[1].X, "c2 should have landed on the second site")
}

func TestWriteAndReadResultReport(t *testing.T) {
	res := &dpl.Result{
		RunID: "test-run",
		Stats: dpl.Stats{PlacedCount: 2, TotalDisplacement: 150, MaxDisplacement: 100, AverageDisplacement: 75},
		Failures: []dpl.PlacementFailure{
			{CellName: "c3", Reason: "no legal site"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResultJSON(res, &buf))

	runID, placed, totalDisp, maxDisp, avgDisp, failures, err := ReadResultReport(&buf)
	require.NoError(t, err)
	require.Equal(t, "test-run", runID)
	require.Equal(t, 2, placed)
	require.EqualValues(t, 150, totalDisp)
	require.Equal(t, 100, maxDisp)
	require.Equal(t, 75.0, avgDisp)
	require.Equal(t, []string{"c3"}, failures)
}
