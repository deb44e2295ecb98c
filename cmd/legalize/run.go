package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liujizhe/OpenROAD"
	"github.com/liujizhe/OpenROAD/design"
	"github.com/liujizhe/OpenROAD/internal/cliobserver"
	"github.com/liujizhe/OpenROAD/vizobserver"
)

var (
	runConfigPath string
	runOutPath    string
	runReportPath string
	runSVGPath    string
)

// multiObserver fans every dpl.Observer notification out to each of its
// members, so `run --svg` can record placements for rendering without
// losing the CLI's debug logging.
type multiObserver []dpl.Observer

func (m multiObserver) StartPlacement(n int) {
	for _, o := range m {
		o.StartPlacement(n)
	}
}

func (m multiObserver) EndPlacement(placed, failed int) {
	for _, o := range m {
		o.EndPlacement(placed, failed)
	}
}

func (m multiObserver) PlaceInstance(c *dpl.Cell, from, to dpl.Pt) {
	for _, o := range m {
		o.PlaceInstance(c, from, to)
	}
}

func (m multiObserver) BinSearch(c *dpl.Cell, radius int, found bool) {
	for _, o := range m {
		o.BinSearch(c, radius, found)
	}
}

func (m multiObserver) GroupPhase(name string, g *dpl.Group) {
	for _, o := range m {
		o.GroupPhase(name, g)
	}
}

func (m multiObserver) ShiftMove(c *dpl.Cell, evicted int) {
	for _, o := range m {
		o.ShiftMove(c, evicted)
	}
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <snapshot.json>",
		Short: "Legalize a design snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLegalize(args[0])
		},
	}
	cmd.Flags().StringVar(&runConfigPath, "config", "", "TOML config file (defaults to dpl.DefaultConfig())")
	cmd.Flags().StringVar(&runOutPath, "out", "", "output snapshot path (defaults to overwriting the input)")
	cmd.Flags().StringVar(&runReportPath, "report", "", "write a result report JSON to this path")
	cmd.Flags().StringVar(&runSVGPath, "svg", "", "render the placement to an SVG file at this path")
	return cmd
}

func runLegalize(snapshotPath string) error {
	l := logger()

	cfg := dpl.DefaultConfig()
	if runConfigPath != "" {
		var err error
		cfg, err = dpl.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	src, err := design.ImportJSONSource(snapshotPath)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	rec := vizobserver.New()
	obs := dpl.Observer(cliobserver.New(l))
	if runSVGPath != "" {
		obs = multiObserver{obs, rec}
	}

	in := design.BuildInput(src, cfg, obs)

	var res *dpl.Result
	var legalizeErr error
	if runErr := dpl.Run(func() {
		res, legalizeErr = dpl.Legalize(in)
	}); runErr != nil {
		return fmt.Errorf("legalize: %w", runErr)
	}
	if legalizeErr != nil {
		return fmt.Errorf("legalize: %w", legalizeErr)
	}
	l.Info("legalization complete", "placed", res.Stats.PlacedCount, "failed", len(res.Failures))

	design.ApplyResult(res, src)

	outPath := runOutPath
	if outPath == "" {
		outPath = snapshotPath
	}
	if err := src.ExportJSON(outPath); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	if runReportPath != "" {
		f, err := os.Create(runReportPath)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		if err := design.WriteResultJSON(res, f); err != nil {
			return err
		}
	}

	if runSVGPath != "" {
		svg, err := rec.RenderSVG()
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
		if err := os.WriteFile(runSVGPath, svg, 0o644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}

	return nil
}

