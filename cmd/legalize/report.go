package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liujizhe/OpenROAD/design"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <result.json>",
		Short: "Pretty-print a prior run's result report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(args[0])
		},
	}
}

func runReport(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	runID, placed, totalDisp, maxDisp, avgDisp, failures, err := design.ReadResultReport(f)
	if err != nil {
		return err
	}

	fmt.Printf("run:                  %s\n", runID)
	fmt.Printf("placed cells:         %d\n", placed)
	fmt.Printf("total displacement:   %d\n", totalDisp)
	fmt.Printf("max displacement:     %d\n", maxDisp)
	fmt.Printf("average displacement: %.2f\n", avgDisp)
	if len(failures) > 0 {
		fmt.Printf("failures (%d):        %s\n", len(failures), strings.Join(failures, ", "))
	} else {
		fmt.Println("failures:             none")
	}
	return nil
}
