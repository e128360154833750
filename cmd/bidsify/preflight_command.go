package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bidsify/internal/converter"
	"bidsify/internal/logging"
	"bidsify/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check conversion prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// Size the free-space check off the actual plan when the source
			// tree is scannable; fall back to zero when it is not, so the
			// directory checks still report.
			var requiredBytes uint64
			if plan, planErr := converter.New(cfg, logging.NewNop()).Plan(cmd.Context()); planErr == nil {
				requiredBytes = plan.TotalBytes()
			}

			results := preflight.Run(cfg, requiredBytes)
			fmt.Fprintln(cmd.OutOrStdout(), renderPreflight(cmd, results))
			if !preflight.AllPassed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}

func renderPreflight(cmd *cobra.Command, results []preflight.Result) string {
	colorize := shouldColorize(cmd.OutOrStdout())
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		rows = append(rows, []string{result.Name, statusCell(result.Passed, colorize), result.Detail})
	}
	return renderTable(
		[]string{"Check", "Status", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	)
}
