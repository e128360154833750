package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"bidsify/internal/bids"
	"bidsify/internal/converter"
	"bidsify/internal/logging"
)

const summaryDurationPrecision = time.Millisecond

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show what a conversion would write, without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			plan, err := converter.New(cfg, logging.NewNop()).Plan(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(plan.Actions))
			for _, action := range plan.Actions {
				size := ""
				if action.Kind == bids.ArtifactRecording {
					size = humanize.Bytes(action.Bytes)
				}
				rows = append(rows, []string{
					action.Subject.String(),
					string(action.Modality),
					string(action.Kind),
					action.Destination,
					size,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Task %s: %d actions, %s\n", plan.TaskLabel, len(plan.Actions), humanize.Bytes(plan.TotalBytes()))
			fmt.Fprintln(out, renderTable(
				[]string{"Subject", "Modality", "Artifact", "Destination", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}
