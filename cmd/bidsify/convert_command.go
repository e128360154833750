package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"bidsify/internal/converter"
	"bidsify/internal/logging"
	"bidsify/internal/preflight"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Copy recordings into the dataset and write metadata sidecars",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			conv := converter.New(cfg, logger)

			if !skipPreflight {
				plan, err := conv.Plan(cmd.Context())
				if err != nil {
					return err
				}
				results := preflight.Run(cfg, plan.TotalBytes())
				if !preflight.AllPassed(results) {
					fmt.Fprintln(cmd.OutOrStdout(), renderPreflight(cmd, results))
					return errors.New("preflight checks failed; fix the reported problems or rerun with --skip-preflight")
				}
			}

			summary, err := conv.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Files copied", "Sidecars", "Bytes", "Duration"},
				[][]string{{
					summary.RunID,
					fmt.Sprintf("%d", summary.FilesCopied),
					fmt.Sprintf("%d", summary.SidecarsWritten),
					humanize.Bytes(summary.BytesCopied),
					summary.Duration.Round(summaryDurationPrecision).String(),
				}},
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Run the conversion without prerequisite checks")
	return cmd
}
