package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/retirewise/retirement-planner/internal/config"
	"github.com/retirewise/retirement-planner/internal/domain"
	"github.com/retirewise/retirement-planner/internal/output"
	"github.com/retirewise/retirement-planner/internal/scenario"
	"github.com/retirewise/retirement-planner/internal/server"
	"github.com/retirewise/retirement-planner/internal/simulation"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "retireplan",
		Short: "Deterministic UK retirement drawdown planner",
		Long: `retireplan projects a household's finances year by year from the current
age to life expectancy, drawing down assets in priority order whenever income
falls short of the desired (inflation-adjusted) retirement income, and
estimates per-person tax along the way.`,
		SilenceUsage: true,
	}
	root.AddCommand(newSimulateCmd(), newServeCmd(), newExampleCmd())
	return root
}

func newSimulateCmd() *cobra.Command {
	var inputFile string
	var format string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a projection from a YAML plan file",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			timeline, err := simulation.NewEngine().Simulate(cmd.Context(), params)
			if err != nil {
				return err
			}

			result := &domain.SimulationResult{Params: *params, Timeline: timeline}
			return output.GenerateReport(cmd.OutOrStdout(), result, format)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "plan.yaml", "path to the YAML plan file")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "report format: console, csv or json")
	return cmd
}

func newServeCmd() *cobra.Command {
	var addr string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			store, err := scenario.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(simulation.NewEngine(), store, logger)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&dbPath, "db", "scenarios.db", "path to the scenario database")
	return cmd
}

func newExampleCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write a worked example plan file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.NewInputParser().WriteExampleFile(outputFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote example plan to %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "plan.yaml", "path to write the example plan")
	return cmd
}
