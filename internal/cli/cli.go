// Package cli wires the projection engine, config parser, storage and output
// formatters into the finarch command tree.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/finarch/finance-architect/internal/calculation"
	"github.com/finarch/finance-architect/internal/config"
	"github.com/finarch/finance-architect/internal/output"
	"github.com/finarch/finance-architect/internal/storage"
)

var (
	flagDB      string
	flagVerbose bool
)

// NewRootCommand builds the finarch command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "finarch",
		Short: "Personal finance architect: multi-phase net-worth projections",
		Long: `finarch simulates a monthly income/expense profile and a set of creditors
through debt repayment, emergency-fund accumulation and investing, and reports
the resulting net-worth trajectory and debt payoff schedule.`,
		SilenceUsage: true,
	}

	defaultDB := os.Getenv("FINARCH_DB")
	if defaultDB == "" {
		defaultDB = "finarch.db"
	}
	root.PersistentFlags().StringVar(&flagDB, "db", defaultDB, "path to the plan database")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newProjectCommand())
	root.AddCommand(newCompareCommand())
	root.AddCommand(newProfileCommand())
	root.AddCommand(newExampleCommand())
	return root
}

func newEngine() *calculation.SimulationEngine {
	engine := calculation.NewSimulationEngine()
	engine.SetLogger(calculation.StdLogger{
		L:       log.New(os.Stderr, "", log.LstdFlags),
		Verbose: flagVerbose,
	})
	return engine
}

// loadInput reads the plan input from a YAML file when given, otherwise from
// the stored profile.
func loadInput(cmd *cobra.Command, configPath string) (*config.PlanInput, error) {
	if configPath != "" {
		return config.NewInputParser().LoadFromFile(configPath)
	}

	repo, err := storage.Open(flagDB)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	input, err := repo.LoadPlanInput(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load stored profile (use --config or 'profile save'): %w", err)
	}
	return input, nil
}

func newProjectCommand() *cobra.Command {
	var (
		configPath string
		format     string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run the projection and print or write the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := loadInput(cmd, configPath)
			if err != nil {
				return err
			}

			result, err := newEngine().RunPlan(cmd.Context(), input.Profile, input.Creditors)
			if err != nil {
				return err
			}

			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (console, csv, json)", format)
			}
			data, err := formatter.Format(result)
			if err != nil {
				return fmt.Errorf("format result: %w", err)
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, data, 0644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "plan input YAML file (default: stored profile)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console, csv or json")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write output to file instead of stdout")
	return cmd
}

func newCompareCommand() *cobra.Command {
	var (
		configPath string
		sideIncome float64
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare payoff strategies, or a side-income scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := loadInput(cmd, configPath)
			if err != nil {
				return err
			}
			engine := newEngine()

			if cmd.Flags().Changed("side-income") {
				cmp, err := engine.CompareSideIncome(cmd.Context(), input.Profile,
					input.Creditors, decimal.NewFromFloat(sideIncome))
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(output.FormatSideIncomeComparison(cmp))
				return err
			}

			cmp, err := engine.CompareStrategies(cmd.Context(), input.Profile, input.Creditors)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(output.FormatStrategyComparison(cmp))
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "plan input YAML file (default: stored profile)")
	cmd.Flags().Float64Var(&sideIncome, "side-income", 0, "extra monthly income to compare against the baseline")
	return cmd
}

func newProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the stored profile and creditor list",
	}

	var configPath string
	save := &cobra.Command{
		Use:   "save",
		Short: "Save a plan input YAML file as the stored profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := config.NewInputParser().LoadFromFile(configPath)
			if err != nil {
				return err
			}

			repo, err := storage.Open(flagDB)
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.SavePlanInput(cmd.Context(), input); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "profile saved")
			return nil
		},
	}
	save.Flags().StringVarP(&configPath, "config", "c", "", "plan input YAML file")
	save.MarkFlagRequired("config")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the stored profile as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := storage.Open(flagDB)
			if err != nil {
				return err
			}
			defer repo.Close()

			input, err := repo.LoadPlanInput(cmd.Context())
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(input)
			if err != nil {
				return fmt.Errorf("marshal profile: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(save, show)
	return cmd
}

func newExampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example [path]",
		Short: "Write a starter plan input YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "plan.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.NewInputParser().WriteExampleFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}
