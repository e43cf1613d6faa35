// Package cmd implements the shoecare-seed command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"shoecare/config"
	"shoecare/services/seeder"
	"shoecare/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configFile string
	cfg        *config.Config
	logger     *zap.Logger
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, nil)
}

// run executes args. A non-nil logger replaces the one built from configuration.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, logger *zap.Logger) int {
	a := &app{logger: logger}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.logger != nil {
		defer a.logger.Sync() //nolint:errcheck
	}
	if err == nil {
		return 0
	}

	if a.logger == nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	var se *seeder.SeedError
	if errors.As(err, &se) {
		a.logger.Error("Error seeding services", zap.String("stage", string(se.Stage)), zap.Error(se.Err))
	} else {
		a.logger.Error("Command failed", zap.Error(err))
	}
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "shoecare-seed",
		Short:         "Replace the shoe-care service catalog in MongoDB",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			if a.logger == nil {
				logger, err := utils.NewLogger(cfg)
				if err != nil {
					return err
				}
				a.logger = logger
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "path to a configuration file (default ./config.yaml if present)")

	seed := newSeedCmd(a)
	root.AddCommand(seed, newCatalogCmd(a), newVerifyCmd(a))

	// Running the binary without a subcommand performs a seed run.
	root.RunE = seed.RunE
	root.Flags().AddFlagSet(seed.Flags())
	return root
}
