package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/opendhw/app"
	"github.com/kilianp07/opendhw/config"
	"github.com/kilianp07/opendhw/infra/logger"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Synthesize one year of draw-offs and export the series",
	RunE:  generate,
}

func init() {
	f := generateCmd.Flags()
	f.Int64("seed", 0, "random seed, 0 picks one")
	f.Int("step", 0, "timestep in seconds")
	f.String("method", "", "flow distribution: beta or gaussian")
	f.String("strategy", "", "placement: drawoffs or average_profile")
	f.StringP("out", "o", "", "output file, - for stdout")
	f.String("format", "", "output format: csv or json")
	f.String("chart", "", "render an HTML chart of the series")
	rootCmd.AddCommand(generateCmd)
}

// applyFlags overrides configuration values with the flags set on cmd.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	var err error
	if f.Changed("seed") {
		if cfg.Synthesis.Seed, err = f.GetInt64("seed"); err != nil {
			return err
		}
	}
	if f.Changed("step") {
		if cfg.Synthesis.StepSeconds, err = f.GetInt("step"); err != nil {
			return err
		}
	}
	if f.Changed("method") {
		if cfg.Synthesis.Method, err = f.GetString("method"); err != nil {
			return err
		}
	}
	if f.Changed("strategy") {
		if cfg.Synthesis.Strategy, err = f.GetString("strategy"); err != nil {
			return err
		}
	}
	if f.Changed("out") {
		if cfg.Output.Path, err = f.GetString("out"); err != nil {
			return err
		}
	}
	if f.Changed("format") {
		if cfg.Output.Format, err = f.GetString("format"); err != nil {
			return err
		}
	}
	if f.Changed("chart") {
		if cfg.Output.Chart, err = f.GetString("chart"); err != nil {
			return err
		}
	}
	return cfg.Validate()
}

func generate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	svc.SetStdout(cmd.OutOrStdout())
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	_, _, err = svc.Run(ctx)
	return err
}
