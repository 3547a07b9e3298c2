package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"record-region/src/config"
	"record-region/src/opener"
	"record-region/src/runtimeinit"
	"record-region/src/session"
)

type cliOptions struct {
	configPath string
	verbose    bool
}

// Replaced in tests.
var (
	recordAction        = runRecord
	audioSettingsAction = runAudioSettings
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return runWithArgs(os.Args)
}

func runWithArgs(args []string) error {
	if len(args) == 0 {
		args = []string{"record-region"}
	}

	opts := &cliOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "record-region",
		Short:         "Toggle recording of a selected screen region",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return recordAction(cmd.Context(), *opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.json (default: next to the executable)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output to stderr")

	cmd.AddCommand(&cobra.Command{
		Use:   "record",
		Short: "Start a recording, or stop the running one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return recordAction(cmd.Context(), *opts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "audio-settings",
		Short: "Open the recorder's audio settings page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return audioSettingsAction(*opts)
		},
	})

	return cmd
}

func runRecord(ctx context.Context, opts cliOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := runtimeinit.Bootstrap(runtimeinit.Options{
		LoadOptions: config.LoadOptions{ConfigPathOverride: opts.configPath},
		Verbose:     opts.verbose,
		Stderr:      os.Stderr,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Logger.Sync() }()

	outcome, err := rt.Controller.Toggle(ctx)
	if err != nil {
		return err
	}
	if outcome == session.OutcomeCancelled {
		rt.Logger.Infow("nothing to do, selection cancelled")
	}
	return nil
}

func runAudioSettings(opts cliOptions) error {
	cfg, err := config.LoadWithOptions(config.LoadOptions{ConfigPathOverride: opts.configPath})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.verbose {
		fmt.Fprintf(os.Stderr, "[verbose] Opening %s\n", cfg.SettingsURL)
	}
	return opener.Open(cfg.SettingsURL, nil)
}
