// Package cli implements the swiftstock command line.
package cli

import (
	"fmt"
	"io"

	"swiftstock/internal/app"
	"swiftstock/internal/config"
	"swiftstock/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootOptions struct {
	configFile string
}

// NewRootCommand builds the swiftstock command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "swiftstock",
		Short:         "SwiftStock inventory manager",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to a config file (yaml, toml or json)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newBootstrapCommand(opts))
	cmd.AddCommand(newLoginCommand(opts))
	cmd.AddCommand(newLogoutCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newAccountsCommand(opts))
	cmd.AddCommand(newUpdateAccountCommand(opts))
	cmd.AddCommand(newResetAccountsCommand(opts))
	cmd.AddCommand(newEventsCommand(opts))
	return cmd
}

func (o *rootOptions) loadConfig() (config.Config, io.Closer, error) {
	cfg, err := config.Load(viper.New(), o.configFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	closer, err := logging.Setup(logging.RotationConfig{
		File:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
		MaxFiles:  cfg.LogMaxFiles,
	})
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, closer, nil
}

// withApp runs fn against a fully initialized app and releases it afterwards.
func (o *rootOptions) withApp(fn func(a *app.App) error) error {
	cfg, logCloser, err := o.loadConfig()
	if err != nil {
		return err
	}
	defer logCloser.Close()

	a, err := app.New(cfg)
	if err != nil {
		return err
	}

	runErr := fn(a)
	if err := a.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close: %w", err)
	}
	return runErr
}
