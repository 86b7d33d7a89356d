// Package main is the entry point for the charbuilder CLI
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/rpg-charbuilder/internal/config"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

var (
	configFile string
	envFiles   []string

	v   = viper.New()
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "charbuilder",
	Short: "D&D 5e character builder",
	Long: `charbuilder builds D&D 5e characters from the SRD. Fields you set are
locked; everything else is filled in randomly and kept rules-consistent.
Finished characters export as Foundry VTT actor JSON or a text statblock.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errors.Display(err))
		os.Exit(errors.GetCode(err).ExitCode())
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	flags.StringSliceVar(&envFiles, "env-file", nil, "env files to load before reading CHARBUILDER_* variables (default .env)")
	flags.String(config.KeyData, config.DefaultDataDir, "directory holding the 5e-SRD-*.json files")
	flags.Bool(config.KeyRemote, false, "read races, spells and equipment from the D&D 5e API")
	flags.String(config.KeyRemoteURL, config.DefaultRemoteURL, "base URL of the D&D 5e API")
	flags.String(config.KeyOverrides, "", "directory holding names.csv and hometowns.csv")
	flags.String(config.KeyTuning, "", "tuning profile (yaml)")
	flags.String(config.KeyLogLevel, config.DefaultLogLevel, "log level: debug, info, warn, error")
	flags.String(config.KeyRedis, config.DefaultRedisAddr, "redis address, or a comma separated list for a cluster")
	flags.String(config.KeyRedisMaster, "", "sentinel master name; --redis then lists the sentinels")
	flags.Duration(config.KeyDraftTTL, config.DefaultDraftTTL, "how long an untouched draft is kept")

	for _, key := range []string{
		config.KeyData, config.KeyRemote, config.KeyRemoteURL, config.KeyOverrides, config.KeyTuning,
		config.KeyLogLevel, config.KeyRedis, config.KeyRedisMaster, config.KeyDraftTTL,
	} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(draftCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	config.LoadEnv(envFiles...)
	if err := config.Bind(v, configFile); err != nil {
		return err
	}

	loaded, err := config.Load(v)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid configuration")
	}
	cfg = loaded

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.Debug("Configuration loaded",
		"data", cfg.DataDir,
		"remote", cfg.Remote,
		"tuning", cfg.TuningFile,
		"overrides", cfg.OverridesDir)
	return nil
}
