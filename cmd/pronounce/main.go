// Command pronounce resolves words to pronunciation audio URLs from the
// command line. See internal/cli for flags.
//
// Exit codes: 0 = every word resolved or reported as not found,
// 1 = a word was blank, a lookup failed, or configuration was invalid.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/pronounce/internal/app"
	"github.com/heartmarshall/pronounce/internal/cli"
	"github.com/heartmarshall/pronounce/internal/config"
	"github.com/heartmarshall/pronounce/internal/metrics"
)

func main() {
	_ = godotenv.Load()

	flags := cli.NewFlags()
	rootCmd := cli.CreateRootCommand(flags, app.BuildVersion())

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile(flags.ConfigFile)
		if err != nil {
			return err
		}
		logger := app.NewLogger(cfg.Log)

		// Metrics are collected but not exported from the CLI.
		resolver := app.NewResolver(cfg, metrics.New(prometheus.NewRegistry()), logger)

		return cli.Run(cmd, args, flags, resolver.Service, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
