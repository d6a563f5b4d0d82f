// Command chessbot runs the bot: it connects to the platform's event
// stream, accepts challenges under the configured policy, and plays each
// game through an external engine process.
//
// Configuration comes from the environment (optionally a .env file); the
// engine binary is named on the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/greypawn/chessbot"
	"github.com/greypawn/chessbot/config"
	"github.com/greypawn/chessbot/engine/extproc"
	"github.com/greypawn/chessbot/logging"
)

func main() {
	cmd := &cli.Command{
		Name:  "chessbot",
		Usage: "correspondence bot client for lichess-style game platforms",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "load environment variables from `FILE`",
			},
			&cli.StringFlag{
				Name:     "engine",
				Usage:    "path to the engine binary",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "engine-arg",
				Usage: "argument passed to the engine binary (repeatable)",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "chessbot:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if file := cmd.String("env-file"); file != "" {
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
	} else {
		// A missing default .env is fine; the environment may be complete.
		godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(&logging.Config{Level: level, Format: cfg.LogFormat})

	engines := extproc.FactoryWithLogger(logger.WithComponent("engine"), cmd.String("engine"), cmd.StringSlice("engine-arg")...)

	bot, err := chessbot.New(cfg, engines, func(o *chessbot.Options) {
		o.Logger = logger
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting bot", "account", cfg.Account, "max_games", cfg.MaxConcurrentSessions)
	return bot.Run(ctx)
}
