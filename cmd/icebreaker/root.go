package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/icebreaker/internal/app"
	"github.com/MrSnakeDoc/icebreaker/internal/config"
	"github.com/MrSnakeDoc/icebreaker/internal/icebreaker"
	"github.com/MrSnakeDoc/icebreaker/internal/logger"
)

type generator interface {
	Generate(ctx context.Context, req icebreaker.Request) (icebreaker.Result, error)
}

// env holds what the commands need from the outside world.
type env struct {
	loadConfig func() *config.Config
	newLogger  func(cfg *config.Config) logger.Logger
	build      func(ctx context.Context, cfg *config.Config, log logger.Logger) (generator, func(), error)
	serve      func(ctx context.Context, cfg *config.Config, log logger.Logger) error
	stdout     io.Writer
	stderr     io.Writer
}

func defaultEnv() env {
	return env{
		loadConfig: config.Load,
		newLogger: func(cfg *config.Config) logger.Logger {
			return logger.New(cfg.LogLevel, cfg.PrettyLog)
		},
		build: func(ctx context.Context, cfg *config.Config, log logger.Logger) (generator, func(), error) {
			c, err := app.Build(ctx, cfg, log)
			if err != nil {
				return nil, nil, err
			}
			return c.Service, func() { c.Close(log) }, nil
		},
		serve: func(ctx context.Context, cfg *config.Config, log logger.Logger) error {
			a, err := app.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			return a.Run()
		},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func newRootCmd(e env) *cobra.Command {
	root := &cobra.Command{
		Use:   "icebreaker",
		Short: "Generate LinkedIn outreach openers from two profiles",
		Long: `icebreaker reads the public LinkedIn profiles and recent posts of a sender
and a receiver, and asks a language model for short personalised opening
messages.

Run without a subcommand to start the HTTP server.

Configuration is read from the environment (RAPIDAPI_KEY, OPENAI_API_KEY,
GEMINI_API_KEY, ICEBREAKER_*).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, e)
		},
	}
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)

	root.AddCommand(newServeCmd(e), newGenerateCmd(e), newStylesCmd(e), newVersionCmd())
	return root
}

func newServeCmd(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, e)
		},
	}
}

func runServe(cmd *cobra.Command, e env) error {
	cfg := e.loadConfig()
	log := e.newLogger(cfg)
	if err := e.serve(cmd.Context(), cfg, log); err != nil {
		log.Error("❌ icebreaker failed", logger.Error(err))
		return err
	}
	return nil
}
