package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/okanv/sitelint/internal/audit"
	"github.com/okanv/sitelint/internal/platform/config"
	"github.com/okanv/sitelint/internal/platform/logger"
	"github.com/okanv/sitelint/internal/runner"
	"github.com/okanv/sitelint/internal/watch"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"), cmd.IsSet("config"))
	if err != nil {
		return err
	}
	if cmd.IsSet("home") {
		cfg.Home = cmd.String("home")
	}

	root := cmd.String("root")
	log := logger.New(cfg.LogLevel)

	checker := audit.NewChecker(cfg.Checker.Concurrency, cfg.Checker.Timeout(), cfg.Checker.BlockPrivateHosts)
	engine := audit.NewEngine(root, cfg.Home, audit.Options{
		RequireNoopener:        cfg.Rules.RequireNoopener,
		ExtraIgnorePaths:       cfg.Ignore.Paths,
		ExtraIgnoreFiles:       cfg.Ignore.Files,
		ExtraIgnoreURLPrefixes: cfg.Ignore.URLPrefixes,
	}, checker, log)
	svc := runner.NewService(engine, log, os.Stdout)

	if cmd.Bool("watch") {
		once := func(ctx context.Context) error {
			_, execErr := svc.Execute(ctx)
			return execErr
		}
		if err := once(ctx); err != nil {
			log.Error("initial audit failed", "error", err)
		}
		return watch.Watch(ctx, root, log, once)
	}

	result, err := svc.Execute(ctx)
	if err != nil {
		return err
	}
	if cmd.Bool("strict") && result.ErrorCount() > 0 {
		return cli.Exit(fmt.Sprintf("strict mode: %d error-level issues", result.ErrorCount()), 2)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "sitelint",
		Usage:  "Audit the internal and external link structure of a static site",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Site root directory",
				Value:   ".",
				Sources: cli.EnvVars("SITELINT_ROOT"),
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to runtime config file",
				DefaultText: "sitelint.yaml",
				Value:       "sitelint.yaml",
				Sources:     cli.EnvVars("SITELINT_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:  "home",
				Usage: "Canonical document path relative to the site root",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Re-run the audit when the site tree changes",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Exit nonzero when any ERROR-level issue is found",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("audit error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
