package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/storm/internal/commands"
	"github.com/hay-kot/storm/internal/core/config"
	"github.com/hay-kot/storm/internal/core/logging"
	"github.com/hay-kot/storm/internal/core/styles"
	"github.com/hay-kot/storm/internal/printer"
	"github.com/hay-kot/storm/pkg/logutils"
	"github.com/hay-kot/storm/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// build() falls back to runtime/debug.BuildInfo for `go install`.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	stderr := utils.NewDeferredWriter(os.Stderr)
	ctx := printer.NewContext(context.Background(), printer.New(stderr))

	var logCloser func()

	flags := &commands.Flags{Stderr: stderr}

	app := &cli.Command{
		Name:      "storm",
		Usage:     "Edit tile maps in the terminal",
		UsageText: "storm [global options] [command [command options]]",
		Description: `Storm is a small editor for rectangular tile maps stored as JSON.

Run 'storm' with no arguments to pick a map to load or create, then edit it
with the arrow keys and any printable character. Save with ctrl+s.
Run 'storm doc keys' to list all key bindings.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("STORM_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (empty logs to stderr)",
				Sources:     cli.EnvVars("STORM_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("STORM_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Log to a file by default so the editor owns the terminal
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile, stderr, logging.ContextHook{})
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cmdName := "edit"
			if args := c.Args(); args.Len() > 0 {
				cmdName = args.First()
			}
			ctx = logging.WithCommand(ctx, cmdName)

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				// 'config validate' reports problems itself
				if cmdName != "config" {
					return ctx, fmt.Errorf("load config: %w", err)
				}
				defaults := config.DefaultConfig()
				cfg = &defaults
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			log.Debug().Ctx(ctx).
				Str("config", flags.ConfigPath).
				Str("theme", cfg.Theme).
				Msg("config loaded")

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	editCmd := commands.NewEditCmd(flags)

	app = commands.NewNewCmd(flags).Register(app)
	app = commands.NewFmtCmd(flags).Register(app)
	app = commands.NewDocCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Register editor flags on root command
	app.Flags = append(app.Flags, editCmd.Flags()...)

	// Open the editor when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'storm --help' for usage", c.Args().First())
		}
		return editCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		printer.Ctx(ctx).Errorf("%v", runErr)
		exitCode = 1
	}

	os.Exit(exitCode)
}
