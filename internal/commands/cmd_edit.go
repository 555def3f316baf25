package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/storm/internal/core/editor"
	"github.com/hay-kot/storm/internal/core/grid"
	"github.com/hay-kot/storm/internal/core/logging"
	"github.com/hay-kot/storm/internal/core/mapfile"
	"github.com/hay-kot/storm/internal/printer"
	"github.com/hay-kot/storm/internal/startup"
	"github.com/hay-kot/storm/internal/tui"
)

type EditCmd struct {
	flags *Flags

	file  string
	rows  int
	cols  int
	fresh bool

	// prompter is swapped in tests.
	prompter func(p *printer.Printer) startup.Prompter
}

// NewEditCmd creates the editor command. It runs as the root action.
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{
		flags:    flags,
		prompter: startup.NewPrompter,
	}
}

// Flags returns the editor flags for registration on the root command.
// They are local so subcommands can define their own --file.
func (cmd *EditCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "map file to open (created on save if missing)",
			Destination: &cmd.file,
			Local:       true,
		},
		&cli.IntFlag{
			Name:        "rows",
			Usage:       "rows for a new map (requires --cols)",
			Destination: &cmd.rows,
			Local:       true,
		},
		&cli.IntFlag{
			Name:        "cols",
			Usage:       "columns for a new map (requires --rows)",
			Destination: &cmd.cols,
			Local:       true,
		},
		&cli.BoolFlag{
			Name:        "new",
			Usage:       "skip the start menu and create a new map (with --rows/--cols, replaces an existing file on save)",
			Destination: &cmd.fresh,
			Local:       true,
		},
	}
}

// Run opens the editor. Exported for use as the default command.
func (cmd *EditCmd) Run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)
	cfg := cmd.flags.Config

	res, err := cmd.establish(p)
	if err != nil {
		return err
	}

	ctx = logging.WithMapPath(ctx, res.Path)
	log.Info().Ctx(ctx).
		Int("rows", res.Doc.Rows()).
		Int("cols", res.Doc.Cols()).
		Msg("editor starting")

	ctrl := editor.New(res.Doc, mapfile.NewFileStore())
	m := tui.New(
		tui.Deps{
			Config:    cfg,
			Editor:    ctrl,
			Clipboard: clipboard.WriteAll,
		},
		tui.Opts{
			MapPath:  res.Path,
			Warnings: res.Warnings,
		},
	)

	if out := cmd.flags.Stderr; out != nil {
		out.Hold()
		defer func() { _ = out.Release() }()
	}

	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	if ctrl.Dirty() {
		p.Warnf("unsaved changes to %s were discarded", res.Path)
		log.Warn().Ctx(ctx).Msg("editor closed with unsaved changes")
	}

	return nil
}

// establish builds the initial document from flags, falling back to the
// interactive startup flow.
func (cmd *EditCmd) establish(p *printer.Printer) (startup.Result, error) {
	cfg := cmd.flags.Config
	path := cfg.MapPath
	if cmd.file != "" {
		path = cmd.file
	}

	if cmd.rows != 0 || cmd.cols != 0 {
		doc, err := grid.New(cmd.rows, cmd.cols, cfg.FillTile())
		if err != nil {
			return startup.Result{}, fmt.Errorf("%w: %w", startup.ErrNoDocument, err)
		}

		res := startup.Result{Doc: doc, Path: path}
		if mapfile.Exists(path) {
			if !cmd.fresh {
				return startup.Result{}, fmt.Errorf("%w: %s already exists; open it without --rows/--cols or pass --new to replace it", startup.ErrNoDocument, path)
			}
			msg := fmt.Sprintf("saving will replace the existing %s", path)
			p.Warnf("%s", msg)
			res.Warnings = append(res.Warnings, msg)
		}
		return res, nil
	}

	flow := &startup.Flow{
		Prompter:    cmd.prompter(p),
		Reader:      mapfile.NewFileStore(),
		Fill:        cfg.FillTile(),
		DefaultPath: path,
		NewOnly:     cmd.fresh,
		Candidates: func() ([]string, error) {
			return startup.FindMaps(os.DirFS("."), cfg.MapGlob)
		},
	}
	if cmd.file != "" && !cmd.fresh {
		flow.Path = cmd.file
	}

	return flow.Run()
}
