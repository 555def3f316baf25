package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/storm/internal/core/grid"
	"github.com/hay-kot/storm/internal/core/logging"
	"github.com/hay-kot/storm/internal/core/mapfile"
	"github.com/hay-kot/storm/internal/core/validate"
	"github.com/hay-kot/storm/internal/printer"
)

type NewCmd struct {
	flags *Flags

	// Command-specific flags
	rows  int
	cols  int
	fill  string
	file  string
	force bool
}

// NewNewCmd creates a new new command
func NewNewCmd(flags *Flags) *NewCmd {
	return &NewCmd{flags: flags}
}

// Register adds the new command to the application
func (cmd *NewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "new",
		Usage:     "Write a blank map without opening the editor",
		UsageText: "storm new --rows N --cols N [options]",
		Description: `Creates a rows x cols map filled with the fill symbol and writes it in
canonical form.

The map is written to --file, or to map_path from the config when --file
is omitted. Existing files are only replaced with --force.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "rows",
				Usage:       fmt.Sprintf("number of rows (1-%d)", grid.MaxDimension),
				Required:    true,
				Destination: &cmd.rows,
			},
			&cli.IntFlag{
				Name:        "cols",
				Usage:       fmt.Sprintf("number of columns (1-%d)", grid.MaxDimension),
				Required:    true,
				Destination: &cmd.cols,
			},
			&cli.StringFlag{
				Name:        "fill",
				Usage:       "fill symbol (defaults to the configured fill)",
				Destination: &cmd.fill,
			},
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "output path (defaults to the configured map_path)",
				Destination: &cmd.file,
			},
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "overwrite an existing file",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *NewCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)
	cfg := cmd.flags.Config

	path := cmd.file
	if path == "" {
		path = cfg.MapPath
	}

	fill := cfg.FillTile()
	if cmd.fill != "" {
		r, err := validate.Symbol(cmd.fill)
		if err != nil {
			return fmt.Errorf("fill: %w", err)
		}
		fill = r
	}

	if mapfile.Exists(path) && !cmd.force {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}

	doc, err := grid.New(cmd.rows, cmd.cols, fill)
	if err != nil {
		return err
	}

	data, err := mapfile.Encode(doc)
	if err != nil {
		return err
	}

	if err := mapfile.NewFileStore().WriteFile(path, data); err != nil {
		return err
	}

	ctx = logging.WithMapPath(ctx, path)
	log.Info().Ctx(ctx).Int("rows", cmd.rows).Int("cols", cmd.cols).Msg("map created")

	p.Successf("wrote %dx%d map to %s", cmd.rows, cmd.cols, path)
	return nil
}
