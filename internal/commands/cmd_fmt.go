package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/storm/internal/core/logging"
	"github.com/hay-kot/storm/internal/core/mapfile"
	"github.com/hay-kot/storm/internal/jsoncolor"
	"github.com/hay-kot/storm/internal/printer"
	"github.com/hay-kot/storm/pkg/iojson"
)

// ErrNotFormatted is returned by fmt --check when the input is not in
// canonical form.
var ErrNotFormatted = errors.New("map is not formatted")

type FmtCmd struct {
	flags *Flags

	input iojson.FileReader[any]
	write bool
	check bool
}

// NewFmtCmd creates a new fmt command
func NewFmtCmd(flags *Flags) *FmtCmd {
	return &FmtCmd{flags: flags}
}

// Register adds the fmt command to the application
func (cmd *FmtCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "fmt",
		Usage:     "Normalize a map file to canonical JSON",
		UsageText: "storm fmt [-f PATH] [--write | --check]",
		Description: `Decodes a map, pads ragged rows with the fill symbol, and prints the
canonical form: a bare array of rows, 2-space indentation.

Reads stdin when -f is omitted. Cells that are not strings become the fill
symbol; multi-character strings are cut to their first character.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.BoolFlag{
				Name:        "write",
				Aliases:     []string{"w"},
				Usage:       "rewrite the file in place instead of printing",
				Destination: &cmd.write,
			},
			&cli.BoolFlag{
				Name:        "check",
				Usage:       "fail if the input is not already canonical",
				Destination: &cmd.check,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *FmtCmd) run(ctx context.Context, c *cli.Command) error {
	return cmd.format(ctx, c.Root().Writer)
}

func (cmd *FmtCmd) format(ctx context.Context, w io.Writer) error {
	p := printer.Ctx(ctx)
	path := cmd.input.Path()

	if (cmd.write || cmd.check) && path == "" {
		return fmt.Errorf("--write and --check require --file")
	}

	v, err := cmd.input.Read()
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return fmt.Errorf("%w: %w", mapfile.ErrIO, err)
		}
		return fmt.Errorf("%w: %w", mapfile.ErrMalformedInput, err)
	}

	doc, err := mapfile.DecodeValue(v, cmd.flags.Config.FillTile())
	if err != nil {
		return err
	}

	out, err := mapfile.Encode(doc)
	if err != nil {
		return err
	}

	if cmd.check {
		current, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: read %s: %w", mapfile.ErrIO, path, err)
		}
		if !bytes.Equal(current, out) {
			return fmt.Errorf("%w: %s", ErrNotFormatted, path)
		}
		return nil
	}

	if !cmd.write {
		if isTerminal(w) {
			_, err = io.WriteString(w, jsoncolor.Colorize(out, doc.Fill()))
			return err
		}
		_, err = w.Write(out)
		return err
	}

	if err := mapfile.NewFileStore().WriteFile(path, out); err != nil {
		return err
	}

	ctx = logging.WithMapPath(ctx, path)
	log.Info().Ctx(ctx).Int("rows", doc.Rows()).Int("cols", doc.Cols()).Msg("map formatted")

	p.Successf("formatted %s (%dx%d)", path, doc.Rows(), doc.Cols())
	return nil
}

// isTerminal reports whether w is a terminal that accepts color.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
