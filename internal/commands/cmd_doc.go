package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/storm/internal/core/config"
	"github.com/hay-kot/storm/internal/core/editor"
	"github.com/hay-kot/storm/internal/core/styles"
)

type DocCmd struct {
	flags *Flags
	raw   bool
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Reference documentation",
		Description: `Prints reference documentation for storm.

Use 'storm doc keys' to see the active key bindings.
Use 'storm doc format' to see the map file format.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print markdown without rendering",
				Destination: &cmd.raw,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "keys",
				Usage: "Show key bindings, including config overrides",
				Action: func(_ context.Context, c *cli.Command) error {
					return cmd.print(c.Root().Writer, keysGuide(cmd.flags.Config))
				},
			},
			{
				Name:  "format",
				Usage: "Show the map file format",
				Action: func(_ context.Context, c *cli.Command) error {
					return cmd.print(c.Root().Writer, formatGuide(cmd.flags.Config))
				},
			},
		},
	})
	return app
}

func (cmd *DocCmd) print(w io.Writer, markdown string) error {
	if cmd.raw {
		_, err := io.WriteString(w, markdown)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	out, err := r.Render(markdown)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}

var actionDescriptions = map[string]string{
	config.ActionUp:     "Move the selection up",
	config.ActionDown:   "Move the selection down",
	config.ActionLeft:   "Move the selection left",
	config.ActionRight:  "Move the selection right",
	config.ActionSave:   "Save the map",
	config.ActionReload: "Reload the map from disk, discarding edits",
	config.ActionCopy:   "Copy the map JSON to the clipboard",
	config.ActionQuit:   "Quit without saving",
}

func keysGuide(cfg *config.Config) string {
	var b strings.Builder
	b.WriteString("# Key Bindings\n\n")
	b.WriteString("| Action | Keys | Description |\n")
	b.WriteString("|---|---|---|\n")

	for _, action := range config.Actions {
		keys := cfg.Keys[action]
		quoted := make([]string, len(keys))
		for i, k := range keys {
			quoted[i] = "`" + k + "`"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", action, strings.Join(quoted, ", "), actionDescriptions[action])
	}

	fmt.Fprintf(&b, `
Any other character with a code from %d to %d is written into the selected cell.
A left click selects the cell under the pointer.

Bindings can be changed under `+"`keys`"+` in the config file.
`, editor.MinPrintable, editor.MaxPrintable)

	return b.String()
}

func formatGuide(cfg *config.Config) string {
	return fmt.Sprintf(`# Map Format

A map is a JSON array of rows. Each row is an array of one-character strings.

`+"```json"+`
[
  ["#", "#", "#"],
  ["#", "%[1]s", "#"]
]
`+"```"+`

An object with a `+"`tiles`"+` field holding the same array is also accepted.

- Rows shorter than the longest row are padded with the fill symbol (`+"`%[1]s`"+`).
- Cells that are not strings, and empty strings, become the fill symbol.
- Longer strings keep only their first character.
- Maps are always saved as a bare array with 2-space indentation.

Use `+"`storm fmt -f map.json --write`"+` to rewrite a map in this form.
`, cfg.Fill)
}
