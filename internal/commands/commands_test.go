package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/storm/internal/core/config"
	"github.com/hay-kot/storm/internal/core/grid"
	"github.com/hay-kot/storm/internal/core/mapfile"
	"github.com/hay-kot/storm/internal/printer"
	"github.com/hay-kot/storm/internal/startup"
)

func testFlags(t *testing.T) *Flags {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return &Flags{Config: cfg}
}

func testCtx() (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	return printer.NewContext(context.Background(), printer.New(&buf)), &buf
}

// runApp registers a command on a fresh root and runs it with args.
func runApp(t *testing.T, register func(*cli.Command) *cli.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := register(&cli.Command{Name: "storm", Writer: &out})

	ctx, _ := testCtx()
	err := app.Run(ctx, append([]string{"storm"}, args...))
	return out.String(), err
}

func TestFmt(t *testing.T) {
	flags := testFlags(t)

	t.Run("stdin to writer", func(t *testing.T) {
		cmd := NewFmtCmd(flags)
		cmd.input.Stdin = strings.NewReader(`{"tiles":[["a","bc"],["d"],[1,null,"e"]]}`)

		var out bytes.Buffer
		ctx, _ := testCtx()
		require.NoError(t, cmd.format(ctx, &out))

		doc, err := mapfile.Decode(out.Bytes(), grid.DefaultFill)
		require.NoError(t, err)
		assert.Equal(t, "ab.\nd..\n..e", doc.String())
		assert.True(t, strings.HasPrefix(out.String(), "[\n  [\n"))
	})

	t.Run("write in place", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "map.json")
		require.NoError(t, os.WriteFile(path, []byte(`[["x"],["y","z"]]`), 0o644))

		cmd := NewFmtCmd(flags)
		cmd.input.SetPath(path)
		cmd.write = true

		ctx, msgs := testCtx()
		require.NoError(t, cmd.format(ctx, nil))
		assert.Contains(t, msgs.String(), "formatted")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[\n  [\n    \"x\",\n    \".\"\n  ],\n  [\n    \"y\",\n    \"z\"\n  ]\n]\n", string(data))

		cmd.write = false
		cmd.check = true
		require.NoError(t, cmd.format(ctx, nil))
	})

	t.Run("check unformatted", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "map.json")
		require.NoError(t, os.WriteFile(path, []byte(`[["x"]]`), 0o644))

		cmd := NewFmtCmd(flags)
		cmd.input.SetPath(path)
		cmd.check = true

		ctx, _ := testCtx()
		require.ErrorIs(t, cmd.format(ctx, nil), ErrNotFormatted)
	})

	t.Run("write requires file", func(t *testing.T) {
		cmd := NewFmtCmd(flags)
		cmd.write = true

		ctx, _ := testCtx()
		require.Error(t, cmd.format(ctx, nil))
	})

	t.Run("malformed input", func(t *testing.T) {
		for _, in := range []string{`not json`, `{"rows":[]}`, `[[]]`, `["a"]`, `[["a"]] garbage {`, `[["a"]][["b"]]`} {
			cmd := NewFmtCmd(flags)
			cmd.input.Stdin = strings.NewReader(in)

			ctx, _ := testCtx()
			require.ErrorIs(t, cmd.format(ctx, &bytes.Buffer{}), mapfile.ErrMalformedInput, in)
		}
	})

	t.Run("write keeps file with trailing data", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "map.json")
		original := []byte(`[["a"]] garbage {`)
		require.NoError(t, os.WriteFile(path, original, 0o644))

		for _, mode := range []string{"write", "check"} {
			cmd := NewFmtCmd(flags)
			cmd.input.SetPath(path)
			cmd.write = mode == "write"
			cmd.check = mode == "check"

			ctx, _ := testCtx()
			err := cmd.format(ctx, nil)
			require.ErrorIs(t, err, mapfile.ErrMalformedInput, mode)
			assert.NotErrorIs(t, err, ErrNotFormatted, mode)
		}

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, original, data)
	})

	t.Run("missing file", func(t *testing.T) {
		cmd := NewFmtCmd(flags)
		cmd.input.SetPath(filepath.Join(t.TempDir(), "nope.json"))

		ctx, _ := testCtx()
		require.ErrorIs(t, cmd.format(ctx, &bytes.Buffer{}), mapfile.ErrIO)
	})
}

func TestNew(t *testing.T) {
	flags := testFlags(t)

	t.Run("writes blank map", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "levels", "one.json")

		_, err := runApp(t, NewNewCmd(flags).Register, "new", "--rows", "2", "--cols", "2", "--fill", "~", "--file", path)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		doc, err := mapfile.Decode(data, grid.DefaultFill)
		require.NoError(t, err)
		assert.Equal(t, "~~\n~~", doc.String())
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "map.json")
		require.NoError(t, os.WriteFile(path, []byte(`[["k"]]`), 0o644))

		_, err := runApp(t, NewNewCmd(flags).Register, "new", "--rows", "1", "--cols", "1", "--file", path)
		require.Error(t, err)

		data, _ := os.ReadFile(path)
		assert.Equal(t, `[["k"]]`, string(data))

		_, err = runApp(t, NewNewCmd(flags).Register, "new", "--rows", "1", "--cols", "1", "--file", path, "--force")
		require.NoError(t, err)
	})

	t.Run("invalid dimensions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "map.json")

		_, err := runApp(t, NewNewCmd(flags).Register, "new", "--rows", "0", "--cols", "3", "--file", path)
		require.ErrorIs(t, err, grid.ErrInvalidDimension)
		assert.False(t, mapfile.Exists(path))
	})
}

func TestDoc(t *testing.T) {
	flags := testFlags(t)
	flags.Config.Keys[config.ActionSave] = []string{"ctrl+w"}

	out, err := runApp(t, NewDocCmd(flags).Register, "doc", "--raw", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "| save | `ctrl+w` | Save the map |")
	assert.Contains(t, out, "| quit | `ctrl+c`, `esc` |")

	out, err = runApp(t, NewDocCmd(flags).Register, "doc", "--raw", "format")
	require.NoError(t, err)
	assert.Contains(t, out, `["#", ".", "#"]`)

	out, err = runApp(t, NewDocCmd(flags).Register, "doc", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "Bindings")
}

type scriptedPrompter struct {
	rows, cols int
}

func (s scriptedPrompter) Mode() (startup.Mode, error)       { return startup.ModeNew, nil }
func (s scriptedPrompter) Dimensions() (int, int, error)     { return s.rows, s.cols, nil }
func (s scriptedPrompter) LoadPath([]string) (string, error) { return "", startup.ErrNoTerminal }
func (s scriptedPrompter) Warn(string)                       {}

func TestEdit_Establish(t *testing.T) {
	flags := testFlags(t)
	ctx, _ := testCtx()
	p := printer.Ctx(ctx)

	t.Run("dimension flags", func(t *testing.T) {
		cmd := NewEditCmd(flags)
		cmd.rows, cmd.cols = 2, 4

		res, err := cmd.establish(p)
		require.NoError(t, err)
		assert.Equal(t, "map.json", res.Path)
		assert.Equal(t, 4, res.Doc.Cols())
	})

	t.Run("invalid dimension flags", func(t *testing.T) {
		cmd := NewEditCmd(flags)
		cmd.rows, cmd.cols = 2, 0

		_, err := cmd.establish(p)
		require.ErrorIs(t, err, startup.ErrNoDocument)
		require.ErrorIs(t, err, grid.ErrInvalidDimension)
	})

	t.Run("dimension flags refuse existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "map.json")
		require.NoError(t, os.WriteFile(path, []byte(`[["a"]]`), 0o644))

		cmd := NewEditCmd(flags)
		cmd.file = path
		cmd.rows, cmd.cols = 5, 5

		_, err := cmd.establish(p)
		require.ErrorIs(t, err, startup.ErrNoDocument)
		assert.Contains(t, err.Error(), "already exists")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `[["a"]]`, string(data))
	})

	t.Run("dimension flags replace with new", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "map.json")
		require.NoError(t, os.WriteFile(path, []byte(`[["a"]]`), 0o644))

		cmd := NewEditCmd(flags)
		cmd.file = path
		cmd.rows, cmd.cols = 2, 2
		cmd.fresh = true

		var buf bytes.Buffer
		res, err := cmd.establish(printer.New(&buf))
		require.NoError(t, err)
		assert.Equal(t, path, res.Path)
		assert.Equal(t, "..\n..", res.Doc.String())
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "replace")
		assert.Contains(t, ansi.Strip(buf.String()), "replace the existing")
	})

	t.Run("file flag loads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "map.json")
		require.NoError(t, os.WriteFile(path, []byte(`[["a","b"]]`), 0o644))

		cmd := NewEditCmd(flags)
		cmd.file = path
		cmd.prompter = func(*printer.Printer) startup.Prompter { return scriptedPrompter{} }

		res, err := cmd.establish(p)
		require.NoError(t, err)
		assert.Equal(t, path, res.Path)
		assert.Equal(t, "ab", res.Doc.String())
	})

	t.Run("missing file falls back to new at that path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fresh.json")

		cmd := NewEditCmd(flags)
		cmd.file = path
		cmd.prompter = func(*printer.Printer) startup.Prompter { return scriptedPrompter{rows: 1, cols: 3} }

		res, err := cmd.establish(p)
		require.NoError(t, err)
		assert.Equal(t, path, res.Path)
		assert.Equal(t, "...", res.Doc.String())
		assert.Len(t, res.Warnings, 1)
	})

	t.Run("no terminal", func(t *testing.T) {
		cmd := NewEditCmd(flags)
		cmd.prompter = func(p *printer.Printer) startup.Prompter { return startup.Headless{} }

		_, err := cmd.establish(p)
		require.ErrorIs(t, err, startup.ErrNoDocument)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		flags := testFlags(t)
		flags.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")

		out, err := runApp(t, NewConfigValidateCmd(flags).Register, "config", "validate", "--format", "json")
		require.NoError(t, err)
		assert.Contains(t, out, `"valid": true`)
		assert.Contains(t, out, `"exists": false`)
	})

	t.Run("reports every field", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fill: \"xy\"\ncell_width: 40\n"), 0o644))

		flags := testFlags(t)
		flags.ConfigPath = path

		result := NewConfigValidateCmd(flags).validate()
		assert.False(t, result.Valid)
		assert.True(t, result.Exists)

		fields := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			fields = append(fields, e.Field)
		}
		assert.ElementsMatch(t, []string{"fill", "cell_width"}, fields)
	})

	t.Run("text output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fill: \"xy\"\n"), 0o644))

		flags := testFlags(t)
		flags.ConfigPath = path
		cmd := NewConfigValidateCmd(flags)

		var buf bytes.Buffer
		cmd.outputText(printer.New(&buf), cmd.validate())

		got := ansi.Strip(buf.String())
		assert.Contains(t, got, "storm config")
		assert.Contains(t, got, "config: "+path)
		assert.Contains(t, got, "fill: ")
		assert.Contains(t, got, "1 error(s) found")
	})

	t.Run("unparsable file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("keys: [\n"), 0o644))

		flags := testFlags(t)
		flags.ConfigPath = path

		result := NewConfigValidateCmd(flags).validate()
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "file", result.Errors[0].Field)
	})
}
