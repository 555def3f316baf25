package startup

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/hay-kot/storm/internal/core/grid"
	"github.com/hay-kot/storm/internal/core/styles"
	"github.com/hay-kot/storm/internal/core/validate"
	"github.com/hay-kot/storm/internal/printer"
)

// ErrNoTerminal is returned by the headless prompter for every question.
var ErrNoTerminal = errors.New("stdin is not a terminal; pass --rows and --cols or --file")

// CanPrompt reports whether stdin is a terminal the forms can run on.
func CanPrompt() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// NewPrompter returns a form prompter when stdin is a terminal and a
// headless one otherwise.
func NewPrompter(p *printer.Printer) Prompter {
	if CanPrompt() {
		return NewFormPrompter(p)
	}
	return Headless{p: p}
}

// Headless answers no questions. Warnings are still printed.
type Headless struct {
	p *printer.Printer
}

func (Headless) Mode() (Mode, error)               { return ModeNew, ErrNoTerminal }
func (Headless) Dimensions() (int, int, error)     { return 0, 0, ErrNoTerminal }
func (Headless) LoadPath([]string) (string, error) { return "", ErrNoTerminal }
func (h Headless) Warn(msg string)                 { h.p.Warnf("%s", msg) }

// FormPrompter asks its questions with huh forms.
type FormPrompter struct {
	p *printer.Printer
}

// NewFormPrompter creates a prompter that reports warnings through p.
func NewFormPrompter(p *printer.Printer) *FormPrompter {
	return &FormPrompter{p: p}
}

func (fp *FormPrompter) Mode() (Mode, error) {
	fmt.Println(styles.BannerStyle.Render(styles.Banner))
	fmt.Println()

	mode := ModeNew
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Mode]().
				Title("Start").
				Options(
					huh.NewOption("Create a new map", ModeNew),
					huh.NewOption("Load an existing map", ModeLoad),
				).
				Value(&mode),
		),
	).WithTheme(styles.FormTheme()).Run()

	return mode, err
}

func (fp *FormPrompter) Dimensions() (int, int, error) {
	var rows, cols string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Rows").
				Description(fmt.Sprintf("1 to %d", grid.MaxDimension)).
				Validate(validateDimension).
				Value(&rows),
			huh.NewInput().
				Title("Columns").
				Description(fmt.Sprintf("1 to %d", grid.MaxDimension)).
				Validate(validateDimension).
				Value(&cols),
		),
	).WithTheme(styles.FormTheme()).Run()
	if err != nil {
		return 0, 0, err
	}

	r, err := validate.Dimension(rows)
	if err != nil {
		return 0, 0, err
	}
	c, err := validate.Dimension(cols)
	if err != nil {
		return 0, 0, err
	}
	return r, c, nil
}

func (fp *FormPrompter) LoadPath(candidates []string) (string, error) {
	input := huh.NewInput().
		Title("Map file").
		Validate(validate.NotEmpty)

	if len(candidates) > 0 {
		input = input.
			Description(fmt.Sprintf("%d maps found, tab to complete", len(candidates))).
			Placeholder(candidates[0]).
			Suggestions(candidates)
	}

	var path string
	err := huh.NewForm(huh.NewGroup(input.Value(&path))).
		WithTheme(styles.FormTheme()).
		Run()

	return strings.TrimSpace(path), err
}

func (fp *FormPrompter) Warn(msg string) {
	fp.p.Warnf("%s", msg)
}

func validateDimension(s string) error {
	_, err := validate.Dimension(s)
	return err
}
