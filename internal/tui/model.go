package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hay-kot/storm/internal/core/config"
	"github.com/hay-kot/storm/internal/core/editor"
	"github.com/hay-kot/storm/internal/core/logging"
	"github.com/hay-kot/storm/internal/core/mapfile"
)

// chromeLines is the number of terminal lines used by everything except
// the grid: title, blank, status, help.
const chromeLines = 4

// Deps are the collaborators the editor view needs.
type Deps struct {
	Config    *config.Config
	Editor    *editor.Controller
	Clipboard func(string) error
}

// Opts configure a single editing session.
type Opts struct {
	// MapPath is where ctrl+s saves and ctrl+r reloads.
	MapPath string
	// Warnings are shown in the status line when the editor opens.
	Warnings []string
}

// Model is the bubbletea model for the grid editor.
type Model struct {
	cfg       *config.Config
	editor    *editor.Controller
	clipboard func(string) error
	logger    zerolog.Logger

	path string
	keys KeyMap
	help help.Model

	status    string
	statusErr bool

	width, height int
	view          viewport

	quitting bool
}

// New creates the editor model.
func New(deps Deps, opts Opts) Model {
	m := Model{
		cfg:       deps.Config,
		editor:    deps.Editor,
		clipboard: deps.Clipboard,
		logger:    logging.Component("tui"),
		path:      opts.MapPath,
		keys:      NewKeyMap(deps.Config.Keys),
		help:      help.New(),
	}

	if len(opts.Warnings) > 0 {
		m.setStatus(strings.Join(opts.Warnings, "; "), true)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.view.resize(msg.Width, msg.Height, m.cfg.CellWidth)
		m.view.follow(m.editor.Selection())
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.apply(editor.MoveEvent{Dir: editor.Up})
	case key.Matches(msg, m.keys.Down):
		m.apply(editor.MoveEvent{Dir: editor.Down})
	case key.Matches(msg, m.keys.Left):
		m.apply(editor.MoveEvent{Dir: editor.Left})
	case key.Matches(msg, m.keys.Right):
		m.apply(editor.MoveEvent{Dir: editor.Right})
	case key.Matches(msg, m.keys.Save):
		m.apply(editor.SaveEvent{Path: m.path})
	case key.Matches(msg, m.keys.Reload):
		res := m.apply(editor.LoadEvent{Path: m.path})
		if res.Err == nil {
			m.view.reset()
		}
	case key.Matches(msg, m.keys.Copy):
		m.copyDocument()
	default:
		if ch, ok := typedRune(msg); ok {
			m.apply(editor.TypeEvent{Char: ch})
		}
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	px, py := m.toPixels(msg.X, msg.Y)
	m.apply(editor.ClickEvent{X: px, Y: py, TileSize: m.cfg.TileSize})
	return m, nil
}

// toPixels maps a terminal cell to the pixel space the controller selects
// in. Positions outside the drawn grid map to (-1, -1).
func (m Model) toPixels(x, y int) (int, int) {
	doc := m.editor.Document()
	region := m.view.region(doc.Rows(), doc.Cols())
	cw, ts := m.cfg.CellWidth, m.cfg.TileSize

	dy := y - 1 // title line
	if x < 0 || dy < 0 || dy >= region.Rows || x/cw >= region.Cols {
		return -1, -1
	}

	px := (region.Col*cw + x) * ts / cw
	py := (region.Row + dy) * ts
	return px, py
}

// apply routes ev to the controller and updates the status line.
func (m *Model) apply(ev editor.Event) editor.Result {
	res := m.editor.Handle(ev)

	switch {
	case res.Err != nil:
		m.logger.Error().Err(res.Err).Msg(res.Status)
		m.setStatus(fmt.Sprintf("%s: %v", res.Status, res.Err), true)
	case res.Status != "":
		m.logger.Info().Msg(res.Status)
		m.setStatus(res.Status, false)
	}

	if res.Changed {
		m.view.follow(m.editor.Selection())
	}

	return res
}

func (m *Model) copyDocument() {
	if m.clipboard == nil {
		m.setStatus("clipboard unavailable", true)
		return
	}

	data, err := mapfile.Encode(m.editor.Document())
	if err != nil {
		m.setStatus(fmt.Sprintf("copy failed: %v", err), true)
		return
	}

	if err := m.clipboard(string(data)); err != nil {
		m.logger.Warn().Err(err).Msg("clipboard write failed")
		m.setStatus(fmt.Sprintf("copy failed: %v", err), true)
		return
	}

	m.setStatus("copied map json", false)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// typedRune returns the character produced by a key press, if any.
func typedRune(msg tea.KeyMsg) (rune, bool) {
	if msg.Alt {
		return 0, false
	}
	switch msg.Type {
	case tea.KeySpace:
		return ' ', true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return msg.Runes[0], true
		}
	}
	return 0, false
}
