package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/hay-kot/storm/internal/core/config"
)

// KeyMap holds the editor key bindings. Any key not bound here that
// produces a single character is typed into the selected cell.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Save   key.Binding
	Reload key.Binding
	Copy   key.Binding
	Quit   key.Binding
}

var actionHelp = map[string]string{
	config.ActionUp:     "up",
	config.ActionDown:   "down",
	config.ActionLeft:   "left",
	config.ActionRight:  "right",
	config.ActionSave:   "save",
	config.ActionReload: "reload",
	config.ActionCopy:   "copy json",
	config.ActionQuit:   "quit",
}

// NewKeyMap builds bindings from the configured keys.
func NewKeyMap(keys map[string][]string) KeyMap {
	bind := func(action string) key.Binding {
		ks := keys[action]
		if len(ks) == 0 {
			return key.NewBinding(key.WithDisabled())
		}
		return key.NewBinding(
			key.WithKeys(ks...),
			key.WithHelp(ks[0], actionHelp[action]),
		)
	}

	return KeyMap{
		Up:     bind(config.ActionUp),
		Down:   bind(config.ActionDown),
		Left:   bind(config.ActionLeft),
		Right:  bind(config.ActionRight),
		Save:   bind(config.ActionSave),
		Reload: bind(config.ActionReload),
		Copy:   bind(config.ActionCopy),
		Quit:   bind(config.ActionQuit),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Reload, k.Copy, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Save, k.Reload, k.Copy, k.Quit},
	}
}
