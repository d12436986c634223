package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"kanboard/internal/infrastructure/config"
)

// keyMap holds every binding the board reacts to
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	PickUp key.Binding
	Drop   key.Binding
	Trash  key.Binding
	Cancel key.Binding
	Add    key.Binding
	Delete key.Binding
	Quit   key.Binding
}

var keys = newKeyMap(config.Default("").Keybindings)

// InitKeybindings replaces the default bindings with the configured ones
func InitKeybindings(cfg *config.Config) {
	keys = newKeyMap(cfg.Keybindings)
}

func newKeyMap(kb config.KeybindingsConfig) keyMap {
	return keyMap{
		Up:     binding(kb.Up, "up"),
		Down:   binding(kb.Down, "down"),
		Left:   binding(kb.Left, "left"),
		Right:  binding(kb.Right, "right"),
		PickUp: binding(kb.PickUp, "pick up"),
		Drop:   binding(kb.Drop, "drop"),
		Trash:  binding(kb.Trash, "trash"),
		Cancel: binding(kb.Cancel, "cancel"),
		Add:    binding(kb.Add, "add"),
		Delete: binding(kb.Delete, "delete"),
		Quit:   binding(kb.Quit, "quit"),
	}
}

func binding(names []string, help string) key.Binding {
	return key.NewBinding(
		key.WithKeys(names...),
		key.WithHelp(keyLabel(names), help),
	)
}

// keyLabel renders key names for the help line
func keyLabel(names []string) string {
	labels := make([]string, 0, len(names))
	for _, name := range names {
		switch name {
		case " ":
			labels = append(labels, "space")
		case "up":
			labels = append(labels, "↑")
		case "down":
			labels = append(labels, "↓")
		case "left":
			labels = append(labels, "←")
		case "right":
			labels = append(labels, "→")
		default:
			labels = append(labels, name)
		}
	}
	return strings.Join(labels, "/")
}
