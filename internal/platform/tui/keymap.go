package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/engine"
)

// KeyMapper translates Bubble Tea key messages to engine commands and
// session actions. This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapGameKey translates a key message to piece-control commands.
// Terminals deliver key presses only, never releases, so the soft drop key
// maps to CmdSoftDropOn and the session model queues the matching
// CmdSoftDropOff on the following tick.
func (km *KeyMapper) MapGameKey(msg tea.KeyMsg) (engine.Command, bool) {
	switch msg.String() {
	case "left", "a", "h":
		return engine.CmdMoveLeft, true
	case "right", "d", "l":
		return engine.CmdMoveRight, true
	case "up", "w", "x":
		return engine.CmdRotateCW, true
	case "z", "ctrl+z":
		return engine.CmdRotateCCW, true
	case "down", "s", "j":
		return engine.CmdSoftDropOn, true
	case " ":
		return engine.CmdHardDrop, true
	case "c", "shift+up":
		return engine.CmdHold, true
	}
	return 0, false
}

// MapKey translates a key message to a session action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
