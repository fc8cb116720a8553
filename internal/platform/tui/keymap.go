package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crazy-tower/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Jump       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns bindings to show in the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Pause, k.Quit}
}

// FullHelp returns bindings to show in the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump},
		{k.Pause, k.Restart, k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/↑", "jump"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a game action.
func (k GameKeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// Terminals report key presses but not releases. A held key arrives as one
// press, a pause of a few hundred milliseconds, then a stream of repeats.
// HoldInput turns that into held actions: a fresh press holds long enough
// to bridge the repeat delay and each repeat extends the hold a little.
const (
	initialHoldSecs = 0.45
	repeatHoldSecs  = 0.12
	jumpBufferSecs  = 0.10
)

// HoldInput emulates held movement keys from press events, in ticks.
type HoldInput struct {
	dir       int // -1, 0, +1
	dirTicks  int
	jumpTicks int

	initial, repeat, jump int
}

// NewHoldInput creates a HoldInput for the given tick rate.
func NewHoldInput(tickRate int) *HoldInput {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticks := func(secs float64) int {
		return max(1, int(secs*float64(tickRate)+0.5))
	}
	return &HoldInput{
		initial: ticks(initialHoldSecs),
		repeat:  ticks(repeatHoldSecs),
		jump:    ticks(jumpBufferSecs),
	}
}

// Press records a key press for a movement or jump action. Other actions are
// ignored.
func (h *HoldInput) Press(a core.Action) {
	switch a {
	case core.ActionLeft, core.ActionRight:
		dir := -1
		if a == core.ActionRight {
			dir = 1
		}
		if h.dir == dir && h.dirTicks > 0 {
			h.dirTicks = max(h.dirTicks, h.repeat)
			return
		}
		h.dir = dir
		h.dirTicks = h.initial
	case core.ActionJump:
		h.jumpTicks = h.jump
	}
}

// Apply sets the currently held actions on frame and counts one tick down.
func (h *HoldInput) Apply(frame *core.InputFrame) {
	if h.dirTicks > 0 {
		if h.dir < 0 {
			frame.Set(core.ActionLeft)
		} else if h.dir > 0 {
			frame.Set(core.ActionRight)
		}
		h.dirTicks--
		if h.dirTicks == 0 {
			h.dir = 0
		}
	}
	if h.jumpTicks > 0 {
		frame.Set(core.ActionJump)
		h.jumpTicks--
	}
}

// Release drops every held action.
func (h *HoldInput) Release() {
	h.dir = 0
	h.dirTicks = 0
	h.jumpTicks = 0
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
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
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
	}
	return MenuActionNone
}
