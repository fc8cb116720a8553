package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crazy-tower/internal/core"
)

// scriptedGame ends its run after overAt steps.
type scriptedGame struct {
	steps  int
	overAt int
	resets int
	last   core.InputFrame
}

func (g *scriptedGame) ID() string { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) { g.resets++; g.steps = 0 }
func (g *scriptedGame) Render(dst *core.Screen) { dst.Clear() }
func (g *scriptedGame) State() core.GameState { return g.state() }

func (g *scriptedGame) state() core.GameState {
	over := g.steps >= g.overAt
	return core.GameState{Score: 45, GameOver: over, MaxHeight: 300}
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.last = core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			g.last.Set(a)
		}
	}
	wasOver := g.steps >= g.overAt
	g.steps++
	return core.StepResult{State: g.state(), RunEnded: !wasOver && g.steps >= g.overAt}
}

type countingRecorder struct {
	calls  int
	height int
	err    error
}

func (r *countingRecorder) SaveScore(_ string, _ int, height int) (int64, error) {
	r.calls++
	r.height = height
	return int64(r.calls), r.err
}

func tick(m Model, n int) Model {
	for i := 0; i < n; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}
	return m
}

func TestModelSavesScoreOncePerRun(t *testing.T) {
	game := &scriptedGame{overAt: 3}
	rec := &countingRecorder{}
	m := NewModel(game, rec, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	m = tick(m, 10)
	if rec.calls != 1 {
		t.Fatalf("SaveScore called %d times, expected once", rec.calls)
	}
	if rec.height != 300 {
		t.Errorf("saved height = %d, expected 300", rec.height)
	}
	if !m.State().GameOver {
		t.Error("model should report game over")
	}
}

func TestModelSurvivesRecorderError(t *testing.T) {
	game := &scriptedGame{overAt: 1}
	rec := &countingRecorder{err: errors.New("disk full")}
	m := NewModel(game, rec, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	tick(m, 5)
	if rec.calls != 1 {
		t.Errorf("SaveScore called %d times, expected once", rec.calls)
	}
}

func TestModelHoldsMovementBetweenKeyRepeats(t *testing.T) {
	game := &scriptedGame{overAt: 1000}
	m := NewModel(game, nil, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = next.(Model)
	m = tick(m, 10)
	if !game.last.Has(core.ActionLeft) {
		t.Error("left should still be held ten ticks after a single press")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	game := &scriptedGame{overAt: 1000}
	m := NewModel(game, nil, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()
	m = tick(m, 5)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	if game.resets != 1 || game.steps != 5 {
		t.Errorf("resize reset the run: resets=%d steps=%d", game.resets, game.steps)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40-helpRows {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}
