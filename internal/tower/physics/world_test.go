package physics

import (
	"testing"

	"github.com/vovakirdan/crazy-tower/internal/tower/field"
)

const dt = 1.0 / 60.0

var start = field.Platform{ID: 1, X: 200, Y: 550}

func newWorldOnStart(t *testing.T) *World {
	t.Helper()
	w := New(DefaultParams())
	w.Reset(200, 500)
	w.AddPlatform(start)
	return w
}

func settle(w *World, steps int) []Contact {
	var all []Contact
	for i := 0; i < steps; i++ {
		all = append(all, w.Step(dt, Control{})...)
	}
	return all
}

func TestLandsOnPlatform(t *testing.T) {
	w := newWorldOnStart(t)
	contacts := settle(w, 60)

	b := w.Player()
	if !b.OnGround || b.Ground != start.ID {
		t.Fatalf("player not resting on start platform: %+v", b)
	}
	if got := w.PlayerBox().Bottom(); got != 544 {
		t.Errorf("player feet at %v, expected platform top 544", got)
	}
	if b.VY != 0 {
		t.Errorf("VY = %v, expected 0 while standing", b.VY)
	}

	landed := false
	for _, c := range contacts {
		if c.Landed && c.Platform == start.ID {
			landed = true
			if c.VY <= 0 {
				t.Errorf("landing contact VY = %v, expected downward", c.VY)
			}
		}
	}
	if !landed {
		t.Error("no landing contact reported")
	}
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	w := New(DefaultParams())
	w.Reset(200, 0)

	w.Step(dt, Control{Jump: true})
	if w.Player().VY < 0 {
		t.Fatal("airborne player should not be able to jump")
	}

	w = newWorldOnStart(t)
	settle(w, 60)
	w.Step(dt, Control{Jump: true})
	if b := w.Player(); b.VY >= 0 || b.OnGround {
		t.Errorf("grounded jump did not launch: %+v", b)
	}
}

func TestJumpScale(t *testing.T) {
	w := newWorldOnStart(t)
	settle(w, 60)
	w.Step(dt, Control{Jump: true, JumpScale: 1.5})

	p := w.Params()
	want := -p.JumpSpeed*1.5 + p.Gravity*dt
	if got := w.Player().VY; got > want+1e-9 || got < want-1e-9 {
		t.Errorf("VY after boosted jump = %v, expected %v", got, want)
	}
}

func TestPassThroughFromBelowThenLand(t *testing.T) {
	w := newWorldOnStart(t)
	upper := field.Platform{ID: 2, X: 200, Y: 480}
	w.AddPlatform(upper)
	settle(w, 60)

	contacts := w.Step(dt, Control{Jump: true})
	contacts = append(contacts, settle(w, 90)...)

	ascending := false
	for _, c := range contacts {
		if c.Platform == upper.ID && !c.Landed && c.VY < 0 {
			ascending = true
		}
	}
	if !ascending {
		t.Error("expected an ascending touch while passing through the upper platform")
	}
	if b := w.Player(); !b.OnGround || b.Ground != upper.ID {
		t.Errorf("player should land on the upper platform, got %+v", b)
	}
}

func TestHorizontalClamp(t *testing.T) {
	w := newWorldOnStart(t)
	for i := 0; i < 180; i++ {
		w.Step(dt, Control{Dir: -1})
	}
	if got := w.PlayerBox().X; got != 0 {
		t.Errorf("player left edge = %v, expected clamped to 0", got)
	}

	for i := 0; i < 360; i++ {
		w.Step(dt, Control{Dir: 1})
	}
	if got := w.PlayerBox().Right(); got != w.Params().WorldWidth {
		t.Errorf("player right edge = %v, expected %v", got, w.Params().WorldWidth)
	}
}

func TestWalkOffEdgeFalls(t *testing.T) {
	w := newWorldOnStart(t)
	settle(w, 60)
	for i := 0; i < 60; i++ {
		w.Step(dt, Control{Dir: 1})
	}
	if w.Player().OnGround {
		t.Error("player should have walked off the platform")
	}
	if w.Player().VY <= 0 {
		t.Error("player should be falling")
	}
}

func TestLargeStepDoesNotTunnel(t *testing.T) {
	w := New(DefaultParams())
	w.Reset(200, 200)
	w.AddPlatform(start)

	for i := 0; i < 4; i++ {
		w.Step(0.5, Control{})
	}
	if b := w.Player(); !b.OnGround || b.Ground != start.ID {
		t.Errorf("player fell through with a long step: %+v", b)
	}
}

func TestRemovePlatform(t *testing.T) {
	w := newWorldOnStart(t)
	settle(w, 60)

	w.RemovePlatform(start.ID)
	settle(w, 10)
	if w.Player().OnGround {
		t.Error("player should fall once the platform is removed")
	}
	if w.PlatformCount() != 0 {
		t.Errorf("PlatformCount() = %d, expected 0", w.PlatformCount())
	}
}

func TestPowerUpContact(t *testing.T) {
	w := newWorldOnStart(t)
	w.AddPowerUp(start)

	box, ok := w.PowerUpBox(start.ID)
	if !ok || box.Bottom() != 544 {
		t.Fatalf("power-up box = %+v, expected resting on the platform top", box)
	}

	contacts := settle(w, 60)
	found := false
	for _, c := range contacts {
		if c.PowerUp && c.Platform == start.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a power-up contact")
	}

	w.RemovePowerUp(start.ID)
	for _, c := range settle(w, 5) {
		if c.PowerUp {
			t.Error("removed power-up still reported")
		}
	}
	if len(w.PowerUps()) != 0 {
		t.Errorf("PowerUps() = %v, expected none", w.PowerUps())
	}
}

func TestFollowRebasesSpace(t *testing.T) {
	w := newWorldOnStart(t)
	headroom := w.Params().SpaceHeight / 4

	w.Follow(0)
	if w.OriginY() != -headroom {
		t.Fatalf("OriginY() = %v, expected %v", w.OriginY(), -headroom)
	}
	w.Follow(-100)
	if w.OriginY() != -headroom {
		t.Errorf("small camera move rebased to %v", w.OriginY())
	}
	settle(w, 60)
	if !w.Player().OnGround {
		t.Fatal("player should still land after a rebase")
	}

	// Far above the start: the start platform drops out of the window
	w.Follow(-10000)
	if w.OriginY() != -10000-headroom {
		t.Fatalf("OriginY() = %v, expected %v", w.OriginY(), -10000-headroom)
	}
	settle(w, 10)
	if w.Player().OnGround {
		t.Error("platform outside the window should not collide")
	}
}

func TestCollisionsHighUp(t *testing.T) {
	w := New(DefaultParams())
	w.Reset(200, -20050)
	high := field.Platform{ID: 9, X: 200, Y: -20000}
	w.AddPlatform(high)

	settle(w, 60)
	if b := w.Player(); !b.OnGround || b.Ground != high.ID {
		t.Errorf("player should land high in the tower: %+v", b)
	}
}

func TestFreeze(t *testing.T) {
	w := newWorldOnStart(t)
	w.Step(dt, Control{Dir: 1})
	w.Freeze()
	if b := w.Player(); b.VX != 0 || b.VY != 0 {
		t.Errorf("Freeze left velocity %v, %v", b.VX, b.VY)
	}
}

func TestResetClearsColliders(t *testing.T) {
	w := newWorldOnStart(t)
	w.AddPowerUp(start)
	w.Reset(100, 100)

	if w.PlatformCount() != 0 || len(w.PowerUps()) != 0 {
		t.Error("Reset should remove every collider")
	}
	if b := w.Player(); b.X != 100 || b.Y != 100 || b.OnGround {
		t.Errorf("player after reset = %+v", b)
	}
}
