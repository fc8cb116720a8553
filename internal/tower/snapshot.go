package tower

import (
	"math"
	"slices"
)

// Snapshot is a compact view of a run used to compare two runs.
// Positions are kept in thousandths of a world unit.
type Snapshot struct {
	Tick      int
	Score     int
	HighScore int
	GameOver  bool
	PlayerX   int
	PlayerY   int
	CameraTop int
	BoostLeft int // Milliseconds
	Pickups   int

	// Each platform is 3 ints: ID, X, Y
	PlatformData []int
	// Platform IDs carrying a power-up, ascending
	PowerUps []int
}

func milli(v float64) int {
	return int(math.Round(v * 1000))
}

// Snapshot returns the current run as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	body := g.world.Player()

	platforms := g.field.Platforms()
	data := make([]int, 0, len(platforms)*3)
	for _, p := range platforms {
		data = append(data, int(p.ID), milli(p.X), milli(p.Y)) //#nosec G115 -- ids stay small
	}

	var powerUps []int
	for _, id := range g.world.PowerUps() {
		powerUps = append(powerUps, int(id)) //#nosec G115 -- ids stay small
	}
	slices.Sort(powerUps)

	return Snapshot{
		Tick:         g.tickCount,
		Score:        g.run.Score(),
		HighScore:    g.run.HighScore(),
		GameOver:     g.run.IsOver(),
		PlayerX:      milli(body.X),
		PlayerY:      milli(body.Y),
		CameraTop:    milli(g.camera.Top()),
		BoostLeft:    milli(g.boostLeft),
		Pickups:      g.pickups,
		PlatformData: data,
		PowerUps:     powerUps,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HighScore) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerX)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerY)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.CameraTop) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BoostLeft) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Pickups)   //#nosec G115 -- hash computation
	if snap.GameOver {
		h = h*31 + 1
	}

	for _, v := range snap.PlatformData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.PowerUps {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
