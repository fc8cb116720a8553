// Package field generates the endless column of platforms the player climbs.
//
// Platforms are placed lazily above a frontier that follows the camera, with
// rejection sampling to keep new platforms away from existing ones. The field
// is pure logic: it owns no physics and draws nothing.
package field

import "math"

// PlatformID identifies a platform for equality checks and removal.
// IDs are never reused within a field.
type PlatformID uint64

// NoPlatform is the zero PlatformID; real platforms start at 1.
const NoPlatform PlatformID = 0

// Platform is a platform center in world coordinates (y grows downward).
type Platform struct {
	ID PlatformID
	X  float64
	Y  float64
}

// Rand is the random source used for placement. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Params controls placement and pruning.
type Params struct {
	GapMin      int     // Minimum vertical gap between consecutive platforms
	GapMax      int     // Maximum vertical gap (inclusive)
	XMin        int     // Left edge of the horizontal band (inclusive)
	XMax        int     // Right edge of the horizontal band (inclusive)
	MinDX       float64 // Candidates closer than this horizontally...
	MinDY       float64 // ...and closer than this vertically are rejected
	MaxTries    int     // Candidates sampled before accepting the last one
	Lookahead   float64 // How far above the camera top the frontier must reach
	PruneMargin float64 // Platforms this far below the camera bottom are dropped
}

// DefaultParams returns the classic tower tuning.
func DefaultParams() Params {
	return Params{
		GapMin:      55,
		GapMax:      75,
		XMin:        50,
		XMax:        300,
		MinDX:       70,
		MinDY:       40,
		MaxTries:    10,
		Lookahead:   100,
		PruneMargin: 700,
	}
}

// normalized returns params that cannot stall generation.
func (p Params) normalized() Params {
	if p.GapMin < 1 {
		p.GapMin = 1
	}
	if p.GapMax < p.GapMin {
		p.GapMax = p.GapMin
	}
	if p.XMax < p.XMin {
		p.XMin, p.XMax = p.XMax, p.XMin
	}
	if p.MaxTries < 1 {
		p.MaxTries = 1
	}
	return p
}

// Stats counts generator activity since the field was created.
type Stats struct {
	Placed    int // Platforms generated by Seed/Advance
	Fallbacks int // Placements that exhausted MaxTries and kept the last candidate
	Pruned    int // Platforms removed by Prune
}

// Field is the set of live platforms plus the generation frontier.
type Field struct {
	params       Params
	rng          Rand
	platforms    []Platform
	frontierY    float64
	nextID       PlatformID
	stats        Stats
	lastAttempts int
}

// New creates an empty field. The frontier is established by Seed.
func New(params Params, rng Rand) *Field {
	return &Field{
		params:    params.normalized(),
		rng:       rng,
		platforms: make([]Platform, 0, 32),
		frontierY: math.Inf(1),
		nextID:    1,
	}
}

// Params returns the active placement parameters.
func (f *Field) Params() Params {
	return f.params
}

// SetGapRange changes the vertical gap range used for future platforms.
// Difficulty scaling calls this between ticks.
func (f *Field) SetGapRange(lo, hi int) {
	p := f.params
	p.GapMin = lo
	p.GapMax = hi
	f.params = p.normalized()
}

// Place adds a platform at an exact position. It takes part in overlap
// checks but does not move the frontier; the start platform under the player
// is placed this way.
func (f *Field) Place(x, y float64) Platform {
	p := Platform{ID: f.nextID, X: x, Y: y}
	f.nextID++
	f.platforms = append(f.platforms, p)
	return p
}

// Seed generates the initial ladder of count platforms stacked upward from
// startY and sets the frontier to the topmost one. It is meant for a fresh
// field.
func (f *Field) Seed(count int, startY float64) []Platform {
	added := make([]Platform, 0, count)
	f.frontierY = startY
	for i := 0; i < count; i++ {
		added = append(added, f.generate())
	}
	return added
}

// Advance generates platforms until the frontier is at least Lookahead above
// cameraTopY. It returns the platforms added, which is empty when the
// lookahead is already satisfied.
func (f *Field) Advance(cameraTopY float64) []Platform {
	if math.IsInf(f.frontierY, 1) {
		return nil // not seeded yet
	}

	var added []Platform
	limit := cameraTopY - f.params.Lookahead
	for f.frontierY > limit {
		added = append(added, f.generate())
	}
	return added
}

// Prune removes platforms more than PruneMargin below cameraBottomY and
// returns them.
func (f *Field) Prune(cameraBottomY float64) []Platform {
	limit := cameraBottomY + f.params.PruneMargin

	var removed []Platform
	kept := f.platforms[:0]
	for _, p := range f.platforms {
		if p.Y > limit {
			removed = append(removed, p)
			continue
		}
		kept = append(kept, p)
	}
	f.platforms = kept
	f.stats.Pruned += len(removed)
	return removed
}

// generate places one platform a random gap above the frontier.
func (f *Field) generate() Platform {
	gap := between(f.rng, f.params.GapMin, f.params.GapMax)
	y := f.frontierY - float64(gap)

	var x float64
	attempts := 0
	accepted := false
	for !accepted && attempts < f.params.MaxTries {
		x = float64(between(f.rng, f.params.XMin, f.params.XMax))
		accepted = f.Accepts(x, y)
		attempts++
	}
	if !accepted {
		// Forward progress beats spacing: keep the last candidate.
		f.stats.Fallbacks++
	}
	f.lastAttempts = attempts

	p := f.Place(x, y)
	f.frontierY = y
	f.stats.Placed++
	return p
}

// Accepts reports whether (x, y) is far enough from every platform. A
// candidate is rejected only when it is close on both axes at once.
func (f *Field) Accepts(x, y float64) bool {
	for _, p := range f.platforms {
		dx := math.Abs(p.X - x)
		dy := math.Abs(p.Y - y)
		if dx < f.params.MinDX && dy < f.params.MinDY {
			return false
		}
	}
	return true
}

// FrontierY returns the y of the highest generated platform.
func (f *Field) FrontierY() float64 {
	return f.frontierY
}

// Platforms returns a copy of the live platforms, oldest first.
func (f *Field) Platforms() []Platform {
	out := make([]Platform, len(f.platforms))
	copy(out, f.platforms)
	return out
}

// Get looks up a live platform by ID.
func (f *Field) Get(id PlatformID) (Platform, bool) {
	for _, p := range f.platforms {
		if p.ID == id {
			return p, true
		}
	}
	return Platform{}, false
}

// Len returns the number of live platforms.
func (f *Field) Len() int {
	return len(f.platforms)
}

// Stats returns generator counters.
func (f *Field) Stats() Stats {
	return f.stats
}

// LastAttempts returns how many candidates the most recent placement sampled.
func (f *Field) LastAttempts() int {
	return f.lastAttempts
}

// between returns a uniform integer in [lo, hi].
func between(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
