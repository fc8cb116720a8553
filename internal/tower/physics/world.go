// Package physics moves the player through the platform column.
//
// Platforms are one-way: the player passes through them while rising and
// lands on their top edge while falling. Candidate objects come from a
// resolv space (broad phase); the landing and overlap tests run on world
// boxes. The space covers a fixed-height window that is re-anchored as the
// camera climbs, so objects keep hashing into cells however high the tower
// gets.
package physics

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/crazy-tower/internal/core"
	"github.com/vovakirdan/crazy-tower/internal/tower/field"
)

// Object tags in the resolv space.
const (
	TagPlayer   = "player"
	TagPlatform = "platform"
	TagPowerUp  = "powerup"
)

// maxSubstep bounds each integration step so fast falls cannot skip a
// platform between two broad-phase checks.
const maxSubstep = 1.0 / 120.0

// landEpsilon absorbs float drift on a player resting exactly on a top edge.
const landEpsilon = 1e-6

// Params holds the world tuning in world units and seconds.
type Params struct {
	Gravity      float64 // Downward acceleration (u/s²)
	JumpSpeed    float64 // Upward launch speed (u/s)
	MoveSpeed    float64 // Horizontal speed while a direction is held (u/s)
	MaxFallSpeed float64 // Terminal downward speed (u/s)
	WorldWidth   float64 // Playable width; the player is clamped inside it

	PlayerW, PlayerH     float64
	PlatformW, PlatformH float64
	PowerUpSize          float64

	SpaceHeight float64 // Height of the resolv window
	CellSize    int     // Broad-phase cell size
}

// DefaultParams returns the classic tuning on a 400x600 world.
func DefaultParams() Params {
	return Params{
		Gravity:      1000,
		JumpSpeed:    500,
		MoveSpeed:    200,
		MaxFallSpeed: 900,
		WorldWidth:   400,
		PlayerW:      20,
		PlayerH:      30,
		PlatformW:    80,
		PlatformH:    12,
		PowerUpSize:  16,
		SpaceHeight:  3000,
		CellSize:     16,
	}
}

func (p Params) normalized() Params {
	d := DefaultParams()
	if p.WorldWidth <= 0 {
		p.WorldWidth = d.WorldWidth
	}
	if p.PlayerW <= 0 || p.PlayerH <= 0 {
		p.PlayerW, p.PlayerH = d.PlayerW, d.PlayerH
	}
	if p.PlatformW <= 0 || p.PlatformH <= 0 {
		p.PlatformW, p.PlatformH = d.PlatformW, d.PlatformH
	}
	if p.PowerUpSize <= 0 {
		p.PowerUpSize = d.PowerUpSize
	}
	if p.SpaceHeight <= 0 {
		p.SpaceHeight = d.SpaceHeight
	}
	if p.CellSize <= 0 {
		p.CellSize = d.CellSize
	}
	if p.MaxFallSpeed <= 0 {
		p.MaxFallSpeed = d.MaxFallSpeed
	}
	return p
}

// Body is the player's kinematic state. X and Y are the box center.
type Body struct {
	X, Y     float64
	VX, VY   float64
	OnGround bool
	Ground   field.PlatformID // Platform stood on, NoPlatform when airborne
}

// Control is the player's intent for one step.
type Control struct {
	Dir       int     // -1 left, 0 none, +1 right
	Jump      bool    // Launch if standing on a platform
	JumpScale float64 // Multiplier on JumpSpeed; 0 means 1
}

// Contact is a player touch reported by Step.
type Contact struct {
	Platform field.PlatformID
	VY       float64 // Player vertical velocity at the touch
	Landed   bool    // The player came to rest on the platform
	PowerUp  bool    // The touch was with the power-up sitting on Platform
}

type solid struct {
	id  field.PlatformID
	box core.Box // World coordinates
	obj *resolv.Object
}

// World owns the resolv space, the player body and the platform and power-up
// colliders.
type World struct {
	params Params
	space  *resolv.Space
	player *resolv.Object
	body   Body

	originY   float64 // World y of the space's top edge
	platforms map[field.PlatformID]*solid
	powerUps  map[field.PlatformID]*solid
	owner     map[*resolv.Object]*solid
}

// New creates a world with the player at the horizontal center.
func New(params Params) *World {
	params = params.normalized()
	w := &World{
		params:    params,
		space:     resolv.NewSpace(int(math.Ceil(params.WorldWidth)), int(math.Ceil(params.SpaceHeight)), params.CellSize, params.CellSize),
		platforms: make(map[field.PlatformID]*solid),
		powerUps:  make(map[field.PlatformID]*solid),
		owner:     make(map[*resolv.Object]*solid),
	}
	w.player = resolv.NewObject(0, 0, params.PlayerW, params.PlayerH, TagPlayer)
	w.space.Add(w.player)
	w.Reset(params.WorldWidth/2, 0)
	return w
}

// Params returns the active tuning.
func (w *World) Params() Params {
	return w.params
}

// Reset removes every collider and places the player at rest at (x, y).
func (w *World) Reset(x, y float64) {
	for _, s := range w.owner {
		w.space.Remove(s.obj)
	}
	clear(w.platforms)
	clear(w.powerUps)
	clear(w.owner)

	w.body = Body{X: x, Y: y}
	w.rebase(y - w.headroom())
}

// AddPlatform registers a platform collider centered on the field position.
func (w *World) AddPlatform(p field.Platform) {
	if _, ok := w.platforms[p.ID]; ok {
		return
	}
	box := core.BoxAt(p.X, p.Y, w.params.PlatformW, w.params.PlatformH)
	w.platforms[p.ID] = w.add(p.ID, box, TagPlatform)
}

// RemovePlatform drops a platform and any power-up sitting on it.
func (w *World) RemovePlatform(id field.PlatformID) {
	if s, ok := w.platforms[id]; ok {
		w.remove(s)
		delete(w.platforms, id)
	}
	w.RemovePowerUp(id)
}

// AddPowerUp places a power-up just above the given platform.
func (w *World) AddPowerUp(p field.Platform) {
	if _, ok := w.powerUps[p.ID]; ok {
		return
	}
	size := w.params.PowerUpSize
	cy := p.Y - w.params.PlatformH/2 - size/2
	w.powerUps[p.ID] = w.add(p.ID, core.BoxAt(p.X, cy, size, size), TagPowerUp)
}

// RemovePowerUp drops the power-up on the given platform, if any.
func (w *World) RemovePowerUp(id field.PlatformID) {
	if s, ok := w.powerUps[id]; ok {
		w.remove(s)
		delete(w.powerUps, id)
	}
}

// PowerUpBox returns the power-up collider on a platform.
func (w *World) PowerUpBox(id field.PlatformID) (core.Box, bool) {
	s, ok := w.powerUps[id]
	if !ok {
		return core.Box{}, false
	}
	return s.box, true
}

// PowerUps returns the platforms currently carrying a power-up.
func (w *World) PowerUps() []field.PlatformID {
	ids := make([]field.PlatformID, 0, len(w.powerUps))
	for id := range w.powerUps {
		ids = append(ids, id)
	}
	return ids
}

// PlatformCount returns the number of platform colliders.
func (w *World) PlatformCount() int {
	return len(w.platforms)
}

func (w *World) add(id field.PlatformID, box core.Box, tag string) *solid {
	s := &solid{
		id:  id,
		box: box,
		obj: resolv.NewObject(box.X, box.Y-w.originY, box.W, box.H, tag),
	}
	w.space.Add(s.obj)
	w.owner[s.obj] = s
	return s
}

func (w *World) remove(s *solid) {
	w.space.Remove(s.obj)
	delete(w.owner, s.obj)
}

// Player returns the player's body.
func (w *World) Player() Body {
	return w.body
}

// PlayerBox returns the player's collider in world coordinates.
func (w *World) PlayerBox() core.Box {
	return core.BoxAt(w.body.X, w.body.Y, w.params.PlayerW, w.params.PlayerH)
}

// Freeze zeroes the player's velocity.
func (w *World) Freeze() {
	w.body.VX = 0
	w.body.VY = 0
}

// OriginY returns the world y mapped to the top of the resolv space.
func (w *World) OriginY() float64 {
	return w.originY
}

// Follow keeps the resolv window around the camera. Call it whenever the
// camera moves.
func (w *World) Follow(cameraTopY float64) {
	if cameraTopY-w.originY < w.headroom()/2 {
		w.rebase(cameraTopY - w.headroom())
	}
}

func (w *World) headroom() float64 {
	return w.params.SpaceHeight / 4
}

// rebase moves every collider into space coordinates relative to originY.
func (w *World) rebase(originY float64) {
	w.originY = originY
	for obj, s := range w.owner {
		obj.X = s.box.X
		obj.Y = s.box.Y - originY
		obj.Update()
	}
	w.syncPlayer()
}

func (w *World) syncPlayer() {
	box := w.PlayerBox()
	w.player.X = box.X
	w.player.Y = box.Y - w.originY
	w.player.Update()
}

// Step advances the player by dt seconds and returns the contacts made.
// A contact with the same platform may be reported on several steps.
func (w *World) Step(dt float64, c Control) []Contact {
	if dt <= 0 {
		return nil
	}

	w.body.VX = float64(sign(c.Dir)) * w.params.MoveSpeed
	if c.Jump && w.body.OnGround {
		scale := c.JumpScale
		if scale <= 0 {
			scale = 1
		}
		w.body.VY = -w.params.JumpSpeed * scale
		w.body.OnGround = false
		w.body.Ground = field.NoPlatform
	}

	steps := int(math.Ceil(dt/maxSubstep - 1e-9))
	if steps < 1 {
		steps = 1
	}
	sub := dt / float64(steps)

	var contacts []Contact
	for i := 0; i < steps; i++ {
		contacts = w.substep(sub, contacts)
	}
	return contacts
}

func (w *World) substep(dt float64, contacts []Contact) []Contact {
	p := w.params

	w.body.VY = math.Min(w.body.VY+p.Gravity*dt, p.MaxFallSpeed)

	half := p.PlayerW / 2
	newX := core.ClampF(w.body.X+w.body.VX*dt, half, p.WorldWidth-half)
	dx := newX - w.body.X
	dy := w.body.VY * dt

	prev := w.PlayerBox()
	next := prev.Translate(dx, dy)

	platforms, powerUps := w.candidates(dx, dy)

	if w.body.VY >= 0 {
		if s := landingSurface(prev, next, platforms); s != nil {
			contacts = append(contacts, Contact{Platform: s.id, VY: w.body.VY, Landed: true})
			next.Y = s.box.Y - next.H
			w.body.VY = 0
			w.body.OnGround = true
			w.body.Ground = s.id
		} else {
			w.body.OnGround = false
			w.body.Ground = field.NoPlatform
		}
	} else {
		for _, s := range platforms {
			if next.Intersects(s.box) {
				contacts = append(contacts, Contact{Platform: s.id, VY: w.body.VY})
			}
		}
	}

	for _, s := range powerUps {
		if next.Intersects(s.box) {
			contacts = append(contacts, Contact{Platform: s.id, VY: w.body.VY, PowerUp: true})
		}
	}

	w.body.X, w.body.Y = next.Center()
	w.syncPlayer()
	return contacts
}

// candidates returns colliders near the player's current and displaced
// positions.
func (w *World) candidates(dx, dy float64) (platforms, powerUps []*solid) {
	// Look one unit further down when falling so a surface right under the
	// feet lands in the checked cells.
	reach := dy
	if dy >= 0 {
		reach++
	}

	seen := make(map[*resolv.Object]bool)
	for _, d := range [2][2]float64{{0, 0}, {dx, reach}} {
		check := w.player.Check(d[0], d[1], TagPlatform, TagPowerUp)
		if check == nil {
			continue
		}
		for _, obj := range check.ObjectsByTags(TagPlatform) {
			if s, ok := w.owner[obj]; ok && !seen[obj] {
				seen[obj] = true
				platforms = append(platforms, s)
			}
		}
		for _, obj := range check.ObjectsByTags(TagPowerUp) {
			if s, ok := w.owner[obj]; ok && !seen[obj] {
				seen[obj] = true
				powerUps = append(powerUps, s)
			}
		}
	}
	return platforms, powerUps
}

// landingSurface returns the highest platform whose top edge the player's
// feet crossed this step, or nil.
func landingSurface(prev, next core.Box, platforms []*solid) *solid {
	var best *solid
	for _, s := range platforms {
		top := s.box.Y
		if prev.Bottom() > top+landEpsilon || next.Bottom() < top {
			continue
		}
		if next.X >= s.box.Right() || s.box.X >= next.Right() {
			continue
		}
		if best == nil || top < best.box.Y {
			best = s
		}
	}
	return best
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
