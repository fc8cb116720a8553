// Package tower implements Crazy Tower, an endless vertical platformer.
//
// The player climbs a column of one-way platforms generated above the camera.
// Each new platform touched on the way up scores; dropping below the camera
// ends the run.
package tower

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/crazy-tower/internal/config"
	"github.com/vovakirdan/crazy-tower/internal/core"
	"github.com/vovakirdan/crazy-tower/internal/registry"
	"github.com/vovakirdan/crazy-tower/internal/tower/field"
	"github.com/vovakirdan/crazy-tower/internal/tower/physics"
	"github.com/vovakirdan/crazy-tower/internal/tower/run"
)

// Variant selects the rule set.
type Variant int

const (
	VariantClassic Variant = iota // Plain climb
	VariantPowerUp                // Jump boost pickups on some platforms
)

// bannerSecs is how long the game over box takes to drop in.
const bannerSecs = 0.6

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

var (
	logger = log.New(io.Discard)
	store  run.KeyValueStore
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Empty or unknown names
// clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetStore sets the high score store used by games created afterwards.
func SetStore(s run.KeyValueStore) {
	store = s
}

// Game implements registry.Game for the tower.
type Game struct {
	variant Variant

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.TowerConfig
	difficulty *config.DifficultyManager
	log        *log.Logger

	// World
	rng    *rand.Rand
	field  *field.Field
	world  *physics.World
	camera *Camera
	run    *run.State

	// Run progress
	tickCount int
	paused    bool
	boostLeft float64 // Seconds of jump boost remaining
	maxHeight float64 // Highest climb above the start, in world units
	pickups   int

	banner    *gween.Tween
	bannerPos float32 // 0 hidden, 1 fully dropped in

	// Layout (computed from the screen handed to Render)
	screenTooSmall bool
}

// New creates a classic tower.
func New() *Game {
	return &Game{variant: VariantClassic}
}

// NewPowerUp creates a tower with jump boost pickups.
func NewPowerUp() *Game {
	return &Game{variant: VariantPowerUp}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.variant == VariantPowerUp {
		return "tower_powerup"
	}
	return "tower"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.variant == VariantPowerUp {
		return "Crazy Tower (Power-ups)"
	}
	return "Crazy Tower"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.variant == VariantPowerUp {
		return "Climb endlessly; grab stars for higher jumps"
	}
	return "Climb endlessly on one-way platforms"
}

// Reset loads the configuration and starts a new run. The high score
// survives repeated resets of the same game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.log = logger.With("game", g.ID())

	cfg, err := config.LoadTower(configPath)
	if err != nil {
		g.log.Warn("falling back to default config", "error", err)
		cfg = config.DefaultTowerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTowerPreset(&cfg, difficultyPreset)
	}
	if g.variant == VariantPowerUp {
		cfg.PowerUps.Enabled = true
	}
	g.cfg = cfg

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed)) //#nosec G404 -- gameplay randomness

	if g.run == nil {
		g.run = run.New(run.Options{
			Reward: cfg.Scoring.Reward,
			Store:  store,
			Key:    g.highScoreKey(),
			Logger: g.log,
		})
	} else {
		g.run.Reset()
	}

	g.startRun()
}

// highScoreKey keeps a separate best for each variant.
func (g *Game) highScoreKey() string {
	return variantKey(g.cfg.Scoring.HighScoreKey, g.ID())
}

func variantKey(base, gameID string) string {
	if base == "" {
		base = run.HighScoreKey
	}
	if gameID == "tower_powerup" {
		base += "PowerUp"
	}
	return base
}

// HighScoreKey returns the store key holding the best score of a variant
// under the active config.
func HighScoreKey(gameID string) string {
	cfg, err := config.LoadTower(configPath)
	if err != nil {
		cfg = config.DefaultTowerConfig()
	}
	return variantKey(cfg.Scoring.HighScoreKey, gameID)
}

// startRun rebuilds the platform column, the world and the camera.
func (g *Game) startRun() {
	cfg := g.cfg

	g.field = field.New(field.Params{
		GapMin:      cfg.Field.GapMin,
		GapMax:      cfg.Field.GapMax,
		XMin:        cfg.Field.XMin,
		XMax:        cfg.Field.XMax,
		MinDX:       cfg.Field.MinDX,
		MinDY:       cfg.Field.MinDY,
		MaxTries:    cfg.Field.MaxTries,
		Lookahead:   cfg.Field.Lookahead,
		PruneMargin: cfg.Field.PruneMargin,
	}, g.rng)

	g.world = physics.New(physics.Params{
		Gravity:      cfg.Physics.Gravity,
		JumpSpeed:    cfg.Physics.JumpSpeed,
		MoveSpeed:    cfg.Physics.MoveSpeed,
		MaxFallSpeed: cfg.Physics.MaxFallSpeed,
		WorldWidth:   cfg.Camera.WorldWidth,
		PlayerW:      cfg.Player.Width,
		PlayerH:      cfg.Player.Height,
		PlatformW:    cfg.Field.PlatformWidth,
		PlatformH:    cfg.Field.PlatformHeight,
		PowerUpSize:  cfg.PowerUps.Size,
	})
	g.world.Reset(cfg.Player.StartX, cfg.Player.StartY)

	start := g.field.Place(cfg.Field.StartPlatformX, cfg.Field.StartPlatformY)
	g.world.AddPlatform(start)
	for _, p := range g.field.Seed(cfg.Field.InitialCount, cfg.Field.StartPlatformY) {
		g.addPlatform(p)
	}

	g.camera = NewCamera(
		math.Min(0, cfg.Player.StartY-cfg.Camera.FollowOffset),
		cfg.Camera.ViewHeight,
		cfg.Camera.FollowOffset,
		cfg.Camera.CatchUpSecs,
	)
	g.world.Follow(g.camera.Top())

	g.tickCount = 0
	g.paused = false
	g.boostLeft = 0
	g.maxHeight = 0
	g.pickups = 0
	g.banner = nil
	g.bannerPos = 0

	g.log.Debug("run started", "seed", g.runtime.Seed, "platforms", g.field.Len(), "high_score", g.run.HighScore())
}

// addPlatform registers a generated platform with the world and may put a
// power-up on it.
func (g *Game) addPlatform(p field.Platform) {
	g.world.AddPlatform(p)
	if !g.cfg.PowerUps.Enabled {
		return
	}
	chance := g.difficulty.PowerUpChance(g.cfg.PowerUps.Chance, g.run.Score(), g.tickCount)
	if g.rng.Float64() < chance {
		g.world.AddPowerUp(p)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.TickSeconds()

	if g.run.IsOver() {
		g.animateBanner(dt)
		if in.Has(core.ActionRestart) {
			g.OnRestart()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	scale := 1.0
	if g.boostLeft > 0 {
		scale = g.cfg.PowerUps.JumpMultiplier
	}
	contacts := g.world.Step(dt, physics.Control{
		Dir:       in.Horizontal(),
		Jump:      in.Has(core.ActionJump),
		JumpScale: scale,
	})
	for _, c := range contacts {
		if c.PowerUp {
			g.collectPowerUp(c.Platform)
			continue
		}
		g.OnCollision(c.Platform, run.MotionFromVelocity(c.VY))
	}

	ended := g.OnTick(dt)
	return core.StepResult{State: g.State(), RunEnded: ended}
}

// OnCollision forwards a platform touch to the run state and reports whether
// it scored.
func (g *Game) OnCollision(id field.PlatformID, m run.Motion) bool {
	return g.run.OnCollision(id, m)
}

// OnTick runs the per-tick bookkeeping after physics: camera, fall check,
// generation, pruning and timers. It reports whether the run ended.
func (g *Game) OnTick(dt float64) bool {
	player := g.world.Player()

	g.camera.Follow(dt, player.Y)
	if g.OnFallBelow(g.camera.Bottom()) {
		return true
	}

	gapMax := g.difficulty.GapMax(g.cfg.Field.GapMin, g.cfg.Field.GapMax, g.run.Score(), g.tickCount)
	g.field.SetGapRange(g.cfg.Field.GapMin, gapMax)

	for _, p := range g.field.Advance(g.camera.Top()) {
		g.addPlatform(p)
	}
	for _, p := range g.field.Prune(g.camera.Bottom()) {
		g.world.RemovePlatform(p.ID)
	}
	g.world.Follow(g.camera.Top())

	if g.boostLeft > 0 {
		g.boostLeft = math.Max(0, g.boostLeft-dt)
	}
	if h := g.cfg.Player.StartY - player.Y; h > g.maxHeight {
		g.maxHeight = h
	}
	return false
}

// OnFallBelow ends the run when the player has dropped below
// cameraBottomY. It reports whether the run ended on this call.
func (g *Game) OnFallBelow(cameraBottomY float64) bool {
	if !g.run.OnFallBelow(g.world.Player().Y, cameraBottomY) {
		return false
	}
	g.world.Freeze()
	g.boostLeft = 0
	g.banner = gween.New(0, 1, bannerSecs, ease.OutBounce)
	g.bannerPos = 0

	stats := g.field.Stats()
	g.log.Info("run over",
		"score", g.run.Score(),
		"high_score", g.run.HighScore(),
		"new_high", g.run.NewHighScore(),
		"height", int(math.Round(g.maxHeight)),
		"ticks", g.tickCount,
		"placed", stats.Placed,
		"fallbacks", stats.Fallbacks,
	)
	return true
}

// OnRestart starts a new run after a game over. It does nothing while a run
// is in progress.
func (g *Game) OnRestart() {
	if !g.run.Restart() {
		return
	}
	g.startRun()
}

func (g *Game) collectPowerUp(id field.PlatformID) {
	if _, ok := g.world.PowerUpBox(id); !ok {
		return // already taken earlier in this step
	}
	g.world.RemovePowerUp(id)
	g.boostLeft = g.cfg.PowerUps.DurationSecs
	g.pickups++
	g.log.Debug("power-up collected", "platform", id, "boost_secs", g.boostLeft)
}

func (g *Game) animateBanner(dt float64) {
	if g.banner == nil {
		g.bannerPos = 1
		return
	}
	v, done := g.banner.Update(float32(dt))
	g.bannerPos = v
	if done {
		g.banner = nil
		g.bannerPos = 1
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.run == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:     g.run.Score(),
		HighScore: g.run.HighScore(),
		GameOver:  g.run.IsOver(),
		Paused:    g.paused,
		MaxHeight: int(math.Round(g.maxHeight)),
	}
}

// Register the games with the registry
func init() {
	registry.Register("tower", func() registry.Game {
		return New()
	})
	registry.Register("tower_powerup", func() registry.Game {
		return NewPowerUp()
	})
}
