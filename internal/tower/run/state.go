// Package run tracks a single climb: score, game over and the persisted high
// score.
package run

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crazy-tower/internal/tower/field"
)

// HighScoreKey is the key the high score is stored under.
const HighScoreKey = "crazyTowerHighScore"

// DefaultReward is the score awarded per new platform touched.
const DefaultReward = 15

// Status is the run's state machine state.
type Status int

const (
	Running Status = iota
	GameOver
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Motion is the player's vertical direction at the moment of a contact.
type Motion int

const (
	Resting Motion = iota
	Ascending
	Descending
)

// String returns the string representation of the motion.
func (m Motion) String() string {
	switch m {
	case Resting:
		return "Resting"
	case Ascending:
		return "Ascending"
	case Descending:
		return "Descending"
	default:
		return "Unknown"
	}
}

// MotionFromVelocity classifies a vertical velocity. World y grows downward,
// so negative velocity is upward motion.
func MotionFromVelocity(vy float64) Motion {
	switch {
	case vy < 0:
		return Ascending
	case vy > 0:
		return Descending
	default:
		return Resting
	}
}

// KeyValueStore persists integers across process restarts.
// A missing key reports ok == false.
type KeyValueStore interface {
	GetInt(key string) (value int, ok bool, err error)
	SetInt(key string, value int) error
}

// Options configures a new State.
type Options struct {
	Reward int           // Points per new platform; DefaultReward when zero
	Store  KeyValueStore // Optional high score persistence
	Key    string        // Store key; HighScoreKey when empty
	Logger *log.Logger   // Optional; discards when nil
}

// State is the run state machine. It is owned by the game controller and
// driven synchronously from the tick loop.
type State struct {
	score       int
	status      Status
	lastTouched field.PlatformID
	highScore   int
	newHigh     bool

	reward int
	store  KeyValueStore
	key    string
	logger *log.Logger
}

// New creates a running state and loads the high score. Store failures
// degrade to a high score of 0.
func New(opts Options) *State {
	s := &State{
		status: Running,
		reward: opts.Reward,
		store:  opts.Store,
		key:    opts.Key,
		logger: opts.Logger,
	}
	if s.reward <= 0 {
		s.reward = DefaultReward
	}
	if s.key == "" {
		s.key = HighScoreKey
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.highScore = s.loadHighScore()
	return s
}

func (s *State) loadHighScore() int {
	if s.store == nil {
		return 0
	}
	v, ok, err := s.store.GetInt(s.key)
	if err != nil {
		s.logger.Warn("could not load high score", "key", s.key, "error", err)
		return 0
	}
	if !ok || v < 0 {
		return 0
	}
	return v
}

// OnCollision handles a player/platform contact. It scores only an ascending
// touch on a platform other than the last one scored, and reports whether
// the score changed.
func (s *State) OnCollision(id field.PlatformID, m Motion) bool {
	if s.status != Running || id == field.NoPlatform {
		return false
	}
	if m != Ascending || id == s.lastTouched {
		return false
	}

	s.lastTouched = id
	s.score += s.reward
	s.logger.Debug("platform scored", "platform", id, "score", s.score)
	return true
}

// OnFallBelow ends the run when the player is below the camera bottom.
// It reports whether this call fired the transition.
func (s *State) OnFallBelow(playerY, cameraBottomY float64) bool {
	if playerY <= cameraBottomY {
		return false
	}
	return s.End()
}

// End moves the run to GameOver and commits the high score. Repeated calls
// are no-ops and return false.
func (s *State) End() bool {
	if s.status == GameOver {
		return false
	}
	s.status = GameOver
	s.newHigh = false

	if s.score > s.highScore {
		s.highScore = s.score
		s.newHigh = true
		s.persist()
	}
	s.logger.Debug("run over", "score", s.score, "high_score", s.highScore, "new_high", s.newHigh)
	return true
}

func (s *State) persist() {
	if s.store == nil {
		return
	}
	if err := s.store.SetInt(s.key, s.highScore); err != nil {
		s.logger.Warn("could not save high score", "key", s.key, "error", err)
	}
}

// Restart re-enters Running after a game over. It does nothing while a run
// is still in progress and reports whether it restarted.
func (s *State) Restart() bool {
	if s.status != GameOver {
		return false
	}
	s.Reset()
	return true
}

// Reset starts a fresh run regardless of the current status. The high score
// is kept.
func (s *State) Reset() {
	s.score = 0
	s.status = Running
	s.lastTouched = field.NoPlatform
	s.newHigh = false
}

// Score returns the current run's score.
func (s *State) Score() int {
	return s.score
}

// HighScore returns the best score seen by this process or loaded from the
// store.
func (s *State) HighScore() int {
	return s.highScore
}

// Status returns the state machine state.
func (s *State) Status() Status {
	return s.status
}

// IsOver reports whether the run has ended.
func (s *State) IsOver() bool {
	return s.status == GameOver
}

// LastTouched returns the last scored platform, if any.
func (s *State) LastTouched() (field.PlatformID, bool) {
	return s.lastTouched, s.lastTouched != field.NoPlatform
}

// NewHighScore reports whether the finished run set a new high score.
func (s *State) NewHighScore() bool {
	return s.newHigh
}

// HUD holds the strings and visibility flags the display shows.
type HUD struct {
	Score        string
	HighScore    string
	GameOver     []string
	ShowGameOver bool
	ShowRestart  bool
	NewHighScore bool
}

// HUD returns the display strings for the current state.
func (s *State) HUD() HUD {
	h := HUD{
		Score:     fmt.Sprintf("Score: %d", s.score),
		HighScore: fmt.Sprintf("Best: %d", s.highScore),
	}
	if s.status == GameOver {
		h.ShowGameOver = true
		h.ShowRestart = true
		h.NewHighScore = s.newHigh
		h.GameOver = []string{
			"You fell!",
			fmt.Sprintf("Score: %d", s.score),
			"Press R to try again.",
		}
		if s.newHigh {
			h.GameOver[0] = "New record!"
		}
	}
	return h
}
