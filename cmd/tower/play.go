package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/crazy-tower/internal/config"
	"github.com/vovakirdan/crazy-tower/internal/core"
	"github.com/vovakirdan/crazy-tower/internal/platform/tui"
	"github.com/vovakirdan/crazy-tower/internal/registry"
	"github.com/vovakirdan/crazy-tower/internal/tower"
)

const defaultVariant = "tower"

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play the tower",
	Long: `Start climbing. The variant defaults to "tower".

Controls:
  Left/Right, A/D  - Move
  Space/Up/W       - Jump
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot to ~/.tower/screenshots
  Q/Ctrl+C         - Quit

Difficulty options (default: none, the config's difficulty section applies;
the shipped config keeps gaps at 55-75):
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  tower play
  tower play tower_powerup
  tower play --difficulty hard
  tower play --config ./my-tower.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tower config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed (default none)")
	}
}

// applyGameFlags checks --config and --difficulty and passes them to the
// tower package.
func applyGameFlags() error {
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}
	if _, err := config.LoadTower(flagConfig); err != nil {
		return err
	}
	tower.SetConfigPath(flagConfig)
	tower.SetDifficultyPreset(flagDifficulty)
	return nil
}

// runtimeConfig builds the runtime config from the terminal and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := defaultVariant
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q; run 'tower list' to see them", gameID)
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	if err := tui.Run(game, st.recorder(), logger, runtimeConfig()); err != nil {
		return fmt.Errorf("running %s: %w", gameID, err)
	}
	return nil
}
