package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crazy-tower/internal/platform/tui"
	"github.com/vovakirdan/crazy-tower/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for the scoreboard.
After a run you return to the menu.

Examples:
  tower menu
  tower menu --fps 30
  tower menu --store gdata`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	cfg := runtimeConfig()
	for {
		menuResult, err := tui.RunMenu(st.source(), cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(st.source(), cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("could not create game", "game", menuResult.GameID, "error", err)
			continue
		}

		runCfg := cfg
		if flagSeed == 0 {
			runCfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, st.recorder(), logger, runCfg); err != nil {
			logger.Error("game stopped", "game", menuResult.GameID, "error", err)
		}
	}
}
