package main

import (
	"github.com/spf13/cobra"

	"github.com/AdrianoCalmon/Bit-Hero/internal/platform/tui"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick songs and browse replays interactively",
	Long: `Opens the song list. Pick a song to play it; after the results screen
you come back to the list.

Keys:
  Up/Down    - Move
  Enter      - Play the highlighted song
  D          - Cycle the difficulty filter
  Tab        - Browse replays of the highlighted song
  Q          - Quit`,
	Run: run(runMenu),
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := setup(logFile)
	if err != nil {
		return err
	}
	defer a.Close()

	return tui.RunApp(registry.Default(), a.deps(), runtimeConfig(a))
}
