package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/AdrianoCalmon/Bit-Hero/internal/core"
	"github.com/AdrianoCalmon/Bit-Hero/internal/platform/tui"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <song>",
	Short: "Play a song",
	Long: `Start playing the specified song. The song can be given by ID, by its
number in 'bithero list', or by title.

Controls (change them in the config file):
  A S K L    - Hit lanes 1-4
  P/Esc      - Pause
  R          - Restart
  Q/Ctrl+C   - Quit
  Ctrl+S     - Screenshot to a text file

Finished runs are stored as replays; see 'bithero replays'.

Examples:
  bithero play neon-overdrive
  bithero play 3
  bithero play "arcade nights"
  bithero play my-song --charts ./charts
  bithero play neon-overdrive --config ./my-rhythm.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  run(runPlay),
}

func runPlay(_ *cobra.Command, args []string) error {
	a, err := setup(logFile)
	if err != nil {
		return err
	}
	defer a.Close()

	song, err := registry.Resolve(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Run 'bithero list' to see available songs.")
		return err
	}

	a.logger.Info("play", "song", song.ID, "notes", len(song.Notes))
	return tui.Run(song, a.deps(), runtimeConfig(a))
}

// deps bundles what the play screen needs from the app.
func (a *app) deps() tui.Deps {
	return tui.Deps{
		Config: a.cfg,
		Store:  a.store,
		Logger: a.logger,
	}
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig(a *app) core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: a.cfg.TickRate,
	}.Normalize()
}
