// bithero is a four-lane rhythm game for the terminal.
//
// Usage:
//
//	bithero list               - List available songs
//	bithero play <song>        - Play a song
//	bithero menu               - Pick songs and browse replays interactively
//	bithero chart <command>    - Show, generate, export and import charts
//	bithero replays <song>     - List and verify recorded replays
//	bithero serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: from config, 60)
//	--db <path>          - Set database path (default: ~/.bithero/bithero.db)
//	--config <path>      - Game config YAML
//	--charts <dir>       - Directory of chart files to load
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/AdrianoCalmon/Bit-Hero/internal/config"
	_ "github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/catalog" // Registers the built-in songs
	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/charts"
	"github.com/AdrianoCalmon/Bit-Hero/internal/logging"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
	"github.com/AdrianoCalmon/Bit-Hero/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfigPath string
	flagChartsDir  string
	flagLogLevel   string
)

func main() {
	// A missing .env is normal
	_ = config.LoadEnv()
	registerGlobalFlags()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bithero",
	Short: "Bit Hero - a four-lane rhythm game in your terminal",
	Long: `Bit Hero is a terminal rhythm game. Notes fall down four lanes and
you press the lane key as they cross the hit line.

Available commands:
  list     - Show all available songs
  play     - Play a specific song directly
  menu     - Interactive song picker and replay browser
  chart    - Show, generate, export and import charts
  replays  - List recorded replays and verify them
  serve    - Start SSH server for remote play

Environment (also read from .env):
  BITHERO_DB, BITHERO_CONFIG, BITHERO_CHARTS, BITHERO_LOG_LEVEL, BITHERO_FPS

Examples:
  bithero list --difficulty hard
  bithero play neon-overdrive
  bithero menu
  bithero chart import ./my-song.json
  bithero replays neon-overdrive --verify
  bithero serve --ssh :2222 --metrics :9090`,
	SilenceUsage: true,
}

func registerGlobalFlags() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagFPS, "fps", config.GetEnvInt(config.EnvFPS, 0), "Tick rate in frames per second (0 = config tick_rate)")
	flags.StringVar(&flagDBPath, "db", config.GetEnv(config.EnvDB, "~/.bithero/bithero.db"), "Path to the chart library and replay database")
	flags.StringVar(&flagConfigPath, "config", config.GetEnv(config.EnvConfig, ""), "Path to custom game config YAML")
	flags.StringVar(&flagChartsDir, "charts", config.GetEnv(config.EnvCharts, ""), "Directory of chart files (.yaml, .json, .mid)")
	flags.StringVar(&flagLogLevel, "log-level", config.GetEnv(config.EnvLogLevel, "info"), "Log level: debug, info, warn, error")
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(serveCmd)
}

// app is what a command needs once the global flags are applied.
type app struct {
	cfg     config.RhythmConfig
	store   *storage.Store
	logger  *log.Logger
	closers []io.Closer
}

// logTarget selects where a command's log goes.
type logTarget int

const (
	logStderr logTarget = iota
	logFile             // Full-screen commands: stdout belongs to Bubble Tea
)

// setup loads the config, opens the database, and registers library and
// chart-directory songs next to the built-in ones.
func setup(target logTarget) (*app, error) {
	level, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{}
	switch target {
	case logFile:
		logger, closer, err := logging.OpenFile(filepath.Join(config.DataDir(), "bithero.log"), level)
		if err != nil {
			// Fall back to silence rather than corrupting the screen
			a.logger = logging.Discard()
		} else {
			a.logger = logger
			a.closers = append(a.closers, closer)
		}
	default:
		a.logger = logging.New(os.Stderr, level)
	}

	a.cfg, err = config.Load(flagConfigPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flagFPS > 0 {
		a.cfg.TickRate = flagFPS
	}

	a.store, err = storage.Open(flagDBPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.closers = append(a.closers, a.store)

	reg := registry.Default()
	n, errs := a.store.RegisterCharts(reg)
	for _, e := range errs {
		a.logger.Warn("skipping library chart", "err", e)
	}
	a.logger.Debug("library charts registered", "count", n)

	if flagChartsDir != "" {
		n, errs := charts.NewLoader(flagChartsDir).RegisterAll(reg)
		for _, e := range errs {
			a.logger.Warn("skipping chart file", "err", e)
		}
		a.logger.Debug("chart files registered", "dir", flagChartsDir, "count", n)
	}

	return a, nil
}

// Close releases the database and log file.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

// run adapts a command that returns an error to cobra's Run, printing the
// error and exiting non-zero.
func run(f func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := f(cmd, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
