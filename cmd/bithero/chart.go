package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/AdrianoCalmon/Bit-Hero/internal/config"
	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/charts"
	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/charts/formats"
	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
	"github.com/AdrianoCalmon/Bit-Hero/internal/logging"
	"github.com/AdrianoCalmon/Bit-Hero/internal/platform/tui"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
	"github.com/AdrianoCalmon/Bit-Hero/internal/storage"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show, generate, export and import charts",
	Long: `Work with note charts.

Charts can be stored as YAML, JSON or standard MIDI files. In MIDI files
lanes 1-4 are the pitches C4, D4, E4 and F4.

Examples:
  bithero chart show neon-overdrive
  bithero chart generate --preset hard --seed 4.2 --title "NIGHT RUN" -o night-run.yaml
  bithero chart export neon-overdrive -o neon.mid
  bithero chart import ./my-song.json
  bithero chart delete my-song`,
}

var (
	flagShowNotes int

	flagGenPreset string
	flagGenLevel  float64
	flagGenSeed   float64
	flagGenLength time.Duration
	flagGenNumber int
	flagGenID     string
	flagGenTitle  string
	flagGenGenre  string
	flagGenOutput string
	flagGenSave   bool

	flagExportOutput string
	flagExportFormat string

	flagImportID string
)

var chartShowCmd = &cobra.Command{
	Use:   "show <song>",
	Short: "Print a chart summary and its first notes",
	Args:  cobra.ExactArgs(1),
	Run:   run(runChartShow),
}

var chartGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a chart with the built-in pattern generator",
	Long: `Generate a deterministic chart. The same preset, level, seed, length
and number always give the same notes.

Difficulty presets set the note density:
  easy   - sparse single notes
  normal - denser, occasional chords
  hard   - dense with frequent chords

Without -o or --save the chart is printed as YAML.`,
	Run: run(runChartGenerate),
}

var chartExportCmd = &cobra.Command{
	Use:   "export <song>",
	Short: "Write a song's chart to a file",
	Args:  cobra.ExactArgs(1),
	Run:   run(runChartExport),
}

var chartImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a chart file into the library",
	Long: `Reads a YAML, JSON or MIDI chart, normalizes it and stores it in the
database so it shows up in 'bithero list' without --charts.

Lanes out of range are clamped, notes with negative times or times past
about 24 days are dropped and notes are sorted by time. Corrections are reported as warnings.`,
	Args: cobra.ExactArgs(1),
	Run:  run(runChartImport),
}

var chartDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an imported chart from the library",
	Args:  cobra.ExactArgs(1),
	Run:   run(runChartDelete),
}

func init() {
	chartShowCmd.Flags().IntVar(&flagShowNotes, "notes", 16, "Number of notes to print")

	f := chartGenerateCmd.Flags()
	f.StringVar(&flagGenPreset, "preset", "normal", "Difficulty preset: easy, normal, hard")
	f.Float64Var(&flagGenLevel, "level", 0.5, "Position inside the preset's density band, 0 to 1")
	f.Float64Var(&flagGenSeed, "seed", 1.0, "Pattern seed")
	f.DurationVar(&flagGenLength, "length", 2*time.Minute, "Song length")
	f.IntVar(&flagGenNumber, "number", 100, "Song number mixed into the pattern")
	f.StringVar(&flagGenID, "id", "", "Song ID (default: slug of the title)")
	f.StringVar(&flagGenTitle, "title", "", "Song title (default: GENERATED <number>)")
	f.StringVar(&flagGenGenre, "genre", "Generated", "Song genre")
	f.StringVarP(&flagGenOutput, "output", "o", "", "Write the chart to this file (.yaml, .json, .mid)")
	f.BoolVar(&flagGenSave, "save", false, "Store the chart in the library")

	chartExportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (default: <id>.<format> in the current directory)")
	chartExportCmd.Flags().StringVar(&flagExportFormat, "format", "", "yaml, json or midi (default: from the output extension, else yaml)")

	chartImportCmd.Flags().StringVar(&flagImportID, "id", "", "Store under this ID instead of the one in the file")

	chartCmd.AddCommand(chartShowCmd, chartGenerateCmd, chartExportCmd, chartImportCmd, chartDeleteCmd)
}

func runChartShow(_ *cobra.Command, args []string) error {
	a, err := setup(logStderr)
	if err != nil {
		return err
	}
	defer a.Close()

	song, err := registry.Resolve(args[0])
	if err != nil {
		return err
	}

	var perLane [core.LaneCount]int
	chords := 0
	for i, n := range song.Notes {
		perLane[n.Lane]++
		if i > 0 && song.Notes[i-1].TimeMs == n.TimeMs {
			chords++
		}
	}

	fmt.Printf("%s (%s)\n", song.Title, song.ID)
	fmt.Println()
	fmt.Printf("  Genre:      %s\n", song.Genre)
	fmt.Printf("  Difficulty: %s\n", song.Difficulty)
	fmt.Printf("  Notes:      %d (%d chord notes)\n", len(song.Notes), chords)
	fmt.Printf("  Length:     %s\n", tui.FormatLength(song.LengthMs()))
	fmt.Printf("  Lanes:      %d / %d / %d / %d\n", perLane[0], perLane[1], perLane[2], perLane[3])
	fmt.Printf("  Hash:       %s\n", core.ChartHash(song.Notes))

	if flagShowNotes <= 0 || len(song.Notes) == 0 {
		return nil
	}
	fmt.Println()
	fmt.Printf("  %-8s  %-4s  %s\n", "Time", "Lane", "ID")
	for i, n := range song.Notes {
		if i == flagShowNotes {
			fmt.Printf("  ... %d more\n", len(song.Notes)-i)
			break
		}
		fmt.Printf("  %-8d  %-4d  %s\n", n.TimeMs, n.Lane+1, n.ID)
	}
	return nil
}

func runChartGenerate(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagGenPreset)
	if err != nil {
		return err
	}
	if flagGenLength <= 0 {
		return fmt.Errorf("length must be positive, got %s", flagGenLength)
	}

	title := flagGenTitle
	if title == "" {
		title = fmt.Sprintf("GENERATED %d", flagGenNumber)
	}
	id := flagGenID
	if id == "" {
		id = charts.Slug(title)
	}

	params := core.GenParams{
		SongID:   flagGenNumber,
		Seed:     flagGenSeed,
		LengthMs: int(flagGenLength.Milliseconds()),
		Density:  config.DensityForPreset(preset, flagGenLevel),
	}
	song := core.Song{
		ID:         id,
		Title:      title,
		Genre:      flagGenGenre,
		Difficulty: config.SongDifficulty(preset),
		Notes:      params.Generate(),
	}

	if flagGenOutput == "" && !flagGenSave {
		data, err := formats.Encode(formats.YAML, song)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	if flagGenOutput != "" {
		if err := charts.WriteFile(flagGenOutput, song); err != nil {
			return err
		}
		fmt.Printf("Wrote %d notes to %s\n", len(song.Notes), flagGenOutput)
	}

	if flagGenSave {
		a, err := setup(logStderr)
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.store.SaveChart(song); err != nil {
			return err
		}
		fmt.Printf("Saved %q to the library as %s\n", song.Title, song.ID)
	}
	return nil
}

func runChartExport(_ *cobra.Command, args []string) error {
	a, err := setup(logStderr)
	if err != nil {
		return err
	}
	defer a.Close()

	song, err := registry.Resolve(args[0])
	if err != nil {
		return err
	}

	path, err := exportPath(song.ID, flagExportOutput, flagExportFormat)
	if err != nil {
		return err
	}
	if err := charts.WriteFile(path, song); err != nil {
		return err
	}
	a.logger.Debug("chart exported", "song", song.ID, "path", path)
	fmt.Printf("Exported %s (%d notes) to %s\n", song.ID, len(song.Notes), path)
	return nil
}

// exportPath picks the output file. An explicit format must agree with an
// explicit output extension.
func exportPath(id, output, format string) (string, error) {
	if format == "" {
		if output == "" {
			return id + formats.YAML.Extension(), nil
		}
		return output, nil
	}

	f, err := formats.ParseFormat(format)
	if err != nil {
		return "", err
	}
	if output == "" {
		return id + f.Extension(), nil
	}
	ext := filepath.Ext(output)
	if ext == "" {
		return output + f.Extension(), nil
	}
	if got, err := formats.ForExtension(ext); err != nil || got != f {
		return "", fmt.Errorf("output %s does not match format %s", output, f)
	}
	return output, nil
}

func runChartImport(_ *cobra.Command, args []string) error {
	a, err := setup(logStderr)
	if err != nil {
		return err
	}
	defer a.Close()

	chart, err := charts.LoadFile(args[0])
	if err != nil {
		return err
	}
	song := chart.Song
	if flagImportID != "" {
		song.ID = flagImportID
	}
	logging.IngestReport(a.logger, song.ID, chart.Report)

	if len(song.Notes) == 0 {
		a.logger.Warn("chart has no playable notes", "song", song.ID)
	}
	if info, ok := builtinInfo(song.ID); ok {
		return fmt.Errorf("id %q is taken by the built-in song %q; use --id", song.ID, info.Title)
	}

	if err := a.store.SaveChart(song); err != nil {
		return err
	}
	fmt.Printf("Imported %q as %s (%d notes)\n", song.Title, song.ID, len(song.Notes))
	return nil
}

func runChartDelete(_ *cobra.Command, args []string) error {
	a, err := setup(logStderr)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.DeleteChart(args[0]); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no imported chart with id %q", args[0])
		}
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

func builtinInfo(id string) (registry.SongInfo, bool) {
	for _, info := range registry.List() {
		if info.ID == id && info.Source == registry.SourceBuiltin {
			return info, true
		}
	}
	return registry.SongInfo{}, false
}
