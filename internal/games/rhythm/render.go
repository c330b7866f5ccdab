// Package rhythm draws rhythm sessions onto the platform screen buffer.
// The simulation itself lives in rhythm/core and knows nothing about
// terminals; this package only reads its snapshots.
package rhythm

import (
	"fmt"
	"math"
	"strings"

	"github.com/AdrianoCalmon/Bit-Hero/internal/config"
	platformcore "github.com/AdrianoCalmon/Bit-Hero/internal/core"
	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
)

// Screen rows reserved around the track.
const (
	hudRows    = 2 // Title and score line, separator
	footerRows = 3 // Key labels, judgment text, progress bar
	minTrackH  = 4
)

// DefaultFeedbackMs is how long the last judgment stays on screen.
const DefaultFeedbackMs = 600

// Layout is the playfield geometry used to place notes.
type Layout struct {
	NoteSpeed   float64 // Track units per millisecond
	HitZone     float64 // Hit line, percent from the top of the track
	TrackHeight float64 // Track length in note_speed units
	LaneWidth   int
	FeedbackMs  int64
	KeyLabels   []string // Shown under each lane
}

// LayoutFromConfig builds a layout from the playfield and key sections.
func LayoutFromConfig(cfg config.RhythmConfig) Layout {
	return Layout{
		NoteSpeed:   cfg.Playfield.NoteSpeed,
		HitZone:     cfg.Playfield.HitZone,
		TrackHeight: cfg.Playfield.TrackHeight,
		LaneWidth:   cfg.Playfield.LaneWidth,
		FeedbackMs:  DefaultFeedbackMs,
		KeyLabels:   cfg.Keys.Lanes,
	}
}

// DefaultLayout returns the layout of the embedded default config.
func DefaultLayout() Layout {
	return LayoutFromConfig(config.DefaultRhythmConfig())
}

// NotePosition returns where a note scheduled at noteMs sits at nowMs, in
// percent of the track height from the top. Notes reach HitZone exactly at
// their scheduled time; values outside [0,100] are off the track.
func (l Layout) NotePosition(noteMs, nowMs int64) float64 {
	return l.HitZone - float64(noteMs-nowMs)*l.NoteSpeed/l.TrackHeight*100
}

// track computes the lane columns for a screen of w x h cells.
// It reports false when the screen cannot fit a playable track.
func (l Layout) track(w, h int) (top, height int, lanes []platformcore.Rect, ok bool) {
	height = h - hudRows - footerRows
	laneW := platformcore.Min(l.LaneWidth, (w-(core.LaneCount+1))/core.LaneCount)
	if height < minTrackH || laneW < 1 {
		return 0, 0, nil, false
	}

	total := core.LaneCount*laneW + core.LaneCount + 1
	x0 := platformcore.Max(0, (w-total)/2)
	area := platformcore.NewRect(x0+1, hudRows, total-2, height)
	return hudRows, height, area.SplitColumns(core.LaneCount, 1), true
}

// row maps a track percentage to a screen row.
func row(top, height int, pct float64) int {
	return top + int(math.Round(pct/100*float64(height-1)))
}

// Render draws the snapshot onto dst.
func Render(dst *platformcore.Screen, snap core.Snapshot, l Layout) {
	dst.Clear()
	renderHUD(dst, snap)

	top, height, lanes, ok := l.track(dst.Width(), dst.Height())
	if !ok {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", platformcore.ColorBrightRed)
		return
	}

	renderLanes(dst, snap, l, top, height, lanes)
	renderNotes(dst, snap, l, top, height, lanes)
	renderFooter(dst, snap, l, lanes)

	switch snap.State {
	case core.SessionPaused:
		drawOverlay(dst, "PAUSED", "press p to resume")
	case core.SessionFinished:
		drawOverlay(dst, "FINISHED", fmt.Sprintf("Rank %s  Score %d", snap.Score.Rank(), snap.Score.Score))
	}
}

func renderHUD(dst *platformcore.Screen, snap core.Snapshot) {
	dst.DrawText(1, 0, snap.Title, platformcore.ColorBrightWhite)

	stats := fmt.Sprintf("SCORE %d  COMBO %d  x%d ", snap.Score.Score, snap.Score.Combo, snap.Multiplier)
	dst.DrawText(dst.Width()-len(stats), 0, stats, platformcore.ColorBrightCyan)

	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)
}

func renderLanes(dst *platformcore.Screen, snap core.Snapshot, l Layout, top, height int, lanes []platformcore.Rect) {
	for i, lane := range lanes {
		dst.DrawVLine(lane.X-1, top, height, '│', platformcore.ColorGray)
		if i == len(lanes)-1 {
			dst.DrawVLine(lane.Right(), top, height, '│', platformcore.ColorGray)
		}
	}

	hit := row(top, height, l.HitZone)
	for i, lane := range lanes {
		if snap.Held[i] {
			dst.DrawHLine(lane.X, hit, lane.W, '▓', platformcore.LaneColor(i))
		} else {
			dst.DrawHLine(lane.X, hit, lane.W, '═', platformcore.ColorWhite)
		}
	}
}

func renderNotes(dst *platformcore.Screen, snap core.Snapshot, l Layout, top, height int, lanes []platformcore.Rect) {
	for _, n := range snap.Pending {
		pct := l.NotePosition(n.TimeMs, snap.NowMs)
		if pct < 0 || pct > 100 || n.Lane < 0 || n.Lane >= len(lanes) {
			continue
		}
		lane := lanes[n.Lane]
		dst.DrawHLine(lane.X, row(top, height, pct), lane.W, '█', platformcore.LaneColor(n.Lane))
	}
}

func renderFooter(dst *platformcore.Screen, snap core.Snapshot, l Layout, lanes []platformcore.Rect) {
	h := dst.Height()

	for i, lane := range lanes {
		if i >= len(l.KeyLabels) {
			break
		}
		label := strings.ToUpper(l.KeyLabels[i])
		color := platformcore.ColorGray
		if snap.Held[i] {
			color = platformcore.LaneColor(i)
		}
		cx, _ := lane.Center()
		dst.DrawText(cx-len([]rune(label))/2, h-3, label, color)
	}

	if text, color := FeedbackText(snap, l.FeedbackMs); text != "" {
		dst.DrawTextCentered(h-2, text, color)
	}

	dst.DrawText(0, h-1, ProgressBar(snap.Progress(), dst.Width()), platformcore.ColorGray)
}

// FeedbackText returns the label for the most recent judgment while it is
// still fresh, and an empty string otherwise.
func FeedbackText(snap core.Snapshot, ttlMs int64) (string, platformcore.Color) {
	ev := snap.Last
	if ev.Kind == core.JudgmentNone || snap.NowMs-ev.AtMs > ttlMs {
		return "", platformcore.ColorDefault
	}
	switch ev.Kind {
	case core.JudgmentPerfect:
		return fmt.Sprintf("PERFECT! %+dms", ev.DiffMs), platformcore.ColorBrightYellow
	case core.JudgmentGreat:
		return fmt.Sprintf("GREAT %+dms", ev.DiffMs), platformcore.ColorBrightGreen
	default:
		return "MISS", platformcore.ColorBrightRed
	}
}

// ProgressBar renders p in [0,1] as a bar of exactly width cells,
// e.g. "[#####-----]  50%".
func ProgressBar(p float64, width int) string {
	suffix := fmt.Sprintf(" %3d%%", int(math.Round(p*100)))
	inner := width - 2 - len(suffix)
	if inner < 1 {
		return strings.Repeat(" ", platformcore.Max(width, 0))
	}
	filled := platformcore.Clamp(int(math.Round(p*float64(inner))), 0, inner)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", inner-filled) + "]" + suffix
}

// drawOverlay draws a centered two-line message box.
func drawOverlay(dst *platformcore.Screen, line1, line2 string) {
	boxW := platformcore.Max(len(line1), len(line2)) + 4
	boxH := 5
	box := platformcore.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawHLine(box.X, box.Y, box.W, '-', platformcore.ColorWhite)
	dst.DrawHLine(box.X, box.Bottom()-1, box.W, '-', platformcore.ColorWhite)
	dst.DrawVLine(box.X, box.Y, box.H, '|', platformcore.ColorWhite)
	dst.DrawVLine(box.Right()-1, box.Y, box.H, '|', platformcore.ColorWhite)

	dst.DrawTextCentered(box.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, platformcore.ColorWhite)
}
