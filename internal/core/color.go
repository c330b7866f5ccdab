package core

// Color is the foreground color of a screen cell. The terminal front-end
// maps each value to an ANSI color.
type Color uint8

// Palette of the playfield.
const (
	ColorDefault Color = iota
	ColorWhite
	ColorGray
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightCyan
	ColorBrightWhite
)

// laneColors follows the classic red, yellow, green, blue fret order.
var laneColors = [4]Color{ColorBrightRed, ColorBrightYellow, ColorBrightGreen, ColorBrightBlue}

// LaneColor returns the color of a lane; out-of-range lanes are gray.
func LaneColor(lane int) Color {
	if lane < 0 || lane >= len(laneColors) {
		return ColorGray
	}
	return laneColors[lane]
}
