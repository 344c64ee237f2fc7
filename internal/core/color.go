package core

// Color is a foreground color for a screen cell. The platform layer maps it
// to ANSI 256-color codes; the simulation only ever deals in these names.
type Color uint8

// The first block covers the standard terminal palette; the second block is
// the beach terrain palette used by the tile set.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	ColorSand
	ColorSea
	ColorPalm
)
