package core

import "strings"

// Color is a terminal color specification for a screen cell.
// It is either an ANSI 256-color index ("1", "208") or a hex triplet ("#ff0000").
// The empty Color means the terminal default.
type Color string

// Predefined colors for scene elements.
const (
	ColorDefault   Color = ""
	ColorRed       Color = "1"
	ColorGreen     Color = "2"
	ColorYellow    Color = "3"
	ColorBlue      Color = "4"
	ColorMagenta   Color = "5"
	ColorCyan      Color = "6"
	ColorWhite     Color = "7"
	ColorBrightRed Color = "9"
	ColorOrange    Color = "208"
	ColorGray      Color = "245"
	ColorTileLight Color = "253"
	ColorTileDark  Color = "249"
)

// namedColors maps the color names found in replay headers to ANSI indexes.
var namedColors = map[string]Color{
	"black":   "0",
	"red":     ColorRed,
	"green":   ColorGreen,
	"yellow":  ColorYellow,
	"blue":    ColorBlue,
	"magenta": ColorMagenta,
	"purple":  ColorMagenta,
	"cyan":    ColorCyan,
	"white":   ColorWhite,
	"orange":  ColorOrange,
	"gray":    ColorGray,
	"grey":    ColorGray,
	"pink":    "13",
	"brown":   "130",
}

// ParseColor converts a header color value into a Color.
// Accepts color names, hex triplets ("#f00", "#ff0000", "0xff0000") and
// ANSI indexes. Unknown values map to ColorDefault.
func ParseColor(s string) Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ColorDefault
	}
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "0x") {
		s = "#" + s[2:]
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if (len(hex) == 3 || len(hex) == 6) && isHex(hex) {
			return Color(s)
		}
		return ColorDefault
	}
	if len(s) <= 3 && isDigits(s) {
		return Color(s)
	}
	return ColorDefault
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
