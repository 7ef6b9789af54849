package svg

import (
	"strconv"
	"strings"

	"github.com/noutice/happy-color-poc/pkg/graphics"
)

// namedColors are the fill names the resolver recognizes, at the
// material palette values the input corpus was drawn with. Keys are
// normalized: lowercase with spaces and hyphens removed.
var namedColors = map[string]graphics.RGBA{
	"white":       {R: 255, G: 255, B: 255, A: 255},
	"black":       {R: 0, G: 0, B: 0, A: 255},
	"red":         {R: 244, G: 67, B: 54, A: 255},
	"green":       {R: 76, G: 175, B: 80, A: 255},
	"blue":        {R: 33, G: 150, B: 243, A: 255},
	"yellow":      {R: 255, G: 235, B: 59, A: 255},
	"orange":      {R: 255, G: 152, B: 0, A: 255},
	"purple":      {R: 156, G: 39, B: 176, A: 255},
	"pink":        {R: 233, G: 30, B: 99, A: 255},
	"brown":       {R: 121, G: 85, B: 72, A: 255},
	"gray":        {R: 158, G: 158, B: 158, A: 255},
	"grey":        {R: 158, G: 158, B: 158, A: 255},
	"cyan":        {R: 0, G: 188, B: 212, A: 255},
	"lime":        {R: 205, G: 220, B: 57, A: 255},
	"indigo":      {R: 63, G: 81, B: 181, A: 255},
	"teal":        {R: 0, G: 150, B: 136, A: 255},
	"amber":       {R: 255, G: 193, B: 7, A: 255},
	"deeporange":  {R: 255, G: 87, B: 34, A: 255},
	"deeppurple":  {R: 103, G: 58, B: 183, A: 255},
	"lightblue":   {R: 3, G: 169, B: 244, A: 255},
	"lightgreen":  {R: 139, G: 195, B: 74, A: 255},
}

// ParseFill resolves a fill attribute token to a color. It never fails:
// "none" and the empty string resolve to the transparent sentinel, and
// anything unintelligible resolves to the gray fallback.
func ParseFill(token string) graphics.RGBA {
	c, _ := resolveFill(token)
	return c
}

// resolveFill additionally reports whether the token was unintelligible
// and fell back to gray, so the walker can count degraded colors.
func resolveFill(token string) (graphics.RGBA, bool) {
	s := strings.ToLower(strings.TrimSpace(token))
	if s == "" || s == "none" {
		return graphics.Transparent(), false
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBColor(s)
	}
	if c, ok := namedColors[normalizeColorName(s)]; ok {
		return c, false
	}
	return graphics.Gray(), true
}

// parseHexColor handles #rgb (each digit duplicated) and #rrggbb. Other
// lengths are unsupported and degrade to gray.
func parseHexColor(hex string) (graphics.RGBA, bool) {
	if len(hex) == 3 {
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[2*i] = hex[i]
			expanded[2*i+1] = hex[i]
		}
		hex = string(expanded)
	}
	if len(hex) != 6 {
		return graphics.Gray(), true
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return graphics.Gray(), true
	}
	return graphics.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, false
}

// parseRGBColor handles rgb(r,g,b) and rgba(r,g,b,a) with channels
// separated by commas or spaces. Alpha is given in 0-1 and scaled to
// 0-255; without an alpha the color is opaque.
func parseRGBColor(s string) (graphics.RGBA, bool) {
	open := strings.Index(s, "(")
	end := strings.Index(s, ")")
	if open < 0 || end < open {
		return graphics.Gray(), true
	}
	args := splitNumbers(s[open+1 : end])
	if len(args) < 3 {
		return graphics.Gray(), true
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return graphics.Gray(), true
		}
		ch[i] = clampChannel(v)
	}
	alpha := uint8(255)
	if len(args) >= 4 {
		v, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return graphics.Gray(), true
		}
		alpha = clampChannel(v * 255)
	}
	return graphics.RGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, false
}

// clampChannel rounds a numeric channel into the 0-255 range.
func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// normalizeColorName lowercases a color name and strips the spaces and
// hyphens authors write between words ("Deep Orange", "deep-orange").
func normalizeColorName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == ' ' || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
