package svg

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/noutice/happy-color-poc/pkg/graphics"
)

// ParseTransform parses a transform attribute into a single matrix.
//
// The recognized functions are translate(tx[,ty]), scale(sx[,sy]),
// rotate(deg[,cx,cy]) and matrix(a,b,c,d,e,f). They are applied in that
// fixed order no matter where they appear in the string, which is how
// the input corpus this tool targets was authored; arbitrarily ordered
// or repeated transform lists are out of scope. Unknown functions are
// ignored and malformed arguments fall back to per-function defaults,
// so parsing never fails.
func ParseTransform(s string) graphics.Matrix {
	m := graphics.Identity()
	s = strings.TrimSpace(s)
	if s == "" {
		return m
	}

	if args, ok := transformArgs(s, "translate"); ok {
		tx := numberAt(args, 0, 0)
		ty := numberAt(args, 1, 0)
		m = graphics.Translate(tx, ty).Multiply(m)
	}

	if args, ok := transformArgs(s, "scale"); ok {
		sx := numberAt(args, 0, 1)
		sy := sx
		if len(args) > 1 {
			sy = numberAt(args, 1, 1)
		}
		m = graphics.Scale(sx, sy).Multiply(m)
	}

	if args, ok := transformArgs(s, "rotate"); ok {
		angle := numberAt(args, 0, 0)
		rot := graphics.RotateDeg(angle)
		if len(args) >= 3 {
			// Rotation about a center: shift the center to the
			// origin, rotate, shift back.
			cx := numberAt(args, 1, 0)
			cy := numberAt(args, 2, 0)
			rot = graphics.Translate(-cx, -cy).
				Multiply(rot).
				Multiply(graphics.Translate(cx, cy))
		}
		m = rot.Multiply(m)
	}

	if args, ok := transformArgs(s, "matrix"); ok && len(args) >= 6 {
		vals := make([]float64, 6)
		valid := true
		for i := range vals {
			v, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				valid = false
				break
			}
			vals[i] = v
		}
		if valid {
			raw := graphics.Matrix{vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]}
			m = raw.Multiply(m)
		}
	}

	return m
}

// transformArgs returns the argument tokens of the named function call
// in s, or ok=false when the function does not appear or has no closing
// parenthesis. Only the first occurrence is considered.
func transformArgs(s, name string) ([]string, bool) {
	idx := strings.Index(s, name+"(")
	if idx < 0 {
		return nil, false
	}
	rest := s[idx+len(name)+1:]
	end := strings.Index(rest, ")")
	if end < 0 {
		return nil, false
	}
	return splitNumbers(rest[:end]), true
}

// splitNumbers splits an argument or coordinate list on commas and
// whitespace, dropping empty tokens.
func splitNumbers(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// numberAt parses the i-th token, falling back to def when the token is
// missing or not a number.
func numberAt(args []string, i int, def float64) float64 {
	if i < 0 || i >= len(args) {
		return def
	}
	v, err := strconv.ParseFloat(args[i], 64)
	if err != nil {
		return def
	}
	return v
}
