package svg

import (
	"strconv"

	"github.com/noutice/happy-color-poc/pkg/graphics"
	"github.com/noutice/happy-color-poc/pkg/path"
)

// ParsePathData parses a path data ("d") string into a path. Supported
// commands are M/L/H/V/C/Q in absolute and relative form plus Z. A new
// move-to starts a new sub-contour; extra coordinate pairs after a
// move-to continue it as line-tos. Returns nil when d is empty or not
// parsable as this subset, in which case the caller skips the node.
func ParsePathData(d string) *graphics.Path {
	tokens := tokenizePathData(d)
	if len(tokens) == 0 {
		return nil
	}

	b := path.NewBuilder()
	var (
		cmd            byte
		curX, curY     float64
		startX, startY float64
		started        bool
	)

	i := 0
	// numbers consumes n consecutive numeric tokens.
	numbers := func(n int) ([]float64, bool) {
		if i+n > len(tokens) {
			return nil, false
		}
		vals := make([]float64, n)
		for k := 0; k < n; k++ {
			v, err := strconv.ParseFloat(tokens[i+k], 64)
			if err != nil {
				return nil, false
			}
			vals[k] = v
		}
		i += n
		return vals, true
	}

	for i < len(tokens) {
		tok := tokens[i]
		if len(tok) == 1 && isPathCommand(tok[0]) {
			cmd = tok[0]
			i++
			if cmd == 'Z' || cmd == 'z' {
				if !started {
					return nil
				}
				b.Close()
				curX, curY = startX, startY
				cmd = 0
			}
			continue
		}

		// A numeric token repeats the active command.
		switch cmd {
		case 'M', 'm':
			vals, ok := numbers(2)
			if !ok {
				return nil
			}
			x, y := vals[0], vals[1]
			if cmd == 'm' && started {
				x += curX
				y += curY
			}
			b.MoveTo(x, y)
			curX, curY = x, y
			startX, startY = x, y
			started = true
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		case 'L', 'l':
			if !started {
				return nil
			}
			vals, ok := numbers(2)
			if !ok {
				return nil
			}
			x, y := vals[0], vals[1]
			if cmd == 'l' {
				x += curX
				y += curY
			}
			b.LineTo(x, y)
			curX, curY = x, y
		case 'H', 'h':
			if !started {
				return nil
			}
			vals, ok := numbers(1)
			if !ok {
				return nil
			}
			x := vals[0]
			if cmd == 'h' {
				x += curX
			}
			b.LineTo(x, curY)
			curX = x
		case 'V', 'v':
			if !started {
				return nil
			}
			vals, ok := numbers(1)
			if !ok {
				return nil
			}
			y := vals[0]
			if cmd == 'v' {
				y += curY
			}
			b.LineTo(curX, y)
			curY = y
		case 'C', 'c':
			if !started {
				return nil
			}
			vals, ok := numbers(6)
			if !ok {
				return nil
			}
			if cmd == 'c' {
				for k := 0; k < 6; k += 2 {
					vals[k] += curX
					vals[k+1] += curY
				}
			}
			b.CurveTo(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5])
			curX, curY = vals[4], vals[5]
		case 'Q', 'q':
			if !started {
				return nil
			}
			vals, ok := numbers(4)
			if !ok {
				return nil
			}
			if cmd == 'q' {
				for k := 0; k < 4; k += 2 {
					vals[k] += curX
					vals[k+1] += curY
				}
			}
			b.QuadTo(vals[0], vals[1], vals[2], vals[3])
			curX, curY = vals[2], vals[3]
		default:
			// Data with no active command, or a command outside the
			// supported subset.
			return nil
		}
	}

	p := b.Build()
	if p.IsEmpty() {
		return nil
	}
	return p
}

// isPathCommand reports whether c is a supported command letter.
func isPathCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'Q', 'q', 'Z', 'z':
		return true
	}
	return false
}

// tokenizePathData splits path data into single-letter commands and
// numeric tokens. Numbers may run together the way vector editors emit
// them ("10-5" or "1.5.5"), so a sign or a second decimal point starts
// a new token. Returns nil on bytes that belong to neither a number nor
// a command.
func tokenizePathData(d string) []string {
	var tokens []string
	i := 0
	for i < len(d) {
		c := d[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			i++
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			tokens = append(tokens, string(c))
			i++
		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			start := i
			if c == '+' || c == '-' {
				i++
			}
			sawDot := false
			sawExp := false
			for i < len(d) {
				ch := d[i]
				if ch >= '0' && ch <= '9' {
					i++
					continue
				}
				if ch == '.' && !sawDot && !sawExp {
					sawDot = true
					i++
					continue
				}
				if (ch == 'e' || ch == 'E') && !sawExp && i > start {
					j := i + 1
					if j < len(d) && (d[j] == '+' || d[j] == '-') {
						j++
					}
					if j < len(d) && d[j] >= '0' && d[j] <= '9' {
						sawExp = true
						i = j
						continue
					}
					break
				}
				break
			}
			tokens = append(tokens, d[start:i])
		default:
			return nil
		}
	}
	return tokens
}
