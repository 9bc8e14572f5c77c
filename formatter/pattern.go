package formatter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadPattern is returned for timestamp patterns that cannot be compiled
var ErrBadPattern = errors.New("invalid timestamp pattern")

// Pattern is a compiled date pattern in the letter notation used by log
// configuration files ("yyyy-MM-dd'T'HH:mm:ss.SSSZ"). Text between single
// quotes is literal, and '' is a literal quote. Any other ASCII letter
// outside quotes is a pattern field; unknown letters are rejected.
//
// A Pattern is immutable and safe for concurrent use. Rendering derives
// everything from the time value passed in.
type Pattern struct {
	src    string
	tokens []patternToken
}

type patternToken struct {
	lit    string
	letter byte
	count  int
}

// CompilePattern parses src into a Pattern
func CompilePattern(src string) (*Pattern, error) {
	p := &Pattern{src: src}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			p.tokens = append(p.tokens, patternToken{lit: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\'':
			if i+1 < len(src) && src[i+1] == '\'' {
				lit.WriteByte('\'')
				i += 2
				continue
			}
			end := i + 1
			for {
				j := strings.IndexByte(src[end:], '\'')
				if j < 0 {
					return nil, fmt.Errorf("%w: unterminated quote in %q", ErrBadPattern, src)
				}
				lit.WriteString(src[end : end+j])
				end += j + 1
				// '' inside a quoted section is an escaped quote
				if end < len(src) && src[end] == '\'' {
					lit.WriteByte('\'')
					end++
					continue
				}
				break
			}
			i = end
		case isASCIILetter(c):
			if !strings.ContainsRune(patternLetters, rune(c)) {
				return nil, fmt.Errorf("%w: illegal pattern character %q in %q", ErrBadPattern, c, src)
			}
			n := 1
			for i+n < len(src) && src[i+n] == c {
				n++
			}
			if c == 'X' && n > 3 {
				return nil, fmt.Errorf("%w: too many pattern letters X in %q", ErrBadPattern, src)
			}
			flush()
			p.tokens = append(p.tokens, patternToken{letter: c, count: n})
			i += n
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return p, nil
}

// MustCompilePattern is like CompilePattern but panics on error
func MustCompilePattern(src string) *Pattern {
	p, err := CompilePattern(src)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source pattern
func (p *Pattern) String() string {
	return p.src
}

// Format renders t
func (p *Pattern) Format(t time.Time) string {
	return string(p.Append(make([]byte, 0, 32), t))
}

const patternLetters = "GyYMLwDdEuaHkKhmsSzZX"

// Append renders t into b
func (p *Pattern) Append(b []byte, t time.Time) []byte {
	for _, tok := range p.tokens {
		if tok.letter == 0 {
			b = append(b, tok.lit...)
			continue
		}
		n := tok.count
		switch tok.letter {
		case 'G':
			if t.Year() > 0 {
				b = append(b, "AD"...)
			} else {
				b = append(b, "BC"...)
			}
		case 'y':
			b = appendYear(b, t.Year(), n)
		case 'Y':
			year, _ := t.ISOWeek()
			b = appendYear(b, year, n)
		case 'M', 'L':
			switch {
			case n >= 4:
				b = append(b, t.Month().String()...)
			case n == 3:
				b = append(b, t.Month().String()[:3]...)
			default:
				b = appendPadded(b, int(t.Month()), n)
			}
		case 'w':
			_, week := t.ISOWeek()
			b = appendPadded(b, week, n)
		case 'D':
			b = appendPadded(b, t.YearDay(), n)
		case 'd':
			b = appendPadded(b, t.Day(), n)
		case 'E':
			if n >= 4 {
				b = append(b, t.Weekday().String()...)
			} else {
				b = append(b, t.Weekday().String()[:3]...)
			}
		case 'u':
			wd := int(t.Weekday())
			if wd == 0 {
				wd = 7
			}
			b = appendPadded(b, wd, n)
		case 'a':
			if t.Hour() < 12 {
				b = append(b, "AM"...)
			} else {
				b = append(b, "PM"...)
			}
		case 'H':
			b = appendPadded(b, t.Hour(), n)
		case 'k':
			h := t.Hour()
			if h == 0 {
				h = 24
			}
			b = appendPadded(b, h, n)
		case 'K':
			b = appendPadded(b, t.Hour()%12, n)
		case 'h':
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			b = appendPadded(b, h, n)
		case 'm':
			b = appendPadded(b, t.Minute(), n)
		case 's':
			b = appendPadded(b, t.Second(), n)
		case 'S':
			b = appendPadded(b, t.Nanosecond()/int(time.Millisecond), n)
		case 'z':
			b = t.AppendFormat(b, "MST")
		case 'Z':
			b = t.AppendFormat(b, "-0700")
		case 'X':
			switch n {
			case 1:
				b = t.AppendFormat(b, "Z07")
			case 2:
				b = t.AppendFormat(b, "Z0700")
			default:
				b = t.AppendFormat(b, "Z07:00")
			}
		}
	}
	return b
}

func appendYear(b []byte, year, n int) []byte {
	if n == 2 {
		return appendPadded(b, year%100, 2)
	}
	return appendPadded(b, year, n)
}

func appendPadded(b []byte, v, width int) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	var digits [20]byte
	d := strconv.AppendInt(digits[:0], int64(v), 10)
	for i := len(d); i < width; i++ {
		b = append(b, '0')
	}
	return append(b, d...)
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
