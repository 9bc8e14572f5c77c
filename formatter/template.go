package formatter

import (
	"strconv"
	"strings"

	"golang.org/x/text/message"
)

// FormatTemplate substitutes positional placeholders in tmpl.
//
// "{n}" is replaced by the n-th parameter; "{n,type}" and "{n,type,style}"
// are accepted and print the parameter the same way. "{{" and "}}" are
// literal braces. A single quote starts a literal section that ends at the
// next single quote, and "''" is a literal quote, so "'{0}'" prints "{0}". A placeholder whose index has no
// parameter is written back as "{n}". Malformed placeholders are copied
// verbatim. Parameters are printed with p, which renders numbers for its
// locale; nil prints "null".
func FormatTemplate(p *message.Printer, tmpl string, params []any) string {
	if !strings.ContainsAny(tmpl, "{}'") {
		return tmpl
	}

	var b strings.Builder
	b.Grow(len(tmpl) + 16*len(params))

	inQuote := false
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch {
		case c == '\'':
			if i+1 < len(tmpl) && tmpl[i+1] == '\'' {
				b.WriteByte('\'')
				i++
				continue
			}
			inQuote = !inQuote
		case inQuote:
			b.WriteByte(c)
		case c == '{' && i+1 < len(tmpl) && tmpl[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(tmpl) && tmpl[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			end := matchingBrace(tmpl, i)
			if end < 0 {
				b.WriteString(tmpl[i:])
				return b.String()
			}
			body := tmpl[i+1 : end]
			index, ok := placeholderIndex(body)
			switch {
			case !ok:
				b.WriteString(tmpl[i : end+1])
			case index >= len(params):
				b.WriteByte('{')
				b.WriteString(strconv.Itoa(index))
				b.WriteByte('}')
			default:
				b.WriteString(formatParam(p, params[index]))
			}
			i = end
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// matchingBrace returns the index of the '}' closing the '{' at start,
// allowing nested braces inside a style, or -1.
func matchingBrace(s string, start int) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func placeholderIndex(body string) (int, bool) {
	num, _, _ := strings.Cut(body, ",")
	num = strings.TrimSpace(num)
	if num == "" {
		return 0, false
	}
	for i := 0; i < len(num); i++ {
		if num[i] < '0' || num[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, false
	}
	return n, true
}

func formatParam(p *message.Printer, v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	default:
		return p.Sprint(val)
	}
}
