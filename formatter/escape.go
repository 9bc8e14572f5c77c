package formatter

import (
	"bytes"
	"strconv"
	"unicode/utf8"
)

// appendJSONString writes a JSON-escaped string (without surrounding quotes)
// to the buffer. Invalid UTF-8 is replaced with U+FFFD so the output is
// always valid JSON.
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			// Flush unescaped prefix
			if start < i {
				buf.WriteString(s[start:i])
			}
			switch c {
			case '"':
				buf.WriteString(`\"`)
			case '\\':
				buf.WriteString(`\\`)
			case '\n':
				buf.WriteString(`\n`)
			case '\r':
				buf.WriteString(`\r`)
			case '\t':
				buf.WriteString(`\t`)
			default:
				buf.WriteString(`\u00`)
				buf.WriteByte(hexChars[c>>4])
				buf.WriteByte(hexChars[c&0x0f])
			}
			i++
			start = i
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if start < i {
				buf.WriteString(s[start:i])
			}
			buf.WriteString(`\ufffd`)
			i++
			start = i
			continue
		}
		i += size
	}
	// Flush remaining
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// appendStringField writes ,"key":"value" (or without the leading comma
// for the first field)
func appendStringField(buf *bytes.Buffer, first bool, key, value string) {
	if !first {
		buf.WriteByte(',')
	}
	buf.WriteByte('"')
	buf.WriteString(key)
	buf.WriteString(`":"`)
	appendJSONString(buf, value)
	buf.WriteByte('"')
}

// appendIntField writes an integer as a JSON string field
func appendIntField(buf *bytes.Buffer, key string, v int64) {
	buf.WriteString(`,"`)
	buf.WriteString(key)
	buf.WriteString(`":"`)
	var digits [20]byte
	buf.Write(strconv.AppendInt(digits[:0], v, 10))
	buf.WriteByte('"')
}
