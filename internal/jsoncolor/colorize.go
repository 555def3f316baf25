// Package jsoncolor highlights serialized maps for terminal output.
package jsoncolor

import (
	"strconv"
	"strings"

	"github.com/hay-kot/storm/internal/core/styles"
)

// Colorize adds theme colors to map JSON as produced by mapfile.Encode.
// Tiles equal to fill are muted so that the drawn shapes stand out;
// brackets and separators are muted as well. Object keys, numbers, and
// literals are colored too so arbitrary JSON stays readable. The input is
// not reformatted; stripping the escape codes gives back data unchanged.
func Colorize(data []byte, fill rune) string {
	raw := string(data)
	fillTile := strconv.Quote(string(fill))

	var out strings.Builder
	out.Grow(len(raw) * 2)

	i := 0
	for i < len(raw) {
		ch := raw[i]
		switch {
		case ch == '"':
			end := findStringEnd(raw, i)
			str := raw[i : end+1]

			rest := strings.TrimLeft(raw[end+1:], " \t\n")
			switch {
			case len(rest) > 0 && rest[0] == ':':
				out.WriteString(styles.BannerStyle.Render(str))
			case str == fillTile:
				out.WriteString(styles.MutedStyle.Render(str))
			default:
				out.WriteString(styles.SuccessStyle.Render(str))
			}
			i = end + 1

		case ch == '[' || ch == ']' || ch == '{' || ch == '}' || ch == ',' || ch == ':':
			out.WriteString(styles.MutedStyle.Render(string(ch)))
			i++

		case ch >= '0' && ch <= '9' || ch == '-':
			end := i + 1
			for end < len(raw) && strings.IndexByte("0123456789.eE+-", raw[end]) >= 0 {
				end++
			}
			out.WriteString(styles.WarnStyle.Render(raw[i:end]))
			i = end

		case hasWord(raw, i, "true"), hasWord(raw, i, "false"), hasWord(raw, i, "null"):
			end := i
			for end < len(raw) && raw[end] >= 'a' && raw[end] <= 'z' {
				end++
			}
			out.WriteString(styles.ErrorStyle.Render(raw[i:end]))
			i = end

		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

func hasWord(s string, pos int, word string) bool {
	return strings.HasPrefix(s[pos:], word)
}

// findStringEnd returns the index of the closing quote for a JSON string starting at pos.
func findStringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++ // skip escaped character
			continue
		}
		if s[i] == '"' {
			return i
		}
	}
	return len(s) - 1
}
