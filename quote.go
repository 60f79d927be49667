package cgeltree

import "strings"

// Quote renders s as a double-quoted bracket-notation string. Only quotes and
// backslashes that would otherwise be read as escapes are escaped, so TeX
// markup such as \textquoteright survives unchanged.
func Quote(s string) string {
	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte('"')

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\\' && (i+1 == len(s) || s[i+1] == '"' || s[i+1] == '\\'):
			sb.WriteString(`\\`)
		default:
			sb.WriteByte(c)
		}
	}

	sb.WriteByte('"')

	return sb.String()
}

// Unquote reverses Quote. The surrounding quotes are optional; a backslash
// that does not start \" or \\ is kept as is.
func Unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder

	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			sb.WriteByte(s[i+1])
			i++

			continue
		}

		sb.WriteByte(c)
	}

	return sb.String()
}
