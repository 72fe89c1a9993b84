package editor

import "unicode"

// splitShellWords splits an editor setting such as `code --wait` into argv.
// Single quotes are literal; double quotes group words and a backslash
// escapes the next rune outside single quotes.
func splitShellWords(s string) []string {
	var (
		out      []string
		cur      []rune
		inSingle bool
		inDouble bool
		escaped  bool
		quoted   bool
	)

	flush := func() {
		if len(cur) == 0 && !quoted {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
		quoted = false
	}

	for _, r := range s {
		switch {
		case escaped:
			cur = append(cur, r)
			escaped = false
		case r == '\\' && !inSingle:
			escaped = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			quoted = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			quoted = true
		case !inSingle && !inDouble && unicode.IsSpace(r):
			flush()
		default:
			cur = append(cur, r)
		}
	}

	flush()
	return out
}
