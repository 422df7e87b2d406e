package database

import (
	"strconv"
	"strings"
)

// RewritePlaceholders converts `?` placeholders to numbered `$1,$2,...`
// placeholders. Question marks inside single-quoted string literals are left
// alone. Backends whose driver takes `?` natively should not call this.
func RewritePlaceholders(query string) string {
	if !strings.ContainsRune(query, '?') {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inString := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			// A doubled quote inside a literal is an escaped quote, not a
			// terminator.
			if inString && i+1 < len(query) && query[i+1] == '\'' {
				b.WriteString("''")
				i++
				continue
			}
			inString = !inString
			b.WriteByte(ch)
		case ch == '?' && !inString:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
