package handler

import "strings"

// camelKey converts a snake_case storage column to the camelCase key the API
// speaks, e.g. communication_plan -> communicationPlan.
func camelKey(col string) string {
	parts := strings.Split(col, "_")
	if len(parts) == 1 {
		return col
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// snakeColumn converts a camelCase API key back to its storage column and
// reports whether the key names a real column.
func snakeColumn(key string) (string, bool) {
	var b strings.Builder
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	col := b.String()
	_, ok := descriptionColumnSet[col]
	return col, ok
}
