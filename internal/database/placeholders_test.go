package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewritePlaceholders(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no placeholders",
			in:   "SELECT 1",
			want: "SELECT 1",
		},
		{
			name: "single",
			in:   "SELECT * FROM ideas WHERE user_email = ?",
			want: "SELECT * FROM ideas WHERE user_email = $1",
		},
		{
			name: "multiple numbered in order",
			in:   "INSERT INTO notes (a, b, c) VALUES (?, ?, ?)",
			want: "INSERT INTO notes (a, b, c) VALUES ($1, $2, $3)",
		},
		{
			name: "question mark inside string literal untouched",
			in:   "UPDATE t SET title = 'what?' WHERE id = ?",
			want: "UPDATE t SET title = 'what?' WHERE id = $1",
		},
		{
			name: "escaped quote inside literal",
			in:   "UPDATE t SET title = 'it''s?' WHERE id = ?",
			want: "UPDATE t SET title = 'it''s?' WHERE id = $1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewritePlaceholders(tt.in))
		})
	}
}
