package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planboard/internal/database/schema"
)

func TestCamelKey(t *testing.T) {
	assert.Equal(t, "objectives", camelKey("objectives"))
	assert.Equal(t, "communicationPlan", camelKey("communication_plan"))
	assert.Equal(t, "securityConsiderations", camelKey("security_considerations"))
	assert.Equal(t, "constraintsNotes", camelKey("constraints_notes"))
}

func TestSnakeColumnInvertsCamelKey(t *testing.T) {
	for _, col := range schema.DescriptionColumns {
		got, ok := snakeColumn(camelKey(col))
		require.True(t, ok, "column %s", col)
		require.Equal(t, col, got)
	}
}

func TestSnakeColumnRejectsUnknownKeys(t *testing.T) {
	_, ok := snakeColumn("definitelyNotAColumn")
	assert.False(t, ok)
}
