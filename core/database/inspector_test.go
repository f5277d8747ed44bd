package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db := openMemory(t)

	cols, err := GetTableColumns(db, "child_rows")
	require.NoError(t, err)

	fields := make([]string, 0, len(cols))
	for _, c := range cols {
		fields = append(fields, c.Field)
	}
	assert.ElementsMatch(t, []string{"id", "parent_id", "code", "count"}, fields)

	cols, err = GetTableColumns(db, "no_such_table")
	require.NoError(t, err)
	assert.Empty(t, cols)
}
