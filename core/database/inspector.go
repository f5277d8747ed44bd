package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one column as the database reports it.
type ColumnInfo struct {
	Field string
	Type  string
}

// GetTableColumns retrieves the column definitions for a given table.
// It returns an empty slice when the table does not exist.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	m := db.Migrator()
	if !m.HasTable(tableName) {
		return []ColumnInfo{}, nil
	}

	types, err := m.ColumnTypes(tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(types))
	for _, ct := range types {
		// Normalize to lowercase, dialects disagree on case
		columns = append(columns, ColumnInfo{
			Field: strings.ToLower(ct.Name()),
			Type:  strings.ToLower(ct.DatabaseTypeName()),
		})
	}
	return columns, nil
}
