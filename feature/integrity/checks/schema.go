package checks

import (
	"fmt"
	"sort"
	"sync"

	"catalog-export/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport strictly types the result of a catalog schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	Missing        bool     `json:"missing"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies the catalog tables using the GORM models as the source of truth.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Tables:  make(map[string]TableReport),
		Matched: true,
		Errors:  []string{},
	}

	cache := &sync.Map{}
	for _, model := range models {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}

		tblReport := TableReport{MissingColumns: []string{}, Status: "ok"}

		actualCols, err := database.GetTableColumns(db, s.Table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", s.Table, err))
			report.Matched = false
			continue
		}
		if len(actualCols) == 0 {
			tblReport.Missing = true
			tblReport.Status = "error"
			report.Matched = false
			report.Tables[s.Table] = tblReport
			continue
		}

		actual := make(map[string]bool, len(actualCols))
		for _, col := range actualCols {
			actual[col.Field] = true
		}
		for _, name := range s.DBNames {
			if !actual[name] {
				tblReport.MissingColumns = append(tblReport.MissingColumns, name)
			}
		}
		if len(tblReport.MissingColumns) > 0 {
			sort.Strings(tblReport.MissingColumns)
			tblReport.Status = "error"
			report.Matched = false
		}

		report.Tables[s.Table] = tblReport
	}

	return report, nil
}
