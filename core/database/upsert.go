package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 100

// Refs returns pointers to the elements of rows, calling link on each one first.
// It is used to set foreign keys before a level of children is upserted.
func Refs[T any](rows []T, link func(*T)) []*T {
	out := make([]*T, len(rows))
	for i := range rows {
		if link != nil {
			link(&rows[i])
		}
		out[i] = &rows[i]
	}
	return out
}

// Upsert writes one level of rows without following associations. Rows for
// which persisted reports true are updated in place by primary key; the others
// are inserted in batches and receive their generated keys.
//
// Inserted and updated rows are never mixed in one statement, so no dialect
// has to accept DEFAULT in a VALUES list.
func Upsert[T any](tx *gorm.DB, rows []*T, persisted func(*T) bool) error {
	var existing, fresh []*T
	for _, r := range rows {
		if persisted(r) {
			existing = append(existing, r)
		} else {
			fresh = append(fresh, r)
		}
	}

	tx = tx.Omit(clause.Associations)
	if len(existing) > 0 {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(existing, batchSize).Error; err != nil {
			return err
		}
	}
	if len(fresh) > 0 {
		if err := tx.CreateInBatches(fresh, batchSize).Error; err != nil {
			return err
		}
	}
	return nil
}
