package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type parentRow struct {
	ID       uint `gorm:"primaryKey"`
	Name     string
	Children []childRow `gorm:"foreignKey:ParentID"`
}

type childRow struct {
	ID       uint   `gorm:"primaryKey"`
	ParentID uint   `gorm:"uniqueIndex:idx_parent_code"`
	Code     string `gorm:"size:16;uniqueIndex:idx_parent_code"`
	Count    int
}

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(Config{Driver: DriverSQLite, Name: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db, &parentRow{}, &childRow{}))
	return db
}

func persisted(c *childRow) bool { return c.ID != 0 }

func TestUpsert(t *testing.T) {
	db := openMemory(t)

	parent := parentRow{Name: "p"}
	require.NoError(t, db.Omit("Children").Create(&parent).Error)

	parent.Children = []childRow{{Code: "a", Count: 1}, {Code: "b", Count: 2}}
	link := func(c *childRow) { c.ParentID = parent.ID }
	require.NoError(t, Upsert(db, Refs(parent.Children, link), persisted))
	assert.NotZero(t, parent.Children[0].ID)
	assert.NotZero(t, parent.Children[1].ID)

	parent.Children[0].Count = 10
	parent.Children = append(parent.Children, childRow{Code: "c", Count: 3})
	require.NoError(t, Upsert(db, Refs(parent.Children, link), persisted))

	var rows []childRow
	require.NoError(t, db.Order("code").Find(&rows).Error)
	require.Len(t, rows, 3)
	assert.Equal(t, 10, rows[0].Count)
	assert.Equal(t, 2, rows[1].Count)
	assert.Equal(t, "c", rows[2].Code)
	assert.Equal(t, parent.ID, rows[2].ParentID)
}

func TestUpsert_Empty(t *testing.T) {
	db := openMemory(t)
	assert.NoError(t, Upsert(db, Refs([]childRow(nil), nil), persisted))
}
