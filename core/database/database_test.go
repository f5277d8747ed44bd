package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type migrateProbe struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"uniqueIndex;size:32"`
}

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "catalog",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.ErrorContains(t, err, "unsupported database driver")
		assert.Nil(t, db)
	})

	t.Run("SQLite Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: "file::memory:"})
		require.NoError(t, err)
		require.NoError(t, Migrate(db, &migrateProbe{}))
		assert.True(t, db.Migrator().HasTable(&migrateProbe{}))
	})
}

func TestDialector(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		want   string
	}{
		{"Default", "", "mysql"},
		{"MySQL", DriverMySQL, "mysql"},
		{"Postgres", DriverPostgres, "postgres"},
		{"SQLite", DriverSQLite, "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Dialector(Config{Driver: tt.driver, Host: "db", Port: 5432, User: "u", Password: "p@ss", Name: "catalog"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}
