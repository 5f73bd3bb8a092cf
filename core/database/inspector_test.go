package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableColumns(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)

	err = db.Exec("CREATE TABLE items (id TEXT PRIMARY KEY, name TEXT, quantity INTEGER, expiration_date DATETIME)").Error
	assert.NoError(t, err)

	columns, err := TableColumns(db, "items")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"id", "name", "quantity", "expiration_date"}, columns)

	// PRAGMA table_info returns an empty result for a missing table
	columns, err = TableColumns(db, "missing")
	assert.NoError(t, err)
	assert.Empty(t, columns)
}

func TestMissingColumns(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)

	err = db.Exec("CREATE TABLE items (id TEXT PRIMARY KEY, name TEXT)").Error
	assert.NoError(t, err)

	missing, err := MissingColumns(db, "items", []string{"id", "name", "quantity"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"quantity"}, missing)

	missing, err = MissingColumns(db, "items", []string{"ID", "Name"})
	assert.NoError(t, err)
	assert.Empty(t, missing)
}
