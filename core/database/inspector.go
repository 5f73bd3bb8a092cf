package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// TableColumns returns the lowercase column names of a table, or an empty
// slice when the table does not exist. Used by the verify command to confirm
// the items schema is in place before the service takes traffic.
func TableColumns(db *gorm.DB, tableName string) ([]string, error) {
	if db.Dialector.Name() == "sqlite" {
		type sqliteColumn struct {
			Cid  int
			Name string
			Type string
		}
		var cols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&cols).Error; err != nil {
			return nil, fmt.Errorf("failed to inspect table %s: %w", tableName, err)
		}
		names := make([]string, 0, len(cols))
		for _, col := range cols {
			names = append(names, strings.ToLower(col.Name))
		}
		return names, nil
	}

	type mysqlColumn struct {
		Field string
		Type  string
	}
	var cols []mysqlColumn
	if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&cols).Error; err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", tableName, err)
	}
	names := make([]string, 0, len(cols))
	for _, col := range cols {
		names = append(names, strings.ToLower(col.Field))
	}
	return names, nil
}

// MissingColumns reports which of the expected column names are absent from
// the table. An empty result means the schema satisfies the expectation.
func MissingColumns(db *gorm.DB, tableName string, expected []string) ([]string, error) {
	actual, err := TableColumns(db, tableName)
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(actual))
	for _, name := range actual {
		present[name] = struct{}{}
	}

	var missing []string
	for _, name := range expected {
		if _, ok := present[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
