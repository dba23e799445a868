package database

import (
	"path/filepath"
	"slices"
	"strings"
)

// SQLiteExtensions lists file extensions recognised as SQLite-backed geodatabases
var SQLiteExtensions = []string{".geodatabase", ".gpkg", ".sqlite", ".sqlite3", ".db"}

// ParseTableRef splits a path-like table reference such as
// "survey.geodatabase/Points__ATTACH" or `C:\data\survey.gpkg\Points__ATTACH`
// into the database file and the table name. ok is false when ref does not
// name a table inside a recognised database file.
func ParseTableRef(ref string) (path, table string, ok bool) {
	// Both separators are accepted regardless of platform
	normalized := strings.ReplaceAll(ref, `\`, "/")

	i := strings.LastIndex(normalized, "/")
	if i <= 0 || i == len(normalized)-1 {
		return "", "", false
	}

	ext := strings.ToLower(filepath.Ext(normalized[:i]))
	if !slices.Contains(SQLiteExtensions, ext) {
		return "", "", false
	}

	return ref[:i], ref[i+1:], true
}
