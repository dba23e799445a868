// Package fixture builds SQLite attachment tables for tests
package fixture

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// DefaultTable is the attachment table name ArcGIS gives a "Points" layer
const DefaultTable = "Points__ATTACH"

// Attachment is one row to insert. A nil Data is stored as NULL, and so is
// the name when NullName is set.
type Attachment struct {
	ID       int64
	Name     string
	NullName bool
	Data     []byte
}

// Geodatabase creates dir/name.geodatabase holding table and returns its path
func Geodatabase(t testing.TB, dir, name, table string, rows ...Attachment) string {
	t.Helper()

	path := filepath.Join(dir, name+".geodatabase")
	AttachTable(t, path, table, rows...)
	return path
}

// AttachTable creates table in the SQLite file at path and inserts rows
func AttachTable(t testing.TB, path, table string, rows ...Attachment) {
	t.Helper()

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(fmt.Sprintf(`CREATE TABLE %q (
		ATTACHMENTID INTEGER PRIMARY KEY,
		REL_GLOBALID TEXT,
		CONTENT_TYPE TEXT,
		ATT_NAME TEXT,
		DATA_SIZE INTEGER,
		DATA BLOB
	)`, table))
	require.NoError(t, err)

	insert := fmt.Sprintf(`INSERT INTO %q (ATTACHMENTID, REL_GLOBALID, CONTENT_TYPE, ATT_NAME, DATA_SIZE, DATA)
		VALUES (?, ?, 'image/jpeg', ?, ?, ?)`, table)
	insertEmpty := fmt.Sprintf(`INSERT INTO %q (ATTACHMENTID, REL_GLOBALID, CONTENT_TYPE, ATT_NAME, DATA_SIZE, DATA)
		VALUES (?, ?, 'image/jpeg', ?, 0, zeroblob(0))`, table)

	for _, r := range rows {
		globalID := fmt.Sprintf("{%08d-0000-0000-0000-000000000000}", r.ID)
		var name any = r.Name
		if r.NullName {
			name = nil
		}

		switch {
		case r.Data == nil:
			_, err = db.Exec(insert, r.ID, globalID, name, 0, nil)
		case len(r.Data) == 0:
			_, err = db.Exec(insertEmpty, r.ID, globalID, name)
		default:
			_, err = db.Exec(insert, r.ID, globalID, name, len(r.Data), r.Data)
		}
		require.NoError(t, err)
	}
}

// Photo returns a deterministic fake JPEG payload
func Photo(seed byte, size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	for i := 4; i < size; i++ {
		data[i] = seed + byte(i)
	}
	return data
}

// ReadCSV returns every record of the CSV file at path, header included
func ReadCSV(t testing.TB, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}
