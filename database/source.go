package database

import (
	"database/sql"
	"fmt"
	"strings"

	"attachexport/models"

	"gorm.io/gorm"
)

// Source reads attachment tables through a GORM connection
type Source struct {
	db *gorm.DB
}

// NewSource wraps an open connection
func NewSource(db *gorm.DB) *Source {
	return &Source{db: db}
}

// TableExists reports whether table resolves to an existing table or view.
// Names match case-insensitively, as the SELECT that follows does on SQLite.
// A failing lookup is returned as an error, never as a missing table.
func (s *Source) TableExists(table string) (bool, error) {
	if table == "" {
		return false, nil
	}

	if s.db.Dialector.Name() == "sqlite" {
		var count int64
		err := s.db.Raw("SELECT count(*) FROM sqlite_master WHERE type IN ('table', 'view') AND name = ? COLLATE NOCASE", table).
			Scan(&count).Error
		if err != nil {
			return false, fmt.Errorf("error looking up table %s: %w", table, err)
		}
		return count > 0, nil
	}

	tables, err := s.db.Migrator().GetTables()
	if err != nil {
		return false, fmt.Errorf("error looking up table %s: %w", table, err)
	}
	for _, name := range tables {
		if strings.EqualFold(name, table) {
			return true, nil
		}
	}
	return false, nil
}

// OpenCursor selects the payload, name and id columns of table, ordered by id.
// The returned cursor must be closed by the caller.
func (s *Source) OpenCursor(table string, columns models.Columns) (models.Cursor, error) {
	if err := columns.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.db.Table(table).
		Select([]string{columns.Data, columns.Name, columns.ID}).
		Order(columns.ID).
		Rows()
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", table, err)
	}

	return &RowCursor{rows: rows}, nil
}

// RowCursor decodes attachment rows from *sql.Rows
type RowCursor struct {
	rows *sql.Rows
}

func (c *RowCursor) Next() bool {
	return c.rows.Next()
}

// Row decodes the current row. A NULL payload is not an error, a NULL name is.
func (c *RowCursor) Row() (models.AttachmentRow, error) {
	var data nullBytes
	var name sql.NullString
	var id int64

	if err := c.rows.Scan(&data, &name, &id); err != nil {
		return models.AttachmentRow{}, fmt.Errorf("error scanning row: %w", err)
	}
	if !name.Valid {
		return models.AttachmentRow{}, fmt.Errorf("attachment %d has no name", id)
	}

	return models.AttachmentRow{
		Data:    data.Bytes,
		HasData: data.Valid,
		Name:    name.String,
		ID:      id,
	}, nil
}

func (c *RowCursor) Err() error {
	if err := c.rows.Err(); err != nil {
		return fmt.Errorf("error reading rows: %w", err)
	}
	return nil
}

func (c *RowCursor) Close() error {
	return c.rows.Close()
}

// nullBytes keeps NULL and zero-length payloads apart
type nullBytes struct {
	Bytes []byte
	Valid bool
}

func (n *nullBytes) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		n.Bytes, n.Valid = nil, false
	case []byte:
		// drivers may reuse the buffer after the next call to Next
		n.Bytes, n.Valid = append(make([]byte, 0, len(v)), v...), true
	case string:
		n.Bytes, n.Valid = []byte(v), true
	default:
		return fmt.Errorf("unsupported payload type %T", src)
	}
	return nil
}
