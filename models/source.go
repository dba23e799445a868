package models

// Cursor is a single-pass reader over attachment rows.
// Close must be called on every exit path.
type Cursor interface {
	Next() bool
	Row() (AttachmentRow, error)
	Err() error
	Close() error
}

// RowSource resolves attachment tables and opens cursors over them
type RowSource interface {
	TableExists(table string) (bool, error)
	OpenCursor(table string, columns Columns) (Cursor, error)
}
