package extract

import (
	"errors"

	"attachexport/models"
)

// fakeSource serves rows from memory and records how it was used
type fakeSource struct {
	tables    map[string][]models.AttachmentRow
	existsErr error
	openErr   error
	rowErrAt  int // index of the row whose decoding fails, -1 for none
	rowErr    error

	opened  int
	cursors []*fakeCursor
}

func newFakeSource(table string, rows ...models.AttachmentRow) *fakeSource {
	return &fakeSource{
		tables:   map[string][]models.AttachmentRow{table: rows},
		rowErrAt: -1,
	}
}

func (s *fakeSource) TableExists(table string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	_, ok := s.tables[table]
	return ok, nil
}

func (s *fakeSource) OpenCursor(table string, columns models.Columns) (models.Cursor, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.opened++
	c := &fakeCursor{rows: s.tables[table], pos: -1, errAt: s.rowErrAt, err: s.rowErr}
	s.cursors = append(s.cursors, c)
	return c, nil
}

type fakeCursor struct {
	rows   []models.AttachmentRow
	pos    int
	errAt  int
	err    error
	closed int
}

func (c *fakeCursor) Next() bool {
	if c.closed > 0 {
		return false
	}
	c.pos++
	return c.pos < len(c.rows)
}

func (c *fakeCursor) Row() (models.AttachmentRow, error) {
	if c.pos == c.errAt {
		if c.err == nil {
			return models.AttachmentRow{}, errors.New("decode failed")
		}
		return models.AttachmentRow{}, c.err
	}
	return c.rows[c.pos], nil
}

func (c *fakeCursor) Err() error { return nil }

func (c *fakeCursor) Close() error {
	c.closed++
	return nil
}

func row(id int64, name string, data []byte) models.AttachmentRow {
	return models.AttachmentRow{ID: id, Name: name, Data: data, HasData: data != nil}
}
