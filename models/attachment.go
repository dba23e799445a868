package models

import (
	"errors"
	"fmt"
	"regexp"
)

// Default column names of an ArcGIS attachment table
const (
	DefaultDataColumn = "DATA"
	DefaultNameColumn = "ATT_NAME"
	DefaultIDColumn   = "ATTACHMENTID"
)

// AttachmentRow is one decoded row of an attachment table
type AttachmentRow struct {
	Data    []byte
	HasData bool // false when the payload column is NULL
	Name    string
	ID      int64
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Columns names the three columns read from an attachment table
type Columns struct {
	Data string `json:"data"`
	Name string `json:"name"`
	ID   string `json:"id"`
}

// DefaultColumns returns the column names used by ArcGIS __ATTACH tables
func DefaultColumns() Columns {
	return Columns{
		Data: DefaultDataColumn,
		Name: DefaultNameColumn,
		ID:   DefaultIDColumn,
	}
}

// Validate reports an error if any column name is empty or is not a plain
// SQL identifier. Column names are sent to the database unquoted.
func (c Columns) Validate() error {
	switch {
	case c.Data == "":
		return errors.New("data column name must not be empty")
	case c.Name == "":
		return errors.New("name column name must not be empty")
	case c.ID == "":
		return errors.New("id column name must not be empty")
	}

	for _, name := range []string{c.Data, c.Name, c.ID} {
		if !identifierPattern.MatchString(name) {
			return fmt.Errorf("invalid column name: %q", name)
		}
	}
	return nil
}

// WithDefaults fills empty column names with the ArcGIS defaults
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	if c.Data == "" {
		c.Data = d.Data
	}
	if c.Name == "" {
		c.Name = d.Name
	}
	if c.ID == "" {
		c.ID = d.ID
	}
	return c
}

// ExportedFile describes one attachment written to disk
type ExportedFile struct {
	ID   int64
	Name string
	Path string
	Size int64
}

// ExportResult collects the files written by one export.
// A nil *ExportResult means the export failed; an empty one means the
// table held no attachments.
type ExportResult struct {
	Files []ExportedFile
}

// Paths returns the written paths in export order
func (r *ExportResult) Paths() []string {
	if r == nil {
		return nil
	}
	paths := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

// Len returns the number of exported files
func (r *ExportResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Files)
}

// ErrTableNotFound is returned when an attachment table, or the database
// file holding it, does not exist
var ErrTableNotFound = errors.New("table not found")
