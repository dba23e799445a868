// Package extract writes the binary attachments of a table to files
package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"attachexport/models"
	"attachexport/report"
)

// FilePrefix starts every exported file name
const FilePrefix = "ATT"

// DefaultFilePerm is the permission of exported files
const DefaultFilePerm fs.FileMode = 0644

// Options control how rows are read and files written
type Options struct {
	Columns  models.Columns
	FilePerm fs.FileMode
}

// DefaultOptions reads the ArcGIS attachment columns and writes 0644 files
func DefaultOptions() Options {
	return Options{
		Columns:  models.DefaultColumns(),
		FilePerm: DefaultFilePerm,
	}
}

// AbortError is returned when an export fails after some files were written.
// Those files stay on disk.
type AbortError struct {
	Written int
	Err     error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("%v (%d attachment(s) already written)", e.Err, e.Written)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}

// FileName returns the exported file name of an attachment: ATT<id>_<name>
func FileName(id int64, name string) string {
	return FilePrefix + strconv.FormatInt(id, 10) + "_" + name
}

// EnsureDir creates dir, including parents, unless it already exists
func EnsureDir(dir string, rep report.Reporter) error {
	stat, err := os.Stat(dir)
	if err == nil {
		if !stat.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		return nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	rep.Info("Created directory: %s", dir)

	return nil
}

// Attachments writes every attachment of job.Table into job.OutputDir.
// The table is checked before anything touches the filesystem. Rows with a
// NULL payload are skipped; any other failure stops the export and returns
// a nil result.
func Attachments(src models.RowSource, job models.Job, opts Options, rep report.Reporter) (*models.ExportResult, error) {
	exists, err := src.TableExists(job.Table)
	if err != nil {
		return nil, fmt.Errorf("error resolving table %s: %w", job.Table, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", job.Table, models.ErrTableNotFound)
	}

	if err := EnsureDir(job.OutputDir, rep); err != nil {
		return nil, err
	}

	cursor, err := src.OpenCursor(job.Table, opts.Columns)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	result := &models.ExportResult{}
	abort := func(err error) (*models.ExportResult, error) {
		if n := result.Len(); n > 0 {
			err = &AbortError{Written: n, Err: err}
		}
		return nil, err
	}

	for cursor.Next() {
		row, err := cursor.Row()
		if err != nil {
			return abort(err)
		}

		if !row.HasData {
			rep.Info("No data for attachment %d, skipping", row.ID)
			continue
		}

		file, err := writeAttachment(job.OutputDir, row, opts.FilePerm)
		if err != nil {
			return abort(err)
		}

		rep.Info("Saved attachment: %s (%s)", filepath.Base(file.Path), sizeNorm(file.Size))
		result.Files = append(result.Files, file)
	}

	if err := cursor.Err(); err != nil {
		return abort(err)
	}

	if err := cursor.Close(); err != nil {
		return abort(fmt.Errorf("error closing cursor: %w", err))
	}

	return result, nil
}

// writeAttachment overwrites any existing file at the computed path
func writeAttachment(dir string, row models.AttachmentRow, perm fs.FileMode) (file models.ExportedFile, err error) {
	if strings.ContainsAny(row.Name, `/\`) {
		return file, fmt.Errorf("attachment %d: invalid file name %q", row.ID, row.Name)
	}

	if perm == 0 {
		perm = DefaultFilePerm
	}

	name := FileName(row.ID, row.Name)
	path := filepath.Join(dir, name)

	fp, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return file, fmt.Errorf("error creating %s: %w", name, err)
	}
	defer func() {
		if errClose := fp.Close(); errClose != nil && err == nil {
			err = fmt.Errorf("error closing %s: %w", name, errClose)
		}
	}()

	if _, err = fp.Write(row.Data); err != nil {
		return file, fmt.Errorf("error writing %s: %w", name, err)
	}

	return models.ExportedFile{
		ID:   row.ID,
		Name: row.Name,
		Path: path,
		Size: int64(len(row.Data)),
	}, nil
}
