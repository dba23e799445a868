package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumns_Validate(t *testing.T) {
	tests := []struct {
		name    string
		columns Columns
		wantErr string
	}{
		{name: "defaults", columns: DefaultColumns()},
		{name: "lowercase enterprise columns", columns: Columns{Data: "data", Name: "att_name", ID: "attachmentid"}},
		{name: "empty data", columns: Columns{Name: "ATT_NAME", ID: "ATTACHMENTID"}, wantErr: "data column"},
		{name: "empty id", columns: Columns{Data: "DATA", Name: "ATT_NAME"}, wantErr: "id column"},
		{name: "not an identifier", columns: Columns{Data: "DATA", Name: "ATT NAME", ID: "ATTACHMENTID"}, wantErr: "invalid column name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.columns.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestColumns_WithDefaults(t *testing.T) {
	c := Columns{Name: "FILENAME"}.WithDefaults()
	assert.Equal(t, Columns{Data: "DATA", Name: "FILENAME", ID: "ATTACHMENTID"}, c)
}

func TestExportResult_Paths(t *testing.T) {
	var failed *ExportResult
	assert.Nil(t, failed.Paths())
	assert.Zero(t, failed.Len())

	empty := &ExportResult{}
	assert.NotNil(t, empty.Paths())
	assert.Empty(t, empty.Paths())

	r := &ExportResult{Files: []ExportedFile{{Path: "out/ATT2_b.jpg"}, {Path: "out/ATT1_a.jpg"}}}
	assert.Equal(t, []string{"out/ATT2_b.jpg", "out/ATT1_a.jpg"}, r.Paths())
	assert.Equal(t, 2, r.Len())
}

func TestLoadWorkload(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "workload.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"jobs": [
				{"table": "field.geodatabase/Points__ATTACH", "outdir": "photos/points", "manifest": "points"},
				{"table": "Lines__ATTACH", "outdir": "photos/lines", "manifest": "lines", "manifest_date": true}
			],
			"columns": {"name": "FILENAME"},
			"file_perm": "600"
		}`), 0600))

		w, err := LoadWorkload(path)
		require.NoError(t, err)
		require.Len(t, w.Jobs, 2)
		assert.Equal(t, Job{Table: "field.geodatabase/Points__ATTACH", OutputDir: "photos/points", Manifest: "points"}, w.Jobs[0])
		assert.True(t, w.Jobs[1].ManifestDate)
		assert.Equal(t, "Lines__ATTACH", w.Jobs[1].TableRef())
		assert.Equal(t, Columns{Data: "DATA", Name: "FILENAME", ID: "ATTACHMENTID"}, w.Columns)
		assert.Equal(t, "600", w.FilePerm)
	})

	t.Run("no jobs", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"jobs": []}`), 0600))

		_, err := LoadWorkload(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no jobs")
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"jobs": [`), 0600))

		_, err := LoadWorkload(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadWorkload(filepath.Join(dir, "nope.json"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
