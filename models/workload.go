package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// Job is a single export request: one attachment table into one directory
type Job struct {
	Table        string `json:"table"`
	OutputDir    string `json:"outdir"`
	Manifest     string `json:"manifest"`      // Optional manifest CSV filename
	ManifestDate bool   `json:"manifest_date"` // Timestamp the manifest filename

	// Ref is the table reference as given when Table holds the name resolved
	// from it, e.g. "survey.geodatabase/Points__ATTACH" for "Points__ATTACH".
	Ref string `json:"-"`
}

// TableRef returns the table as the user named it
func (j Job) TableRef() string {
	if j.Ref != "" {
		return j.Ref
	}
	return j.Table
}

// Workload represents the configuration loaded from workload.json
type Workload struct {
	Jobs     []Job   `json:"jobs"`
	Columns  Columns `json:"columns"`
	FilePerm string  `json:"file_perm"` // Octal permission of written files, e.g. "644"
}

// LoadWorkload reads and parses the workload configuration file
func LoadWorkload(filePath string) (*Workload, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var workload Workload
	if err := json.Unmarshal(data, &workload); err != nil {
		return nil, fmt.Errorf("error parsing workload %s: %w", filePath, err)
	}

	if len(workload.Jobs) == 0 {
		return nil, fmt.Errorf("workload %s has no jobs", filePath)
	}

	workload.Columns = workload.Columns.WithDefaults()

	return &workload, nil
}

// WriteOptions configures where a manifest is written. With AppendDate the
// filename gets a timestamp and a random suffix.
type WriteOptions struct {
	Directory  string
	Filename   string
	AppendDate bool
}
