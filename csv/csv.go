package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"attachexport/models"
)

// ManifestHeader is the first line of every manifest
var ManifestHeader = []string{"attachment_id", "attachment_name", "file", "bytes"}

// generateRandomString returns a random string of the specified length
func generateRandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

// manifestName resolves the final manifest filename from options
func manifestName(options models.WriteOptions) string {
	filename := options.Filename
	if filename == "" {
		filename = "manifest"
	}

	if options.AppendDate {
		// Add timestamp and 4 random chars to filename to make it unique
		timestamp := time.Now().Format("2006-01-02_150405")
		ext := filepath.Ext(filename)
		basename := filename[:len(filename)-len(ext)]
		filename = fmt.Sprintf("%s_%s_%s%s", basename, timestamp, generateRandomString(4), ext)
	}

	// Ensure .csv extension
	if filepath.Ext(filename) != ".csv" {
		filename = filename + ".csv"
	}

	return filename
}

// WriteManifest writes one line per exported file and returns the manifest path.
// File paths are written relative to the manifest directory when possible.
func WriteManifest(result *models.ExportResult, options models.WriteOptions) (string, error) {
	if result == nil {
		return "", errors.New("no export result to write")
	}

	// Create directory if it doesn't exist
	if options.Directory != "" {
		if err := os.MkdirAll(options.Directory, 0755); err != nil {
			return "", fmt.Errorf("error creating directory: %w", err)
		}
	}

	fullPath := filepath.Join(options.Directory, manifestName(options))

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("error creating manifest file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(ManifestHeader); err != nil {
		return "", fmt.Errorf("error writing headers to CSV: %w", err)
	}

	for _, f := range result.Files {
		path := f.Path
		if options.Directory != "" {
			if rel, err := filepath.Rel(options.Directory, f.Path); err == nil {
				path = rel
			}
		}

		record := []string{
			strconv.FormatInt(f.ID, 10),
			f.Name,
			path,
			strconv.FormatInt(f.Size, 10),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing data to CSV: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing data to CSV: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("error closing manifest file: %w", err)
	}

	return fullPath, nil
}
