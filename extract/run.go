package extract

import (
	"errors"
	"fmt"

	"attachexport/models"
	"attachexport/report"
)

// ErrMissingInput is returned when the table or the output directory is empty
var ErrMissingInput = errors.New("input table and file location are required")

// Status is the outward state of one export
type Status int

const (
	StatusFailed Status = iota
	StatusEmpty
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusFailed:
		return "failed"
	case StatusEmpty:
		return "empty"
	case StatusSuccess:
		return "success"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Outcome of one export. Result is nil unless Status is StatusEmpty or
// StatusSuccess.
type Outcome struct {
	Job    models.Job
	Status Status
	Result *models.ExportResult
	Err    error
}

// ValidateJob checks that both inputs of job are present
func ValidateJob(job models.Job) error {
	if job.Table == "" || job.OutputDir == "" {
		return ErrMissingInput
	}
	return nil
}

// Run exports job and reports a single summary message: an error, a warning
// when the table held no attachments, or the number of files written.
func Run(src models.RowSource, job models.Job, opts Options, rep report.Reporter) Outcome {
	if err := ValidateJob(job); err != nil {
		return Fail(job, err, rep)
	}

	result, err := Attachments(src, job, opts, rep)
	if err != nil {
		return Fail(job, err, rep)
	}

	if result.Len() == 0 {
		rep.Warning("No attachments found in %s.", job.TableRef())
		return Outcome{Job: job, Status: StatusEmpty, Result: result}
	}

	rep.Info("Successfully exported %d attachments to %s.", result.Len(), job.OutputDir)
	return Outcome{Job: job, Status: StatusSuccess, Result: result}
}

// Fail reports err as the single error message of job
func Fail(job models.Job, err error, rep report.Reporter) Outcome {
	switch {
	case errors.Is(err, ErrMissingInput):
		rep.Error("Input table and file location are required.")
	case errors.Is(err, models.ErrTableNotFound):
		rep.Error("Input table %s does not exist.", job.TableRef())
	default:
		rep.Error("Error while extracting attachments: %v", err)
	}

	return Outcome{Job: job, Status: StatusFailed, Err: err}
}
