// Package executor runs the export jobs of a workload one after another
package executor

import (
	"attachexport/csv"
	"attachexport/extract"
	"attachexport/models"
	"attachexport/report"
	"log"
)

// Resolver maps a table reference to the source holding it and the bare
// table name
type Resolver interface {
	Resolve(ref string) (models.RowSource, string, error)
}

// ExecutionResult represents the aggregated results of a workload run
type ExecutionResult struct {
	Outcomes   []extract.Outcome
	Exported   int
	Empty      int
	ErrorCount int
}

// Failed reports whether any job failed
func (r ExecutionResult) Failed() bool {
	return r.ErrorCount > 0
}

// RunJobs exports every job of the workload sequentially.
// A failed job does not prevent the following jobs from running.
func RunJobs(resolver Resolver, workload *models.Workload, opts extract.Options, rep report.Reporter) ExecutionResult {
	var result ExecutionResult

	for i, job := range workload.Jobs {
		if len(workload.Jobs) > 1 {
			log.Printf("Job %d/%d: exporting %s to %s", i+1, len(workload.Jobs), job.Table, job.OutputDir)
		}

		outcome := runJob(resolver, job, opts, rep)

		switch outcome.Status {
		case extract.StatusSuccess:
			result.Exported += outcome.Result.Len()

			if job.Manifest != "" {
				path, err := csv.WriteManifest(outcome.Result, models.WriteOptions{
					Directory:  job.OutputDir,
					Filename:   job.Manifest,
					AppendDate: job.ManifestDate,
				})
				if err != nil {
					rep.Error("Could not write manifest for %s: %v", job.TableRef(), err)
					outcome.Status = extract.StatusFailed
					outcome.Err = err
					result.ErrorCount++
				} else {
					rep.Info("Manifest written: %s", path)
				}
			}

		case extract.StatusEmpty:
			result.Empty++

		default:
			result.ErrorCount++
		}

		result.Outcomes = append(result.Outcomes, outcome)
	}

	if result.ErrorCount > 0 && len(workload.Jobs) > 1 {
		log.Printf("Warning: %d of %d job(s) failed.", result.ErrorCount, len(workload.Jobs))
	}

	return result
}

func runJob(resolver Resolver, job models.Job, opts extract.Options, rep report.Reporter) extract.Outcome {
	if err := extract.ValidateJob(job); err != nil {
		return extract.Fail(job, err, rep)
	}

	src, table, err := resolver.Resolve(job.Table)
	if err != nil {
		return extract.Fail(job, err, rep)
	}
	job.Ref, job.Table = job.Table, table

	return extract.Run(src, job, opts, rep)
}
