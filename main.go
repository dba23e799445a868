package main

import (
	"attachexport/config"
	"attachexport/database"
	"attachexport/executor"
	"attachexport/extract"
	"attachexport/models"
	"attachexport/report"
	"flag"
	"io"
	"log"
	"os"
	"time"
)

type arguments struct {
	Table    string
	OutDir   string
	DBPath   string
	Workload string
	Manifest string
	EnvFile  string

	ManifestDate bool

	DataField string
	NameField string
	IDField   string
	FilePerm  string

	Quiet   bool
	NoColor bool
}

func parseArgs(fs *flag.FlagSet, argv []string) (arguments, error) {
	var args arguments

	fs.StringVar(&args.Table, "table", "", "attachment table, or file.geodatabase/TABLE for a SQLite geodatabase")
	fs.StringVar(&args.OutDir, "outdir", "", "output directory for exported attachments (created if missing)")
	fs.StringVar(&args.DBPath, "db", "", "SQLite geodatabase or GeoPackage file (overrides DB_PATH)")
	fs.StringVar(&args.Workload, "workload", "", "JSON workload file listing several export jobs")
	fs.StringVar(&args.Manifest, "manifest", "", "write a CSV manifest with this name into the output directory")
	fs.BoolVar(&args.ManifestDate, "manifest-date", false, "append a timestamp and a random suffix to the manifest filename")
	fs.StringVar(&args.EnvFile, "env", ".env", "environment file with database settings")
	fs.StringVar(&args.DataField, "data-field", models.DefaultDataColumn, "binary payload column")
	fs.StringVar(&args.NameField, "name-field", models.DefaultNameColumn, "attachment name column")
	fs.StringVar(&args.IDField, "id-field", models.DefaultIDColumn, "attachment id column")
	fs.StringVar(&args.FilePerm, "operm", "644", "permission of exported files")
	fs.BoolVar(&args.Quiet, "q", false, "only report warnings and errors")
	fs.BoolVar(&args.NoColor, "nocolor", false, "disable coloured level prefixes")

	err := fs.Parse(argv)
	return args, err
}

// buildWorkload turns the command line into the workload to execute
func buildWorkload(args arguments) (*models.Workload, error) {
	if args.Workload != "" {
		return models.LoadWorkload(args.Workload)
	}

	return &models.Workload{
		Jobs: []models.Job{{
			Table:        args.Table,
			OutputDir:    args.OutDir,
			Manifest:     args.Manifest,
			ManifestDate: args.ManifestDate,
		}},
		Columns: models.Columns{
			Data: args.DataField,
			Name: args.NameField,
			ID:   args.IDField,
		},
		FilePerm: args.FilePerm,
	}, nil
}

func buildOptions(workload *models.Workload) (extract.Options, error) {
	opts := extract.DefaultOptions()
	opts.Columns = workload.Columns.WithDefaults()

	if err := opts.Columns.Validate(); err != nil {
		return opts, err
	}

	if workload.FilePerm != "" {
		perm, err := config.ParseFilePerm(workload.FilePerm)
		if err != nil {
			return opts, err
		}
		opts.FilePerm = perm
	}

	return opts, nil
}

func run(argv []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("attachexport", flag.ContinueOnError)
	fs.SetOutput(stderr)

	args, err := parseArgs(fs, argv)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	rep := report.NewLogger(stdout, stderr, !args.NoColor, args.Quiet)

	if err := config.LoadEnv(args.EnvFile); err != nil {
		rep.Error("%v", err)
		return 1
	}

	workload, err := buildWorkload(args)
	if err != nil {
		rep.Error("%v", err)
		return 1
	}

	opts, err := buildOptions(workload)
	if err != nil {
		rep.Error("%v", err)
		return 1
	}

	dbConfig, err := config.LoadDatabase(os.Getenv)
	if args.DBPath != "" {
		dbConfig = database.Config{Type: "sqlite", Path: args.DBPath}
		err = nil
	}
	if err != nil {
		rep.Error("%v", err)
		return 1
	}

	registry := database.NewRegistry(dbConfig)
	defer func() {
		if err := registry.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()

	startTime := time.Now()
	result := executor.RunJobs(registry, workload, opts, rep)

	if len(workload.Jobs) > 1 {
		rep.Info("%d job(s): %d attachment(s) exported, %d empty, %d failed",
			len(workload.Jobs), result.Exported, result.Empty, result.ErrorCount)
	}
	log.Printf("Process completed in %v", time.Since(startTime))

	if result.Failed() {
		return 1
	}
	return 0
}

func main() {
	log.SetOutput(os.Stderr)

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
