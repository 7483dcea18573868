// Package run implements the pipeline execution command.
package run

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tributary-data/tributary"
	"github.com/tributary-data/tributary/internal/jobfile"
	"github.com/tributary-data/tributary/internal/sources"
	"github.com/tributary-data/tributary/internal/warehouse"
	"github.com/tributary-data/tributary/pkg/pipeline"
	"github.com/tributary-data/tributary/pkg/reconcile"
)

// AppContext defines the interface that the run command needs from the app.
type AppContext interface {
	Logger() *zerolog.Logger
	WarehouseConfig(rawTable, finalTable string) warehouse.Config
}

// flags collects the run command's flag values.
type flags struct {
	sourceA        string
	sourceB        string
	sheet          string
	job            string
	rawTable       string
	finalTable     string
	processingDate string
	dryRun         bool
	provenance     bool
}

// NewCommand creates the run command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the reconciliation pipeline",
		Long: `Run ingests both source files, builds the raw union layer and the
reconciled final layer, and loads both into Snowflake.

Sources are read as CSV or XLSX depending on file extension. Connection
settings come from SNOWFLAKE_* environment variables or the config file.`,
		Example: `  tributary run --source-a src1.csv --source-b src2.xlsx
  tributary run --job nightly.yaml --dry-run
  tributary run --source-a a.csv --source-b b.xlsx --processing-date 2024-06-01`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd, app, &f)
		},
	}

	cmd.Flags().StringVar(&f.sourceA, "source-a", "", "authoritative source file (CSV or XLSX)")
	cmd.Flags().StringVar(&f.sourceB, "source-b", "", "secondary source file (CSV or XLSX)")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "sheet name when source B is an XLSX workbook (default first sheet)")
	cmd.Flags().StringVar(&f.job, "job", "", "YAML job descriptor (flags override its values)")
	cmd.Flags().StringVar(&f.rawTable, "raw-table", "", "raw layer destination table (default "+warehouse.DefaultRawTable+")")
	cmd.Flags().StringVar(&f.finalTable, "final-table", "", "final layer destination table (default "+warehouse.DefaultFinalTable+")")
	cmd.Flags().StringVar(&f.processingDate, "processing-date", "", "date ages are computed against, YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "build both layers and report counts without loading")
	cmd.Flags().BoolVar(&f.provenance, "provenance", false, "log which source supplied each reconciled field")

	return cmd
}

// execute resolves flags against an optional job descriptor and runs the
// pipeline.
func execute(cmd *cobra.Command, app AppContext, f *flags) error {
	logger := app.Logger()

	if f.job != "" {
		job, err := jobfile.Load(f.job)
		if err != nil {
			return err
		}
		applyJob(f, job)
		if job.Name != "" {
			logger.Info().Str("job", job.Name).Str("file", f.job).Msg("loaded job descriptor")
		}
	}
	if f.sourceA == "" || f.sourceB == "" {
		return fmt.Errorf("both --source-a and --source-b are required (or a --job descriptor naming them)")
	}

	opts := []tributary.Option{
		tributary.WithSources(
			sources.ForFile(string(reconcile.SourceA), f.sourceA, ""),
			sources.ForFile(string(reconcile.SourceB), f.sourceB, f.sheet),
		),
		tributary.WithLogger(logger),
		tributary.WithProvenance(f.provenance),
	}

	if f.processingDate != "" {
		processing, err := time.Parse("2006-01-02", f.processingDate)
		if err != nil {
			return fmt.Errorf("invalid --processing-date %q: expected YYYY-MM-DD", f.processingDate)
		}
		opts = append(opts, tributary.WithProcessingDate(processing))
	}

	if !f.dryRun {
		loader, err := warehouse.Open(app.WarehouseConfig(f.rawTable, f.finalTable), warehouse.WithLogger(logger))
		if err != nil {
			return err
		}
		defer loader.Close()
		opts = append(opts, tributary.WithLoader(loader))
	}

	trib, err := tributary.New(opts...)
	if err != nil {
		return err
	}

	result, err := trib.Run(cmd.Context())
	if err != nil {
		return err
	}

	if f.provenance {
		logProvenance(logger, result)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
	return nil
}

// logProvenance reports which source supplied each reconciled field.
func logProvenance(logger *zerolog.Logger, result *pipeline.Result) {
	for id, fields := range result.Provenance {
		ev := logger.Info().Str("user_id", id)
		for field, source := range fields {
			ev = ev.Str(field, string(source))
		}
		ev.Msg("field provenance")
	}
}

// applyJob fills unset flags from the job descriptor.
func applyJob(f *flags, job *jobfile.Job) {
	if f.sourceA == "" {
		f.sourceA = job.SourceA.Path
	}
	if f.sourceB == "" {
		f.sourceB = job.SourceB.Path
	}
	if f.sheet == "" {
		f.sheet = job.SourceB.Sheet
	}
	if f.rawTable == "" {
		f.rawTable = job.RawTable
	}
	if f.finalTable == "" {
		f.finalTable = job.FinalTable
	}
	if f.processingDate == "" {
		f.processingDate = job.ProcessingDate
	}
}
