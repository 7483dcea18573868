// Package check implements source validation without transformation.
package check

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tributary-data/tributary"
	"github.com/tributary-data/tributary/internal/jobfile"
	"github.com/tributary-data/tributary/internal/sources"
	"github.com/tributary-data/tributary/pkg/reconcile"
)

// AppContext defines the interface that the check command needs from the app.
type AppContext interface {
	Logger() *zerolog.Logger
}

// NewCommand creates the check command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var (
		sourceA string
		sourceB string
		sheet   string
		job     string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate both sources without loading",
		Long: `Check ingests and normalizes both source files, verifies they satisfy
the schema contract, and reports per-source row and column counts. Nothing
is transformed or loaded.`,
		Example: `  tributary check --source-a src1.csv --source-b src2.xlsx
  tributary check --job nightly.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if job != "" {
				descriptor, err := jobfile.Load(job)
				if err != nil {
					return err
				}
				if sourceA == "" {
					sourceA = descriptor.SourceA.Path
				}
				if sourceB == "" {
					sourceB = descriptor.SourceB.Path
				}
				if sheet == "" {
					sheet = descriptor.SourceB.Sheet
				}
			}
			if sourceA == "" || sourceB == "" {
				return fmt.Errorf("both --source-a and --source-b are required (or a --job descriptor naming them)")
			}

			trib, err := tributary.New(
				tributary.WithSources(
					sources.ForFile(string(reconcile.SourceA), sourceA, ""),
					sources.ForFile(string(reconcile.SourceB), sourceB, sheet),
				),
				tributary.WithLogger(app.Logger()),
			)
			if err != nil {
				return err
			}

			reports, err := trib.Check(cmd.Context())
			if err != nil {
				return err
			}
			for _, report := range reports {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows, %d columns (%s)\n",
					report.Source, report.Rows, len(report.Columns), strings.Join(report.Columns, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceA, "source-a", "", "authoritative source file (CSV or XLSX)")
	cmd.Flags().StringVar(&sourceB, "source-b", "", "secondary source file (CSV or XLSX)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name when source B is an XLSX workbook (default first sheet)")
	cmd.Flags().StringVar(&job, "job", "", "YAML job descriptor (flags override its values)")

	return cmd
}
