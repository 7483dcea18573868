// Package tributary reconciles customer records from two feed files into a
// raw union layer and a cleansed final layer, optionally loading both into
// a warehouse. It is the library entry point; the pieces it assembles live
// in pkg/ and can be used directly.
package tributary

import (
	"context"
	"fmt"

	"github.com/tributary-data/tributary/pkg/pipeline"
	"github.com/tributary-data/tributary/pkg/reconcile"
)

// Tributary runs reconciliation jobs over a fixed pair of sources.
type Tributary interface {
	// Run executes the full pipeline and returns its result. When a loader
	// is configured the output layers are also written to the warehouse.
	Run(ctx context.Context) (*pipeline.Result, error)

	// Check ingests and validates both sources without transforming or
	// loading anything.
	Check(ctx context.Context) ([]SourceReport, error)
}

// SourceReport summarizes one validated source for Check.
type SourceReport struct {
	Source  string
	Rows    int
	Columns []string
}

// tributary is the internal implementation of the Tributary interface
type tributary struct {
	config *config
}

// New creates a new Tributary instance with the given options
func New(opts ...Option) (Tributary, error) {
	t := &tributary{config: defaultConfig()}

	if err := t.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}
	if t.config.sourceA == nil || t.config.sourceB == nil {
		return nil, fmt.Errorf("both sources are required: use WithSources or the WithCSV/WithXLSX options")
	}
	return t, nil
}

// options applies the given options to the config
func (t *tributary) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(t.config); err != nil {
			return err
		}
	}
	return nil
}

// Run implements Tributary.
func (t *tributary) Run(ctx context.Context) (*pipeline.Result, error) {
	p := pipeline.New(t.config.sourceA, t.config.sourceB, t.config.pipelineOptions()...)
	return p.Run(ctx)
}

// Check implements Tributary.
func (t *tributary) Check(ctx context.Context) ([]SourceReport, error) {
	reports := make([]SourceReport, 0, 2)
	for _, src := range []pipeline.Source{t.config.sourceA, t.config.sourceB} {
		table, err := src.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		if err := table.NormalizeHeader(); err != nil {
			return nil, err
		}
		if err := table.RequireColumn(reconcile.ColumnUserID); err != nil {
			return nil, err
		}
		reports = append(reports, SourceReport{
			Source:  src.Name(),
			Rows:    table.Len(),
			Columns: table.Columns(),
		})
	}
	return reports, nil
}

// compile-time interface check
var _ Tributary = (*tributary)(nil)
