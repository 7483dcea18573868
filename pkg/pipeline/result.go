package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tributary-data/tributary/pkg/reconcile"
	"github.com/tributary-data/tributary/pkg/tabular"
)

// Result contains the outcome of one pipeline run.
type Result struct {
	RunID          uuid.UUID
	ProcessingDate time.Time
	RunTimestamp   time.Time

	// Materialized layers, in destination schema order.
	Raw   *tabular.Table
	Final *tabular.Table

	// Row counts per stage.
	SourceARows int
	SourceBRows int
	RawRows     int
	MergedRows  int
	FinalRows   int

	// Row counts reported by the warehouse loader. Zero when the run was
	// a dry run.
	RawLoaded   int
	FinalLoaded int
	Loaded      bool

	// Field-level provenance for reconciled records, when tracking was
	// enabled.
	Provenance reconcile.ProvenanceMap

	// Execution metadata.
	ExecutedAt time.Time
	Duration   time.Duration
}

// Summary returns a human-readable one-line summary of the run.
func (r *Result) Summary() string {
	loaded := "dry run, nothing loaded"
	if r.Loaded {
		loaded = fmt.Sprintf("loaded %d raw + %d final rows", r.RawLoaded, r.FinalLoaded)
	}
	return fmt.Sprintf("%d+%d source rows -> %d raw, %d reconciled, %d eligible; %s (took %v)",
		r.SourceARows, r.SourceBRows, r.RawRows, r.MergedRows, r.FinalRows, loaded, r.Duration)
}
