package tributary

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tributary-data/tributary/internal/sources"
	"github.com/tributary-data/tributary/pkg/pipeline"
	"github.com/tributary-data/tributary/pkg/reconcile"
)

// Option is a function that configures a Tributary instance
type Option func(*config) error

// config collects everything the options can set before the pipeline is
// assembled.
type config struct {
	sourceA pipeline.Source
	sourceB pipeline.Source

	loader         pipeline.Loader
	processing     *time.Time
	runTimestamp   *time.Time
	withProvenance bool
	logger         *zerolog.Logger
}

func defaultConfig() *config {
	return &config{}
}

// pipelineOptions translates the config into pipeline options.
func (c *config) pipelineOptions() []pipeline.Option {
	var opts []pipeline.Option
	if c.loader != nil {
		opts = append(opts, pipeline.WithLoader(c.loader))
	}
	if c.processing != nil {
		opts = append(opts, pipeline.WithProcessingDate(*c.processing))
	}
	if c.runTimestamp != nil {
		opts = append(opts, pipeline.WithRunTimestamp(*c.runTimestamp))
	}
	if c.withProvenance {
		opts = append(opts, pipeline.WithProvenance(true))
	}
	if c.logger != nil {
		opts = append(opts, pipeline.WithLogger(c.logger))
	}
	return opts
}

// WithSources sets both pipeline sources directly. The first source is
// authoritative when the two disagree.
func WithSources(a, b pipeline.Source) Option {
	return func(c *config) error {
		c.sourceA = a
		c.sourceB = b
		return nil
	}
}

// WithCSVSourceA reads the authoritative source from a CSV file.
func WithCSVSourceA(path string) Option {
	return func(c *config) error {
		c.sourceA = sources.NewCSV(string(reconcile.SourceA), path)
		return nil
	}
}

// WithXLSXSourceB reads the secondary source from an XLSX workbook.
// An empty sheet name selects the workbook's first sheet.
func WithXLSXSourceB(path, sheet string) Option {
	return func(c *config) error {
		src := sources.NewXLSX(string(reconcile.SourceB), path)
		if sheet != "" {
			src = src.WithSheet(sheet)
		}
		c.sourceB = src
		return nil
	}
}

// WithLoader configures the warehouse loader. Without one, runs are dry:
// both layers are built and counted but nothing is written.
func WithLoader(loader pipeline.Loader) Option {
	return func(c *config) error {
		c.loader = loader
		return nil
	}
}

// WithProcessingDate fixes the date ages are computed against. Defaults to
// the run date.
func WithProcessingDate(date time.Time) Option {
	return func(c *config) error {
		c.processing = &date
		return nil
	}
}

// WithRunTimestamp fixes the LOAD_TIMESTAMP stamped on every output row.
// Defaults to the wall clock at run start.
func WithRunTimestamp(ts time.Time) Option {
	return func(c *config) error {
		c.runTimestamp = &ts
		return nil
	}
}

// WithProvenance records which source supplied each reconciled field.
func WithProvenance(enabled bool) Option {
	return func(c *config) error {
		c.withProvenance = enabled
		return nil
	}
}

// WithLogger sets the logger for pipeline progress
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
