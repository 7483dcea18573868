// Package jobfile parses optional YAML job descriptors. A descriptor names
// the two source files and destination tables for a run so recurring jobs
// do not need a wall of CLI flags.
package jobfile

import (
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/tributary-data/tributary/pkg/errors"
)

// SourceSpec locates one input file.
type SourceSpec struct {
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet,omitempty"` // XLSX only, defaults to the first sheet
}

// Job describes one pipeline run.
type Job struct {
	Name    string     `yaml:"name,omitempty"`
	SourceA SourceSpec `yaml:"source_a"`
	SourceB SourceSpec `yaml:"source_b"`

	RawTable   string `yaml:"raw_table,omitempty"`
	FinalTable string `yaml:"final_table,omitempty"`

	// ProcessingDate fixes the date age is computed against, YYYY-MM-DD.
	// Empty means the run date.
	ProcessingDate string `yaml:"processing_date,omitempty"`
}

// Load reads and validates a job descriptor.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("jobfile", "reading "+path, err)
	}
	return Parse(data)
}

// Parse decodes a job descriptor from YAML.
func Parse(data []byte) (*Job, error) {
	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, errors.NewConfigError("jobfile", "parsing descriptor", err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// Validate checks the descriptor is runnable.
func (j *Job) Validate() error {
	if j.SourceA.Path == "" {
		return errors.NewConfigError("jobfile", "source_a.path is required", nil)
	}
	if j.SourceB.Path == "" {
		return errors.NewConfigError("jobfile", "source_b.path is required", nil)
	}
	if j.ProcessingDate != "" {
		if _, err := time.Parse("2006-01-02", j.ProcessingDate); err != nil {
			return errors.NewConfigError("jobfile", "processing_date must be YYYY-MM-DD", err)
		}
	}
	return nil
}

// Processing returns the configured processing date, or ok=false when the
// descriptor leaves it to the run date.
func (j *Job) Processing() (time.Time, bool) {
	if j.ProcessingDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", j.ProcessingDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
