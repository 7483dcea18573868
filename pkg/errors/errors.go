// Package errors provides custom error types for the tributary system.
// The types map the pipeline's failure taxonomy: ingestion failures,
// schema-contract violations, and warehouse-load failures are fatal and
// abort a run; row-level data-quality issues are never represented as
// errors at all; they resolve to defined defaults inside the transforms.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the tributary system
var (
	// ErrIngest indicates that a source could not be read or parsed as tabular data
	ErrIngest = errors.New("ingestion failed")

	// ErrSchemaContract indicates that a required column is absent after normalization
	ErrSchemaContract = errors.New("schema contract violation")

	// ErrLoad indicates that the warehouse load failed
	ErrLoad = errors.New("warehouse load failed")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrCanceled indicates that a run was canceled
	ErrCanceled = errors.New("run canceled")
)

// IngestError represents a fatal failure to read or parse a source.
type IngestError struct {
	Source string // source name, e.g. "source-a"
	Path   string
	Err    error
}

// Error implements the error interface
func (e *IngestError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("ingestion failed for %s (%s): %v", e.Source, e.Path, e.Err)
	}
	return fmt.Sprintf("ingestion failed for %s: %v", e.Source, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IngestError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *IngestError) Is(target error) bool {
	return target == ErrIngest
}

// NewIngestError creates a new IngestError
func NewIngestError(source, path string, err error) *IngestError {
	return &IngestError{Source: source, Path: path, Err: err}
}

// SchemaError represents a violated data contract: a column the pipeline
// requires is missing from every source that could have supplied it.
type SchemaError struct {
	Column  string
	Sources []string
	Message string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if len(e.Sources) > 0 {
		return fmt.Sprintf("schema contract violation: column %s missing from sources %v: %s", e.Column, e.Sources, e.Message)
	}
	return fmt.Sprintf("schema contract violation: column %s: %s", e.Column, e.Message)
}

// Is implements errors.Is support
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaContract
}

// NewSchemaError creates a new SchemaError
func NewSchemaError(column string, sources []string, message string) *SchemaError {
	return &SchemaError{Column: column, Sources: sources, Message: message}
}

// LoadError represents a failure while connecting to or loading the warehouse.
type LoadError struct {
	Table     string // destination table, empty for connection-level failures
	Operation string // "connect", "ddl", "insert"
	Err       error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("warehouse %s failed for table %s: %v", e.Operation, e.Table, e.Err)
	}
	return fmt.Sprintf("warehouse %s failed: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// NewLoadError creates a new LoadError
func NewLoadError(operation, table string, err error) *LoadError {
	return &LoadError{Operation: operation, Table: table, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// StageError attaches the pipeline stage name to a fatal error so a failed
// run can report which stage failed and why.
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface
func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StageError) Unwrap() error {
	return e.Err
}

// WrapStage wraps an error with the stage it occurred in. Returns nil for nil.
func WrapStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// Stage returns the failing stage name for an error, or "" if the error
// carries no stage context.
func Stage(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// Helper functions for error checking

// IsIngest checks if an error is an ingestion error
func IsIngest(err error) bool {
	return errors.Is(err, ErrIngest)
}

// IsSchemaContract checks if an error is a schema contract violation
func IsSchemaContract(err error) bool {
	return errors.Is(err, ErrSchemaContract)
}

// IsLoad checks if an error is a warehouse load error
func IsLoad(err error) bool {
	return errors.Is(err, ErrLoad)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
