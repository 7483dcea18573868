package jobfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tributary-data/tributary/pkg/errors"
)

const sampleJob = `
name: nightly-reconcile
source_a:
  path: data/src1.csv
source_b:
  path: data/src2.xlsx
  sheet: Customers
raw_table: RAW_LAYER_DT
final_table: FNL_LAYER_DT
processing_date: 2024-06-01
`

func TestParse(t *testing.T) {
	job, err := Parse([]byte(sampleJob))
	require.NoError(t, err)

	assert.Equal(t, "nightly-reconcile", job.Name)
	assert.Equal(t, "data/src1.csv", job.SourceA.Path)
	assert.Equal(t, "data/src2.xlsx", job.SourceB.Path)
	assert.Equal(t, "Customers", job.SourceB.Sheet)
	assert.Equal(t, "RAW_LAYER_DT", job.RawTable)

	processing, ok := job.Processing()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), processing)
}

func TestParseMinimal(t *testing.T) {
	job, err := Parse([]byte("source_a:\n  path: a.csv\nsource_b:\n  path: b.xlsx\n"))
	require.NoError(t, err)

	assert.Empty(t, job.RawTable)
	_, ok := job.Processing()
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing source_a", "source_b:\n  path: b.xlsx\n"},
		{"missing source_b path", "source_a:\n  path: a.csv\nsource_b:\n  sheet: S1\n"},
		{"bad processing date", "source_a:\n  path: a.csv\nsource_b:\n  path: b.xlsx\nprocessing_date: 01-06-2024\n"},
		{"not yaml", "{source_a: [}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			var cerr *errors.ConfigError
			assert.ErrorAs(t, err, &cerr)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleJob), 0o644))

	job, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "nightly-reconcile", job.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
