package sources

import (
	"context"
	"encoding/csv"
	"os"

	"github.com/tributary-data/tributary/pkg/errors"
	"github.com/tributary-data/tributary/pkg/pipeline"
	"github.com/tributary-data/tributary/pkg/tabular"
)

// CSV reads a delimited tabular file. The first record is the header.
type CSV struct {
	name  string
	path  string
	comma rune
}

// NewCSV creates a CSV source with the given logical name and file path.
func NewCSV(name, path string) *CSV {
	return &CSV{name: name, path: path, comma: ','}
}

// WithDelimiter overrides the field delimiter.
func (s *CSV) WithDelimiter(r rune) *CSV {
	s.comma = r
	return s
}

// Name identifies the source in logs and errors.
func (s *CSV) Name() string {
	return s.name
}

// Fetch reads the whole file into a table. A missing or unreadable file,
// malformed delimited data, or a file without a header record is a fatal
// ingestion error.
func (s *CSV) Fetch(ctx context.Context) (*tabular.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewIngestError(s.name, s.path, errors.ErrCanceled)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.NewIngestError(s.name, s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = s.comma
	r.FieldsPerRecord = -1 // tolerate ragged rows; the table pads with nulls

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.NewIngestError(s.name, s.path, err)
	}
	if len(records) == 0 {
		return nil, errors.NewIngestError(s.name, s.path, errors.New("file has no header record"))
	}

	return fromRecords(records[0], records[1:]), nil
}

var _ pipeline.Source = (*CSV)(nil)
