package sources

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/tributary-data/tributary/pkg/errors"
	"github.com/tributary-data/tributary/pkg/pipeline"
	"github.com/tributary-data/tributary/pkg/tabular"
)

// XLSX reads a spreadsheet export. The first row of the sheet is the header.
type XLSX struct {
	name  string
	path  string
	sheet string // empty means the first sheet
}

// NewXLSX creates a spreadsheet source with the given logical name and path.
func NewXLSX(name, path string) *XLSX {
	return &XLSX{name: name, path: path}
}

// WithSheet selects a sheet by name instead of the first one.
func (s *XLSX) WithSheet(sheet string) *XLSX {
	s.sheet = sheet
	return s
}

// Name identifies the source in logs and errors.
func (s *XLSX) Name() string {
	return s.name
}

// Fetch reads the sheet into a table. A missing or unreadable workbook, an
// unknown sheet, or a sheet without a header row is a fatal ingestion error.
func (s *XLSX) Fetch(ctx context.Context) (*tabular.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewIngestError(s.name, s.path, errors.ErrCanceled)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, errors.NewIngestError(s.name, s.path, err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.NewIngestError(s.name, s.path, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.NewIngestError(s.name, s.path, errors.New("sheet has no header row"))
	}

	return fromRecords(rows[0], rows[1:]), nil
}

var _ pipeline.Source = (*XLSX)(nil)
