package sources

import (
	"path/filepath"
	"strings"

	"github.com/tributary-data/tributary/pkg/pipeline"
)

// ForFile picks a source implementation from the file extension. Workbook
// extensions get the XLSX reader, everything else is treated as CSV.
func ForFile(name, path, sheet string) pipeline.Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		src := NewXLSX(name, path)
		if sheet != "" {
			src = src.WithSheet(sheet)
		}
		return src
	default:
		return NewCSV(name, path)
	}
}
