package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"playlog/internal/models"
	"playlog/internal/shared"
)

// RowFunc receives one parsed record with its 1-based position in the
// source. Returning an error aborts the stream.
type RowFunc func(line int, record models.PlayRecord) error

// Adapter parses one export format into [models.PlayRecord] values.
type Adapter interface {
	// Name returns the format label used in reports and logs.
	Name() string
	// Each streams records from r into fn, stopping at the first error.
	Each(r io.Reader, fn RowFunc) error
}

// ForPath selects an adapter by file extension.
//
// .csv and .txt map to the comma-delimited adapter, .tsv to the
// tab-delimited one, .json to the JSON adapter. Anything else returns
// [shared.ErrUnsupportedFormat].
func ForPath(path string) (Adapter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return CSVAdapter{Delimiter: ','}, nil
	case ".tsv":
		return CSVAdapter{Delimiter: '\t'}, nil
	case ".json":
		return JSONAdapter{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, path)
	}
}
