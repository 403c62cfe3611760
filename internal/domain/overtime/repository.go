package overtime

import (
	"context"
	"io"

	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/spreadsheet"
)

// DatasetStore owns the single in-memory dataset. Ingestion replaces the
// whole dataset atomically; there is never a partially visible one.
type DatasetStore interface {
	// Replace swaps in a freshly built dataset.
	Replace(ctx context.Context, records []Record, info DatasetInfo)

	// Snapshot returns the current records and ingestion metadata. The
	// second return is false when nothing has been loaded.
	Snapshot(ctx context.Context) ([]Record, DatasetInfo, bool)

	// Reset discards the current dataset.
	Reset(ctx context.Context)
}

// WorkbookDecoder turns an uploaded file into decoded sheets.
type WorkbookDecoder interface {
	Decode(r io.Reader, filename string) ([]spreadsheet.Sheet, error)
}
