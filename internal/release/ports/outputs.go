package ports

import (
	"io"

	"github.com/nathantilsley/chart-release/internal/release/domain"
)

// ChartDocument is an ordered key/value view of a chart metadata file.
// Implementations must preserve the on-disk key order across a load/save
// round trip.
type ChartDocument interface {
	// Get returns the scalar string value for key. ok is false when the key
	// is absent or its value is not a string.
	Get(key string) (value string, ok bool)
	// Set replaces the value for key in place, appending the key at the end
	// of the document when absent.
	Set(key, value string)
	// Encode serializes the document as it would be written to disk.
	Encode() ([]byte, error)
}

// ChartStorePort abstracts loading and persisting chart metadata files.
type ChartStorePort interface {
	Load(path string) (ChartDocument, error)
	Save(path string, doc ChartDocument) error
}

// DiffPort abstracts computing a human-readable diff between two serialized
// document snapshots.
type DiffPort interface {
	ComputeDiff(fromLabel, toLabel string, before, after []byte) string
}

// ReportingPort abstracts emitting the update outcome back to the caller.
type ReportingPort interface {
	// WriteJSON writes the report payload as a JSON document to w.
	WriteJSON(w io.Writer, report domain.UpdateReport, indent bool) error
	// WriteResultFile writes the compact JSON payload to path, creating
	// parent directories as needed.
	WriteResultFile(path string, report domain.UpdateReport) error
	// AppendOutputs appends key=value output lines to the file at path.
	AppendOutputs(path string, report domain.UpdateReport) error
}
