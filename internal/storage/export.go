package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/fieldtrace/internal/trace"
)

type runExport struct {
	Meta     RunMetadata     `json:"meta"`
	Segments []trace.Segment `json:"segments"`
}

// ExportJSON writes a run (metadata plus all segments) as a single
// JSON document, for piping into other tools.
func ExportJSON(w io.Writer, meta *RunMetadata, segments []trace.Segment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{Meta: *meta, Segments: segments})
}
