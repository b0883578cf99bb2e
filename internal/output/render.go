package output

import (
	"fmt"
	"io"

	"github.com/phyten/jscomments/internal/engine"
)

// RenderOptions bundles everything Render needs besides the result.
type RenderOptions struct {
	Format string
	Fields FieldSelection
	Table  TableOptions
}

// Render writes res in the requested format. Format must already be
// normalized (see opts.NormalizeOutput).
func Render(w io.Writer, res *engine.Result, ro RenderOptions) error {
	switch ro.Format {
	case "json":
		return WriteJSON(w, res)
	case "ndjson":
		return WriteNDJSON(w, res.Items)
	case "csv":
		return WriteCSV(w, res.Items, ro.Fields)
	case "md":
		return WriteMarkdownTable(w, res.Items, ro.Fields)
	case "tsv":
		return WriteTSV(w, res.Items, ro.Fields)
	case "table", "":
		return WriteTable(w, res.Items, ro.Fields, ro.Table)
	default:
		return fmt.Errorf("unknown output format: %s", ro.Format)
	}
}
