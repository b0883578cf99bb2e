package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/phyten/jscomments/internal/engine"
	"github.com/phyten/jscomments/internal/model"
)

// newEncoder leaves <, > and & alone; comment text is shown as written.
func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

// WriteJSON writes the whole result as one indented document.
func WriteJSON(w io.Writer, res *engine.Result) error {
	enc := newEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteNDJSON writes one compact record per comment. A batch is buffered and
// reaches w in a single flush.
func WriteNDJSON(w io.Writer, items []model.Comment) error {
	bw := bufio.NewWriter(w)
	enc := newEncoder(bw)
	for i := range items {
		if err := enc.Encode(&items[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
