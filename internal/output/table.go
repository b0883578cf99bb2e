package output

import (
	"bufio"
	"io"

	"github.com/phyten/jscomments/internal/model"
	"github.com/phyten/jscomments/internal/termcolor"
	"github.com/phyten/jscomments/internal/textutil"
)

const (
	columnGap = "  "
	ellipsis  = "…"
	// comments this long or longer get the hottest LINES color
	linesHot = 20
)

// TableOptions controls the human readable table.
type TableOptions struct {
	Color termcolor.Settings
	// Truncate limits the TEXT column to this display width (0 = unlimited).
	Truncate int
}

// WriteTable renders items as space aligned columns. Widths are measured in
// terminal cells, so East Asian text and colored cells stay aligned.
func WriteTable(w io.Writer, items []model.Comment, sel FieldSelection, opts TableOptions) error {
	headers := Headers(sel.Fields)
	rows := make([][]string, len(items))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = textutil.VisibleWidth(h)
	}
	for i, it := range items {
		row := RowValues(it, sel.Fields)
		for j, f := range sel.Fields {
			if f.Key == "text" {
				row[j] = textutil.OneLine(row[j])
				if opts.Truncate > 0 {
					row[j] = textutil.TruncateByWidth(row[j], opts.Truncate, ellipsis)
				}
			}
			if vw := textutil.VisibleWidth(row[j]); vw > widths[j] {
				widths[j] = vw
			}
		}
		rows[i] = row
	}

	right := make([]bool, len(headers))
	for i, f := range sel.Fields {
		right[i] = numericFields[f.Key]
	}
	bw := bufio.NewWriter(w)
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = termcolor.Apply(termcolor.HeaderStyle(), h, opts.Color.Enabled)
	}
	writeRow(bw, cells, widths, right)
	for i, row := range rows {
		for j, f := range sel.Fields {
			cells[j] = termcolor.Apply(cellStyle(f.Key, items[i], opts.Color), row[j], opts.Color.Enabled)
		}
		writeRow(bw, cells, widths, right)
	}
	return bw.Flush()
}

func cellStyle(key string, it model.Comment, color termcolor.Settings) termcolor.Style {
	switch key {
	case "kind":
		return termcolor.KindStyle(it.Kind, color.Scheme, color.Profile)
	case "lines":
		return termcolor.LinesStyle(len(it.Lines), color.Profile, linesHot)
	case "text":
		return termcolor.TextStyle(color.Scheme)
	}
	return termcolor.Style{}
}

// writeRow pads each cell to its column width. Numeric columns are right
// aligned; the last column gets no trailing padding.
func writeRow(w *bufio.Writer, cells []string, widths []int, right []bool) {
	for i, c := range cells {
		switch {
		case right[i]:
			w.WriteString(textutil.PadLeft(c, widths[i]))
		case i == len(cells)-1:
			w.WriteString(c)
		default:
			w.WriteString(textutil.PadRight(c, widths[i]))
		}
		if i < len(cells)-1 {
			w.WriteString(columnGap)
		}
	}
	w.WriteString("\n")
}
