package output

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/phyten/jscomments/internal/model"
	"github.com/phyten/jscomments/internal/textutil"
)

// records returns the header row followed by one row per item. With fold,
// tabs and line breaks inside values become single spaces.
func records(items []model.Comment, sel FieldSelection, fold bool) [][]string {
	out := make([][]string, 0, len(items)+1)
	out = append(out, Headers(sel.Fields))
	for _, it := range items {
		row := RowValues(it, sel.Fields)
		if fold {
			for i := range row {
				row[i] = textutil.OneLine(row[i])
			}
		}
		out = append(out, row)
	}
	return out
}

// WriteTSV renders one tab separated line per item.
func WriteTSV(w io.Writer, items []model.Comment, sel FieldSelection) error {
	bw := bufio.NewWriter(w)
	for _, row := range records(items, sel, true) {
		bw.WriteString(strings.Join(row, "\t"))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteCSV renders RFC 4180 CSV with CRLF endings. Comment text keeps its
// line breaks inside quoted fields.
func WriteCSV(w io.Writer, items []model.Comment, sel FieldSelection) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	return cw.WriteAll(records(items, sel, false))
}
