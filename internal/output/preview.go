package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/tabclean/pkg/table"
)

// DefaultPreviewRows is the number of rows shown by RenderPreview.
const DefaultPreviewRows = 5

const maxCellWidth = 32

// RenderPreview writes the first n rows of t as an aligned text grid under
// title, followed by the table's shape. Missing values show as <NA>.
func RenderPreview(w io.Writer, title string, t *table.Table, n int) error {
	if title != "" {
		if _, err := fmt.Fprintf(w, "### %s\n", title); err != nil {
			return err
		}
	}

	head := t.Head(n)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(head.Names(), "\t"))
	columns := head.Columns()
	cells := make([]string, len(columns))
	for i := 0; i < head.NumRows(); i++ {
		for j, col := range columns {
			v := col.Values[i]
			if v.IsNull() {
				cells[j] = "<NA>"
				continue
			}
			cells[j] = truncate(v.Format(col.Kind))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "[%s rows x %d columns]\n",
		humanize.Comma(int64(t.NumRows())), t.NumColumns())
	return err
}

func truncate(s string) string {
	s = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
	if utf8.RuneCountInString(s) <= maxCellWidth {
		return s
	}
	r := []rune(s)
	return string(r[:maxCellWidth-3]) + "..."
}
