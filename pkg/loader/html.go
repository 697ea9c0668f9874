package loader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlRecords reads the first <table> of an HTML document. Rows of nested
// tables are ignored and cell text is trimmed.
func htmlRecords(data []byte) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	tbl := doc.Find("table").First()
	if tbl.Length() == 0 {
		return nil, ErrNoTable
	}

	var records [][]string
	tbl.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if !row.Closest("table").IsSelection(tbl) {
			return
		}
		var record []string
		row.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			record = append(record, strings.TrimSpace(cell.Text()))
		})
		records = append(records, record)
	})
	return records, nil
}
