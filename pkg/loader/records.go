package loader

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/jmylchreest/tabclean/internal/logger"
	"github.com/jmylchreest/tabclean/pkg/table"
)

// NullTokens are the cell contents loaded as missing values: the pandas
// read_csv defaults plus Go's "<nil>".
var NullTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null", "<nil>",
}

// fromRecords turns a header row plus data rows into a typed table. Kinds
// are detected per column by gota: integer or float columns become Number,
// true/false columns Bool, everything else (including all-missing columns)
// Text. A column only becomes Bool when every non-missing cell is exactly
// "true" or "false".
func fromRecords(records [][]string) (*table.Table, error) {
	records = dropEmpty(records)
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	header := normalizeHeader(records[0])
	rows := records[1:]
	for i, row := range rows {
		switch {
		case len(row) > len(header):
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+2, len(row), len(header))
		case len(row) < len(header):
			padded := make([]string, len(header))
			copy(padded, row)
			rows[i] = padded
		}
	}

	if len(rows) == 0 {
		columns := make([]*table.Column, len(header))
		for i, name := range header {
			columns[i] = &table.Column{Name: name, Kind: table.Text}
		}
		return table.New(columns...)
	}

	// gota renames duplicate headers instead of failing, so check first.
	if _, err := table.New(headerColumns(header)...); err != nil {
		return nil, err
	}

	df := dataframe.LoadRecords(append([][]string{header}, rows...),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(NullTokens),
		dataframe.WithTypes(textOverrides(header, rows)),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("building frame: %w", df.Err)
	}

	columns := make([]*table.Column, 0, len(header))
	for _, name := range df.Names() {
		col, err := fromSeries(df.Col(name))
		if err != nil {
			return nil, err
		}
		logger.Debug("column detected", "column", col.Name, "kind", col.Kind)
		columns = append(columns, col)
	}
	return table.New(columns...)
}

func fromSeries(s series.Series) (*table.Column, error) {
	col := &table.Column{Name: s.Name, Values: make([]table.Value, s.Len())}
	switch s.Type() {
	case series.Int, series.Float:
		col.Kind = table.Number
	case series.Bool:
		col.Kind = table.Bool
	default:
		col.Kind = table.Text
	}

	for i := range col.Values {
		e := s.Elem(i)
		if e.IsNA() {
			col.Values[i] = table.Null()
			continue
		}
		switch col.Kind {
		case table.Number:
			col.Values[i] = table.NumberValue(e.Float())
		case table.Bool:
			b, err := e.Bool()
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", s.Name, i+1, err)
			}
			col.Values[i] = table.BoolValue(b)
		default:
			col.Values[i] = table.TextValue(e.String())
		}
	}
	return col, nil
}

// normalizeHeader names blank header cells "Unnamed: <index>".
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		out[i] = name
	}
	return out
}

func headerColumns(header []string) []*table.Column {
	columns := make([]*table.Column, len(header))
	for i, name := range header {
		columns[i] = &table.Column{Name: name}
	}
	return columns
}

// textOverrides forces Text on columns that gota would type as Bool
// without every value being a literal true/false. gota prefers Bool over
// numbers and turns anything but true/false/1/0 into NaN.
func textOverrides(header []string, rows [][]string) map[string]series.Type {
	nulls := make(map[string]struct{}, len(NullTokens))
	for _, tok := range NullTokens {
		nulls[tok] = struct{}{}
	}

	overrides := make(map[string]series.Type)
	for j, name := range header {
		var boolish, other bool
		for _, row := range rows {
			cell := row[j]
			if _, ok := nulls[cell]; ok {
				continue
			}
			switch {
			case cell == "true" || cell == "false":
				boolish = true
			case strings.EqualFold(cell, "true") || strings.EqualFold(cell, "false"):
				boolish, other = true, true
			default:
				other = true
			}
		}
		if boolish && other {
			overrides[name] = series.String
			logger.Debug("column forced to text", "column", name)
		}
	}
	return overrides
}

// dropEmpty removes records with no cells at all. Records whose cells are
// all empty are kept and load as all-missing rows.
func dropEmpty(records [][]string) [][]string {
	out := records[:0]
	for _, rec := range records {
		if len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out
}
