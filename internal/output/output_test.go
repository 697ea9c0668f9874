package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tabclean/pkg/cleaner"
	"github.com/jmylchreest/tabclean/pkg/table"
)

func testTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		&table.Column{Name: "name", Kind: table.Text, Values: []table.Value{
			table.TextValue("Bob"), table.TextValue("Ann, Jr."), table.Null(),
		}},
		&table.Column{Name: "age", Kind: table.Number, Values: []table.Value{
			table.NumberValue(25), table.NumberValue(30.5), table.Null(),
		}},
		&table.Column{Name: "member", Kind: table.Bool, Values: []table.Value{
			table.BoolValue(true), table.BoolValue(false), table.Null(),
		}},
	)
	if err != nil {
		t.Fatalf("table.New() error = %v", err)
	}
	return tbl
}

func testReport() *Report {
	stats := cleaner.NewStats()
	stats.InputRows, stats.OutputRows = 3, 2
	stats.InputColumns, stats.OutputColumns = 2, 2
	dup := stats.AddStage("remove_duplicates")
	dup.Entry = "Removed 1 duplicate rows."
	dup.RowsBefore, dup.RowsAfter = 3, 2
	stats.AddStage("remove_invalid_entries")
	trim := stats.AddStage("trim_whitespace")
	trim.Entry = "Trimmed whitespace from text columns."
	stats.TotalDuration = 2 * time.Millisecond

	result := &cleaner.Result{RunID: "run-1", Log: stats.Log(), Stats: stats}
	cfg := cleaner.Config{RemoveDuplicates: true, RemoveInvalidEntries: true, TrimWhitespace: true}
	return NewReport(result, cfg, "in.csv", "out.csv")
}

// --- NewWriter Factory Tests ---

func TestNewWriter(t *testing.T) {
	tests := []struct {
		format Format
		want   any
	}{
		{FormatText, &TextWriter{}},
		{FormatJSON, &JSONWriter{}},
		{FormatJSONL, &JSONLWriter{}},
		{FormatYAML, &YAMLWriter{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, err := NewWriter(&bytes.Buffer{}, tt.format)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			if reflect.TypeOf(w) != reflect.TypeOf(tt.want) {
				t.Errorf("expected %T, got %T", tt.want, w)
			}
		})
	}
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, Format("unsupported"))
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected error containing 'unsupported', got %v", err)
	}
}

func TestNewWriter_Options(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		opts     []WriterOption
		contains string
		absent   string
	}{
		{"json pretty by default", FormatJSON, nil, "\n  \"run_id\"", ""},
		{"json compact", FormatJSON, []WriterOption{WithPretty(false)}, "{\"run_id\"", "\n  "},
		{"text stats by default", FormatText, nil, "Run: run-1", ""},
		{"text without stats", FormatText, []WriterOption{WithStats(false)}, "### Cleaning Log", "Run: run-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			w, err := NewWriter(buf, tt.format, tt.opts...)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			if err := w.Write(testReport()); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("output missing %q:\n%s", tt.contains, out)
			}
			if tt.absent != "" && strings.Contains(out, tt.absent) {
				t.Errorf("output should not contain %q:\n%s", tt.absent, out)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" JSON "); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat() = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

// --- Report Tests ---

func TestNewReport(t *testing.T) {
	r := testReport()

	if !reflect.DeepEqual(r.Stages, []string{"remove_duplicates", "remove_invalid_entries", "trim_whitespace"}) {
		t.Errorf("Stages = %q", r.Stages)
	}
	if len(r.Log) != 2 {
		t.Errorf("Log = %q", r.Log)
	}
}

func TestNewReport_EmptyLogIsNotNil(t *testing.T) {
	r := NewReport(&cleaner.Result{RunID: "x"}, cleaner.DefaultConfig(), "", "")
	if r.Log == nil {
		t.Error("expected empty, non-nil log")
	}
}

func TestReport_Events(t *testing.T) {
	events := testReport().Events()

	want := []LogEvent{
		{RunID: "run-1", Seq: 1, Stage: "remove_duplicates", Entry: "Removed 1 duplicate rows."},
		{RunID: "run-1", Seq: 2, Stage: "trim_whitespace", Entry: "Trimmed whitespace from text columns."},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("Events() = %+v", events)
	}

	noStats := &Report{RunID: "r", Log: []string{"a"}}
	if got := noStats.Events(); len(got) != 1 || got[0].Stage != "" || got[0].Entry != "a" {
		t.Errorf("Events() without stats = %+v", got)
	}
}

// --- TextWriter Tests ---

func TestTextWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewTextWriter(buf, false)

	if err := w.Write(testReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "### Cleaning Log\n- Removed 1 duplicate rows.\n- Trimmed whitespace from text columns.\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestTextWriter_WithStats(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewTextWriter(buf, true)

	if err := w.Write(testReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Run: run-1", "Rows: 3 -> 2", "remove_duplicates"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// --- JSONWriter Tests ---

func TestJSONWriter_SingleReportIsObject(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, true, "  ")

	if err := w.Write(testReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if got["run_id"] != "run-1" || got["source"] != "in.csv" {
		t.Errorf("unexpected report: %v", got)
	}
	if log, ok := got["log"].([]any); !ok || len(log) != 2 {
		t.Errorf("log = %v", got["log"])
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected pretty-printed output")
	}
}

func TestJSONWriter_MultipleReportsAreArray(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	_ = w.Write(testReport())
	_ = w.Write(testReport())
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got []Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to parse JSON array: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 reports, got %d", len(got))
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Error("expected compact output")
	}
}

// --- JSONLWriter Tests ---

func TestJSONLWriter_OneLinePerEntry(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)

	if err := w.Write(testReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}

	var ev LogEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
	if ev.Seq != 2 || ev.Stage != "trim_whitespace" {
		t.Errorf("event = %+v", ev)
	}
}

func TestJSONLWriter_EmptyLog(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)

	if err := w.Write(&Report{RunID: "r", Log: []string{}}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

// --- YAMLWriter Tests ---

func TestYAMLWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	_ = w.Write(testReport())
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got struct {
		RunID string   `yaml:"run_id"`
		Log   []string `yaml:"log"`
		Stats struct {
			InputRows int `yaml:"input_rows"`
		} `yaml:"stats"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to parse YAML: %v", err)
	}
	if got.RunID != "run-1" || len(got.Log) != 2 || got.Stats.InputRows != 3 {
		t.Errorf("unexpected report: %+v", got)
	}
}

// --- CSV Tests ---

func TestWriteTable(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteTable(buf, testTable(t)); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}

	want := "name,age,member\n" +
		"Bob,25,true\n" +
		"\"Ann, Jr.\",30.5,false\n" +
		",,\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteTable_HeaderOnly(t *testing.T) {
	tbl, _ := table.New(&table.Column{Name: "a"}, &table.Column{Name: "b"})

	buf := &bytes.Buffer{}
	if err := WriteTable(buf, tbl); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}
	if buf.String() != "a,b\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cleaned.csv")
	if err := WriteTableFile(path, testTable(t)); err != nil {
		t.Fatalf("WriteTableFile() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 4 || records[2][0] != "Ann, Jr." {
		t.Errorf("records = %q", records)
	}
}

// --- Preview Tests ---

func TestRenderPreview(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := RenderPreview(buf, "Cleaned Data Preview", testTable(t), 2); err != nil {
		t.Fatalf("RenderPreview() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected title, header, 2 rows and shape; got %q", lines)
	}
	if lines[0] != "### Cleaned Data Preview" {
		t.Errorf("title = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "name") || !strings.Contains(lines[1], "member") {
		t.Errorf("header = %q", lines[1])
	}
	if lines[4] != "[3 rows x 3 columns]" {
		t.Errorf("shape = %q", lines[4])
	}
}

func TestRenderPreview_MissingAndLongValues(t *testing.T) {
	long := strings.Repeat("x", 50)
	tbl, _ := table.New(&table.Column{Name: "s", Kind: table.Text, Values: []table.Value{
		table.Null(), table.TextValue(long),
	}})

	buf := &bytes.Buffer{}
	if err := RenderPreview(buf, "", tbl, DefaultPreviewRows); err != nil {
		t.Fatalf("RenderPreview() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<NA>") {
		t.Errorf("missing value not marked:\n%s", out)
	}
	if strings.Contains(out, long) || !strings.Contains(out, "...") {
		t.Errorf("long value not truncated:\n%s", out)
	}
}
