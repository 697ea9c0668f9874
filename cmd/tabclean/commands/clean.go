package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tabclean/internal/logger"
	"github.com/jmylchreest/tabclean/internal/output"
	"github.com/jmylchreest/tabclean/pkg/cleaner"
	"github.com/jmylchreest/tabclean/pkg/loader"
	"github.com/jmylchreest/tabclean/pkg/table"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Clean a dataset and write it as CSV",
	Long: `Load a CSV, TSV, XLSX or HTML table, run the enabled cleaning stages
and write the result as CSV (no index column, missing values empty).

Stages are off unless enabled by flag, by --stages, by --all, in the
config file under "clean:", or by TABCLEAN_CLEAN_<STAGE>=true.

Examples:
  # Duplicates, invalid ages and whitespace
  tabclean clean people.csv --remove-duplicates --remove-invalid-entries \
      --trim-whitespace

  # Same, by stage name
  tabclean clean people.csv --stages remove_duplicates,trim_whitespace

  # A specific sheet of a workbook, report as YAML in a file
  tabclean clean book.xlsx --sheet Q3 --all --report-format yaml \
      --report-file report.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()

	// Stage switches
	for _, id := range cleaner.Sequence() {
		flags.Bool(stageFlag(id), false, id.Description())
		_ = viper.BindPFlag(stageKey(id), flags.Lookup(stageFlag(id)))
	}
	flags.Bool("all", false, "enable every stage")
	flags.StringSlice("stages", nil, "comma-separated stage names to enable")

	// Input settings
	flags.String("format", "", "input format: csv, xlsx, html (default: from extension)")
	flags.String("sheet", "", "XLSX sheet to read (default: first sheet)")
	flags.String("delimiter", "", "CSV field delimiter (default: ',' or tab for .tsv)")
	flags.String("max-input-size", "50MB", "max input file size (e.g., 500KB, 1GB, 0=unlimited)")

	// Output settings
	flags.StringP("output", "o", output.DefaultCSVPath, "path of the cleaned CSV")
	flags.Int("preview", output.DefaultPreviewRows, "rows to preview before and after cleaning (0=off)")
	flags.String("report-format", "text", "report format: text, json, jsonl, yaml")
	flags.String("report-file", "", "write the report to this file (default: stdout)")
	flags.Bool("compact", false, "write JSON reports on a single line")
	flags.Bool("report-stats", true, "include run statistics in text reports")

	// Bind to viper
	_ = viper.BindPFlag("clean.all", flags.Lookup("all"))
	_ = viper.BindPFlag("input.format", flags.Lookup("format"))
	_ = viper.BindPFlag("input.max_size", flags.Lookup("max-input-size"))
	_ = viper.BindPFlag("output.path", flags.Lookup("output"))
	_ = viper.BindPFlag("output.report_format", flags.Lookup("report-format"))
	_ = viper.BindPFlag("output.compact", flags.Lookup("compact"))
	_ = viper.BindPFlag("output.report_stats", flags.Lookup("report-stats"))
}

func runClean(cmd *cobra.Command, args []string) error {
	initLogger()

	opts := optionsFromFlags(cmd, args)
	if err := opts.Validate(); err != nil {
		return err
	}

	cfg, err := stageConfig(cmd)
	if err != nil {
		return err
	}
	if len(cfg.EnabledStages()) == 0 {
		logger.Warn("no cleaning stages enabled, output will match input")
	}
	logger.Debug("clean command starting", "input", opts.Input, "stages", cfg.EnabledStages())

	loadOpts, err := opts.loaderOptions()
	if err != nil {
		return err
	}

	ds, err := loader.Load(opts.Input, loadOpts)
	if err != nil {
		return fmt.Errorf("load error: %w", err)
	}
	logInfo("Loaded %s: %s rows x %d columns",
		opts.Input, humanize.Comma(int64(ds.NumRows())), ds.NumColumns())
	preview(opts, "Original Data Preview", ds)

	result, err := cleaner.CleanWithStats(ds, cfg)
	if err != nil {
		return err
	}
	preview(opts, "Cleaned Data Preview", result.Table)

	if err := output.WriteTableFile(opts.Output, result.Table); err != nil {
		logger.Error("failed to write cleaned data", "path", opts.Output, "error", err)
		return err
	}
	logInfo("Wrote %s rows to %s", humanize.Comma(int64(result.Table.NumRows())), opts.Output)

	return writeReport(opts, output.NewReport(result, cfg, opts.Input, opts.Output))
}

// preview prints the first rows of t to stderr unless disabled or quiet.
func preview(opts cleanOptions, title string, t *table.Table) {
	if opts.Preview == 0 || viper.GetBool("quiet") {
		return
	}
	if err := output.RenderPreview(os.Stderr, title, t, opts.Preview); err != nil {
		logger.Debug("preview failed", "error", err)
	}
	fmt.Fprintln(os.Stderr)
}

func writeReport(opts cleanOptions, report *output.Report) error {
	var w io.Writer = os.Stdout
	if opts.ReportFile != "" {
		f, err := os.Create(opts.ReportFile) //#nosec G304 -- CLI tool writes to user-specified report file
		if err != nil {
			logger.Error("failed to create report file", "path", opts.ReportFile, "error", err)
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	writer, err := output.NewWriter(w, opts.reportFormat(),
		output.WithPretty(!opts.Compact),
		output.WithStats(opts.ReportStats))
	if err != nil {
		return err
	}
	if err := writer.Write(report); err != nil {
		return err
	}
	return writer.Flush()
}
