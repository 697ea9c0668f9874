package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tabclean/internal/output"
	"github.com/jmylchreest/tabclean/pkg/cleaner"
	"github.com/jmylchreest/tabclean/pkg/loader"
)

// cleanOptions holds the non-stage settings of the clean command.
type cleanOptions struct {
	Input        string `validate:"required"`
	Output       string `validate:"required"`
	InputFormat  string `validate:"omitempty,oneof=csv xlsx html"`
	Sheet        string
	Delimiter    string `validate:"omitempty,len=1"`
	Preview      int    `validate:"gte=0,lte=1000"`
	ReportFormat string `validate:"oneof=text json jsonl yaml"`
	ReportFile   string
	Compact      bool
	ReportStats  bool
	MaxInputSize string `validate:"required"`
}

var validate = validator.New()

// optionsFromFlags reads the clean command's flags, with config-file and
// environment overrides applied through viper.
func optionsFromFlags(cmd *cobra.Command, args []string) cleanOptions {
	flags := cmd.Flags()
	opts := cleanOptions{
		Input:        args[0],
		Output:       viper.GetString("output.path"),
		InputFormat:  strings.ToLower(viper.GetString("input.format")),
		ReportFormat: strings.ToLower(viper.GetString("output.report_format")),
		MaxInputSize: viper.GetString("input.max_size"),
		Compact:      viper.GetBool("output.compact"),
		ReportStats:  viper.GetBool("output.report_stats"),
	}
	opts.Sheet, _ = flags.GetString("sheet")
	opts.Delimiter, _ = flags.GetString("delimiter")
	opts.Preview, _ = flags.GetInt("preview")
	opts.ReportFile, _ = flags.GetString("report-file")
	return opts
}

// Validate checks the options and returns a readable error listing every
// invalid field.
func (o cleanOptions) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s %s", flagName(e.Field()), formatValidationError(e)))
	}
	return fmt.Errorf("invalid options: %s", strings.Join(msgs, "; "))
}

// loaderOptions converts the options into loader settings.
func (o cleanOptions) loaderOptions() (loader.Options, error) {
	format, err := loader.ParseFormat(o.InputFormat)
	if err != nil {
		return loader.Options{}, err
	}

	maxSize, err := parseSize(o.MaxInputSize)
	if err != nil {
		return loader.Options{}, fmt.Errorf("invalid max-input-size %q: %w", o.MaxInputSize, err)
	}

	opts := loader.Options{
		Format:  format,
		Sheet:   o.Sheet,
		MaxSize: maxSize,
	}
	if o.Delimiter != "" {
		opts.Delimiter = []rune(o.Delimiter)[0]
	}
	return opts, nil
}

// parseSize parses a human byte size. "0" disables the limit.
func parseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "0" {
		return -1, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

// stageConfig builds the pipeline configuration from the stage flags,
// --all and --stages. Each source can only enable stages.
func stageConfig(cmd *cobra.Command) (cleaner.Config, error) {
	cfg := cleaner.DefaultConfig()
	for _, id := range cleaner.Sequence() {
		if viper.GetBool(stageKey(id)) {
			cfg.Set(id, true)
		}
	}

	if viper.GetBool("clean.all") {
		cfg = cfg.Merge(cleaner.PresetAll())
	}

	names, _ := cmd.Flags().GetStringSlice("stages")
	for _, name := range names {
		id, err := cleaner.ParseStage(name)
		if err != nil {
			return cleaner.Config{}, err
		}
		cfg.Set(id, true)
	}
	return cfg, nil
}

func stageKey(id cleaner.StageID) string {
	return "clean." + string(id)
}

func stageFlag(id cleaner.StageID) string {
	return strings.ReplaceAll(string(id), "_", "-")
}

// flagName maps an options field back to its CLI flag.
func flagName(field string) string {
	switch field {
	case "Input":
		return "input file"
	case "Output":
		return "--output"
	case "InputFormat":
		return "--format"
	case "Delimiter":
		return "--delimiter"
	case "Preview":
		return "--preview"
	case "ReportFormat":
		return "--report-format"
	case "MaxInputSize":
		return "--max-input-size"
	default:
		return field
	}
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(e.Param(), " ", ", "))
	case "len":
		return fmt.Sprintf("must be exactly %s character", e.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}

// reportFormat returns the validated report format.
func (o cleanOptions) reportFormat() output.Format {
	f, err := output.ParseFormat(o.ReportFormat)
	if err != nil {
		return output.FormatText
	}
	return f
}
