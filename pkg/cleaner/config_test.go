package cleaner

import (
	"errors"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig_AllDisabled(t *testing.T) {
	cfg := DefaultConfig()
	for _, id := range Sequence() {
		if cfg.Enabled(id) {
			t.Errorf("stage %s enabled by default", id)
		}
	}
	if len(cfg.EnabledStages()) != 0 {
		t.Errorf("EnabledStages() = %v", cfg.EnabledStages())
	}
}

func TestPresetAll(t *testing.T) {
	cfg := PresetAll()
	if got := cfg.EnabledStages(); !reflect.DeepEqual(got, Sequence()) {
		t.Errorf("EnabledStages() = %v, want %v", got, Sequence())
	}
}

func TestConfig_EnabledStages_Order(t *testing.T) {
	// Declared in reverse; execution order must still follow Sequence().
	var cfg Config
	cfg.Set(StageTrimWhitespace, true)
	cfg.Set(StageStandardizeColumns, true)
	cfg.Set(StageRemoveDuplicates, true)

	want := []StageID{StageRemoveDuplicates, StageStandardizeColumns, StageTrimWhitespace}
	if got := cfg.EnabledStages(); !reflect.DeepEqual(got, want) {
		t.Errorf("EnabledStages() = %v, want %v", got, want)
	}
}

func TestConfig_Merge(t *testing.T) {
	a := Config{RemoveDuplicates: true}
	b := Config{TrimWhitespace: true}

	merged := a.Merge(b)
	if !merged.RemoveDuplicates || !merged.TrimWhitespace {
		t.Errorf("Merge() = %+v", merged)
	}
	if a.TrimWhitespace {
		t.Error("Merge() modified receiver")
	}
}

func TestConfig_YAML(t *testing.T) {
	data := []byte("remove_duplicates: true\ntrim_whitespace: true\n")

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	want := Config{RemoveDuplicates: true, TrimWhitespace: true}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestSequence_ReturnsCopy(t *testing.T) {
	s := Sequence()
	s[0] = "tampered"
	if Sequence()[0] != StageRemoveDuplicates {
		t.Error("Sequence() exposes internal order")
	}
}

func TestParseStage(t *testing.T) {
	tests := []struct {
		in      string
		want    StageID
		wantErr bool
	}{
		{"trim_whitespace", StageTrimWhitespace, false},
		{"Remove-Duplicates", StageRemoveDuplicates, false},
		{" handle_missing ", StageHandleMissing, false},
		{"drop_everything", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStage(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownStage) {
					t.Errorf("expected ErrUnknownStage, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStage() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseStage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStageDescriptions(t *testing.T) {
	for _, id := range Sequence() {
		if id.Description() == "" {
			t.Errorf("stage %s has no description", id)
		}
		if newStage(id) == nil {
			t.Errorf("stage %s has no implementation", id)
		}
		if newStage(id).Name() != string(id) {
			t.Errorf("stage %s implementation reports %q", id, newStage(id).Name())
		}
	}
}
