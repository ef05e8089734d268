package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/colorium/nameconv/pkg/nameconv"
	"github.com/colorium/nameconv/pkg/nameconv/asset"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNewReport_Valid(t *testing.T) {
	r := newReport(asset.DefaultConvention(), "mdl_policeCar_010-005_v001", false, discard)

	if !r.Valid {
		t.Fatalf("Valid = false, error = %s", r.Error)
	}
	if r.Canonical != "mdl_policeCar_010-005_v001" {
		t.Errorf("Canonical = %q", r.Canonical)
	}
	if r.Fields["type"] != "mdl" {
		t.Errorf("Fields[type] = %v, want mdl", r.Fields["type"])
	}
	nested, ok := r.Fields["scene_shot"].(map[string]any)
	if !ok || nested["shot"] != "005" {
		t.Errorf("Fields[scene_shot] = %v", r.Fields["scene_shot"])
	}
	if r.Asset != nil {
		t.Error("Asset decoded without decode flag")
	}
}

func TestNewReport_Asset(t *testing.T) {
	r := newReport(asset.DefaultConvention(), "cam_shotCam_010-020_export", true, discard)

	if r.Asset == nil {
		t.Fatal("Asset = nil")
	}
	if r.Asset.Type != asset.Camera || r.Asset.Kind != asset.KindExport || r.Asset.Shot != 20 {
		t.Errorf("Asset = %+v", *r.Asset)
	}
}

func TestNewReport_AssetNotDecodable(t *testing.T) {
	conv, err := nameconv.NewWithRules([]nameconv.Rule{
		nameconv.MustPattern(asset.RuleType, `^[a-z]{3}$`, nameconv.Mandatory),
		nameconv.MustPattern(asset.RuleVersion, `^[a-z]+$`, nameconv.Mandatory),
	})
	if err != nil {
		t.Fatal(err)
	}

	r := newReport(conv, "mdl_final", true, discard)
	if !r.Valid {
		t.Fatalf("Valid = false, error = %s", r.Error)
	}
	if r.Asset != nil {
		t.Errorf("Asset = %+v, want nil", *r.Asset)
	}
}

func TestNewReport_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		kind       string
		wantFields bool
	}{
		{"not_enough_tokens", "mdl_policeCar", "not_enough_tokens", false},
		{"too_many_tokens", "mdl_a_10_010_v001_x", "too_many_tokens", false},
		{"unmatched_token", "mdl_police9Car_v001", "unmatched_token", false},
		{"missing_rules", "mdl_policeCar_final", "missing_rules", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReport(asset.DefaultConvention(), tt.input, false, discard)
			if r.Valid {
				t.Fatal("Valid = true")
			}
			if r.ErrorKind != tt.kind {
				t.Errorf("ErrorKind = %q, want %q", r.ErrorKind, tt.kind)
			}
			if r.Error == "" {
				t.Error("Error is empty")
			}
			if r.Canonical != "" {
				t.Errorf("Canonical = %q, want empty", r.Canonical)
			}
			if got := r.Fields != nil; got != tt.wantFields {
				t.Errorf("Fields = %v, want present = %v", r.Fields, tt.wantFields)
			}
		})
	}
}

func TestErrorKind_Other(t *testing.T) {
	if got := errorKind(errors.New("boom")); got != "error" {
		t.Errorf("errorKind() = %q, want error", got)
	}
}

func TestOutputJSON(t *testing.T) {
	r := newReport(asset.DefaultConvention(), "rig_hero_v012", false, discard)

	var buf bytes.Buffer
	if err := OutputJSON(r, &buf); err != nil {
		t.Fatalf("OutputJSON() error = %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("OutputJSON() output is not newline terminated")
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("OutputJSON() produced invalid JSON: %v", err)
	}
	if decoded.Name != "rig_hero_v012" || !decoded.Valid {
		t.Errorf("decoded = %+v", decoded)
	}
	if strings.Contains(buf.String(), `"error"`) {
		t.Errorf("valid report has an error field: %s", buf.String())
	}
}

func TestOutputPretty(t *testing.T) {
	tests := []struct {
		name   string
		report Report
		want   string
	}{
		{
			name:   "valid",
			report: newReport(asset.DefaultConvention(), "mdl_policeCar_010-005_v001", false, discard),
			want:   "ok   mdl_policeCar_010-005_v001 name=policeCar scene_shot.scene=010 scene_shot.shot=005 type=mdl version=v001\n",
		},
		{
			name:   "valid_with_asset",
			report: newReport(asset.DefaultConvention(), "rig_hero_v012", true, discard),
			want:   "ok   rig_hero_v012 name=hero type=rig version=v012 (Rig)\n",
		},
		{
			name:   "rejected",
			report: Report{Name: "bad", Error: "boom", ErrorKind: "error"},
			want:   "FAIL bad: boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := OutputPretty(tt.report, &buf); err != nil {
				t.Fatalf("OutputPretty() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("OutputPretty() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestOutputReport(t *testing.T) {
	r := Report{Name: "x", Valid: true}

	for _, format := range []string{"jsonl", "pretty"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := OutputReport(format, r, &buf); err != nil {
				t.Fatalf("OutputReport() error = %v", err)
			}
			if buf.Len() == 0 {
				t.Error("OutputReport() wrote nothing")
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputReport("xml", r, &buf); err == nil {
			t.Error("OutputReport() error = nil, want error")
		}
	})
}

func TestFlattenFields(t *testing.T) {
	got := flattenFields("", map[string]any{
		"type": "mdl",
		"scene_shot": map[string]any{
			"scene": "010",
			"deeper": map[string]any{"x": "1"},
		},
	}, nil)

	want := map[string]string{
		"type":                "mdl",
		"scene_shot.scene":    "010",
		"scene_shot.deeper.x": "1",
	}
	if len(got) != len(want) {
		t.Fatalf("flattenFields() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("flattenFields()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestQuoteIfNeeded(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "hello", "hello"},
		{"empty", "", `""`},
		{"with_space", "hello world", `"hello world"`},
		{"with_equals", "a=b", `"a=b"`},
		{"with_quote", `say "hi"`, `"say \"hi\""`},
		{"with_backslash", `path\to`, `"path\\to"`},
		{"with_newline", "line1\nline2", `"line1\nline2"`},
		{"with_tab", "col1\tcol2", `"col1\tcol2"`},
		{"with_carriage_return", "a\rb", `"a\rb"`},
		{"with_null", "a\x00b", `"a\x00b"`},
		{"with_del", "a\x7fb", `"a\x7fb"`},
		{"unicode", "テスト", "テスト"},
		{"unicode_with_space", "日本語 テスト", `"日本語 テスト"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quoteIfNeeded(tt.input)
			if got != tt.want {
				t.Errorf("quoteIfNeeded(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatData(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]string
		want  string
	}{
		{"nil", nil, ""},
		{"empty", map[string]string{}, ""},
		{"single", map[string]string{"type": "mdl"}, "type=mdl"},
		{"multiple_sorted", map[string]string{"version": "v001", "name": "car", "type": "mdl"}, "name=car type=mdl version=v001"},
		{"with_spaces", map[string]string{"name": "police car"}, `name="police car"`},
		{"key_with_equals", map[string]string{"key=name": "value"}, `"key=name"=value`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatData(tt.input)
			if got != tt.want {
				t.Errorf("formatData(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
