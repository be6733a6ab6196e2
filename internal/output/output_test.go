package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetFormat(t *testing.T) {
	defer SetFormat("text")

	cases := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"yaml", FormatYAML},
		{"text", FormatText},
		{"nonsense", DefaultFormat},
	}
	for _, tc := range cases {
		SetFormat(tc.in)
		if got := GetFormat(); got != tc.want {
			t.Errorf("SetFormat(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsStructured(t *testing.T) {
	defer SetFormat("text")

	SetFormat("text")
	if IsStructured() {
		t.Error("text output should not be structured")
	}
	SetFormat("json")
	if !IsStructured() {
		t.Error("json output should be structured")
	}
	SetFormat("yaml")
	if !IsStructured() {
		t.Error("yaml output should be structured")
	}
}

func TestOutputTo(t *testing.T) {
	data := map[string]any{"f1": 0.5}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, FormatJSON, data); err != nil {
			t.Fatalf("OutputTo failed: %v", err)
		}
		if !strings.Contains(buf.String(), `"f1": 0.5`) {
			t.Errorf("unexpected json output: %s", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, FormatYAML, data); err != nil {
			t.Fatalf("OutputTo failed: %v", err)
		}
		if !strings.Contains(buf.String(), "f1: 0.5") {
			t.Errorf("unexpected yaml output: %s", buf.String())
		}
	})

	t.Run("text is not encodable", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, FormatText, data); err == nil {
			t.Error("expected error for text format")
		}
	})
}
