package response

import (
	"errors"
	"strings"
	"testing"

	"github.com/annolab/annoscore/internal/vote"
)

func TestParse(t *testing.T) {
	want := vote.Labels{BinMaj: 1, BinOne: 1, BinAll: 0, MultiMaj: 2, DisagreeBin: 1}

	t.Run("plain mapping", func(t *testing.T) {
		text := "{'bin_maj_label': 1, 'bin_one_label': 1, 'bin_all_label': 0, 'multi_maj_label': 2, 'disagree_bin_label': 1}"
		got, variant, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if variant != VariantPlain {
			t.Errorf("variant = %q, want plain", variant)
		}
		if got != want {
			t.Errorf("Parse() = %+v, want %+v", got, want)
		}
	})

	t.Run("mapping embedded in prose", func(t *testing.T) {
		text := "Sure, here is my assessment:\n\n{'bin_maj_label': 1, 'bin_one_label': 1, " +
			"'bin_all_label': 0, 'multi_maj_label': 2, 'disagree_bin_label': 1}\n\nLet me know if you need more."
		got, _, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got != want {
			t.Errorf("Parse() = %+v, want %+v", got, want)
		}
	})

	t.Run("irregular whitespace", func(t *testing.T) {
		text := "{ 'bin_maj_label' :1 ,'bin_one_label': 1,\n'bin_all_label':0, 'multi_maj_label'  : 2, 'disagree_bin_label':1 }"
		got, variant, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if variant != VariantPlain || got != want {
			t.Errorf("Parse() = (%+v, %q), want (%+v, plain)", got, variant, want)
		}
	})

	t.Run("escaped newline markers", func(t *testing.T) {
		text := `{\n 'bin_maj_label': 1,\n 'bin_one_label': 1,\n 'bin_all_label': 0,\n 'multi_maj_label': 2,\n 'disagree_bin_label': 1\n}`
		got, variant, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if variant != VariantEscaped {
			t.Errorf("variant = %q, want escaped", variant)
		}
		if got != want {
			t.Errorf("Parse() = %+v, want %+v", got, want)
		}
	})

	t.Run("first occurrence wins", func(t *testing.T) {
		text := "{'bin_maj_label': 0, 'bin_one_label': 0, 'bin_all_label': 0, 'multi_maj_label': 0, 'disagree_bin_label': 0}" +
			" and also {'bin_maj_label': 1, 'bin_one_label': 1, 'bin_all_label': 1, 'multi_maj_label': 1, 'disagree_bin_label': 1}"
		got, _, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got != (vote.Labels{}) {
			t.Errorf("Parse() = %+v, want the first mapping", got)
		}
	})

	t.Run("plain syntax is preferred", func(t *testing.T) {
		text := `{\n 'bin_maj_label': 0,\n 'bin_one_label': 0,\n 'bin_all_label': 0,\n 'multi_maj_label': 0,\n 'disagree_bin_label': 0\n}` +
			" {'bin_maj_label': 1, 'bin_one_label': 1, 'bin_all_label': 0, 'multi_maj_label': 2, 'disagree_bin_label': 1}"
		got, variant, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if variant != VariantPlain || got != want {
			t.Errorf("Parse() = (%+v, %q), want plain match", got, variant)
		}
	})

	t.Run("failures", func(t *testing.T) {
		cases := []struct {
			name string
			text string
		}{
			{"no mapping at all", "the tweet is clearly offensive"},
			{"missing key", "{'bin_maj_label': 1, 'bin_one_label': 1, 'bin_all_label': 0, 'multi_maj_label': 2}"},
			{"keys out of order", "{'bin_one_label': 1, 'bin_maj_label': 1, 'bin_all_label': 0, 'multi_maj_label': 2, 'disagree_bin_label': 1}"},
			{"multi digit value", "{'bin_maj_label': 12, 'bin_one_label': 1, 'bin_all_label': 0, 'multi_maj_label': 2, 'disagree_bin_label': 1}"},
			{"double quoted keys", `{"bin_maj_label": 1, "bin_one_label": 1, "bin_all_label": 0, "multi_maj_label": 2, "disagree_bin_label": 1}`},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, _, err := Parse(tc.text)
				if !errors.Is(err, ErrNoLabels) {
					t.Errorf("Parse() error = %v, want ErrNoLabels", err)
				}
			})
		}
	})

	t.Run("failure surfaces the input", func(t *testing.T) {
		_, _, err := Parse("nothing useful here")
		if err == nil || !strings.Contains(err.Error(), "nothing useful here") {
			t.Errorf("error should carry the offending text: %v", err)
		}
	})

	t.Run("long failures are truncated", func(t *testing.T) {
		_, _, err := Parse(strings.Repeat("x", 500))
		if err == nil {
			t.Fatal("expected error")
		}
		if len(err.Error()) > 300 {
			t.Errorf("error text should be truncated, got %d bytes", len(err.Error()))
		}
	})
}

func TestRenderRoundTrip(t *testing.T) {
	cases := []vote.Labels{
		{},
		{BinMaj: 1, BinOne: 1, BinAll: 1, MultiMaj: 1, DisagreeBin: 0},
		{BinMaj: 0, BinOne: 1, BinAll: 0, MultiMaj: 4, DisagreeBin: 1},
	}
	for _, labels := range cases {
		rendered := Render(labels)
		got, variant, err := Parse(rendered)
		if err != nil {
			t.Fatalf("Parse(Render(%+v)) error = %v", labels, err)
		}
		if variant != VariantPlain {
			t.Errorf("variant = %q, want plain", variant)
		}
		if got != labels {
			t.Errorf("round trip = %+v, want %+v", got, labels)
		}
	}
}
