package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/annolab/annoscore/internal/scoring"
)

func sampleResults() []scoring.CandidateResult {
	return []scoring.CandidateResult{
		{
			Name: "gpt-4o-mini",
			Report: scoring.Report{Scores: []scoring.Score{
				{Column: "bin_maj_label", Rule: "Bin Maj", F1: 0.81},
				{Column: "bin_one_label", Rule: "Bin One", F1: 0.77},
				{Column: "bin_all_label", Rule: "Bin All", F1: 0.69},
				{Column: "multi_maj_label", Rule: "Multi Maj", F1: 0.55},
				{Column: "disagree_bin_label", Rule: "Disagree Bin", F1: 0.61},
			}},
		},
		{
			Name: "gpt-4o",
			Report: scoring.Report{Scores: []scoring.Score{
				{Column: "bin_maj_label", Rule: "Bin Maj", F1: 0.85},
				{Column: "bin_one_label", Rule: "Bin One", F1: 0.8},
				{Column: "bin_all_label", Rule: "Bin All", F1: 0.74},
				{Column: "multi_maj_label", Rule: "Multi Maj", F1: 0.6},
				{Column: "disagree_bin_label", Rule: "Disagree Bin", F1: 0.66},
			}},
		},
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, "Dev set comparison", sampleResults()); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}

	html := buf.String()
	for _, want := range []string{"Dev set comparison", "gpt-4o-mini", "gpt-4o", "Bin Maj", "Disagree Bin"} {
		if !strings.Contains(html, want) {
			t.Errorf("chart should contain %q", want)
		}
	}
}

func TestWriteHTML_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, "empty", nil); err == nil {
		t.Fatal("expected error for empty results")
	}
}

func TestSaveHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.html")
	if err := SaveHTML(path, "Scores", sampleResults()); err != nil {
		t.Fatalf("SaveHTML() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}
