package vote

import (
	"errors"
	"testing"

	"github.com/annolab/annoscore/internal/dataset"
)

func record(id string, labels ...string) dataset.Record {
	annotations := make([]dataset.Annotation, len(labels))
	for i, label := range labels {
		annotations[i] = dataset.Annotation{Label: label}
	}
	return dataset.Record{ID: dataset.ID(id), Text: "text " + id, Annotations: annotations}
}

func TestBinMaj(t *testing.T) {
	cases := []struct {
		name   string
		labels []string
		want   int
	}{
		{"background majority", []string{"0-Kein", "0-Kein", "1-Beleidigung"}, 0},
		{"phenomenon majority", []string{"1-Beleidigung", "1-Beleidigung", "0-Kein"}, 1},
		{"unanimous background", []string{"0-Kein", "0-Kein"}, 0},
		{"tie keeps first label background", []string{"0-Kein", "1-Beleidigung"}, 0},
		{"tie keeps first label phenomenon", []string{"1-Beleidigung", "0-Kein"}, 1},
		{"mixed phenomena still majority", []string{"1-Beleidigung", "2-Drohung", "1-Beleidigung"}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := BinMaj(record("t", tc.labels...))
			if err != nil || !ok {
				t.Fatalf("BinMaj() = (%v, %v), want labeled result", ok, err)
			}
			if got != tc.want {
				t.Errorf("BinMaj(%v) = %d, want %d", tc.labels, got, tc.want)
			}
		})
	}
}

func TestBinOneBinAll(t *testing.T) {
	cases := []struct {
		name    string
		labels  []string
		wantOne int
		wantAll int
	}{
		{"all background", []string{"0-Kein", "0-Kein"}, 0, 0},
		{"one dissenter", []string{"0-Kein", "0-Kein", "2-Drohung"}, 1, 0},
		{"unanimous phenomenon", []string{"1-Beleidigung", "2-Drohung"}, 1, 1},
		{"single annotator background", []string{"0-Kein"}, 0, 0},
		{"single annotator phenomenon", []string{"3-Hetze"}, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := record("t", tc.labels...)
			one, _, err := BinOne(r)
			if err != nil {
				t.Fatalf("BinOne() error = %v", err)
			}
			all, _, err := BinAll(r)
			if err != nil {
				t.Fatalf("BinAll() error = %v", err)
			}
			if one != tc.wantOne || all != tc.wantAll {
				t.Errorf("BinOne/BinAll(%v) = %d/%d, want %d/%d",
					tc.labels, one, all, tc.wantOne, tc.wantAll)
			}
			// bin_all can never fire without bin_one.
			if all == 1 && one == 0 {
				t.Errorf("BinAll = 1 but BinOne = 0 for %v", tc.labels)
			}
		})
	}
}

func TestMultiMaj(t *testing.T) {
	cases := []struct {
		name   string
		labels []string
		want   int
	}{
		{"strict majority wins", []string{"1-Beleidigung", "1-Beleidigung", "2-Drohung"}, 1},
		{"tie falls back to first annotation", []string{"1-Beleidigung", "2-Drohung"}, 1},
		{"tie falls back regardless of class order", []string{"2-Drohung", "1-Beleidigung"}, 2},
		{"three way split", []string{"3-Hetze", "1-Beleidigung", "2-Drohung"}, 3},
		{"background majority", []string{"0-Kein", "0-Kein", "2-Drohung"}, 0},
		{"plain numeric label", []string{"7"}, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := MultiMaj(record("t", tc.labels...))
			if err != nil || !ok {
				t.Fatalf("MultiMaj() = (%v, %v), want labeled result", ok, err)
			}
			if got != tc.want {
				t.Errorf("MultiMaj(%v) = %d, want %d", tc.labels, got, tc.want)
			}
		})
	}

	t.Run("label without numeric class", func(t *testing.T) {
		if _, _, err := MultiMaj(record("t", "Kein-0")); err == nil {
			t.Fatal("expected error for non-numeric class prefix")
		}
	})
}

func TestDisagreeBin(t *testing.T) {
	cases := []struct {
		name   string
		labels []string
		want   int
	}{
		{"background among others", []string{"0-Kein", "1-Beleidigung"}, 1},
		{"background unanimous", []string{"0-Kein", "0-Kein", "0-Kein"}, 0},
		{"disagreement without background", []string{"1-Beleidigung", "2-Drohung"}, 0},
		{"phenomenon unanimous", []string{"2-Drohung", "2-Drohung"}, 0},
		{"background minority", []string{"1-Beleidigung", "1-Beleidigung", "0-Kein"}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := DisagreeBin(record("t", tc.labels...))
			if err != nil || !ok {
				t.Fatalf("DisagreeBin() = (%v, %v), want labeled result", ok, err)
			}
			if got != tc.want {
				t.Errorf("DisagreeBin(%v) = %d, want %d", tc.labels, got, tc.want)
			}
		})
	}
}

func TestRulesEdgeCases(t *testing.T) {
	rules := map[string]func(dataset.Record) (int, bool, error){
		"BinMaj":      BinMaj,
		"BinOne":      BinOne,
		"BinAll":      BinAll,
		"MultiMaj":    MultiMaj,
		"DisagreeBin": DisagreeBin,
	}

	t.Run("unlabeled record is skipped", func(t *testing.T) {
		r := dataset.Record{ID: "t", Text: "no annotations key"}
		for name, rule := range rules {
			if _, ok, err := rule(r); ok || err != nil {
				t.Errorf("%s(unlabeled) = (%v, %v), want (false, nil)", name, ok, err)
			}
		}
	})

	t.Run("empty annotations list fails", func(t *testing.T) {
		r := dataset.Record{ID: "t9", Text: "x", Annotations: []dataset.Annotation{}}
		for name, rule := range rules {
			_, ok, err := rule(r)
			if !ok {
				t.Errorf("%s should report the record as labeled", name)
			}
			if !errors.Is(err, ErrNoAnnotations) {
				t.Errorf("%s error = %v, want ErrNoAnnotations", name, err)
			}
		}
	})
}
