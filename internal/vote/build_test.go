package vote

import (
	"errors"
	"testing"

	"github.com/annolab/annoscore/internal/dataset"
)

func TestDerive(t *testing.T) {
	t.Run("fills all five labels", func(t *testing.T) {
		labels, ok, err := Derive(record("t", "0-Kein", "1-Beleidigung", "1-Beleidigung"))
		if err != nil || !ok {
			t.Fatalf("Derive() = (%v, %v), want labeled result", ok, err)
		}
		want := Labels{BinMaj: 1, BinOne: 1, BinAll: 0, MultiMaj: 1, DisagreeBin: 1}
		if labels != want {
			t.Errorf("Derive() = %+v, want %+v", labels, want)
		}
	})

	t.Run("unlabeled record", func(t *testing.T) {
		if _, ok, err := Derive(dataset.Record{ID: "t", Text: "x"}); ok || err != nil {
			t.Errorf("Derive(unlabeled) = (%v, %v), want (false, nil)", ok, err)
		}
	})

	t.Run("empty annotations", func(t *testing.T) {
		r := dataset.Record{ID: "t", Text: "x", Annotations: []dataset.Annotation{}}
		if _, _, err := Derive(r); !errors.Is(err, ErrNoAnnotations) {
			t.Errorf("Derive() error = %v, want ErrNoAnnotations", err)
		}
	})
}

func TestBuildDataset(t *testing.T) {
	t.Run("labels every annotated record", func(t *testing.T) {
		records := []dataset.Record{
			record("t1", "0-Kein", "0-Kein"),
			record("t2", "2-Drohung", "2-Drohung", "0-Kein"),
			{ID: "t3", Text: "unlabeled"},
		}

		table, err := BuildDataset(records)
		if err != nil {
			t.Fatalf("BuildDataset() error = %v", err)
		}
		if len(table) != 3 {
			t.Fatalf("got %d rows, want 3", len(table))
		}

		if !table[0].Complete() || !table[1].Complete() {
			t.Error("annotated records should produce complete rows")
		}
		if *table[1].MultiMaj != 2 || *table[1].DisagreeBin != 1 {
			t.Errorf("row t2 = %+v", table[1])
		}

		// Unlabeled records stay in the table with null labels.
		if table[2].ID != "t3" || table[2].Complete() {
			t.Errorf("row t3 = %+v, want incomplete row", table[2])
		}
	})

	t.Run("flattens newlines in text", func(t *testing.T) {
		r := record("t1", "0-Kein")
		r.Text = "first\nsecond\nthird"

		table, err := BuildDataset([]dataset.Record{r})
		if err != nil {
			t.Fatalf("BuildDataset() error = %v", err)
		}
		if table[0].Text != "first second third" {
			t.Errorf("text = %q, want newlines replaced by spaces", table[0].Text)
		}
	})

	t.Run("empty annotations abort the build", func(t *testing.T) {
		records := []dataset.Record{
			record("t1", "0-Kein"),
			{ID: "t2", Text: "x", Annotations: []dataset.Annotation{}},
		}
		if _, err := BuildDataset(records); !errors.Is(err, ErrNoAnnotations) {
			t.Errorf("BuildDataset() error = %v, want ErrNoAnnotations", err)
		}
	})
}
