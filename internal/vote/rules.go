// Package vote derives consolidated gold labels from multi-annotator
// records. Each rule collapses the individual annotations of one record
// into a single integer label; Derive applies all five rules at once.
package vote

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/annolab/annoscore/internal/dataset"
)

// Background is the label annotators assign when a tweet contains none
// of the phenomena under study. Every rule pivots on it.
const Background = "0-Kein"

// ErrNoAnnotations is returned when a record carries an annotations
// list that is present but empty. Records without the list at all are
// treated as unlabeled and skipped, not failed.
var ErrNoAnnotations = errors.New("record has no annotations")

// BinMaj is 1 when the most frequent annotation is not the background
// class. Frequency ties resolve to the label that first reaches the
// winning count in annotation order.
func BinMaj(r dataset.Record) (int, bool, error) {
	labels, ok, err := ruleLabels(r)
	if !ok || err != nil {
		return 0, ok, err
	}
	winner, _ := mode(labels)
	if winner != Background {
		return 1, true, nil
	}
	return 0, true, nil
}

// BinOne is 1 when at least one annotator saw something other than the
// background class.
func BinOne(r dataset.Record) (int, bool, error) {
	labels, ok, err := ruleLabels(r)
	if !ok || err != nil {
		return 0, ok, err
	}
	for _, label := range labels {
		if label != Background {
			return 1, true, nil
		}
	}
	return 0, true, nil
}

// BinAll is 1 only when every annotator saw something other than the
// background class.
func BinAll(r dataset.Record) (int, bool, error) {
	labels, ok, err := ruleLabels(r)
	if !ok || err != nil {
		return 0, ok, err
	}
	for _, label := range labels {
		if label == Background {
			return 0, true, nil
		}
	}
	return 1, true, nil
}

// MultiMaj keeps the full class inventory. A strict majority wins; when
// no label clears half the annotator count the first annotation decides.
func MultiMaj(r dataset.Record) (int, bool, error) {
	labels, ok, err := ruleLabels(r)
	if !ok || err != nil {
		return 0, ok, err
	}
	winner, count := mode(labels)
	if count*2 <= len(labels) {
		winner = labels[0]
	}
	code, err := labelCode(winner)
	if err != nil {
		return 0, true, fmt.Errorf("record %s: %w", r.ID, err)
	}
	return code, true, nil
}

// DisagreeBin flags records where the annotators split over whether the
// tweet is background at all: 1 when the background class appears next
// to at least one other label.
func DisagreeBin(r dataset.Record) (int, bool, error) {
	labels, ok, err := ruleLabels(r)
	if !ok || err != nil {
		return 0, ok, err
	}
	background := false
	distinct := map[string]struct{}{}
	for _, label := range labels {
		if label == Background {
			background = true
		}
		distinct[label] = struct{}{}
	}
	if background && len(distinct) > 1 {
		return 1, true, nil
	}
	return 0, true, nil
}

func ruleLabels(r dataset.Record) ([]string, bool, error) {
	if !r.Labeled() {
		return nil, false, nil
	}
	labels := r.Labels()
	if len(labels) == 0 {
		return nil, true, fmt.Errorf("record %s: %w", r.ID, ErrNoAnnotations)
	}
	return labels, true, nil
}

// mode returns the most frequent label and its count. Ties go to the
// label that first reaches the winning count in slice order.
func mode(labels []string) (string, int) {
	counts := make(map[string]int, len(labels))
	for _, label := range labels {
		counts[label]++
	}
	var winner string
	best := 0
	for _, label := range labels {
		if counts[label] > best {
			winner = label
			best = counts[label]
		}
	}
	return winner, best
}

// labelCode extracts the numeric class from an annotation label. Labels
// follow the "<digit>-<name>" convention; a label without the dash must
// be the bare number itself.
func labelCode(label string) (int, error) {
	prefix, _, _ := strings.Cut(label, "-")
	code, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, fmt.Errorf("label %q has no numeric class", label)
	}
	return code, nil
}
