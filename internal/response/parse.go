// Package response recovers label mappings from free-form model
// output. Chat models answer with a rendering of the five-label
// mapping somewhere inside their completion text; this package finds
// it, in either of the two surface forms models actually produce.
package response

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/annolab/annoscore/internal/dataset"
	"github.com/annolab/annoscore/internal/vote"
)

// Variant names the surface syntax a mapping was recovered from.
type Variant string

const (
	// VariantPlain is the literal mapping rendering with ordinary
	// whitespace between tokens.
	VariantPlain Variant = "plain"
	// VariantEscaped is the same mapping with literal backslash-n
	// sequences after the opening brace, before each key and before
	// the closing brace. Some models emit their formatting newlines
	// escaped instead of verbatim.
	VariantEscaped Variant = "escaped"
)

// ErrNoLabels is returned when neither surface syntax matches.
var ErrNoLabels = errors.New("no label mapping found in response")

// mappingExpr builds the extraction pattern for one surface syntax.
// marker is inserted after the opening brace, before every key and
// before the closing brace; keys follow the canonical column order and
// each value captures exactly one digit.
func mappingExpr(marker string) string {
	var b strings.Builder
	b.WriteString(`\{`)
	for i, key := range dataset.LabelColumns {
		if i > 0 {
			b.WriteString(`\s*,`)
		}
		b.WriteString(marker)
		b.WriteString(`\s*'`)
		b.WriteString(key)
		b.WriteString(`'\s*:\s*(\d)`)
	}
	b.WriteString(marker)
	b.WriteString(`\s*\}`)
	return b.String()
}

var patterns = []struct {
	variant Variant
	re      *regexp.Regexp
}{
	{VariantPlain, regexp.MustCompile(mappingExpr(``))},
	{VariantEscaped, regexp.MustCompile(mappingExpr(`\s*\\n`))},
}

// Parse extracts the first label mapping from text. The plain syntax
// is tried before the escaped one; a match must carry all five keys in
// order or the parse fails as a whole. On failure the offending text
// is carried in the error for inspection.
func Parse(text string) (vote.Labels, Variant, error) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		values := make([]int, len(m)-1)
		for i := range values {
			v, err := strconv.Atoi(m[i+1])
			if err != nil {
				return vote.Labels{}, "", fmt.Errorf("parse %s value %q: %w", dataset.LabelColumns[i], m[i+1], err)
			}
			values[i] = v
		}
		labels := vote.Labels{
			BinMaj:      values[0],
			BinOne:      values[1],
			BinAll:      values[2],
			MultiMaj:    values[3],
			DisagreeBin: values[4],
		}
		return labels, p.variant, nil
	}
	return vote.Labels{}, "", fmt.Errorf("%w: %s", ErrNoLabels, snippet(text))
}

// snippet shortens long responses before they land in error text.
func snippet(text string) string {
	const max = 200
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
