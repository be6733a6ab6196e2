package response

import (
	"fmt"

	"github.com/annolab/annoscore/internal/vote"
)

// Render writes labels in the canonical mapping form, the same surface
// Parse accepts as the plain variant. Prompts embed this rendering as
// the answer template models are asked to reproduce.
func Render(l vote.Labels) string {
	return fmt.Sprintf(
		"{'bin_maj_label': %d, 'bin_one_label': %d, 'bin_all_label': %d, 'multi_maj_label': %d, 'disagree_bin_label': %d}",
		l.BinMaj, l.BinOne, l.BinAll, l.MultiMaj, l.DisagreeBin,
	)
}
