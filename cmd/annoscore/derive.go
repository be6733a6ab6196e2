package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/annolab/annoscore/internal/dataset"
	"github.com/annolab/annoscore/internal/vote"
)

var (
	deriveOut string
	deriveCSV string
)

var deriveCmd = &cobra.Command{
	Use:   "derive <records.jsonl>",
	Short: "Derive consolidated labels from annotated records",
	Long: `Derive aggregates the per-annotator labels of each record into the
five derived label columns:

  bin_maj_label       the majority of annotators flagged the text
  bin_one_label       at least one annotator flagged the text
  bin_all_label       every annotator flagged the text
  multi_maj_label     majority class code (first annotation on ties)
  disagree_bin_label  annotators split between background and another class

Records without an annotations field stay in the output with null label
cells. Input order is preserved.

Examples:
  annoscore derive dev.jsonl                    # writes dev_labeled.jsonl
  annoscore derive dev.jsonl --out gold.jsonl
  annoscore derive dev.jsonl --csv gold.csv     # additionally write CSV`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := dataset.LoadRecords(args[0])
		if err != nil {
			return err
		}

		table, err := vote.BuildDataset(records)
		if err != nil {
			return err
		}

		out := deriveOut
		if out == "" {
			out = defaultDeriveOut(args[0])
		}
		if err := dataset.SaveJSONL(out, table); err != nil {
			return err
		}
		fmt.Printf("Derived labels for %d records -> %s\n", len(records), out)

		if deriveCSV != "" {
			if err := dataset.SaveCSV(deriveCSV, table); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", deriveCSV)
		}
		return nil
	},
}

// defaultDeriveOut places the labeled table next to the input file.
func defaultDeriveOut(in string) string {
	ext := filepath.Ext(in)
	if ext == "" {
		ext = ".jsonl"
	}
	return strings.TrimSuffix(in, filepath.Ext(in)) + "_labeled" + ext
}

func init() {
	deriveCmd.Flags().StringVar(&deriveOut, "out", "", "output path (default: <input>_labeled.jsonl)")
	deriveCmd.Flags().StringVar(&deriveCSV, "csv", "", "additionally write the table as CSV to this path")

	rootCmd.AddCommand(deriveCmd)
}
