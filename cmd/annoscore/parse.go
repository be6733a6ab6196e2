package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/annolab/annoscore/internal/output"
	"github.com/annolab/annoscore/internal/response"
	"github.com/annolab/annoscore/internal/vote"
)

var parseCmd = &cobra.Command{
	Use:   "parse [response-text]",
	Short: "Extract the label mapping from a model response",
	Long: `Parse extracts the five-field label mapping from raw model output.
The response text is taken from the argument, or from stdin when no
argument is given. On success the canonical mapping is printed; an
unparseable response is an error that includes the offending text.

Examples:
  annoscore parse "{'bin_maj_label': 1, 'bin_one_label': 1, 'bin_all_label': 0, 'multi_maj_label': 2, 'disagree_bin_label': 1}"
  annoscore parse < response.txt
  annoscore parse -o json < response.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if len(args) == 1 {
			text = args[0]
		} else {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = string(data)
		}

		labels, variant, err := response.Parse(text)
		if err != nil {
			return err
		}

		if output.IsStructured() {
			return output.Output(struct {
				Labels  vote.Labels      `json:"labels" yaml:"labels"`
				Variant response.Variant `json:"variant" yaml:"variant"`
			}{labels, variant})
		}
		fmt.Println(response.Render(labels))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
