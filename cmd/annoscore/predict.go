package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/annolab/annoscore/internal/config"
	"github.com/annolab/annoscore/internal/dataset"
	"github.com/annolab/annoscore/internal/predict"
	"github.com/annolab/annoscore/internal/prompts"
	"github.com/annolab/annoscore/internal/providers"
	"github.com/annolab/annoscore/internal/vote"
)

var (
	predictModel        string
	predictName         string
	predictWorkers      int
	predictShots        int
	predictTrain        string
	predictSystemPrompt string
	predictUserPrompt   string
)

var predictCmd = &cobra.Command{
	Use:   "predict <records.jsonl>",
	Short: "Label records with an LLM and save the run",
	Long: `Predict sends every record to a chat model and parses the returned
label mapping. Results land in a fresh run directory under the home
dir:

  runs/<run-id>/predictions.jsonl   label rows in input order
  runs/<run-id>/responses.jsonl     raw completions and parse status
  runs/<run-id>/run.yaml            model, prompts, counts, timing

Records whose completion cannot be parsed keep a row with null labels;
score and compare drop those rows and report the count.

The model is selected from the models list in the config file. Few-shot
examples come from annotated training data (--train or data.train in
the config).

Examples:
  annoscore predict dev.jsonl
  annoscore predict dev.jsonl --model gpt-4o --workers 8
  annoscore predict dev.jsonl --shots 3 --train train.jsonl
  annoscore predict dev.jsonl --system-prompt prompts/strict.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		h, err := getHome()
		if err != nil {
			return err
		}

		mgr, err := config.NewManager(configPath())
		if err != nil {
			return err
		}
		cfg := mgr.Get()

		registry := providers.NewRegistryFromConfig(cfg.ToRegistryConfig())

		mc := resolveModel(cfg, predictModel)
		client, err := registry.Get(mc.Provider)
		if err != nil {
			return fmt.Errorf("provider %q: %w", mc.Provider, err)
		}

		ps := prompts.Default()
		if predictSystemPrompt != "" || predictUserPrompt != "" {
			ps, err = prompts.Load(predictSystemPrompt, predictUserPrompt)
			if err != nil {
				return err
			}
		}

		var examples []predict.Example
		if predictShots > 0 {
			trainPath := predictTrain
			if trainPath == "" {
				trainPath = cfg.Data.Train
			}
			if trainPath == "" {
				return errors.New("--shots needs annotated training data (--train or data.train in config)")
			}
			examples, err = loadExamples(trainPath, predictShots)
			if err != nil {
				return err
			}
		}

		workers := predictWorkers
		if workers <= 0 {
			workers = cfg.Defaults.MaxWorkers
		}

		runner, err := predict.NewRunner(predict.Config{
			Client:      client,
			Prompts:     ps,
			Examples:    examples,
			Model:       mc.Model,
			Temperature: mc.Temperature,
			MaxTokens:   mc.MaxTokens,
			Workers:     workers,
		})
		if err != nil {
			return err
		}

		records, err := dataset.LoadRecords(args[0])
		if err != nil {
			return err
		}

		runID := predict.NewRunID()
		name := predictName
		if name == "" {
			name = mc.Name
		}
		if name == "" {
			name = client.Name()
		}
		started := time.Now().UTC()

		fmt.Printf("Run %s: %d records on %s\n", runID, len(records), client.Name())
		result, err := runner.Run(ctx, records)
		if err != nil {
			return err
		}

		dir, err := h.EnsureRunDir(runID)
		if err != nil {
			return err
		}
		systemHash, userHash := ps.Hashes()
		meta := predict.RunMeta{
			RunID:            runID,
			Name:             name,
			Provider:         client.Name(),
			Model:            mc.Model,
			Dataset:          args[0],
			SystemPromptHash: systemHash,
			UserPromptHash:   userHash,
			StartedAt:        started,
		}
		if err := predict.SaveRun(dir, meta, result); err != nil {
			return err
		}

		fmt.Printf("Parsed %d of %d responses (%d failed)\n", result.Parsed, len(records), result.Failed)
		fmt.Printf("Artifacts in %s\n", dir)
		if result.Failed > 0 {
			slog.Warn("some responses did not parse; score will drop those rows",
				"failed", result.Failed,
				"responses", filepath.Join(dir, predict.ResponsesFile))
		}
		return nil
	},
}

// resolveModel picks the model configuration for a run: a named entry
// from the models list, a raw model identifier on the default
// provider, or the first configured model.
func resolveModel(cfg *config.Config, name string) config.ModelCfg {
	if name != "" {
		if m, ok := cfg.GetModel(name); ok {
			return cfg.ModelDefaults(m)
		}
		return cfg.ModelDefaults(config.ModelCfg{Name: name, Model: name})
	}
	if len(cfg.Models) > 0 {
		return cfg.ModelDefaults(cfg.Models[0])
	}
	return cfg.ModelDefaults(config.ModelCfg{})
}

// loadExamples derives labels for annotated training records and takes
// the first n labeled ones as few-shot examples.
func loadExamples(path string, n int) ([]predict.Example, error) {
	records, err := dataset.LoadRecords(path)
	if err != nil {
		return nil, err
	}

	examples := make([]predict.Example, 0, n)
	for _, rec := range records {
		labels, ok, err := vote.Derive(rec)
		if err != nil {
			return nil, fmt.Errorf("example labels: %w", err)
		}
		if !ok {
			continue
		}
		examples = append(examples, predict.Example{
			Text:   strings.ReplaceAll(rec.Text, "\n", " "),
			Labels: labels,
		})
		if len(examples) == n {
			break
		}
	}
	if len(examples) < n {
		return nil, fmt.Errorf("training data has %d labeled records, need %d", len(examples), n)
	}
	return examples, nil
}

func init() {
	predictCmd.Flags().StringVar(&predictModel, "model", "", "model entry from the config, or a raw model identifier")
	predictCmd.Flags().StringVar(&predictName, "name", "", "run name recorded in run.yaml (default: model name)")
	predictCmd.Flags().IntVar(&predictWorkers, "workers", 0, "concurrent requests (default: defaults.max_workers)")
	predictCmd.Flags().IntVar(&predictShots, "shots", 0, "number of few-shot examples to include")
	predictCmd.Flags().StringVar(&predictTrain, "train", "", "annotated records for few-shot examples (default: data.train)")
	predictCmd.Flags().StringVar(&predictSystemPrompt, "system-prompt", "", "file overriding the embedded system prompt")
	predictCmd.Flags().StringVar(&predictUserPrompt, "user-prompt", "", "file overriding the embedded user prompt template")

	rootCmd.AddCommand(predictCmd)
}
