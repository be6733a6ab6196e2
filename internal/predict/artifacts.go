package predict

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/annolab/annoscore/internal/dataset"
)

// Artifact file names inside a run directory.
const (
	PredictionsFile = "predictions.jsonl"
	ResponsesFile   = "responses.jsonl"
	MetaFile        = "run.yaml"
)

// RunMeta describes one prediction run. Saved alongside the raw
// responses so scores stay attributable to the exact model, prompts
// and dataset that produced them.
type RunMeta struct {
	RunID            string    `yaml:"run_id" json:"run_id"`
	Name             string    `yaml:"name" json:"name"`
	Provider         string    `yaml:"provider" json:"provider"`
	Model            string    `yaml:"model" json:"model"`
	Dataset          string    `yaml:"dataset" json:"dataset"`
	Records          int       `yaml:"records" json:"records"`
	Parsed           int       `yaml:"parsed" json:"parsed"`
	Failed           int       `yaml:"failed" json:"failed"`
	PromptTokens     int       `yaml:"prompt_tokens" json:"prompt_tokens"`
	CompletionTokens int       `yaml:"completion_tokens" json:"completion_tokens"`
	SystemPromptHash string    `yaml:"system_prompt_hash" json:"system_prompt_hash"`
	UserPromptHash   string    `yaml:"user_prompt_hash" json:"user_prompt_hash"`
	StartedAt        time.Time `yaml:"started_at" json:"started_at"`
	Duration         string    `yaml:"duration" json:"duration"`
}

// responseLine is the serialized form of one outcome in responses.jsonl.
type responseLine struct {
	ID         dataset.ID `json:"id"`
	Response   string     `json:"response"`
	Variant    string     `json:"variant,omitempty"`
	ErrorType  string     `json:"error_type,omitempty"`
	Error      string     `json:"error,omitempty"`
	Attempts   int        `json:"attempts"`
	Tokens     int        `json:"tokens"`
	DurationMS int64      `json:"duration_ms"`
}

// SaveRun writes a run's artifacts into dir: the prediction table, the
// raw model responses, and the run metadata.
func SaveRun(dir string, meta RunMeta, result *Result) error {
	if err := dataset.SaveJSONL(filepath.Join(dir, PredictionsFile), result.Table); err != nil {
		return fmt.Errorf("save predictions: %w", err)
	}

	if err := saveResponses(filepath.Join(dir, ResponsesFile), result.Outcomes); err != nil {
		return fmt.Errorf("save responses: %w", err)
	}

	meta.Records = len(result.Outcomes)
	meta.Parsed = result.Parsed
	meta.Failed = result.Failed
	meta.PromptTokens = result.PromptTokens
	meta.CompletionTokens = result.CompletionTokens
	meta.Duration = result.Duration.Round(time.Millisecond).String()

	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal run metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, MetaFile), data, 0o644); err != nil {
		return fmt.Errorf("save run metadata: %w", err)
	}
	return nil
}

func saveResponses(path string, outcomes []Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, o := range outcomes {
		line := responseLine{
			ID:         o.ID,
			Response:   o.Content,
			Variant:    string(o.Variant),
			ErrorType:  o.ErrorType,
			Error:      o.Error,
			Attempts:   o.Attempts,
			Tokens:     o.PromptTokens + o.CompletionTokens,
			DurationMS: o.Duration.Milliseconds(),
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}
	return nil
}

// LoadRunMeta reads run.yaml from a run directory.
func LoadRunMeta(dir string) (RunMeta, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetaFile))
	if err != nil {
		return RunMeta{}, fmt.Errorf("read run metadata: %w", err)
	}
	var meta RunMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return RunMeta{}, fmt.Errorf("parse run metadata: %w", err)
	}
	return meta, nil
}
