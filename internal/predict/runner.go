// Package predict runs a chat model over a record set and collects its
// label predictions. Requests fan out across a bounded worker pool,
// share one rate limiter per provider, and retry transient failures
// with backoff. Each run leaves a full artifact trail on disk.
package predict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/annolab/annoscore/internal/dataset"
	"github.com/annolab/annoscore/internal/prompts"
	"github.com/annolab/annoscore/internal/providers"
	"github.com/annolab/annoscore/internal/response"
	"github.com/annolab/annoscore/internal/vote"
)

// Example is one few-shot demonstration inserted before the tweet
// under prediction, rendered as a user/assistant turn pair.
type Example struct {
	Text   string
	Labels vote.Labels
}

// Config configures a prediction runner.
type Config struct {
	Client      providers.LLMClient
	Prompts     *prompts.Set // nil uses the embedded defaults
	Examples    []Example    // optional few-shot examples
	Model       string       // empty uses the client default
	Temperature float64
	MaxTokens   int
	Workers     int           // concurrent requests (default 4)
	Timeout     time.Duration // per-request timeout (default 2m)
	Logger      *slog.Logger
}

// Runner drives one model over records.
type Runner struct {
	client      providers.LLMClient
	limiter     *providers.RateLimiter
	prompts     *prompts.Set
	examples    []Example
	model       string
	temperature float64
	maxTokens   int
	workers     int
	timeout     time.Duration
	logger      *slog.Logger
}

// NewRunner creates a runner for one client.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Client == nil {
		return nil, errors.New("client is required")
	}
	if cfg.Prompts == nil {
		cfg.Prompts = prompts.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 100
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Runner{
		client:      cfg.Client,
		limiter:     providers.NewRateLimiter(cfg.Client.RequestsPerMinute()),
		prompts:     cfg.Prompts,
		examples:    cfg.Examples,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		workers:     cfg.Workers,
		timeout:     cfg.Timeout,
		logger:      cfg.Logger.With("provider", cfg.Client.Name()),
	}, nil
}

// Outcome is the result of predicting one record.
type Outcome struct {
	ID               dataset.ID
	Text             string
	Labels           *vote.Labels // nil when the request or parse failed
	Variant          response.Variant
	Content          string // raw completion text
	ErrorType        string
	Error            string
	Attempts         int
	PromptTokens     int
	CompletionTokens int
	Duration         time.Duration
}

// Row lifts the outcome into a prediction row; failed outcomes produce
// rows with null labels so downstream filtering can count them.
func (o Outcome) Row() dataset.Row {
	if o.Labels == nil {
		return dataset.Row{ID: o.ID, Text: o.Text}
	}
	return o.Labels.Row(o.ID, o.Text)
}

// Result aggregates one run.
type Result struct {
	Outcomes         []Outcome
	Table            dataset.Table
	Parsed           int
	Failed           int
	PromptTokens     int
	CompletionTokens int
	Duration         time.Duration
}

// NewRunID returns a fresh identifier for a prediction run.
func NewRunID() string {
	return uuid.NewString()
}

// Run predicts labels for every record, preserving input order in the
// outcomes and the prediction table. Cancelling the context marks the
// remaining records as failed rather than aborting the whole result,
// so partial runs still produce inspectable artifacts.
func (r *Runner) Run(ctx context.Context, records []dataset.Record) (*Result, error) {
	if len(records) == 0 {
		return nil, errors.New("no records to predict")
	}

	start := time.Now()
	r.logger.Info("prediction run started",
		"records", len(records),
		"workers", r.workers,
		"model", r.model)

	outcomes := make([]Outcome, len(records))
	sem := make(chan struct{}, r.workers)
	var wg sync.WaitGroup
	for i, rec := range records {
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				outcomes[i] = Outcome{
					ID:        rec.ID,
					Text:      flatten(rec.Text),
					ErrorType: "context_cancelled",
					Error:     ctx.Err().Error(),
				}
				return
			}
			defer func() { <-sem }()
			outcomes[i] = r.predictOne(ctx, rec)
		}()
	}
	wg.Wait()

	result := &Result{
		Outcomes: outcomes,
		Table:    make(dataset.Table, 0, len(outcomes)),
		Duration: time.Since(start),
	}
	for _, o := range outcomes {
		result.Table = append(result.Table, o.Row())
		if o.Labels != nil {
			result.Parsed++
		} else {
			result.Failed++
		}
		result.PromptTokens += o.PromptTokens
		result.CompletionTokens += o.CompletionTokens
	}

	r.logger.Info("prediction run finished",
		"parsed", result.Parsed,
		"failed", result.Failed,
		"duration", result.Duration)
	return result, nil
}

func flatten(text string) string {
	return strings.ReplaceAll(text, "\n", " ")
}

// predictOne sends one chat request with retries and parses the reply.
func (r *Runner) predictOne(ctx context.Context, rec dataset.Record) Outcome {
	start := time.Now()
	outcome := Outcome{ID: rec.ID, Text: flatten(rec.Text)}

	messages, err := r.messages(rec.Text)
	if err != nil {
		outcome.ErrorType = "prompt_error"
		outcome.Error = err.Error()
		outcome.Duration = time.Since(start)
		return outcome
	}

	req := &providers.ChatRequest{
		Messages:    messages,
		Model:       r.model,
		Temperature: r.temperature,
		MaxTokens:   r.maxTokens,
		Timeout:     r.timeout,
		RequestID:   string(rec.ID),
	}

	attempts := r.client.MaxRetries()
	if attempts <= 0 {
		attempts = 1
	}

	var result *providers.ChatResult
	tries := 0
	err = retry.Do(
		func() error {
			tries++
			if err := r.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
			res, chatErr := r.client.Chat(ctx, req)
			if res != nil {
				result = res
			}
			if chatErr != nil {
				if rle, ok := providers.IsRateLimitError(chatErr); ok {
					r.limiter.Record429(rle.RetryAfter)
				}
				return chatErr
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(r.client.RetryDelayBase()),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(providers.IsRetryable),
		retry.LastErrorOnly(true),
	)

	outcome.Attempts = tries
	outcome.Duration = time.Since(start)
	if result != nil {
		outcome.Content = result.Content
		outcome.PromptTokens = result.PromptTokens
		outcome.CompletionTokens = result.CompletionTokens
	}

	if err != nil {
		outcome.ErrorType = "request_failed"
		if result != nil && result.ErrorType != "" {
			outcome.ErrorType = result.ErrorType
		}
		outcome.Error = err.Error()
		r.logger.Warn("prediction request failed",
			"id", rec.ID,
			"attempts", tries,
			"error", err)
		return outcome
	}

	labels, variant, err := response.Parse(result.Content)
	if err != nil {
		outcome.ErrorType = "parse_failed"
		outcome.Error = err.Error()
		r.logger.Warn("response parse failed", "id", rec.ID, "error", err)
		return outcome
	}

	outcome.Labels = &labels
	outcome.Variant = variant
	return outcome
}

// messages builds the chat transcript: system prompt, few-shot example
// pairs, then the tweet under prediction.
func (r *Runner) messages(text string) ([]providers.Message, error) {
	messages := make([]providers.Message, 0, 2*len(r.examples)+2)
	messages = append(messages, providers.Message{Role: "system", Content: r.prompts.System()})

	for _, ex := range r.examples {
		user, err := r.prompts.User(ex.Text)
		if err != nil {
			return nil, fmt.Errorf("example prompt: %w", err)
		}
		messages = append(messages,
			providers.Message{Role: "user", Content: user},
			providers.Message{Role: "assistant", Content: response.Render(ex.Labels)},
		)
	}

	user, err := r.prompts.User(text)
	if err != nil {
		return nil, err
	}
	messages = append(messages, providers.Message{Role: "user", Content: user})
	return messages, nil
}
