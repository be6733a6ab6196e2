package config

// Config holds annoscore configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Providers map[string]ProviderCfg `mapstructure:"providers" yaml:"providers"`
	Models    []ModelCfg             `mapstructure:"models" yaml:"models"`
	Defaults  DefaultsCfg            `mapstructure:"defaults" yaml:"defaults"`
	Data      DataCfg                `mapstructure:"data" yaml:"data"`
}

// ProviderCfg configures one chat provider.
type ProviderCfg struct {
	Type       string `mapstructure:"type" yaml:"type"`                 // "openai", "mock"
	Model      string `mapstructure:"model" yaml:"model"`               // Default model name
	APIKey     string `mapstructure:"api_key" yaml:"api_key"`           // API key (supports ${ENV_VAR} syntax)
	BaseURL    string `mapstructure:"base_url" yaml:"base_url"`         // Override API endpoint
	RPM        int    `mapstructure:"rpm" yaml:"rpm"`                   // Requests per minute
	MaxRetries int    `mapstructure:"max_retries" yaml:"max_retries"`   // Retry attempts per request
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
}

// ModelCfg names one model configuration entered into predictions and
// comparisons.
type ModelCfg struct {
	Name        string  `mapstructure:"name" yaml:"name"`               // Candidate name used in reports
	Provider    string  `mapstructure:"provider" yaml:"provider"`       // Provider entry to route through
	Model       string  `mapstructure:"model" yaml:"model"`             // Provider-side model identifier
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// DefaultsCfg specifies fallback selections.
type DefaultsCfg struct {
	Provider    string  `mapstructure:"provider" yaml:"provider"`       // Default provider entry
	MaxWorkers  int     `mapstructure:"max_workers" yaml:"max_workers"` // Max concurrent prediction workers
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// DataCfg points at the annotated input files.
type DataCfg struct {
	Train string `mapstructure:"train" yaml:"train"` // Annotated training set (JSON Lines)
	Dev   string `mapstructure:"dev" yaml:"dev"`     // Annotated dev set (JSON Lines)
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Providers: map[string]ProviderCfg{
			"openai": {
				Type:       "openai",
				Model:      "gpt-4o-mini",
				APIKey:     "${OPENAI_API_KEY}",
				RPM:        150,
				MaxRetries: 3,
				Enabled:    true,
			},
			"mock": {
				Type:    "mock",
				Enabled: false,
			},
		},
		Models: []ModelCfg{
			{Name: "gpt-4o-mini", Provider: "openai", Model: "gpt-4o-mini", MaxTokens: 100},
			{Name: "gpt-4o", Provider: "openai", Model: "gpt-4o", MaxTokens: 100},
		},
		Defaults: DefaultsCfg{
			Provider:   "openai",
			MaxWorkers: 4,
			MaxTokens:  100,
		},
		Data: DataCfg{},
	}
}

// GetProvider returns a provider config by name.
func (c *Config) GetProvider(name string) (ProviderCfg, bool) {
	cfg, ok := c.Providers[name]
	return cfg, ok
}

// GetModel returns a model config by candidate name.
func (c *Config) GetModel(name string) (ModelCfg, bool) {
	for _, m := range c.Models {
		if m.Name == name {
			return m, true
		}
	}
	return ModelCfg{}, false
}

// EnabledProviders returns all enabled providers.
func (c *Config) EnabledProviders() map[string]ProviderCfg {
	result := make(map[string]ProviderCfg)
	for name, cfg := range c.Providers {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}

// ModelDefaults fills unset sampling fields of a model config from the
// global defaults.
func (c *Config) ModelDefaults(m ModelCfg) ModelCfg {
	if m.Provider == "" {
		m.Provider = c.Defaults.Provider
	}
	if m.Temperature == 0 && c.Defaults.Temperature != 0 {
		m.Temperature = c.Defaults.Temperature
	}
	if m.MaxTokens == 0 {
		m.MaxTokens = c.Defaults.MaxTokens
	}
	return m
}
