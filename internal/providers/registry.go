package providers

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Registry holds references to LLM clients. It supports config-driven
// instantiation, hot-reload, and provides thread-safe access.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]LLMClient
	logger  *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]LLMClient),
		logger:  slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register registers an LLM client by name.
func (r *Registry) Register(name string, client LLMClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
	if r.logger != nil {
		r.logger.Info("registered LLM client", "name", name)
	}
}

// Unregister removes an LLM client by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, name)
	if r.logger != nil {
		r.logger.Info("unregistered LLM client", "name", name)
	}
}

// Get returns an LLM client by name.
func (r *Registry) Get(name string) (LLMClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("LLM client not found: %s", name)
	}
	return client, nil
}

// List returns all registered client names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	return names
}

// Has checks if an LLM client is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[name]
	return ok
}

// RegistryConfig defines the providers to instantiate from config.
type RegistryConfig struct {
	// Providers maps provider names to their config, API keys resolved.
	Providers map[string]ProviderConfig
}

// ProviderConfig describes one chat provider with its resolved API key.
type ProviderConfig struct {
	Type       string // "openai", "mock"
	Model      string
	APIKey     string
	BaseURL    string
	RPM        int
	MaxRetries int
	Enabled    bool
}

// NewRegistryFromConfig creates a registry with providers based on
// configuration. Only enabled providers with credentials are registered.
func NewRegistryFromConfig(cfg RegistryConfig) *Registry {
	r := NewRegistry()
	r.applyConfig(cfg)
	return r
}

// Reload updates the registry based on new configuration. Providers no
// longer configured are unregistered; providers with changed settings
// are re-registered.
func (r *Registry) Reload(cfg RegistryConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := make(map[string]bool)
	for name, provCfg := range cfg.Providers {
		if !usable(provCfg) {
			continue
		}
		want[name] = true

		existing, hasExisting := r.clients[name]
		if hasExisting && !needsUpdate(existing, provCfg) {
			continue
		}
		client := createClient(provCfg)
		if client == nil {
			if r.logger != nil {
				r.logger.Warn("skipping provider with unknown type", "name", name, "type", provCfg.Type)
			}
			delete(want, name)
			continue
		}
		r.clients[name] = client
		if r.logger != nil {
			if hasExisting {
				r.logger.Info("updated LLM client", "name", name, "type", provCfg.Type)
			} else {
				r.logger.Info("registered LLM client", "name", name, "type", provCfg.Type)
			}
		}
	}

	for name := range r.clients {
		if !want[name] {
			delete(r.clients, name)
			if r.logger != nil {
				r.logger.Info("unregistered LLM client", "name", name)
			}
		}
	}
}

// applyConfig applies configuration without locking (used during init).
func (r *Registry) applyConfig(cfg RegistryConfig) {
	for name, provCfg := range cfg.Providers {
		if !usable(provCfg) {
			continue
		}
		client := createClient(provCfg)
		if client == nil {
			if r.logger != nil {
				r.logger.Warn("skipping provider with unknown type", "name", name, "type", provCfg.Type)
			}
			continue
		}
		r.clients[name] = client
	}
}

// usable reports whether a provider config can produce a working client.
// The mock type needs no credentials.
func usable(cfg ProviderConfig) bool {
	if !cfg.Enabled {
		return false
	}
	return cfg.Type == "mock" || cfg.APIKey != ""
}

// createClient creates an LLM client based on provider type.
func createClient(cfg ProviderConfig) LLMClient {
	switch cfg.Type {
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			RPM:        cfg.RPM,
			MaxRetries: cfg.MaxRetries,
		})
	case "mock":
		mock := NewMockClient()
		if cfg.RPM > 0 {
			mock.RPM = cfg.RPM
		}
		if cfg.MaxRetries > 0 {
			mock.Retries = cfg.MaxRetries
		}
		mock.RetryDelay = time.Millisecond
		return mock
	default:
		return nil
	}
}

// needsUpdate checks if an LLM client needs to be recreated. The
// client stores defaulted values, so the config is run through the
// same defaulting before comparing.
func needsUpdate(client LLMClient, cfg ProviderConfig) bool {
	switch c := client.(type) {
	case *OpenAIClient:
		if cfg.Type != "openai" {
			return true
		}
		want := OpenAIConfig{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			RPM:        cfg.RPM,
			MaxRetries: cfg.MaxRetries,
		}.withDefaults()
		return c.apiKey != want.APIKey ||
			c.model != want.Model ||
			c.baseURL != want.BaseURL ||
			c.rpm != want.RPM ||
			c.maxRetries != want.MaxRetries
	case *MockClient:
		return cfg.Type != "mock"
	default:
		return true
	}
}
