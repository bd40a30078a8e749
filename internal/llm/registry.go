package llm

import (
	"fmt"
	"log"

	"yatav-backend/internal/config"
)

// Canonical provider names. Each remote provider is also registered under a
// friendly alias.
const (
	ProviderOpenAI = "openai"
	ProviderYandex = "yandex"
	ProviderDemo   = "demo"

	aliasOpenAI = "gpt-4"
	aliasYandex = "yagpt"
)

// Registry is the process-wide table of configured providers plus a default.
// It is built once at startup and read-only afterwards.
type Registry struct {
	providers   map[string]Provider
	defaultName string
}

// NewRegistry constructs providers from available credentials. The demo
// provider is always registered so that the service stays functional with
// no credentials at all; a remote provider that fails to construct is
// logged and skipped.
func NewRegistry(cfg *config.Config) *Registry {
	providers := make(map[string]Provider)

	if cfg.OpenAIAPIKey != "" {
		oa := NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		providers[ProviderOpenAI] = oa
		providers[aliasOpenAI] = oa
		log.Printf("OpenAI provider initialized with model: %s", cfg.OpenAIModel)
	}

	if cfg.YandexOAuthToken != "" && cfg.YandexFolderID != "" {
		ya, err := NewYandex(cfg.YandexOAuthToken, cfg.YandexFolderID)
		if err != nil {
			log.Printf("failed to init yandex provider, skipping: %v", err)
		} else {
			providers[ProviderYandex] = ya
			providers[aliasYandex] = ya
			log.Printf("YandexGPT provider initialized")
		}
	}

	providers[ProviderDemo] = NewDemo()

	defaultName := ProviderDemo
	switch {
	case providers[ProviderOpenAI] != nil:
		defaultName = ProviderOpenAI
	case providers[ProviderYandex] != nil:
		defaultName = ProviderYandex
	default:
		log.Printf("No LLM credentials found - using demo provider")
	}

	log.Printf("Provider registry initialized with %d entries (default: %s)", len(providers), defaultName)
	return &Registry{providers: providers, defaultName: defaultName}
}

// NewRegistryWith builds a registry from explicit providers. Used by tests
// and custom wiring.
func NewRegistryWith(providers map[string]Provider, defaultName string) *Registry {
	cp := make(map[string]Provider, len(providers))
	for name, p := range providers {
		cp[name] = p
	}
	return &Registry{providers: cp, defaultName: defaultName}
}

// Get resolves a provider by name. An empty name resolves to the default.
func (r *Registry) Get(name string) (Provider, error) {
	if name == "" {
		name = r.defaultName
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotAvailable, name)
	}
	return p, nil
}

func (r *Registry) DefaultName() string { return r.defaultName }

func (r *Registry) Has(name string) bool {
	_, ok := r.providers[name]
	return ok
}

func (r *Registry) Len() int { return len(r.providers) }
