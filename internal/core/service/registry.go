package service

import (
	"strings"

	"imgbus/internal/core/domain"
	"imgbus/internal/core/port"

	"github.com/rs/zerolog/log"
)

// ProviderRegistry maps locator schemes to storage providers. It is
// built once at startup and read-only afterwards.
type ProviderRegistry struct {
	providers map[string]port.Storage
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{providers: make(map[string]port.Storage)}
}

func (r *ProviderRegistry) Register(scheme string, provider port.Storage) {
	log.Info().Str("scheme", scheme).Msg("adding storage provider to registry")
	r.providers[scheme] = provider
}

// Resolve splits locator at the first "://" and looks up the provider
// for its scheme.
func (r *ProviderRegistry) Resolve(locator string) (port.Storage, string, error) {
	scheme, path, found := strings.Cut(locator, "://")
	if !found {
		return nil, "", domain.ErrInvalidPath(locator)
	}

	provider, ok := r.providers[scheme]
	if !ok {
		return nil, "", domain.ErrInvalidProtocol(scheme)
	}

	return provider, path, nil
}

// Schemes returns all registered locator schemes.
func (r *ProviderRegistry) Schemes() []string {
	schemes := make([]string, 0, len(r.providers))
	for scheme := range r.providers {
		schemes = append(schemes, scheme)
	}

	return schemes
}

// Close shuts down every registered provider.
func (r *ProviderRegistry) Close() {
	for scheme, provider := range r.providers {
		log.Debug().Str("scheme", scheme).Msg("closing storage provider")
		provider.Close()
	}
}
