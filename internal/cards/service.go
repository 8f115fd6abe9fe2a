package cards

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deckforge/deckforge/internal/cards/scryfall"
)

// Cache is the local card store consulted before any network lookup.
type Cache interface {
	GetCardsByNames(ctx context.Context, names []string) (map[string]*Card, error)
	SaveCard(ctx context.Context, card *Card) error
}

// Fetcher retrieves cards from the Scryfall API by exact name.
type Fetcher interface {
	GetCardNamedExact(ctx context.Context, name string) (*scryfall.Card, error)
}

// Service resolves card names to Card records, cache-first with API
// fallback. Names the API cannot resolve are simply absent from results;
// callers decide whether absence is an error.
type Service struct {
	cache  Cache
	client Fetcher
}

// NewService creates a resolution service. client may be nil for an
// offline, cache-only resolver.
func NewService(cache Cache, client Fetcher) *Service {
	return &Service{cache: cache, client: client}
}

// ResolveCards resolves names to cards, keyed by lowercased name. Cached
// cards are served locally; misses go to the API and are cached on the way
// back.
func (s *Service) ResolveCards(ctx context.Context, names []string) (map[string]*Card, error) {
	result, err := s.cache.GetCardsByNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("reading card cache: %w", err)
	}

	if s.client == nil {
		return result, nil
	}

	for _, name := range names {
		key := strings.ToLower(name)
		if result[key] != nil {
			continue
		}

		sc, err := s.client.GetCardNamedExact(ctx, name)
		if err != nil {
			var notFound *scryfall.NotFoundError
			if errors.As(err, &notFound) {
				continue
			}
			return nil, fmt.Errorf("fetching %q: %w", name, err)
		}

		card := FromScryfall(sc)
		if err := s.cache.SaveCard(ctx, card); err != nil {
			return nil, fmt.Errorf("caching %q: %w", name, err)
		}
		result[key] = card
	}
	return result, nil
}

// ResolveCommander resolves a single commander name. Returns (nil, nil)
// when the name does not exist, leaving the not-found decision to the
// caller.
func (s *Service) ResolveCommander(ctx context.Context, name string) (*Card, error) {
	resolved, err := s.ResolveCards(ctx, []string{name})
	if err != nil {
		return nil, err
	}
	return resolved[strings.ToLower(name)], nil
}
