package cards

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/deckforge/deckforge/internal/cards/scryfall"
)

// memCache is an in-memory Cache.
type memCache struct {
	cards map[string]*Card
	saves int
}

func newMemCache() *memCache {
	return &memCache{cards: make(map[string]*Card)}
}

func (m *memCache) GetCardsByNames(_ context.Context, names []string) (map[string]*Card, error) {
	result := make(map[string]*Card)
	for _, name := range names {
		key := strings.ToLower(name)
		if c, ok := m.cards[key]; ok {
			result[key] = c
		}
	}
	return result, nil
}

func (m *memCache) SaveCard(_ context.Context, card *Card) error {
	m.saves++
	m.cards[strings.ToLower(card.Name)] = card
	return nil
}

// fakeFetcher serves wire cards by exact name.
type fakeFetcher struct {
	cards map[string]*scryfall.Card
	calls int
}

func (f *fakeFetcher) GetCardNamedExact(_ context.Context, name string) (*scryfall.Card, error) {
	f.calls++
	if sc, ok := f.cards[strings.ToLower(name)]; ok {
		return sc, nil
	}
	return nil, &scryfall.NotFoundError{URL: "/cards/named?exact=" + name}
}

func scryfallFixture(name string) *scryfall.Card {
	return &scryfall.Card{
		ID:         "sf-" + name,
		OracleID:   "oracle-" + name,
		Name:       name,
		ReleasedAt: "2020-01-01",
		Layout:     "normal",
		TypeLine:   "Instant",
		CMC:        1,
		Rarity:     "common",
	}
}

func TestResolveCardsCacheFirst(t *testing.T) {
	cache := newMemCache()
	cache.cards["sol ring"] = &Card{Name: "Sol Ring"}
	fetcher := &fakeFetcher{cards: map[string]*scryfall.Card{}}

	svc := NewService(cache, fetcher)
	result, err := svc.ResolveCards(context.Background(), []string{"Sol Ring"})
	if err != nil {
		t.Fatalf("ResolveCards() error = %v", err)
	}
	if result["sol ring"] == nil {
		t.Fatal("cached card missing from result")
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher calls = %d, want 0 for a cache hit", fetcher.calls)
	}
}

func TestResolveCardsFetchesAndCachesMisses(t *testing.T) {
	cache := newMemCache()
	fetcher := &fakeFetcher{cards: map[string]*scryfall.Card{
		"lightning bolt": scryfallFixture("Lightning Bolt"),
	}}

	svc := NewService(cache, fetcher)
	result, err := svc.ResolveCards(context.Background(), []string{"Lightning Bolt"})
	if err != nil {
		t.Fatalf("ResolveCards() error = %v", err)
	}
	if result["lightning bolt"] == nil {
		t.Fatal("fetched card missing from result")
	}
	if cache.saves != 1 {
		t.Errorf("cache saves = %d, want the fetched card written back", cache.saves)
	}

	// A second resolve is now a pure cache hit.
	if _, err := svc.ResolveCards(context.Background(), []string{"Lightning Bolt"}); err != nil {
		t.Fatalf("second ResolveCards() error = %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1 total", fetcher.calls)
	}
}

func TestResolveCardsNotFoundOmitted(t *testing.T) {
	svc := NewService(newMemCache(), &fakeFetcher{cards: map[string]*scryfall.Card{}})

	result, err := svc.ResolveCards(context.Background(), []string{"No Such Card"})
	if err != nil {
		t.Fatalf("ResolveCards() error = %v, not-found must not be terminal", err)
	}
	if result["no such card"] != nil {
		t.Error("unresolvable name present in result")
	}
}

func TestResolveCardsOfflineCacheOnly(t *testing.T) {
	cache := newMemCache()
	cache.cards["sol ring"] = &Card{Name: "Sol Ring"}

	svc := NewService(cache, nil)
	result, err := svc.ResolveCards(context.Background(), []string{"Sol Ring", "Lightning Bolt"})
	if err != nil {
		t.Fatalf("ResolveCards() error = %v", err)
	}
	if result["sol ring"] == nil {
		t.Error("cached card missing offline")
	}
	if result["lightning bolt"] != nil {
		t.Error("uncached card resolved without a client")
	}
}

// failFetcher always returns a non-404 error.
type failFetcher struct{}

func (failFetcher) GetCardNamedExact(context.Context, string) (*scryfall.Card, error) {
	return nil, errors.New("rate limited")
}

func TestResolveCardsAPIErrorIsTerminal(t *testing.T) {
	svc := NewService(newMemCache(), failFetcher{})
	if _, err := svc.ResolveCards(context.Background(), []string{"Sol Ring"}); err == nil {
		t.Fatal("ResolveCards() error = nil, want API failure surfaced")
	}
}

func TestResolveCommander(t *testing.T) {
	cache := newMemCache()
	cache.cards["kess, dissident mage"] = &Card{Name: "Kess, Dissident Mage"}
	svc := NewService(cache, nil)

	got, err := svc.ResolveCommander(context.Background(), "Kess, Dissident Mage")
	if err != nil || got == nil {
		t.Fatalf("ResolveCommander() = %v, %v", got, err)
	}

	missing, err := svc.ResolveCommander(context.Background(), "Nonexistent Legend")
	if err != nil {
		t.Fatalf("ResolveCommander() error = %v", err)
	}
	if missing != nil {
		t.Errorf("ResolveCommander() = %v, want nil for an unknown name", missing)
	}
}
