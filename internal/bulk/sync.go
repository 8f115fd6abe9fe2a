// Package bulk synchronizes the local card database from Scryfall's
// oracle_cards bulk export.
package bulk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/deckforge/deckforge/internal/cards"
	"github.com/deckforge/deckforge/internal/cards/scryfall"
)

// CardSaver persists resolved cards.
type CardSaver interface {
	SaveCard(ctx context.Context, card *cards.Card) error
}

// BulkClient is the subset of the Scryfall client bulk sync needs.
type BulkClient interface {
	GetBulkData(ctx context.Context) (*scryfall.BulkDataList, error)
	DownloadBulkFile(ctx context.Context, downloadURI string) (io.ReadCloser, error)
}

// ProgressFunc receives running ingest counts.
type ProgressFunc func(ingested int)

// Syncer downloads and ingests the oracle_cards bulk file.
type Syncer struct {
	client   BulkClient
	store    CardSaver
	progress ProgressFunc
}

// NewSyncer creates a Syncer. progress may be nil.
func NewSyncer(client BulkClient, store CardSaver, progress ProgressFunc) *Syncer {
	return &Syncer{client: client, store: store, progress: progress}
}

// Sync locates the oracle_cards bulk entry, streams the JSON array, and
// saves every card. Returns the number of cards ingested.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	catalog, err := s.client.GetBulkData(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching bulk catalog: %w", err)
	}

	entry := catalog.OracleCards()
	if entry == nil {
		return 0, fmt.Errorf("bulk catalog has no oracle_cards entry")
	}

	body, err := s.client.DownloadBulkFile(ctx, entry.DownloadURI)
	if err != nil {
		return 0, fmt.Errorf("downloading bulk file: %w", err)
	}
	defer func() { _ = body.Close() }()

	return s.ingest(ctx, body)
}

// ingest stream-decodes the bulk JSON array one card at a time so the full
// file never sits in memory.
func (s *Syncer) ingest(ctx context.Context, r io.Reader) (int, error) {
	dec := json.NewDecoder(r)

	if _, err := dec.Token(); err != nil {
		return 0, fmt.Errorf("reading bulk array start: %w", err)
	}

	count := 0
	for dec.More() {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		var sc scryfall.Card
		if err := dec.Decode(&sc); err != nil {
			return count, fmt.Errorf("decoding card %d: %w", count+1, err)
		}

		if err := s.store.SaveCard(ctx, cards.FromScryfall(&sc)); err != nil {
			return count, fmt.Errorf("saving %q: %w", sc.Name, err)
		}
		count++

		if s.progress != nil && count%1000 == 0 {
			s.progress(count)
		}
	}

	if _, err := dec.Token(); err != nil {
		return count, fmt.Errorf("reading bulk array end: %w", err)
	}

	if s.progress != nil {
		s.progress(count)
	}
	return count, nil
}
