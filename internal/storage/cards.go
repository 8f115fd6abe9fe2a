package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/deckforge/deckforge/internal/cards"
)

// SaveCard inserts or updates a card in the local cache.
func (s *Service) SaveCard(ctx context.Context, card *cards.Card) error {
	colors, err := json.Marshal(card.Colors)
	if err != nil {
		return fmt.Errorf("failed to encode colors: %w", err)
	}
	identity, err := json.Marshal(card.ColorIdentity)
	if err != nil {
		return fmt.Errorf("failed to encode color identity: %w", err)
	}
	legalities, err := json.Marshal(card.Legalities)
	if err != nil {
		return fmt.Errorf("failed to encode legalities: %w", err)
	}

	query := `
		INSERT INTO cards (
			scryfall_id, oracle_id, name, name_lower, type_line, set_code,
			mana_cost, cmc, colors, color_identity, rarity, power, toughness,
			oracle_text, image_uri, legalities, layout, released_at, cached_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(scryfall_id) DO UPDATE SET
			oracle_id = excluded.oracle_id,
			name = excluded.name,
			name_lower = excluded.name_lower,
			type_line = excluded.type_line,
			set_code = excluded.set_code,
			mana_cost = excluded.mana_cost,
			cmc = excluded.cmc,
			colors = excluded.colors,
			color_identity = excluded.color_identity,
			rarity = excluded.rarity,
			power = excluded.power,
			toughness = excluded.toughness,
			oracle_text = excluded.oracle_text,
			image_uri = excluded.image_uri,
			legalities = excluded.legalities,
			layout = excluded.layout,
			released_at = excluded.released_at,
			cached_at = CURRENT_TIMESTAMP
	`

	_, err = s.db.Conn().ExecContext(ctx, query,
		card.ScryfallID, card.OracleID, card.Name, strings.ToLower(card.Name),
		card.TypeLine, card.SetCode, card.ManaCost, card.CMC,
		string(colors), string(identity), card.Rarity, card.Power, card.Toughness,
		card.OracleText, card.ImageURI, string(legalities), card.Layout,
		card.ReleasedAt.Format("2006-01-02"),
	)
	if err != nil {
		return fmt.Errorf("failed to save card %s: %w", card.Name, err)
	}
	return nil
}

// GetCardByName retrieves a card by case-insensitive name. Returns nil when
// the card is not cached.
func (s *Service) GetCardByName(ctx context.Context, name string) (*cards.Card, error) {
	row := s.db.Conn().QueryRowContext(ctx, selectCardSQL+` WHERE name_lower = ? LIMIT 1`,
		strings.ToLower(name))

	card, err := scanCard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card %q: %w", name, err)
	}
	return card, nil
}

// GetCardsByNames retrieves all cached cards among the given names, keyed by
// lowercased name. Uncached names are simply absent from the result.
func (s *Service) GetCardsByNames(ctx context.Context, names []string) (map[string]*cards.Card, error) {
	result := make(map[string]*cards.Card, len(names))
	for _, name := range names {
		card, err := s.GetCardByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if card != nil {
			result[strings.ToLower(name)] = card
		}
	}
	return result, nil
}

// AllCards loads the full card cache, for upgrade-candidate scanning.
func (s *Service) AllCards(ctx context.Context) ([]*cards.Card, error) {
	rows, err := s.db.Conn().QueryContext(ctx, selectCardSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var all []*cards.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		all = append(all, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}
	return all, nil
}

// CardCount returns the number of cached cards.
func (s *Service) CardCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}

const selectCardSQL = `
	SELECT scryfall_id, oracle_id, name, type_line, set_code, mana_cost, cmc,
	       colors, color_identity, rarity, power, toughness, oracle_text,
	       image_uri, legalities, layout, released_at
	FROM cards`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCard decodes one cards row, unpacking the JSON columns.
func scanCard(row rowScanner) (*cards.Card, error) {
	var card cards.Card
	var colors, identity, legalities, releasedAt sql.NullString

	err := row.Scan(
		&card.ScryfallID, &card.OracleID, &card.Name, &card.TypeLine,
		&card.SetCode, &card.ManaCost, &card.CMC, &colors, &identity,
		&card.Rarity, &card.Power, &card.Toughness, &card.OracleText,
		&card.ImageURI, &legalities, &card.Layout, &releasedAt,
	)
	if err != nil {
		return nil, err
	}

	if releasedAt.Valid && releasedAt.String != "" {
		if t, perr := time.Parse("2006-01-02", releasedAt.String); perr == nil {
			card.ReleasedAt = t
		}
	}

	if colors.Valid && colors.String != "" {
		if err := json.Unmarshal([]byte(colors.String), &card.Colors); err != nil {
			return nil, fmt.Errorf("failed to decode colors: %w", err)
		}
	}
	if identity.Valid && identity.String != "" {
		if err := json.Unmarshal([]byte(identity.String), &card.ColorIdentity); err != nil {
			return nil, fmt.Errorf("failed to decode color identity: %w", err)
		}
	}
	if legalities.Valid && legalities.String != "" {
		if err := json.Unmarshal([]byte(legalities.String), &card.Legalities); err != nil {
			return nil, fmt.Errorf("failed to decode legalities: %w", err)
		}
	}
	return &card, nil
}
