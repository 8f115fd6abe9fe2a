package storage

import (
	"context"
	"fmt"

	"github.com/deckforge/deckforge/internal/deck"
)

// ReplaceCollection swaps the stored collection for the given owned cards
// in one transaction.
func (s *Service) ReplaceCollection(ctx context.Context, owned []deck.OwnedCard) error {
	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM collection`); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO collection (name, quantity, source, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			quantity = excluded.quantity,
			source = excluded.source,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, oc := range owned {
		if _, err := stmt.ExecContext(ctx, oc.Name, oc.Quantity, oc.Source); err != nil {
			return fmt.Errorf("failed to save %q: %w", oc.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit collection: %w", err)
	}
	return nil
}

// GetCollection loads the stored collection ordered by name.
func (s *Service) GetCollection(ctx context.Context) ([]deck.OwnedCard, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT name, quantity, source FROM collection ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var owned []deck.OwnedCard
	for rows.Next() {
		var oc deck.OwnedCard
		if err := rows.Scan(&oc.Name, &oc.Quantity, &oc.Source); err != nil {
			return nil, fmt.Errorf("failed to scan collection row: %w", err)
		}
		owned = append(owned, oc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collection: %w", err)
	}
	return owned, nil
}
