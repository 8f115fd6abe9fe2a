package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/deckforge/deckforge/internal/deck"
)

// PlanStore is a deck.PlanCache backed by the commander_plans table. Plans
// are stored as JSON blobs keyed by the commander's oracle id. Read and
// write failures surface as cache misses; the engine recomputes the plan.
type PlanStore struct {
	db *DB
}

// NewPlanStore creates a PlanStore.
func NewPlanStore(db *DB) *PlanStore {
	return &PlanStore{db: db}
}

// Get loads a cached commander plan.
func (p *PlanStore) Get(commanderID string) (*deck.CommanderPlan, bool) {
	var raw string
	err := p.db.Conn().QueryRowContext(context.Background(),
		`SELECT plan FROM commander_plans WHERE oracle_id = ?`, commanderID).Scan(&raw)
	if err == sql.ErrNoRows || err != nil {
		return nil, false
	}

	var plan deck.CommanderPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, false
	}
	return &plan, true
}

// Put stores a commander plan.
func (p *PlanStore) Put(commanderID string, plan *deck.CommanderPlan) {
	raw, err := json.Marshal(plan)
	if err != nil {
		return
	}
	_, _ = p.db.Conn().ExecContext(context.Background(), `
		INSERT INTO commander_plans (oracle_id, plan, created_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(oracle_id) DO UPDATE SET
			plan = excluded.plan,
			created_at = CURRENT_TIMESTAMP
	`, commanderID, string(raw))
}
