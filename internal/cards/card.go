// Package cards provides the card data model and name-based card resolution
// backed by the local card cache and the Scryfall API.
package cards

import (
	"strings"
	"time"

	"github.com/deckforge/deckforge/internal/cards/scryfall"
)

// Card represents comprehensive metadata about a Magic card.
type Card struct {
	// Scryfall identifiers
	ScryfallID string  `json:"id"`
	OracleID   *string `json:"oracle_id"`

	// Basic card information
	Name     string `json:"name"`
	TypeLine string `json:"type_line"`
	SetCode  string `json:"set"`

	// Mana information
	ManaCost *string `json:"mana_cost"`
	CMC      float64 `json:"cmc"` // Mana value

	// Colors and identity
	Colors        []string `json:"colors"`
	ColorIdentity []string `json:"color_identity"`

	// Rarity
	Rarity string `json:"rarity"` // "common", "uncommon", "rare", "mythic"

	// Power/Toughness (for creatures)
	Power     *string `json:"power,omitempty"`
	Toughness *string `json:"toughness,omitempty"`

	// Text and imagery
	OracleText *string `json:"oracle_text,omitempty"`
	ImageURI   *string `json:"image_uri,omitempty"`

	// Format legality, e.g. Legalities["commander"] == "legal" | "banned" | "not_legal"
	Legalities map[string]string `json:"legalities,omitempty"`

	// Layout information
	Layout string `json:"layout"` // "normal", "split", "transform", etc.

	// Metadata
	ReleasedAt time.Time `json:"released_at"`
}

// Oracle returns the card's rules text, or "" when absent.
func (c *Card) Oracle() string {
	if c.OracleText == nil {
		return ""
	}
	return *c.OracleText
}

// IsType reports whether the card's type line contains the given type.
func (c *Card) IsType(cardType string) bool {
	return strings.Contains(strings.ToLower(c.TypeLine), strings.ToLower(cardType))
}

// IsLegendaryCreature reports whether the card can lead a Commander deck.
// Planeswalkers with "can be your commander" text also qualify.
func (c *Card) IsLegendaryCreature() bool {
	if c.IsType("Legendary") && c.IsType("Creature") {
		return true
	}
	return strings.Contains(strings.ToLower(c.Oracle()), "can be your commander")
}

// CommanderLegality returns the card's Commander-format legality string,
// or "" when no legality data is available.
func (c *Card) CommanderLegality() string {
	if c.Legalities == nil {
		return ""
	}
	return c.Legalities["commander"]
}

// Subtypes returns the subtype words after the dash in the type line,
// e.g. "Legendary Creature — Elf Druid" -> ["Elf", "Druid"].
func (c *Card) Subtypes() []string {
	parts := strings.Split(c.TypeLine, "—")
	if len(parts) < 2 {
		parts = strings.Split(c.TypeLine, "-")
	}
	if len(parts) < 2 {
		return nil
	}
	return strings.Fields(strings.TrimSpace(parts[1]))
}

// FromScryfall converts a Scryfall wire card to the internal Card
// representation. For multi-faced layouts the front face supplies type
// line, oracle text, and imagery when the top-level fields are empty.
func FromScryfall(sc *scryfall.Card) *Card {
	releasedAt, _ := time.Parse("2006-01-02", sc.ReleasedAt)

	card := &Card{
		ScryfallID:    sc.ID,
		Name:          sc.Name,
		TypeLine:      sc.TypeLine,
		SetCode:       sc.Set,
		CMC:           sc.CMC,
		Colors:        sc.Colors,
		ColorIdentity: sc.ColorIdentity,
		Rarity:        sc.Rarity,
		Legalities:    sc.Legalities,
		Layout:        sc.Layout,
		ReleasedAt:    releasedAt,
	}

	if sc.OracleID != "" {
		card.OracleID = &sc.OracleID
	}

	if sc.ManaCost != "" {
		card.ManaCost = &sc.ManaCost
	}

	if sc.Power != "" {
		card.Power = &sc.Power
	}
	if sc.Toughness != "" {
		card.Toughness = &sc.Toughness
	}

	if sc.OracleText != "" {
		card.OracleText = &sc.OracleText
	}

	if sc.ImageURIs != nil && sc.ImageURIs.Normal != "" {
		card.ImageURI = &sc.ImageURIs.Normal
	}

	// Fall back to the front face for transform/modal cards.
	if len(sc.CardFaces) > 0 {
		front := sc.CardFaces[0]
		if card.TypeLine == "" {
			card.TypeLine = front.TypeLine
		}
		if card.OracleText == nil && front.OracleText != "" {
			card.OracleText = &front.OracleText
		}
		if card.ManaCost == nil && front.ManaCost != "" {
			card.ManaCost = &front.ManaCost
		}
		if card.ImageURI == nil && front.ImageURIs != nil && front.ImageURIs.Normal != "" {
			card.ImageURI = &front.ImageURIs.Normal
		}
	}

	return card
}
