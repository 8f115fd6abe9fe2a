package deck

import (
	"context"
	"fmt"
	"strings"

	"github.com/deckforge/deckforge/internal/cards"
)

// testCard builds a card record for tests.
func testCard(name, typeLine, oracle string, cmc float64, identity ...string) *cards.Card {
	c := &cards.Card{
		ScryfallID:    "test-" + name,
		Name:          name,
		TypeLine:      typeLine,
		CMC:           cmc,
		ColorIdentity: identity,
		Rarity:        "common",
		Legalities:    map[string]string{"commander": "legal"},
		Layout:        "normal",
	}
	if oracle != "" {
		c.OracleText = &oracle
	}
	return c
}

// testCommander builds a legendary creature with an oracle id.
func testCommander(name, typeLine, oracle string, cmc float64, identity ...string) *cards.Card {
	c := testCard(name, typeLine, oracle, cmc, identity...)
	oid := "oracle-" + name
	c.OracleID = &oid
	return c
}

// testPool builds an owned list plus resolution map from cards.
func testPool(cs ...*cards.Card) ([]OwnedCard, map[string]*cards.Card) {
	owned := make([]OwnedCard, 0, len(cs))
	cardMap := make(map[string]*cards.Card, len(cs))
	for _, c := range cs {
		owned = append(owned, OwnedCard{Name: c.Name, Quantity: 1})
		cardMap[lowerName(c.Name)] = c
	}
	return owned, cardMap
}

// buildablePool returns a pool large enough to fill 99 slots inside the
// given color identity: role staples, filler creatures, and nonbasic lands.
func buildablePool(identity []string) []*cards.Card {
	color := "G"
	if len(identity) > 0 {
		color = identity[0]
	}

	var cs []*cards.Card
	for i := 0; i < 15; i++ {
		cs = append(cs, testCard(fmt.Sprintf("Test Rock %d", i), "Artifact",
			"{T}: Add one mana of any color.", 2))
	}
	for i := 0; i < 13; i++ {
		cs = append(cs, testCard(fmt.Sprintf("Test Draw %d", i), "Enchantment",
			"At the beginning of your upkeep, draw a card.", 3, color))
	}
	for i := 0; i < 12; i++ {
		cs = append(cs, testCard(fmt.Sprintf("Test Removal %d", i), "Instant",
			"Destroy target creature.", 2, color))
	}
	for i := 0; i < 5; i++ {
		cs = append(cs, testCard(fmt.Sprintf("Test Sweeper %d", i), "Sorcery",
			"Destroy all creatures.", 5, color))
	}
	for i := 0; i < 5; i++ {
		cs = append(cs, testCard(fmt.Sprintf("Test Finisher %d", i), "Creature — Avatar",
			"Double strike, trample. This creature deals damage equal to its power to each opponent.", 7, color))
	}
	for i := 0; i < 55; i++ {
		cs = append(cs, testCard(fmt.Sprintf("Test Creature %d", i), "Creature — Human Soldier",
			"", float64(1+i%5), color))
	}
	for i := 0; i < 40; i++ {
		cs = append(cs, testCard(fmt.Sprintf("Test Land %d", i), "Land",
			"{T}: Add one mana of any color.", 0))
	}
	return cs
}

func lowerName(s string) string {
	return strings.ToLower(s)
}

// fakeResolver serves a fixed card map, standing in for the cache+API stack.
type fakeResolver struct {
	cards     map[string]*cards.Card
	commander *cards.Card
}

func (f *fakeResolver) ResolveCards(_ context.Context, names []string) (map[string]*cards.Card, error) {
	result := make(map[string]*cards.Card, len(names))
	for _, name := range names {
		if c, ok := f.cards[lowerName(name)]; ok {
			result[lowerName(name)] = c
		}
	}
	return result, nil
}

func (f *fakeResolver) ResolveCommander(_ context.Context, name string) (*cards.Card, error) {
	if f.commander != nil && lowerName(f.commander.Name) == lowerName(name) {
		return f.commander, nil
	}
	return nil, nil
}
