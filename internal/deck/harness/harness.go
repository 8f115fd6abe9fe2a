// Package harness builds decks for a fixed set of reference commanders over
// a synthetic candidate pool, producing the metric set used for regression
// checks on engine tuning changes.
package harness

import (
	"fmt"
	"strings"

	"github.com/deckforge/deckforge/internal/cards"
	"github.com/deckforge/deckforge/internal/deck"
)

// Result is one reference build. A commander that fails to build is
// recorded here as a failure entry; the harness itself never errors.
type Result struct {
	Commander string           `json:"commander"`
	Metrics   deck.DeckMetrics `json:"metrics"`
	ShortBy   int              `json:"shortBy"`
	Failure   string           `json:"failure,omitempty"`
}

// referenceCommanders span the strategy space the engine must handle:
// tribal cheat, spellslinger, tokens, and a themeless vanilla.
var referenceCommanders = []*cards.Card{
	syntheticCommander("Harbinger of the Host",
		"Legendary Creature — Human Cleric",
		[]string{"W", "B", "R"},
		"Flying. Whenever this creature attacks, you may put an Angel, Demon, or Dragon creature card from your hand onto the battlefield tapped and attacking.",
		4),
	syntheticCommander("Riverbend Archmage",
		"Legendary Creature — Human Wizard",
		[]string{"U", "B", "R"},
		"During each of your turns, you may cast an instant or sorcery card from your graveyard. Whenever you cast an instant or sorcery spell, draw a card.",
		4),
	syntheticCommander("Warden of the Swarm",
		"Legendary Creature — Elf Druid",
		[]string{"G", "W"},
		"At the beginning of combat on your turn, create two 1/1 green Insect creature tokens. Creature tokens you control get +1/+1.",
		5),
	syntheticCommander("Stonehide Colossus",
		"Legendary Creature — Giant",
		[]string{"R", "G"},
		"",
		6),
}

// Run builds each reference commander against a synthetic pool sized so the
// color-filtered subset still reaches a full deck, and computes metrics.
func Run(seed int64) []Result {
	results := make([]Result, 0, len(referenceCommanders))
	builder := deck.NewBuilder(nil, deck.NopPlanCache{})

	for _, commander := range referenceCommanders {
		pool, cardMap := SyntheticPool(commander.ColorIdentity)

		opts := deck.Options{Seed: seed}
		list, err := builder.BuildWithCards(commander, pool, opts, cardMap)
		if err != nil {
			results = append(results, Result{
				Commander: commander.Name,
				Failure:   err.Error(),
			})
			continue
		}

		plan := deck.BuildPlan(commander, deck.NopPlanCache{})
		targets := deck.ResolveTargets(plan, opts)
		results = append(results, Result{
			Commander: commander.Name,
			Metrics:   deck.ComputeDeckMetrics(list, cardMap, plan, targets),
			ShortBy:   list.Stats.ShortBy,
		})
	}
	return results
}

// SyntheticPool generates an owned pool plus its resolution map: role
// staples, curve filler creatures, and nonbasic lands, all inside the given
// color identity.
func SyntheticPool(identity []string) ([]deck.OwnedCard, map[string]*cards.Card) {
	color := "G"
	if len(identity) > 0 {
		color = identity[0]
	}

	var pool []deck.OwnedCard
	cardMap := make(map[string]*cards.Card)
	add := func(c *cards.Card) {
		pool = append(pool, deck.OwnedCard{Name: c.Name, Quantity: 1, Source: "synthetic"})
		cardMap[strings.ToLower(c.Name)] = c
	}

	// Role staples, enough of each family to satisfy default targets.
	for i := 0; i < 16; i++ {
		add(synthetic(fmt.Sprintf("Signet of Trial %d", i), "Artifact", nil,
			"{T}: Add one mana of any color.", 2))
	}
	for i := 0; i < 14; i++ {
		add(synthetic(fmt.Sprintf("Scroll of Insight %d", i), "Enchantment", []string{color},
			"At the beginning of your upkeep, draw a card.", 3))
	}
	for i := 0; i < 14; i++ {
		add(synthetic(fmt.Sprintf("Sudden Demise %d", i), "Instant", []string{color},
			"Destroy target creature.", 2))
	}
	for i := 0; i < 6; i++ {
		add(synthetic(fmt.Sprintf("Cataclysmic Surge %d", i), "Sorcery", []string{color},
			"Destroy all creatures.", 5))
	}
	for i := 0; i < 6; i++ {
		add(synthetic(fmt.Sprintf("Colossal Ender %d", i), "Creature — Avatar", []string{color},
			"Double strike, trample. This creature deals damage equal to its power to each opponent.", 7))
	}

	// Curve filler creatures across mana values 1-6.
	for i := 0; i < 60; i++ {
		cmc := float64(1 + i%6)
		add(synthetic(fmt.Sprintf("Wandering Sellsword %d", i), "Creature — Human Soldier", []string{color},
			"", cmc))
	}

	// Theme and tribe material for the reference commanders.
	for _, tribe := range []string{"Angel", "Demon", "Dragon"} {
		for i := 0; i < 4; i++ {
			add(synthetic(fmt.Sprintf("Exalted %s %d", tribe, i),
				"Creature — "+tribe, identity,
				"Flying.", 6))
		}
	}
	for i := 0; i < 12; i++ {
		add(synthetic(fmt.Sprintf("Arcane Outburst %d", i), "Instant", []string{color},
			"This spell deals 3 damage to any target. Draw a card.", 2))
	}
	for i := 0; i < 10; i++ {
		add(synthetic(fmt.Sprintf("Swarm Call %d", i), "Sorcery", []string{color},
			"Create three 1/1 green Insect creature tokens.", 3))
	}

	// Nonbasic lands, enough to hit the land target without basics.
	for i := 0; i < 42; i++ {
		add(synthetic(fmt.Sprintf("Forgotten Crossroads %d", i), "Land", nil,
			"{T}: Add one mana of any color.", 0))
	}

	return pool, cardMap
}

// synthetic fabricates a resolved card record.
func synthetic(name, typeLine string, identity []string, oracle string, cmc float64) *cards.Card {
	c := &cards.Card{
		ScryfallID:    "synthetic-" + strings.ToLower(strings.ReplaceAll(name, " ", "-")),
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

// syntheticCommander fabricates a legendary commander record.
func syntheticCommander(name, typeLine string, identity []string, oracle string, cmc float64) *cards.Card {
	c := synthetic(name, typeLine, identity, oracle, cmc)
	oid := c.ScryfallID + "-oracle"
	c.OracleID = &oid
	return c
}
