package deck

import (
	"regexp"
	"strings"

	"github.com/deckforge/deckforge/internal/cards"
)

// PackageID names a strategic sub-component a themed deck needs a minimum
// count of, e.g. sacrifice outlets or token payoffs.
type PackageID string

// Package ids.
const (
	PkgSacOutlets     PackageID = "sac_outlets"
	PkgSacFodder      PackageID = "sac_fodder"
	PkgSacPayoffs     PackageID = "sac_payoffs"
	PkgTokenMakers    PackageID = "token_makers"
	PkgTokenPayoffs   PackageID = "token_payoffs"
	PkgReanimTargets  PackageID = "reanimation_targets"
	PkgReanimEffects  PackageID = "reanimation_effects"
	PkgCheapSpells    PackageID = "cheap_spells"
	PkgSpellPayoffs   PackageID = "spell_payoffs"
	PkgEquipment      PackageID = "equipment"
	PkgAuras          PackageID = "auras"
	PkgVoltronProtect PackageID = "voltron_protection"
	PkgRampDensity    PackageID = "ramp_density"
	PkgDrawDensity    PackageID = "draw_density"
)

// packageRule defines the text patterns that qualify a card for a package.
// Unlike role assignment, package matching is not exclusive: a card may
// fill several packages at once.
type packageRule struct {
	phrases []string       // lowercase oracle-text substrings
	pattern *regexp.Regexp // optional regex, checked after phrases
	match   func(*cards.Card) bool // optional structural predicate
}

var packageRules = map[PackageID]packageRule{
	PkgSacOutlets: {
		phrases: []string{"sacrifice a creature", "sacrifice another creature", "sacrifice another"},
		pattern: regexp.MustCompile(`sacrifice [^.:]{0,40}: \{?`),
	},
	PkgSacFodder: {
		phrases: []string{"when this creature dies", "when it dies", "dies, create"},
		match: func(c *cards.Card) bool {
			return c.IsType("Creature") && c.CMC <= 2
		},
	},
	PkgSacPayoffs: {
		phrases: []string{"whenever you sacrifice", "whenever a creature dies", "whenever another creature dies", "whenever a creature you control dies"},
	},
	PkgTokenMakers: {
		pattern: regexp.MustCompile(`creates? (a|one|two|three|x|that many) [^.]{0,60}token`),
	},
	PkgTokenPayoffs: {
		phrases: []string{"whenever a token", "creatures you control get", "for each creature you control", "whenever one or more tokens"},
	},
	PkgReanimTargets: {
		match: func(c *cards.Card) bool {
			return c.IsType("Creature") && c.CMC >= 6
		},
	},
	PkgReanimEffects: {
		phrases: []string{"from your graveyard to the battlefield", "return target creature card from a graveyard", "onto the battlefield from your graveyard"},
	},
	PkgCheapSpells: {
		match: func(c *cards.Card) bool {
			return (c.IsType("Instant") || c.IsType("Sorcery")) && c.CMC <= 2
		},
	},
	PkgSpellPayoffs: {
		phrases: []string{"whenever you cast an instant", "whenever you cast a sorcery", "whenever you cast an instant or sorcery", "whenever you cast a noncreature spell", "prowess", "magecraft"},
	},
	PkgEquipment: {
		match: func(c *cards.Card) bool {
			return c.IsType("Equipment")
		},
	},
	PkgAuras: {
		match: func(c *cards.Card) bool {
			return c.IsType("Aura") && strings.Contains(strings.ToLower(c.Oracle()), "enchant creature")
		},
	},
	PkgVoltronProtect: {
		phrases: []string{"hexproof", "indestructible", "protection from", "phase out", "shroud"},
	},
	PkgRampDensity: {
		phrases: []string{"search your library for a land", "search your library for a basic land", "play an additional land"},
		pattern: regexp.MustCompile(`add \{[wubrgc]\}|add (one|two|three) mana`),
	},
	PkgDrawDensity: {
		phrases: []string{"draw a card", "draw two cards", "draw three cards", "draw cards equal"},
	},
}

// AllPackages lists every package id in a stable order.
var AllPackages = []PackageID{
	PkgSacOutlets, PkgSacFodder, PkgSacPayoffs,
	PkgTokenMakers, PkgTokenPayoffs,
	PkgReanimTargets, PkgReanimEffects,
	PkgCheapSpells, PkgSpellPayoffs,
	PkgEquipment, PkgAuras, PkgVoltronProtect,
	PkgRampDensity, PkgDrawDensity,
}

// CardFillsPackage reports whether the card qualifies for the package.
// Pure text/structure matching against the single card; no deck state.
func CardFillsPackage(card *cards.Card, pkg PackageID) bool {
	rule, ok := packageRules[pkg]
	if !ok {
		return false
	}

	if rule.match != nil && rule.match(card) {
		return true
	}

	oracle := strings.ToLower(card.Oracle())
	if oracle == "" {
		return false
	}
	for _, p := range rule.phrases {
		if strings.Contains(oracle, p) {
			return true
		}
	}
	return rule.pattern != nil && rule.pattern.MatchString(oracle)
}

// PackagesFilledByCard returns every package the card qualifies for.
func PackagesFilledByCard(card *cards.Card) []PackageID {
	var filled []PackageID
	for _, pkg := range AllPackages {
		if CardFillsPackage(card, pkg) {
			filled = append(filled, pkg)
		}
	}
	return filled
}
