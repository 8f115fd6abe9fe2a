package deck

import (
	"strings"

	"github.com/deckforge/deckforge/internal/cards"
)

// basicLandNames are the synthetic basics the assembler may add freely.
var basicLandNames = map[string]string{
	"W": "Plains",
	"U": "Island",
	"B": "Swamp",
	"R": "Mountain",
	"G": "Forest",
}

// colorIdentitySubset reports whether a card's color identity fits inside
// the commander's.
func colorIdentitySubset(card []string, commander []string) bool {
	allowed := make(map[string]bool, len(commander))
	for _, c := range commander {
		allowed[c] = true
	}
	for _, c := range card {
		if !allowed[c] {
			return false
		}
	}
	return true
}

// fastTempoCMCCeiling is the fallback mana-value cutoff applied to
// off-plan cards under a fast tempo plan when no resolved targets carry
// their own ceiling.
const fastTempoCMCCeiling = 7.0

// Shortlist reduces the owned pool to legal, color-compatible,
// plan-relevant candidate entries. Entries keep their deterministic role
// assignment so downstream stages never re-classify. targets may be nil;
// when set, its MaxCMC is the fast-tempo trim ceiling, so a battlecruiser
// playstyle keeps its big spells even under an aggressive plan.
func Shortlist(owned []OwnedCard, cardMap map[string]*cards.Card, commander *cards.Card, plan *CommanderPlan, targets *ProfileTargets, enforceLegality bool) []*CandidateEntry {
	ceiling := fastTempoCMCCeiling
	if targets != nil && targets.MaxCMC > 0 {
		ceiling = targets.MaxCMC
	}

	required := make(map[PackageID]bool, len(plan.RequiredPackages))
	for _, pkg := range plan.RequiredPackages {
		required[pkg] = true
	}

	var entries []*CandidateEntry
	for i := range owned {
		oc := &owned[i]
		card, ok := cardMap[strings.ToLower(oc.Name)]
		if !ok || card == nil {
			continue
		}

		// Never shortlist the commander itself.
		if strings.EqualFold(card.Name, commander.Name) {
			continue
		}

		if !colorIdentitySubset(card.ColorIdentity, commander.ColorIdentity) {
			continue
		}

		if enforceLegality && !isCommanderLegal(card.CommanderLegality(), card.Name) {
			continue
		}

		role := AssignRole(card)

		// Lands and utility always stay; other roleless noise only stays
		// when it fills a required package.
		if role != RoleLand && role != RoleUtility {
			if role == RoleSynergy && !relevantToPlan(card, plan, required) {
				continue
			}
		}

		// Fast plans trim expensive off-plan cards, unless the commander
		// cheats them into play.
		if plan.Tempo == TempoFast && !plan.CheatsBigPlay &&
			role != RoleLand && role != RolePayoff && role != RoleFinisher &&
			card.CMC > ceiling {
			continue
		}

		entries = append(entries, &CandidateEntry{Card: card, Owned: oc, Role: role})
	}
	return entries
}

// relevantToPlan reports whether a generic synergy card earns its shortlist
// slot: it matches a theme or tribe, or fills a required package.
func relevantToPlan(card *cards.Card, plan *CommanderPlan, required map[PackageID]bool) bool {
	for _, theme := range plan.Themes {
		if CardMatchesTheme(card, theme) || CardTypeSupportsTheme(card, theme) {
			return true
		}
	}
	for _, tribe := range plan.PreferredTribes {
		if CardMatchesTribe(card, tribe) {
			return true
		}
	}
	for pkg := range required {
		if CardFillsPackage(card, pkg) {
			return true
		}
	}
	// Creatures are the fabric of most plans; keep them even off-theme so
	// the creature-count top-up stage has material.
	return card.IsType("Creature")
}
