package deck

import (
	"sort"
	"strings"

	"github.com/deckforge/deckforge/internal/cards"
)

// Upgrade impact weights. Role gaps dominate: a deck missing its removal
// suite needs removal more than another synergy piece.
const (
	upgradeRoleWeight        = 2.0
	upgradeInteractionWeight = 1.5
	upgradeSynergyWeight     = 0.4
	upgradePackageWeight     = 1.2
)

// RankUpgradeSuggestions scores unowned candidates by how much they would
// close the built deck's remaining gaps, and returns the top limit entries
// in descending impact order. Candidates already in the deck, outside the
// commander's colors, or illegal under the enforced banlist are skipped.
// cardMap resolves deck entry names so package coverage can be tallied.
func RankUpgradeSuggestions(list *DeckList, cardMap map[string]*cards.Card, plan *CommanderPlan, targets *ProfileTargets, candidates []*cards.Card, owned map[string]bool, limit int) []UpgradeSuggestion {
	inDeck := make(map[string]bool, len(list.Main)+len(list.Lands))
	for _, e := range list.Main {
		inDeck[strings.ToLower(e.Name)] = true
	}
	for _, e := range list.Lands {
		inDeck[strings.ToLower(e.Name)] = true
	}

	familyCounts := make(map[RoleFamily]int)
	pkgCounts := make(map[PackageID]int)
	interaction := 0
	for _, e := range list.Main {
		family := RoleFamilyOf(e.Role)
		familyCounts[family]++
		if isInteractionFamily(family) {
			interaction++
		}
		if card, ok := cardMap[strings.ToLower(e.Name)]; ok && card != nil {
			for _, pkg := range PackagesFilledByCard(card) {
				pkgCounts[pkg]++
			}
		}
	}

	var suggestions []UpgradeSuggestion
	for _, card := range candidates {
		key := strings.ToLower(card.Name)
		if inDeck[key] || owned[key] {
			continue
		}
		if strings.EqualFold(card.Name, plan.CommanderName) {
			continue
		}
		if !colorIdentitySubset(card.ColorIdentity, plan.ColorIdentity) {
			continue
		}
		if list.LegalityEnforced && !isCommanderLegal(card.CommanderLegality(), card.Name) {
			continue
		}

		role := AssignRole(card)
		if role == RoleLand {
			continue
		}

		impact := upgradeImpact(card, role, plan, targets, familyCounts, pkgCounts, interaction)
		if impact <= 0 {
			continue
		}
		suggestions = append(suggestions, UpgradeSuggestion{
			Name:        card.Name,
			ImpactScore: impact,
			Role:        role,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].ImpactScore != suggestions[j].ImpactScore {
			return suggestions[i].ImpactScore > suggestions[j].ImpactScore
		}
		return suggestions[i].Name < suggestions[j].Name
	})

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// upgradeImpact scores one candidate against the deck's remaining gaps.
func upgradeImpact(card *cards.Card, role Role, plan *CommanderPlan, targets *ProfileTargets, familyCounts map[RoleFamily]int, pkgCounts map[PackageID]int, interaction int) float64 {
	var impact float64

	family := RoleFamilyOf(role)
	if target := targets.FamilyTarget(family); target > 0 {
		if count := familyCounts[family]; count < target {
			impact += upgradeRoleWeight * float64(target-count) / float64(target)
		}
	}

	if isInteractionFamily(family) && interaction < targets.MinInteractionTotal {
		gap := float64(targets.MinInteractionTotal-interaction) / float64(targets.MinInteractionTotal)
		impact += upgradeInteractionWeight * gap
	}

	if cardServesPlan(card, plan) {
		impact += upgradeSynergyWeight
	}

	for pkg, min := range plan.PackageMinimums {
		if pkgCounts[pkg] >= min || !CardFillsPackage(card, pkg) {
			continue
		}
		impact += upgradePackageWeight * float64(min-pkgCounts[pkg]) / float64(min)
	}

	return impact
}
