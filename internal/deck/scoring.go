package deck

import (
	"strings"

	"github.com/deckforge/deckforge/internal/cards"
)

// deckState tracks the running composition of the partial main deck. All
// scoring functions read it and never mutate it; only the assembler's
// add/remove helpers do.
type deckState struct {
	plan    *CommanderPlan
	targets *ProfileTargets

	used         map[string]bool // lowercased names already placed
	familyCounts map[RoleFamily]int
	pkgCounts    map[PackageID]int
	interaction  int // total interaction-family cards
	nonlands     int
	cmcSum       float64
}

// newDeckState creates an empty running state for one build.
func newDeckState(plan *CommanderPlan, targets *ProfileTargets) *deckState {
	return &deckState{
		plan:         plan,
		targets:      targets,
		used:         make(map[string]bool),
		familyCounts: make(map[RoleFamily]int),
		pkgCounts:    make(map[PackageID]int),
	}
}

// add records a nonland entry into the running state.
func (s *deckState) add(entry *CandidateEntry) {
	s.used[strings.ToLower(entry.Card.Name)] = true
	family := RoleFamilyOf(entry.Role)
	s.familyCounts[family]++
	if isInteractionFamily(family) {
		s.interaction++
	}
	for _, pkg := range PackagesFilledByCard(entry.Card) {
		s.pkgCounts[pkg]++
	}
	s.nonlands++
	s.cmcSum += entry.Card.CMC
}

// remove reverses add, used by the local-search improver when trying swaps.
func (s *deckState) remove(entry *CandidateEntry) {
	delete(s.used, strings.ToLower(entry.Card.Name))
	family := RoleFamilyOf(entry.Role)
	s.familyCounts[family]--
	if isInteractionFamily(family) {
		s.interaction--
	}
	for _, pkg := range PackagesFilledByCard(entry.Card) {
		s.pkgCounts[pkg]--
	}
	s.nonlands--
	s.cmcSum -= entry.Card.CMC
}

// avgCMC returns the running average mana value of placed nonlands.
func (s *deckState) avgCMC() float64 {
	if s.nonlands == 0 {
		return 0
	}
	return s.cmcSum / float64(s.nonlands)
}

// curveScore rewards mana values 2-3 the most, 4 slightly less, and tapers
// off below 1 and above 4. Cards that would push the running average past
// the ceiling are penalized; cards that pull it toward the target get a
// small bonus.
func curveScore(card *cards.Card, state *deckState) float64 {
	var score float64
	switch cmc := card.CMC; {
	case cmc >= 2 && cmc <= 3:
		score = 1.0
	case cmc > 3 && cmc <= 4:
		score = 0.8
	case cmc >= 1 && cmc < 2:
		score = 0.7
	case cmc < 1:
		score = 0.5
	case cmc > 4 && cmc <= 5:
		score = 0.55
	case cmc > 5 && cmc <= 6:
		score = 0.4
	default:
		score = 0.25
	}

	if state.nonlands > 0 {
		current := state.avgCMC()
		projected := (state.cmcSum + card.CMC) / float64(state.nonlands+1)
		if projected > state.targets.AvgCMC+0.4 {
			score -= 0.3
		} else if absFloat(projected-state.targets.AvgCMC) < absFloat(current-state.targets.AvgCMC) {
			score += 0.15
		}
	}
	return score
}

// roleFulfillmentBonus grants up to +0.5 while the card's role family is
// under target, diminishing as the gap closes, and up to -0.3 once the
// family is oversubscribed.
func roleFulfillmentBonus(role Role, state *deckState) float64 {
	family := RoleFamilyOf(role)
	target := state.targets.FamilyTarget(family)
	if target <= 0 {
		return 0
	}

	count := state.familyCounts[family]
	if count < target {
		gap := float64(target-count) / float64(target)
		return 0.5 * gap
	}

	over := float64(count-target) / float64(target)
	penalty := 0.3 * over
	if penalty > 0.3 {
		penalty = 0.3
	}
	return -penalty
}

// interactionBaselineBoost grants up to +0.8 to interaction-family cards
// while the deck's total interaction count is below the configured minimum,
// and nothing once the minimum is met.
func interactionBaselineBoost(role Role, state *deckState) float64 {
	if !isInteractionFamily(RoleFamilyOf(role)) {
		return 0
	}
	min := state.targets.MinInteractionTotal
	if min <= 0 || state.interaction >= min {
		return 0
	}
	gap := float64(min-state.interaction) / float64(min)
	return 0.8 * gap
}

// commanderSynergyScore rewards cards that serve the commander's active
// themes: +2.0 for a text match, +1.5 for a type-line match, with a
// multiplicative bonus for cards supporting two or more themes at once.
func commanderSynergyScore(card *cards.Card, plan *CommanderPlan) float64 {
	var score float64
	matches := 0
	for _, theme := range plan.Themes {
		if CardMatchesTheme(card, theme) {
			score += 2.0
			matches++
		} else if CardTypeSupportsTheme(card, theme) {
			score += 1.5
			matches++
		}
	}
	if matches >= 2 {
		score *= 1 + 0.12*float64(matches-1)
	}
	return score
}

// packageCompletionScore rewards cards that fill required packages still
// under their minimums and mildly penalizes oversaturation. Packages linked
// to a win condition still short of its target get a flat extra boost.
func packageCompletionScore(card *cards.Card, state *deckState) float64 {
	var score float64
	for pkg, min := range state.plan.PackageMinimums {
		if !CardFillsPackage(card, pkg) {
			continue
		}
		count := state.pkgCounts[pkg]
		switch {
		case count < min:
			need := min - count
			if need > 2 {
				need = 2
			}
			score += 0.4 * float64(need)
		case count >= min+2:
			score -= 0.15
		}
	}

	for wc, target := range state.plan.WinConTargets {
		filled := 0
		linked := winConPackages[wc]
		for _, pkg := range linked {
			filled += state.pkgCounts[pkg]
		}
		if len(linked) == 0 || filled >= target {
			continue
		}
		for _, pkg := range linked {
			if CardFillsPackage(card, pkg) {
				score += 0.25
				break
			}
		}
	}
	return score
}

// Archetype bonus constants. The tribal bonus deliberately exceeds a
// typical curve score (~1.0) so on-theme cards outrank generic curve
// filler.
const (
	tribalMatchBonus       = 2.5
	spellslingerSpellBonus = 1.8
	voltronGearBonus       = 2.0
)

// archetypeBonus layers archetype-specific rewards on top of curveScore.
func archetypeBonus(card *cards.Card, plan *CommanderPlan, archetype Archetype) float64 {
	var bonus float64

	if len(plan.PreferredTribes) > 0 {
		for _, tribe := range plan.PreferredTribes {
			if CardMatchesTribe(card, tribe) {
				bonus += tribalMatchBonus
				break
			}
		}
	}

	if archetype == ArchetypeSpellslinger || plan.HasTheme(ThemeSpellslinger) {
		if card.IsType("Instant") || card.IsType("Sorcery") {
			bonus += spellslingerSpellBonus
		}
	}

	if archetype == ArchetypeVoltron || plan.HasTheme(ThemeVoltron) {
		if card.IsType("Equipment") || card.IsType("Aura") {
			bonus += voltronGearBonus
		}
	}
	return bonus
}

// scoreCandidate is the full context-sensitive score used by the greedy
// stages and the improver.
func scoreCandidate(entry *CandidateEntry, state *deckState, archetype Archetype) float64 {
	return curveScore(entry.Card, state) +
		roleFulfillmentBonus(entry.Role, state) +
		interactionBaselineBoost(entry.Role, state) +
		commanderSynergyScore(entry.Card, state.plan) +
		packageCompletionScore(entry.Card, state) +
		archetypeBonus(entry.Card, state.plan, archetype)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
