package deck

import (
	"strings"

	"github.com/deckforge/deckforge/internal/cards"
)

// Composite weights. Role coverage and synergy carry the most signal; curve
// and interaction are corrective terms.
const (
	weightCurve       = 0.20
	weightRoleRatio   = 0.25
	weightSynergy     = 0.25
	weightStability   = 0.15
	weightInteraction = 0.15
)

// ComputeDeckMetrics scores a finished deck on five normalized axes and a
// weighted composite. Each axis lands in [0, 1]; the composite does too.
func ComputeDeckMetrics(list *DeckList, cardMap map[string]*cards.Card, plan *CommanderPlan, targets *ProfileTargets) DeckMetrics {
	m := DeckMetrics{
		CurveScore:       curveMetric(list, targets),
		RoleRatioScore:   roleRatioMetric(list, targets),
		SynergyDensity:   synergyDensityMetric(list, cardMap, plan),
		ManaStability:    manaStabilityMetric(list, targets),
		InteractionScore: interactionMetric(list, targets),
	}
	m.Composite = weightCurve*m.CurveScore +
		weightRoleRatio*m.RoleRatioScore +
		weightSynergy*m.SynergyDensity +
		weightStability*m.ManaStability +
		weightInteraction*m.InteractionScore
	return m
}

// curveMetric measures how close the nonland average mana value sits to the
// plan's target. A full two points of drift zeroes the score.
func curveMetric(list *DeckList, targets *ProfileTargets) float64 {
	if len(list.Main) == 0 {
		return 0
	}
	var sum float64
	for _, e := range list.Main {
		sum += e.CMC
	}
	avg := sum / float64(len(list.Main))
	drift := absFloat(avg - targets.AvgCMC)
	if drift >= 2 {
		return 0
	}
	return 1 - drift/2
}

// roleRatioMetric averages per-family target fulfillment. Overfilled
// families cap at 1; the metric never rewards oversaturation.
func roleRatioMetric(list *DeckList, targets *ProfileTargets) float64 {
	counts := make(map[RoleFamily]int)
	for _, e := range list.Main {
		counts[RoleFamilyOf(e.Role)]++
	}

	families := []RoleFamily{FamilyRamp, FamilyDraw, FamilyRemoval, FamilySweeper, FamilyInteraction, FamilyFinisher}
	var total float64
	scored := 0
	for _, family := range families {
		target := targets.FamilyTarget(family)
		if target <= 0 {
			continue
		}
		ratio := float64(counts[family]) / float64(target)
		if ratio > 1 {
			ratio = 1
		}
		total += ratio
		scored++
	}
	if scored == 0 {
		return 1
	}
	return total / float64(scored)
}

// synergyDensityMetric is the fraction of nonlands that serve at least one
// of the plan's themes or tribes. Themeless plans score on creature share
// instead, matching their combat fallback.
func synergyDensityMetric(list *DeckList, cardMap map[string]*cards.Card, plan *CommanderPlan) float64 {
	if len(list.Main) == 0 {
		return 0
	}
	matched := 0
	for _, e := range list.Main {
		card, ok := cardMap[strings.ToLower(e.Name)]
		if !ok || card == nil {
			continue
		}
		if len(plan.Themes) == 0 && len(plan.PreferredTribes) == 0 {
			if card.IsType("Creature") {
				matched++
			}
			continue
		}
		if cardServesPlan(card, plan) {
			matched++
		}
	}
	return float64(matched) / float64(len(list.Main))
}

// cardServesPlan reports a theme or tribe match.
func cardServesPlan(card *cards.Card, plan *CommanderPlan) bool {
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
	return false
}

// manaStabilityMetric blends land count against the configured floor with
// the ramp share of the nonland deck.
func manaStabilityMetric(list *DeckList, targets *ProfileTargets) float64 {
	lands := landCardCount(list.Lands)
	landScore := float64(lands) / float64(targets.LandsMin)
	if landScore > 1 {
		landScore = 1
	}

	ramp := 0
	for _, e := range list.Main {
		if RoleFamilyOf(e.Role) == FamilyRamp {
			ramp++
		}
	}
	rampScore := float64(ramp) / float64(targets.Ramp)
	if rampScore > 1 {
		rampScore = 1
	}
	return 0.7*landScore + 0.3*rampScore
}

// interactionMetric measures total interaction against the configured
// minimum.
func interactionMetric(list *DeckList, targets *ProfileTargets) float64 {
	if targets.MinInteractionTotal <= 0 {
		return 1
	}
	total := 0
	for _, e := range list.Main {
		if isInteractionFamily(RoleFamilyOf(e.Role)) {
			total++
		}
	}
	score := float64(total) / float64(targets.MinInteractionTotal)
	if score > 1 {
		score = 1
	}
	return score
}
