package deck

import (
	"math/rand"
	"sort"
	"strings"
)

// Local-search bounds. The walk is deliberately short: the greedy pass does
// the heavy lifting and the improver only repairs its worst marginal picks.
const (
	improveCycles     = 5
	slotsPerCycle     = 12
	candidatesPerSlot = 25
	improveEpsilon    = 1e-9
)

// improver runs a bounded hill-climb over the assembled nonland slots,
// swapping at most one card per cycle and only when the composite deck
// score strictly improves. All randomness flows through the injected source
// so a seeded build replays identically.
type improver struct {
	state     *deckState
	archetype Archetype
	pool      []*CandidateEntry
	rng       *rand.Rand
	reasons   map[string]string // lowercased name -> placement reason, may be nil
}

// newImprover wraps an assembled state for refinement. reasons is the
// assembler's placement-reason map; swapped-in cards are recorded there so
// every main entry keeps an explanation.
func newImprover(state *deckState, pool []*CandidateEntry, archetype Archetype, rng *rand.Rand, reasons map[string]string) *improver {
	return &improver{state: state, archetype: archetype, pool: pool, rng: rng, reasons: reasons}
}

// improve mutates main in place and returns the number of swaps applied.
// Swaps are 1-for-1 between nonlands, so deck size and land count are
// untouched.
func (im *improver) improve(main []*CandidateEntry) int {
	swaps := 0
	for cycle := 0; cycle < improveCycles; cycle++ {
		if im.improveOnce(main) {
			swaps++
		}
	}
	return swaps
}

// improveOnce samples a handful of slots, evaluates replacement candidates
// for each, and applies the single best composite-improving swap found.
// Returns false when no swap improves the deck.
func (im *improver) improveOnce(main []*CandidateEntry) bool {
	if len(main) == 0 {
		return false
	}

	base := im.composite(main)

	bestDelta := 0.0
	bestSlot := -1
	var bestCand *CandidateEntry

	for _, slot := range im.sampleSlots(len(main)) {
		current := main[slot]

		im.state.remove(current)
		for _, cand := range im.topCandidates() {
			im.state.add(cand)
			main[slot] = cand
			delta := im.composite(main) - base
			main[slot] = current
			im.state.remove(cand)

			if delta > bestDelta+improveEpsilon {
				bestDelta = delta
				bestSlot = slot
				bestCand = cand
			}
		}
		im.state.add(current)
	}

	if bestSlot < 0 {
		return false
	}

	im.state.remove(main[bestSlot])
	im.state.add(bestCand)
	if im.reasons != nil {
		delete(im.reasons, strings.ToLower(main[bestSlot].Card.Name))
		im.reasons[strings.ToLower(bestCand.Card.Name)] = "local-search upgrade"
	}
	main[bestSlot] = bestCand
	return true
}

// composite is the accumulated deck quality the hill-climb optimizes:
// curve proximity, role-family fulfillment, interaction coverage, and the
// mean commander-synergy score across main.
func (im *improver) composite(main []*CandidateEntry) float64 {
	s := im.state
	t := s.targets

	curve := 0.0
	if s.nonlands > 0 {
		drift := absFloat(s.avgCMC() - t.AvgCMC)
		if drift < 2 {
			curve = 1 - drift/2
		}
	}

	families := []RoleFamily{FamilyRamp, FamilyDraw, FamilyRemoval, FamilySweeper, FamilyInteraction, FamilyFinisher}
	roles := 0.0
	scored := 0
	for _, family := range families {
		target := t.FamilyTarget(family)
		if target <= 0 {
			continue
		}
		ratio := float64(s.familyCounts[family]) / float64(target)
		if ratio > 1 {
			ratio = 1
		}
		roles += ratio
		scored++
	}
	if scored > 0 {
		roles /= float64(scored)
	}

	interaction := 1.0
	if t.MinInteractionTotal > 0 {
		interaction = float64(s.interaction) / float64(t.MinInteractionTotal)
		if interaction > 1 {
			interaction = 1
		}
	}

	synergy := 0.0
	if len(main) > 0 {
		for _, entry := range main {
			synergy += commanderSynergyScore(entry.Card, s.plan)
		}
		synergy /= float64(len(main))
	}

	return weightCurve*curve + weightRoleRatio*roles + weightInteraction*interaction + weightSynergy*synergy
}

// sampleSlots picks up to slotsPerCycle distinct slot indices.
func (im *improver) sampleSlots(n int) []int {
	count := slotsPerCycle
	if count > n {
		count = n
	}
	perm := im.rng.Perm(n)
	return perm[:count]
}

// topCandidates returns the best-scoring unused nonland pool entries
// against the current (slot-removed) state, capped at candidatesPerSlot.
func (im *improver) topCandidates() []*CandidateEntry {
	var unused []*CandidateEntry
	for _, entry := range im.pool {
		if entry.Role == RoleLand {
			continue
		}
		if im.state.used[strings.ToLower(entry.Card.Name)] {
			continue
		}
		unused = append(unused, entry)
	}

	sort.SliceStable(unused, func(i, j int) bool {
		si := scoreCandidate(unused[i], im.state, im.archetype)
		sj := scoreCandidate(unused[j], im.state, im.archetype)
		if si != sj {
			return si > sj
		}
		return unused[i].Card.CMC < unused[j].Card.CMC
	})

	if len(unused) > candidatesPerSlot {
		unused = unused[:candidatesPerSlot]
	}
	return unused
}
