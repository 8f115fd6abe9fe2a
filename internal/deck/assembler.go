package deck

import (
	"fmt"
	"sort"
	"strings"
)

// typeCaps are the archetype-specific composition limits applied during
// greedy assembly.
type typeCaps struct {
	maxInstantsSorceries int
	minCreatures         int
}

var archetypeTypeCaps = map[Archetype]typeCaps{
	ArchetypeBalanced:     {maxInstantsSorceries: 22, minCreatures: 22},
	ArchetypeTribal:       {maxInstantsSorceries: 18, minCreatures: 28},
	ArchetypeSpellslinger: {maxInstantsSorceries: 38, minCreatures: 4},
	ArchetypeVoltron:      {maxInstantsSorceries: 20, minCreatures: 14},
	ArchetypeControl:      {maxInstantsSorceries: 32, minCreatures: 12},
}

// Reserved noncreature minimums filled late in the pipeline so enchantment
// and sorcery effects are not crowded out by creatures.
const (
	reservedEnchantments = 3
	reservedSorceries    = 3
)

// assembler fills the deck slot-by-slot. It owns the candidate pool for the
// duration of a build and consumes it destructively via the used-name set.
type assembler struct {
	plan      *CommanderPlan
	targets   *ProfileTargets
	archetype Archetype
	caps      typeCaps

	state   *deckState
	pool    []*CandidateEntry
	main    []*CandidateEntry
	reasons map[string]string // lowercased name -> placement reason

	nonlandCap    int
	spellCount    int // instants + sorceries placed
	creatureCount int
}

// newAssembler prepares an assembly run over the shortlisted pool.
func newAssembler(pool []*CandidateEntry, plan *CommanderPlan, targets *ProfileTargets, archetype Archetype) *assembler {
	caps, ok := archetypeTypeCaps[archetype]
	if !ok {
		caps = archetypeTypeCaps[ArchetypeBalanced]
	}

	landTarget := (targets.LandsMin + targets.LandsMax) / 2
	return &assembler{
		plan:       plan,
		targets:    targets,
		archetype:  archetype,
		caps:       caps,
		state:      newDeckState(plan, targets),
		pool:       pool,
		reasons:    make(map[string]string),
		nonlandCap: 99 - landTarget,
	}
}

// place commits one entry into main and updates all running counts.
func (a *assembler) place(entry *CandidateEntry, reason string) {
	a.state.add(entry)
	a.main = append(a.main, entry)
	if entry.Card.IsType("Instant") || entry.Card.IsType("Sorcery") {
		a.spellCount++
	}
	if entry.Card.IsType("Creature") {
		a.creatureCount++
	}
	a.reasons[strings.ToLower(entry.Card.Name)] = reason
}

// reasonFor returns the stage reason recorded when the card was placed.
func (a *assembler) reasonFor(name string) string {
	return a.reasons[strings.ToLower(name)]
}

// canPlace applies the global nonland cap, singleton rule, and type caps.
func (a *assembler) canPlace(entry *CandidateEntry) bool {
	if len(a.main) >= a.nonlandCap {
		return false
	}
	if a.state.used[strings.ToLower(entry.Card.Name)] {
		return false
	}
	if (entry.Card.IsType("Instant") || entry.Card.IsType("Sorcery")) &&
		a.spellCount >= a.caps.maxInstantsSorceries {
		return false
	}
	return true
}

// fillStage sorts the eligible unused pool by the contextual score
// (descending, ties broken by ascending mana value) and greedily takes
// cards up to the stage limit.
func (a *assembler) fillStage(limit int, eligible func(*CandidateEntry) bool, reason string) {
	if limit <= 0 {
		return
	}

	var stage []*CandidateEntry
	for _, entry := range a.pool {
		if entry.Role == RoleLand || a.state.used[strings.ToLower(entry.Card.Name)] {
			continue
		}
		if eligible(entry) {
			stage = append(stage, entry)
		}
	}

	sort.SliceStable(stage, func(i, j int) bool {
		si := scoreCandidate(stage[i], a.state, a.archetype)
		sj := scoreCandidate(stage[j], a.state, a.archetype)
		if si != sj {
			return si > sj
		}
		return stage[i].Card.CMC < stage[j].Card.CMC
	})

	taken := 0
	for _, entry := range stage {
		if taken >= limit {
			break
		}
		if !a.canPlace(entry) {
			continue
		}
		a.place(entry, reason)
		taken++
	}
}

// run executes the fixed stage pipeline and returns the placed nonlands.
func (a *assembler) run() []*CandidateEntry {
	byFamily := func(family RoleFamily) func(*CandidateEntry) bool {
		return func(e *CandidateEntry) bool { return RoleFamilyOf(e.Role) == family }
	}

	a.fillStage(a.targets.Ramp, byFamily(FamilyRamp), "ramp")
	a.fillStage(a.targets.Draw, byFamily(FamilyDraw), "card draw")
	a.fillStage(a.targets.Removal, byFamily(FamilyRemoval), "removal")
	a.fillStage(a.targets.Sweeper, byFamily(FamilySweeper), "board wipe")

	if a.archetype == ArchetypeVoltron || a.plan.HasTheme(ThemeVoltron) {
		gearMin := a.plan.PackageMinimums[PkgEquipment] + a.plan.PackageMinimums[PkgAuras]
		if gearMin == 0 {
			gearMin = 10
		}
		a.fillStage(gearMin, func(e *CandidateEntry) bool {
			return e.Card.IsType("Equipment") || e.Card.IsType("Aura")
		}, "voltron gear")
	}

	if len(a.plan.PreferredTribes) > 0 && a.archetype != ArchetypeSpellslinger {
		a.fillStage(a.targets.Synergy, func(e *CandidateEntry) bool {
			for _, tribe := range a.plan.PreferredTribes {
				if CardMatchesTribe(e.Card, tribe) {
					return true
				}
			}
			return false
		}, fmt.Sprintf("%s tribal", strings.Join(a.plan.PreferredTribes, "/")))
	}

	a.fillStage(a.targets.Synergy, func(e *CandidateEntry) bool {
		switch RoleFamilyOf(e.Role) {
		case FamilySynergy, FamilyEnabler, FamilyPayoff, FamilyRecursion, FamilyTutor, FamilyProtection, FamilyInteraction:
			return true
		default:
			return false
		}
	}, "synergy")

	a.fillStage(a.targets.Finisher, byFamily(FamilyFinisher), "finisher")

	// Reserved noncreature minimums.
	if have := a.typeCount("Enchantment"); have < reservedEnchantments {
		a.fillStage(reservedEnchantments-have, func(e *CandidateEntry) bool {
			return e.Card.IsType("Enchantment") && !e.Card.IsType("Creature")
		}, "enchantment effects")
	}
	if have := a.typeCount("Sorcery"); have < reservedSorceries {
		a.fillStage(reservedSorceries-have, func(e *CandidateEntry) bool {
			return e.Card.IsType("Sorcery")
		}, "sorcery effects")
	}

	// Remaining utility: anything nonland still unused.
	a.fillStage(a.nonlandCap-len(a.main), func(e *CandidateEntry) bool {
		return true
	}, "utility")

	// Creature-count top-up below the archetype minimum.
	if a.creatureCount < a.caps.minCreatures {
		a.fillStage(a.caps.minCreatures-a.creatureCount, func(e *CandidateEntry) bool {
			return e.Card.IsType("Creature")
		}, "creature base")
	}

	return a.main
}

// typeCount counts placed cards whose type line contains the given type.
func (a *assembler) typeCount(cardType string) int {
	n := 0
	for _, entry := range a.main {
		if entry.Card.IsType(cardType) {
			n++
		}
	}
	return n
}

// maxLandSlots is the hard ceiling on the land count.
const maxLandSlots = 40

// fillLands selects nonbasic lands from the pool (cheapest first) up to the
// remaining slot count, then synthesizes basic lands round-robin across the
// commander's colors. Basics are an unlimited synthetic resource, never
// drawn from the owned pool.
func fillLands(pool []*CandidateEntry, state *deckState, plan *CommanderPlan, mainCount int) []DeckEntry {
	remaining := 99 - mainCount
	if remaining <= 0 {
		return nil
	}
	landSlots := remaining
	if landSlots > maxLandSlots {
		landSlots = maxLandSlots
	}

	basicSet := make(map[string]bool, len(basicLandNames))
	for _, name := range basicLandNames {
		basicSet[name] = true
	}

	var nonbasics []*CandidateEntry
	for _, entry := range pool {
		if entry.Role != RoleLand || basicSet[entry.Card.Name] {
			continue
		}
		if state.used[strings.ToLower(entry.Card.Name)] {
			continue
		}
		nonbasics = append(nonbasics, entry)
	}
	sort.SliceStable(nonbasics, func(i, j int) bool {
		return nonbasics[i].Card.CMC < nonbasics[j].Card.CMC
	})

	var lands []DeckEntry
	for _, entry := range nonbasics {
		if len(lands) >= landSlots {
			break
		}
		state.used[strings.ToLower(entry.Card.Name)] = true
		lands = append(lands, DeckEntry{
			Name:     entry.Card.Name,
			Quantity: 1,
			Role:     RoleLand,
			CMC:      0,
		})
	}

	// Basic-land backfill, round-robin across the commander's colors.
	colors := plan.ColorIdentity
	if len(colors) > 0 {
		basicQty := make(map[string]int)
		i := 0
		for len(lands)+countBasics(basicQty) < landSlots {
			color := colors[i%len(colors)]
			if name, ok := basicLandNames[color]; ok {
				basicQty[name]++
			}
			i++
			if i > landSlots*len(colors)+5 {
				break
			}
		}
		// Stable output order: W U B R G.
		for _, color := range []string{"W", "U", "B", "R", "G"} {
			name := basicLandNames[color]
			if qty := basicQty[name]; qty > 0 {
				lands = append(lands, DeckEntry{
					Name:     name,
					Quantity: qty,
					Role:     RoleLand,
				})
			}
		}
	}

	return lands
}

// countBasics totals the quantities in a basic-land tally.
func countBasics(qty map[string]int) int {
	n := 0
	for _, q := range qty {
		n += q
	}
	return n
}

// landCardCount totals lands including basic quantities.
func landCardCount(lands []DeckEntry) int {
	n := 0
	for _, l := range lands {
		n += l.Quantity
	}
	return n
}
