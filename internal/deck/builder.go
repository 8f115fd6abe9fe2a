package deck

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/deckforge/deckforge/internal/cards"
)

// CardResolver supplies resolved card records for names. Lookups are
// case-insensitive; the returned map is keyed by lowercased name.
type CardResolver interface {
	ResolveCards(ctx context.Context, names []string) (map[string]*cards.Card, error)
	ResolveCommander(ctx context.Context, name string) (*cards.Card, error)
}

// Builder assembles Commander decks from an owned-card pool. Each Build
// call constructs its own plan, targets, and used-name state, so one
// Builder may serve concurrent builds.
type Builder struct {
	Resolver CardResolver
	Plans    PlanCache
	Progress ProgressFunc
}

// NewBuilder creates a Builder. Plans may be nil for an uncached build.
func NewBuilder(resolver CardResolver, plans PlanCache) *Builder {
	if plans == nil {
		plans = NopPlanCache{}
	}
	return &Builder{Resolver: resolver, Plans: plans}
}

// report invokes the progress callback when one is set.
func (b *Builder) report(stage string, progress float64, message string) {
	if b.Progress != nil {
		b.Progress(stage, progress, message)
	}
}

// Build resolves the commander and owned pool, then assembles a 99-card
// deck. Missing card names, an unresolvable commander, and an empty or
// incompatible pool are terminal errors; no partial deck is returned.
func (b *Builder) Build(ctx context.Context, commanderName string, owned []OwnedCard, opts Options) (*DeckList, error) {
	b.report("fetching", 0.1, "resolving cards")

	commander, err := b.Resolver.ResolveCommander(ctx, commanderName)
	if err != nil {
		return nil, err
	}
	if commander == nil {
		return nil, &CommanderNotFoundError{Name: commanderName}
	}

	if len(owned) == 0 {
		return nil, &EmptyCandidatesError{EmptyPool: true, Commander: commander.Name}
	}

	names := make([]string, 0, len(owned))
	seen := make(map[string]bool, len(owned))
	for _, oc := range owned {
		key := strings.ToLower(oc.Name)
		if !seen[key] {
			seen[key] = true
			names = append(names, oc.Name)
		}
	}

	cardMap, err := b.Resolver.ResolveCards(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("resolving owned cards: %w", err)
	}
	var missing []string
	for _, name := range names {
		if cardMap[strings.ToLower(name)] == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingCardsError{Names: missing}
	}

	return b.BuildWithCards(commander, owned, opts, cardMap)
}

// BuildWithCards assembles a deck from a fully resolved name-to-card map.
// It is the synchronous core behind Build and the entry point for callers
// that already hold resolved cards, such as the evaluation harness.
func (b *Builder) BuildWithCards(commander *cards.Card, owned []OwnedCard, opts Options, cardMap map[string]*cards.Card) (*DeckList, error) {
	if len(owned) == 0 {
		return nil, &EmptyCandidatesError{EmptyPool: true, Commander: commander.Name}
	}

	if opts.Archetype == "" {
		opts.Archetype = ArchetypeBalanced
	}
	if opts.Power == "" {
		opts.Power = PowerUpgraded
	}

	b.report("building", 0.4, "assembling deck")

	plan := BuildPlan(commander, b.Plans)
	targets := ResolveTargets(plan, opts)

	pool := Shortlist(owned, cardMap, commander, plan, targets, opts.EnforceLegality)
	if !hasNonland(pool) {
		return nil, &EmptyCandidatesError{Commander: commander.Name}
	}

	asm := newAssembler(pool, plan, targets, opts.Archetype)
	main := asm.run()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	newImprover(asm.state, pool, opts.Archetype, rng, asm.reasons).improve(main)

	lands := fillLands(pool, asm.state, plan, len(main))

	list := b.finish(commander, plan, main, lands, asm, opts)
	b.report("done", 1.0, "deck complete")
	return list, nil
}

// hasNonland reports whether the pool contains any usable nonland entry.
func hasNonland(pool []*CandidateEntry) bool {
	for _, entry := range pool {
		if entry.Role != RoleLand {
			return true
		}
	}
	return false
}

// finish converts the assembled entries into the result DeckList with
// statistics and the strategy explanation.
func (b *Builder) finish(commander *cards.Card, plan *CommanderPlan, main []*CandidateEntry, lands []DeckEntry, asm *assembler, opts Options) *DeckList {
	entries := make([]DeckEntry, 0, len(main))
	for _, ce := range main {
		entries = append(entries, DeckEntry{
			Name:     ce.Card.Name,
			Quantity: 1,
			Role:     ce.Role,
			CMC:      ce.Card.CMC,
			Reason:   asm.reasonFor(ce.Card.Name),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CMC != entries[j].CMC {
			return entries[i].CMC < entries[j].CMC
		}
		return entries[i].Name < entries[j].Name
	})

	byRole := make(map[Role]int)
	byFamily := make(map[RoleFamily]int)
	for _, e := range entries {
		byRole[e.Role]++
		byFamily[RoleFamilyOf(e.Role)]++
	}
	for _, l := range lands {
		byRole[RoleLand] += l.Quantity
		byFamily[FamilyLand] += l.Quantity
	}

	landCount := landCardCount(lands)
	shortBy := 99 - len(entries) - landCount
	if shortBy < 0 {
		shortBy = 0
	}

	stats := DeckStats{
		TotalNonlands:       len(entries),
		TotalLands:          landCount,
		ByRole:              byRole,
		ByRoleFamily:        byFamily,
		ColorIdentity:       commander.ColorIdentity,
		ShortBy:             shortBy,
		StrategyExplanation: explainStrategy(plan, opts),
	}

	choice := CommanderChoice{
		Name:          commander.Name,
		ColorIdentity: commander.ColorIdentity,
		TypeLine:      commander.TypeLine,
	}
	if commander.ImageURI != nil {
		choice.ImageURI = *commander.ImageURI
	}

	return &DeckList{
		Commander:        choice,
		Main:             entries,
		Lands:            lands,
		Stats:            stats,
		LegalityEnforced: opts.EnforceLegality,
	}
}

// explainStrategy renders the plan as a short user-facing summary.
func explainStrategy(plan *CommanderPlan, opts Options) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s wants a %s, %s-tempo game plan", plan.CommanderName, plan.Curve, plan.Tempo)

	if len(plan.Themes) > 0 {
		themes := make([]string, len(plan.Themes))
		for i, t := range plan.Themes {
			themes[i] = string(t)
		}
		fmt.Fprintf(&sb, " built around %s", strings.Join(themes, ", "))
	}
	if len(plan.PreferredTribes) > 0 {
		fmt.Fprintf(&sb, " with a %s creature base", strings.Join(plan.PreferredTribes, "/"))
	}
	if len(plan.KeyResources) > 0 {
		fmt.Fprintf(&sb, ". Key resources: %s", strings.Join(plan.KeyResources, ", "))
	}
	if len(plan.WinConditions) > 0 {
		wins := make([]string, len(plan.WinConditions))
		for i, w := range plan.WinConditions {
			wins[i] = strings.ReplaceAll(string(w), "_", " ")
		}
		fmt.Fprintf(&sb, ". Wins via %s", strings.Join(wins, ", "))
	}
	fmt.Fprintf(&sb, ". Assembled as %s at %s power.", opts.Archetype, opts.Power)
	return sb.String()
}
