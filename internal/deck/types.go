// Package deck implements the Commander deck assembly engine: commander
// strategy inference, card role classification, target resolution, greedy
// slot-filling, and swap-based local-search refinement.
package deck

import (
	"fmt"
	"strings"

	"github.com/deckforge/deckforge/internal/cards"
)

// Role is the fine-grained functional classification of a card.
type Role string

// Fine roles. Several ramp/draw/enabler variants exist so that the greedy
// stages can distinguish, say, mana rocks from land ramp; RoleFamily folds
// them back together for ratio accounting.
const (
	RoleRampRock    Role = "ramp_rock"    // Mana-producing artifacts
	RoleRampDork    Role = "ramp_dork"    // Mana-producing creatures
	RoleRampLand    Role = "ramp_land"    // Land search / extra land drops
	RoleDrawEngine  Role = "draw_engine"  // Repeatable card advantage
	RoleDrawBurst   Role = "draw_burst"   // One-shot card draw
	RoleRemoval     Role = "removal"      // Targeted removal
	RoleSweeper     Role = "sweeper"      // Board wipes
	RoleInteraction Role = "interaction"  // Counterspells and other answers
	RoleProtection  Role = "protection"   // Hexproof, indestructible, phase-out
	RoleTutor       Role = "tutor"        // Library search for nonland cards
	RoleRecursion   Role = "recursion"    // Graveyard-to-hand/battlefield
	RoleEnablerSac  Role = "enabler_sac"  // Sacrifice outlets
	RoleEnablerTok  Role = "enabler_tok"  // Token makers
	RolePayoff      Role = "payoff"       // Cards rewarded by the deck's engine
	RoleFinisher    Role = "finisher"     // Game-ending threats
	RoleFixing      Role = "fixing"       // Color fixing
	RoleUtility     Role = "utility"      // Everything else (noncreature)
	RoleSynergy     Role = "synergy"      // Everything else (creature/walker)
	RoleLand        Role = "land"
)

// RoleFamily is the coarse aggregate category used for ratio targets.
type RoleFamily string

// Role families.
const (
	FamilyRamp        RoleFamily = "ramp"
	FamilyDraw        RoleFamily = "draw"
	FamilyRemoval     RoleFamily = "removal"
	FamilySweeper     RoleFamily = "sweeper"
	FamilyInteraction RoleFamily = "interaction"
	FamilyEnabler     RoleFamily = "enabler"
	FamilyPayoff      RoleFamily = "payoff"
	FamilyFinisher    RoleFamily = "finisher"
	FamilyTutor       RoleFamily = "tutor"
	FamilyRecursion   RoleFamily = "recursion"
	FamilyProtection  RoleFamily = "protection"
	FamilyFixing      RoleFamily = "fixing"
	FamilyUtility     RoleFamily = "utility"
	FamilySynergy     RoleFamily = "synergy"
	FamilyLand        RoleFamily = "land"
)

// OwnedCard is a card the player owns. The engine only cares that
// Quantity >= 1; it never places duplicate nonbasic cards.
type OwnedCard struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Source   string `json:"source,omitempty"` // e.g. "csv", "text", "manual"
}

// CommanderChoice is a light reference to the chosen commander, distinct
// from the full Card record.
type CommanderChoice struct {
	Name          string   `json:"name"`
	ColorIdentity []string `json:"colorIdentity"`
	TypeLine      string   `json:"typeLine,omitempty"`
	ImageURI      string   `json:"imageURI,omitempty"`
}

// TempoClass describes how quickly the commander's plan wants to operate.
type TempoClass string

// Tempo classes.
const (
	TempoFast     TempoClass = "fast"
	TempoMedium   TempoClass = "medium"
	TempoSlow     TempoClass = "slow"
	TempoVariable TempoClass = "variable"
)

// CurveShape describes the preferred mana-curve silhouette.
type CurveShape string

// Curve shapes.
const (
	CurveLow     CurveShape = "low"
	CurveMid     CurveShape = "mid"
	CurveHigh    CurveShape = "high"
	CurveBimodal CurveShape = "bimodal"
)

// CommanderPlan is the derived strategy record for a commander. It is a
// pure function of the commander's card text, so it is safe to memoize
// indefinitely keyed by the commander's oracle id.
type CommanderPlan struct {
	CommanderName string   `json:"commanderName"`
	ColorIdentity []string `json:"colorIdentity"`

	Themes           []Theme        `json:"themes"`
	PreferredTribes  []string       `json:"preferredTribes"`
	WinConditions    []WinCondition `json:"winConditions"`
	KeyResources     []string       `json:"keyResources"`
	RequiredPackages []PackageID    `json:"requiredPackages"`

	Tempo         TempoClass `json:"tempo"`
	Curve         CurveShape `json:"curve"`
	TargetAvgCMC  float64    `json:"targetAvgCmc"`
	CheatsBigPlay bool       `json:"cheatsBigPlay"` // Commander puts big cards into play without casting

	RoleOverrides   map[RoleFamily]int  `json:"roleOverrides"`   // Minimum slots per family
	PackageMinimums map[PackageID]int   `json:"packageMinimums"` // Minimum cards per package
	WinConTargets   map[WinCondition]int `json:"winConTargets"`  // Payoff counts per win condition
}

// HasTheme reports whether the plan includes the given theme.
func (p *CommanderPlan) HasTheme(theme Theme) bool {
	for _, t := range p.Themes {
		if t == theme {
			return true
		}
	}
	return false
}

// HasWinCondition reports whether the plan includes the given win condition.
func (p *CommanderPlan) HasWinCondition(wc WinCondition) bool {
	for _, w := range p.WinConditions {
		if w == wc {
			return true
		}
	}
	return false
}

// WinCondition identifies how the deck intends to close out games.
type WinCondition string

// Win conditions.
const (
	WinCombat          WinCondition = "combat"
	WinCommanderDamage WinCondition = "commander_damage"
	WinDrain           WinCondition = "drain"
	WinTokens          WinCondition = "tokens"
	WinCombo           WinCondition = "combo"
	WinMill            WinCondition = "mill"
)

// Archetype is the user-selected deck style.
type Archetype string

// Archetypes.
const (
	ArchetypeBalanced     Archetype = "balanced"
	ArchetypeTribal       Archetype = "tribal"
	ArchetypeSpellslinger Archetype = "spellslinger"
	ArchetypeVoltron      Archetype = "voltron"
	ArchetypeControl      Archetype = "control"
)

// PowerLevel is the user-selected power bracket.
type PowerLevel string

// Power levels.
const (
	PowerPrecon    PowerLevel = "precon"
	PowerUpgraded  PowerLevel = "upgraded"
	PowerHigh      PowerLevel = "high_power"
	PowerCEDH      PowerLevel = "cedh"
)

// Options are the user-facing knobs for a build.
type Options struct {
	Archetype       Archetype  `json:"archetype"`       // Default: balanced
	Power           PowerLevel `json:"power"`           // Default: upgraded
	Meta            []string   `json:"meta"`            // e.g. "combo", "graveyard"
	Playstyle       string     `json:"playstyle"`       // e.g. "stax_lite", "battlecruiser"
	EnforceLegality bool       `json:"enforceLegality"` // Apply banlist + legality field
	Seed            int64      `json:"seed"`            // Local-search seed; 0 = entropy
}

// ProfileTargets are the resolved numeric goals for one build.
// Recomputed per build call; never persisted.
type ProfileTargets struct {
	Ramp               int     `json:"ramp"`
	Draw               int     `json:"draw"`
	Removal            int     `json:"removal"`
	Sweeper            int     `json:"sweeper"`
	Interaction        int     `json:"interaction"`
	Finisher           int     `json:"finisher"`
	Synergy            int     `json:"synergy"`
	MinInteractionTotal int    `json:"minInteractionTotal"`
	LandsMin           int     `json:"landsMin"`
	LandsMax           int     `json:"landsMax"`
	AvgCMC             float64 `json:"avgCmc"`
	MaxCMC             float64 `json:"maxCmc"`
}

// FamilyTarget returns the configured slot target for a role family.
// Families without an explicit knob share the synergy budget.
func (t *ProfileTargets) FamilyTarget(family RoleFamily) int {
	switch family {
	case FamilyRamp:
		return t.Ramp
	case FamilyDraw:
		return t.Draw
	case FamilyRemoval:
		return t.Removal
	case FamilySweeper:
		return t.Sweeper
	case FamilyInteraction, FamilyProtection:
		return t.Interaction
	case FamilyFinisher:
		return t.Finisher
	default:
		return t.Synergy
	}
}

// CandidateEntry is the unit the assembly and search stages operate on.
type CandidateEntry struct {
	Card  *cards.Card
	Owned *OwnedCard
	Role  Role
}

// DeckEntry is a card placed in the result.
type DeckEntry struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Role     Role    `json:"role"`
	CMC      float64 `json:"cmc"`
	Reason   string  `json:"reason,omitempty"`
}

// DeckStats summarizes a built deck.
type DeckStats struct {
	TotalNonlands       int                `json:"totalNonlands"`
	TotalLands          int                `json:"totalLands"`
	ByRole              map[Role]int       `json:"byRole"`
	ByRoleFamily        map[RoleFamily]int `json:"byRoleFamily"`
	ColorIdentity       []string           `json:"colorIdentity"`
	ShortBy             int                `json:"shortBy,omitempty"`
	StrategyExplanation string             `json:"strategyExplanation,omitempty"`
}

// DeckList is the finished deck: commander + up to 99 cards.
// Invariants: no duplicate names in Main; only basic lands repeat in Lands;
// len(Main)+len(Lands)+ShortBy == 99.
type DeckList struct {
	Commander       CommanderChoice `json:"commander"`
	Main            []DeckEntry     `json:"main"`
	Lands           []DeckEntry     `json:"lands"`
	Stats           DeckStats       `json:"stats"`
	LegalityEnforced bool           `json:"legalityEnforced"`
}

// DeckMetrics are the composite evaluation scores shared by the local-search
// improver and the evaluation harness.
type DeckMetrics struct {
	CurveScore       float64 `json:"curveScore"`
	RoleRatioScore   float64 `json:"roleRatioScore"`
	SynergyDensity   float64 `json:"synergyDensity"`
	ManaStability    float64 `json:"manaStability"`
	InteractionScore float64 `json:"interactionScore"`
	Composite        float64 `json:"composite"`
}

// UpgradeSuggestion is one ranked acquisition recommendation.
type UpgradeSuggestion struct {
	Name        string  `json:"name"`
	ImpactScore float64 `json:"impactScore"`
	Role        Role    `json:"role"`
}

// ProgressFunc receives coarse build milestones for UI feedback. It is
// fire-and-forget and carries no control authority.
type ProgressFunc func(stage string, progress float64, message string)

// PlanCache memoizes commander plans keyed by a stable commander identifier.
// A cache miss is "not cached", never an error.
type PlanCache interface {
	Get(commanderID string) (*CommanderPlan, bool)
	Put(commanderID string, plan *CommanderPlan)
}

// NopPlanCache is a PlanCache that caches nothing.
type NopPlanCache struct{}

// Get always misses.
func (NopPlanCache) Get(string) (*CommanderPlan, bool) { return nil, false }

// Put discards the plan.
func (NopPlanCache) Put(string, *CommanderPlan) {}

// MissingCardsError reports card names that could not be resolved. The
// message lists at most the first five names plus a count.
type MissingCardsError struct {
	Names []string
}

// Error formats the missing card names for the user.
func (e *MissingCardsError) Error() string {
	shown := e.Names
	suffix := ""
	if len(shown) > 5 {
		suffix = fmt.Sprintf(" (and %d more)", len(shown)-5)
		shown = shown[:5]
	}
	return fmt.Sprintf("could not resolve %d card(s): %s%s; try refreshing the card database",
		len(e.Names), strings.Join(shown, ", "), suffix)
}

// CommanderNotFoundError reports an unresolvable commander name.
type CommanderNotFoundError struct {
	Name string
}

// Error formats the commander lookup failure for the user.
func (e *CommanderNotFoundError) Error() string {
	return fmt.Sprintf("commander %q could not be found", e.Name)
}

// EmptyCandidatesError reports that filtering left no usable nonland
// candidates. EmptyPool distinguishes "no cards in the collection at all"
// from "collection is incompatible with this commander".
type EmptyCandidatesError struct {
	EmptyPool bool
	Commander string
}

// Error formats the empty-candidate failure for the user.
func (e *EmptyCandidatesError) Error() string {
	if e.EmptyPool {
		return "no cards in your collection; import a collection before building"
	}
	return fmt.Sprintf("no usable nonland candidates for %s; the collection may not match the commander's color identity or legality", e.Commander)
}
