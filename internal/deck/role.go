package deck

import (
	"regexp"
	"strings"

	"github.com/deckforge/deckforge/internal/cards"
)

// roleRule is one (predicate, result) pair in the ordered classifier table.
// The table is evaluated top-to-bottom and the first match wins, so rule
// order IS the precedence: a card with both draw-like and removal-like text
// receives whichever role appears earlier in the table.
type roleRule struct {
	name    string
	role    Role
	phrases []string         // lowercase substrings, any match fires
	pattern *regexp.Regexp   // optional, checked after phrases
	typeReq string           // optional lowercase type-line requirement
}

// matches reports whether the rule fires for the given text and type line.
func (r *roleRule) matches(oracle, typeLine string) bool {
	if r.typeReq != "" && !strings.Contains(typeLine, r.typeReq) {
		return false
	}
	for _, p := range r.phrases {
		if strings.Contains(oracle, p) {
			return true
		}
	}
	if r.pattern != nil && r.pattern.MatchString(oracle) {
		return true
	}
	return false
}

// roleRules is the classifier table. Only the front face's oracle text is
// consulted; back faces of double-faced cards are ignored.
var roleRules = []roleRule{
	// Ramp variants first: mana rocks, dorks, land ramp.
	{
		name:    "mana rock",
		role:    RoleRampRock,
		typeReq: "artifact",
		phrases: []string{"add {", "add one mana", "add two mana", "add three mana"},
	},
	{
		name:    "mana dork",
		role:    RoleRampDork,
		typeReq: "creature",
		phrases: []string{"add {", "add one mana"},
	},
	{
		name:    "land ramp",
		role:    RoleRampLand,
		phrases: []string{"search your library for a land", "search your library for a basic land", "search your library for up to two basic land", "play an additional land"},
	},
	{
		name:    "generic ramp",
		role:    RoleRampRock,
		phrases: []string{"untap target land", "lands you control have"},
		pattern: regexp.MustCompile(`add \{[wubrgc]\}`),
	},

	// Draw variants.
	{
		name:    "draw engine",
		role:    RoleDrawEngine,
		phrases: []string{"at the beginning of your upkeep, draw", "whenever you cast", "draw a card at the beginning"},
		pattern: regexp.MustCompile(`whenever [^.]{0,60}, draw a card`),
	},
	{
		name:    "burst draw",
		role:    RoleDrawBurst,
		phrases: []string{"draw two cards", "draw three cards", "draw cards equal", "draw a card"},
	},

	// Removal and sweepers. Sweepers are checked before spot removal so that
	// "destroy all creatures" does not read as targeted removal.
	{
		name:    "sweeper",
		role:    RoleSweeper,
		phrases: []string{"destroy all", "exile all", "each creature", "all creatures get -", "deals damage to each creature"},
	},
	{
		name:    "spot removal",
		role:    RoleRemoval,
		phrases: []string{"destroy target", "exile target", "deals damage to target creature", "deals damage to any target", "target creature gets -", "-1/-1 counters on target"},
	},

	// Interaction and protection.
	{
		name:    "counterspell",
		role:    RoleInteraction,
		phrases: []string{"counter target"},
	},
	{
		name:    "protection",
		role:    RoleProtection,
		phrases: []string{"hexproof", "indestructible", "gains protection", "phase out", "shroud", "can't be countered", "regenerate"},
	},

	// Tutors and recursion.
	{
		name:    "tutor",
		role:    RoleTutor,
		phrases: []string{"search your library for a card", "search your library for a creature", "search your library for an artifact", "search your library for an enchantment", "search your library for an instant"},
	},
	{
		name:    "recursion",
		role:    RoleRecursion,
		phrases: []string{"return target creature card from your graveyard", "from your graveyard to your hand", "from your graveyard to the battlefield", "return all creature cards from your graveyard"},
	},

	// Enablers: sacrifice outlets before token makers, because a sac outlet
	// that makes tokens serves the sacrifice engine first.
	{
		name:    "sacrifice outlet",
		role:    RoleEnablerSac,
		phrases: []string{"sacrifice a creature:", "sacrifice another creature", "sacrifice a creature,"},
		pattern: regexp.MustCompile(`sacrifice [^.:]{0,40}: `),
	},
	{
		name:    "token maker",
		role:    RoleEnablerTok,
		pattern: regexp.MustCompile(`creates? (a|one|two|three|x) [^.]{0,60}token`),
	},

	// Payoffs and finishers.
	{
		name:    "payoff",
		role:    RolePayoff,
		phrases: []string{"whenever a creature dies", "whenever you sacrifice", "whenever a creature enters", "whenever you cast an instant", "whenever you cast a sorcery", "whenever you gain life", "whenever a creature you control attacks"},
	},
	{
		name:    "finisher",
		role:    RoleFinisher,
		phrases: []string{"wins the game", "loses the game", "double strike", "annihilator", "extra combat", "extra turn", "overwhelming"},
	},

	// Color fixing.
	{
		name:    "fixing",
		role:    RoleFixing,
		phrases: []string{"mana of any color", "mana of any one color"},
	},
}

// AssignRole classifies a card into exactly one role. The function is pure,
// deterministic, and total: lands short-circuit to RoleLand, and cards that
// match no rule fall back to RoleSynergy for creatures and planeswalkers or
// RoleUtility otherwise.
func AssignRole(card *cards.Card) Role {
	typeLine := strings.ToLower(card.TypeLine)
	if strings.Contains(typeLine, "land") {
		return RoleLand
	}

	oracle := strings.ToLower(card.Oracle())
	for i := range roleRules {
		if roleRules[i].matches(oracle, typeLine) {
			return roleRules[i].role
		}
	}

	if strings.Contains(typeLine, "creature") || strings.Contains(typeLine, "planeswalker") {
		return RoleSynergy
	}
	return RoleUtility
}

// RoleFamilyOf aggregates a fine role into its coarse family.
func RoleFamilyOf(role Role) RoleFamily {
	switch role {
	case RoleRampRock, RoleRampDork, RoleRampLand:
		return FamilyRamp
	case RoleDrawEngine, RoleDrawBurst:
		return FamilyDraw
	case RoleRemoval:
		return FamilyRemoval
	case RoleSweeper:
		return FamilySweeper
	case RoleInteraction:
		return FamilyInteraction
	case RoleProtection:
		return FamilyProtection
	case RoleTutor:
		return FamilyTutor
	case RoleRecursion:
		return FamilyRecursion
	case RoleEnablerSac, RoleEnablerTok:
		return FamilyEnabler
	case RolePayoff:
		return FamilyPayoff
	case RoleFinisher:
		return FamilyFinisher
	case RoleFixing:
		return FamilyFixing
	case RoleSynergy:
		return FamilySynergy
	case RoleLand:
		return FamilyLand
	default:
		return FamilyUtility
	}
}

// isInteractionFamily reports whether a family counts toward the deck's
// total interaction minimum.
func isInteractionFamily(family RoleFamily) bool {
	switch family {
	case FamilyRemoval, FamilySweeper, FamilyInteraction, FamilyProtection:
		return true
	default:
		return false
	}
}
