package deck

import (
	"regexp"
	"strings"

	"github.com/deckforge/deckforge/internal/cards"
)

// Theme identifies a strategic theme inferred from the commander's text.
type Theme string

// Themes.
const (
	ThemeSpellslinger    Theme = "spellslinger"
	ThemeTokens          Theme = "tokens"
	ThemeCounters        Theme = "counters"
	ThemeSacrifice       Theme = "sacrifice"
	ThemeArtifacts       Theme = "artifacts"
	ThemeEnchantments    Theme = "enchantments"
	ThemeLandfall        Theme = "landfall"
	ThemeGraveyard       Theme = "graveyard"
	ThemeAttack          Theme = "attack"
	ThemeFlying          Theme = "flying"
	ThemeLifegain        Theme = "lifegain"
	ThemeDraw            Theme = "draw"
	ThemeVoltron         Theme = "voltron"
	ThemeETB             Theme = "etb"
	ThemeDeath           Theme = "death"
	ThemeTapUntap        Theme = "tap_untap"
	ThemeTopOfLibrary    Theme = "top_of_library"
	ThemeCopy            Theme = "copy"
	ThemeCommanderDamage Theme = "commander_damage"
)

// themeDef holds the detection patterns for one theme: commanderPatterns
// fire against the commander's oracle text to activate the theme,
// cardPhrases fire against candidate card text for synergy scoring, and
// typeHints are card types that loosely support the theme.
type themeDef struct {
	commanderPatterns []*regexp.Regexp
	cardPhrases       []string
	typeHints         []string
}

var themeDefs = map[Theme]themeDef{
	ThemeSpellslinger: {
		commanderPatterns: compile(`whenever you cast an instant`, `whenever you cast a sorcery`, `instant and sorcery spells`, `whenever you cast a noncreature spell`, `copy (it|target instant|target sorcery)`, `magecraft`, `prowess`),
		cardPhrases:       []string{"whenever you cast an instant", "whenever you cast a sorcery", "instant and sorcery", "prowess", "magecraft", "copy target instant", "copy target sorcery"},
		typeHints:         []string{"Instant", "Sorcery"},
	},
	ThemeTokens: {
		commanderPatterns: compile(`creates? .{0,60}tokens?`, `for each token`, `tokens? you control`, `populate`),
		cardPhrases:       []string{"create", "token", "populate", "for each creature you control"},
		typeHints:         []string{},
	},
	ThemeCounters: {
		commanderPatterns: compile(`\+1/\+1 counters?`, `proliferate`, `counters? on (it|each|target)`),
		cardPhrases:       []string{"+1/+1 counter", "proliferate", "counters on"},
	},
	ThemeSacrifice: {
		commanderPatterns: compile(`sacrifices? (a|another) creature`, `whenever you sacrifice`, `whenever (a|another) creature (you control )?dies`),
		cardPhrases:       []string{"sacrifice a creature", "sacrifice another", "whenever you sacrifice", "dies,"},
	},
	ThemeArtifacts: {
		commanderPatterns: compile(`artifacts? you control`, `whenever an artifact`, `affinity for artifacts`, `metalcraft`, `treasure`),
		cardPhrases:       []string{"artifact you control", "whenever an artifact", "affinity", "metalcraft", "treasure"},
		typeHints:         []string{"Artifact"},
	},
	ThemeEnchantments: {
		commanderPatterns: compile(`enchantments? you control`, `whenever you cast an enchantment`, `constellation`),
		cardPhrases:       []string{"enchantment you control", "whenever you cast an enchantment", "constellation"},
		typeHints:         []string{"Enchantment"},
	},
	ThemeLandfall: {
		commanderPatterns: compile(`landfall`, `whenever a land (enters|you control enters)`, `play an additional land`),
		cardPhrases:       []string{"landfall", "whenever a land", "play an additional land", "search your library for a land"},
	},
	ThemeGraveyard: {
		commanderPatterns: compile(`from (your|a) graveyard`, `mill`, `in your graveyard`),
		cardPhrases:       []string{"from your graveyard", "in your graveyard", "mill", "dredge", "flashback", "escape"},
	},
	ThemeAttack: {
		commanderPatterns: compile(`whenever .{0,40}attacks?`, `attacking creatures`, `extra combat`, `melee`, `battle cry`),
		cardPhrases:       []string{"attacks", "attacking creatures", "extra combat", "battle cry", "melee"},
	},
	ThemeFlying: {
		commanderPatterns: compile(`creatures? (you control )?with flying`, `whenever a creature with flying`),
		cardPhrases:       []string{"flying"},
	},
	ThemeLifegain: {
		commanderPatterns: compile(`whenever you gain life`, `you gain .{0,20}life`, `lifelink`),
		cardPhrases:       []string{"gain life", "lifelink", "whenever you gain life"},
	},
	ThemeDraw: {
		commanderPatterns: compile(`whenever you draw`, `draws? (a|two|three) cards?`, `draw your second card`),
		cardPhrases:       []string{"draw a card", "whenever you draw", "draw two cards"},
	},
	ThemeVoltron: {
		commanderPatterns: compile(`equipped creature`, `enchanted creature`, `attach`, `equipment you control`, `aura you control`),
		cardPhrases:       []string{"equip", "attach", "equipped creature", "enchanted creature", "enchant creature"},
		typeHints:         []string{"Equipment", "Aura"},
	},
	ThemeETB: {
		commanderPatterns: compile(`whenever (a|another) creature (you control )?enters`, `enters(,| the battlefield)`, `flicker|blink|exile .{0,40}return`),
		cardPhrases:       []string{"enters the battlefield", "enters,", "flicker", "exile, then return"},
	},
	ThemeDeath: {
		commanderPatterns: compile(`whenever (a|another) creature dies`, `when this creature dies`, `dies, `),
		cardPhrases:       []string{"dies,", "whenever a creature dies", "when this creature dies"},
	},
	ThemeTapUntap: {
		commanderPatterns: compile(`untap (target|all|another)`, `doesn't untap`, `\{t\}:`),
		cardPhrases:       []string{"untap", "{t}:"},
	},
	ThemeTopOfLibrary: {
		commanderPatterns: compile(`top card of your library`, `look at the top`, `reveal the top`, `play .{0,30}from the top`),
		cardPhrases:       []string{"top card of your library", "top of your library", "scry"},
	},
	ThemeCopy: {
		commanderPatterns: compile(`copy (it|target|that spell)`, `creates? a (token that's a )?copy`),
		cardPhrases:       []string{"copy", "copies"},
	},
	ThemeCommanderDamage: {
		commanderPatterns: compile(`double strike`, `deals combat damage to a player`, `can't be blocked`, `\+\d+/\+\d+ for each`),
		cardPhrases:       []string{"double strike", "can't be blocked", "deals combat damage to a player", "unblockable"},
	},
}

// allThemes lists the detectable themes in a stable order.
var allThemes = []Theme{
	ThemeSpellslinger, ThemeTokens, ThemeCounters, ThemeSacrifice,
	ThemeArtifacts, ThemeEnchantments, ThemeLandfall, ThemeGraveyard,
	ThemeAttack, ThemeFlying, ThemeLifegain, ThemeDraw, ThemeVoltron,
	ThemeETB, ThemeDeath, ThemeTapUntap, ThemeTopOfLibrary, ThemeCopy,
	ThemeCommanderDamage,
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// DetectThemes returns the themes whose commander patterns match the given
// oracle text. Empty text yields no themes.
func DetectThemes(oracleText string) []Theme {
	if oracleText == "" {
		return nil
	}
	text := strings.ToLower(oracleText)

	var active []Theme
	for _, theme := range allThemes {
		def := themeDefs[theme]
		for _, re := range def.commanderPatterns {
			if re.MatchString(text) {
				active = append(active, theme)
				break
			}
		}
	}
	return active
}

// CardMatchesTheme reports whether a card's oracle text supports the theme.
func CardMatchesTheme(card *cards.Card, theme Theme) bool {
	def, ok := themeDefs[theme]
	if !ok {
		return false
	}
	oracle := strings.ToLower(card.Oracle())
	if oracle == "" {
		return false
	}
	for _, p := range def.cardPhrases {
		if strings.Contains(oracle, p) {
			return true
		}
	}
	return false
}

// CardTypeSupportsTheme reports whether a card's type line loosely supports
// the theme, e.g. any instant supports spellslinger.
func CardTypeSupportsTheme(card *cards.Card, theme Theme) bool {
	def, ok := themeDefs[theme]
	if !ok {
		return false
	}
	for _, hint := range def.typeHints {
		if card.IsType(hint) {
			return true
		}
	}
	return false
}

// tribeVocabulary is the fixed set of creature subtypes the plan builder
// scans commander text for.
var tribeVocabulary = []string{
	"Angel", "Ape", "Assassin", "Barbarian", "Bat", "Bear", "Beast", "Bird",
	"Cat", "Cleric", "Construct", "Dwarf", "Demon", "Devil", "Dinosaur",
	"Dog", "Dragon", "Drake", "Druid", "Elemental", "Elf", "Faerie", "Fish",
	"Fox", "Frog", "Fungus", "Giant", "Goblin", "God", "Golem", "Griffin",
	"Horror", "Horse", "Human", "Hydra", "Illusion", "Insect", "Kithkin",
	"Knight", "Kor", "Kraken", "Merfolk", "Minotaur", "Monk", "Ninja",
	"Ooze", "Phoenix", "Pirate", "Rat", "Rogue", "Samurai", "Saproling",
	"Shaman", "Skeleton", "Sliver", "Snake", "Soldier", "Sphinx", "Spider",
	"Spirit", "Squirrel", "Treefolk", "Vampire", "Warrior", "Werewolf",
	"Wizard", "Wolf", "Wurm", "Zombie",
}

// tribePatterns match a tribe word (singular or plural) on word boundaries,
// so "Angel, Demon, or Dragon" counts all three.
var tribePatterns = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(tribeVocabulary))
	for _, tribe := range tribeVocabulary {
		out[tribe] = regexp.MustCompile(`\b` + strings.ToLower(tribe) + `s?\b`)
	}
	return out
}()

// DetectTribes scans the commander's oracle text for creature subtypes.
// The commander's own type line is deliberately NOT scanned first, to avoid
// self-tribe false positives (an Elf commander that never mentions Elves is
// not an Elf-tribal commander); the type line is a fallback only when the
// oracle text names no tribe.
func DetectTribes(commander *cards.Card) []string {
	oracle := strings.ToLower(commander.Oracle())

	var tribes []string
	for _, tribe := range tribeVocabulary {
		if oracle != "" && tribePatterns[tribe].MatchString(oracle) {
			tribes = append(tribes, tribe)
		}
	}
	if len(tribes) > 0 {
		return tribes
	}

	// Fallback: the commander's own subtypes.
	for _, sub := range commander.Subtypes() {
		for _, tribe := range tribeVocabulary {
			if strings.EqualFold(sub, tribe) {
				tribes = append(tribes, tribe)
			}
		}
	}
	return tribes
}

// CardMatchesTribe reports whether a card belongs to or rewards the tribe.
func CardMatchesTribe(card *cards.Card, tribe string) bool {
	for _, sub := range card.Subtypes() {
		if strings.EqualFold(sub, tribe) {
			return true
		}
	}
	oracle := strings.ToLower(card.Oracle())
	if oracle == "" {
		return false
	}
	if re, ok := tribePatterns[tribe]; ok {
		return re.MatchString(oracle)
	}
	return false
}
