package deck

import "strings"

// staticBanlist names cards banned in Commander. It backstops the resolved
// card data's legality field, which can lag behind banlist announcements.
var staticBanlist = map[string]bool{
	"Ancestral Recall":       true,
	"Balance":                true,
	"Biorhythm":              true,
	"Black Lotus":            true,
	"Braids, Cabal Minion":   true,
	"Channel":                true,
	"Emrakul, the Aeons Torn": true,
	"Erayo, Soratami Ascendant": true,
	"Fastbond":               true,
	"Flash":                  true,
	"Gifts Ungiven":          true,
	"Griselbrand":            true,
	"Hullbreacher":           true,
	"Iona, Shield of Emeria": true,
	"Karakas":                true,
	"Leovold, Emissary of Trest": true,
	"Library of Alexandria":  true,
	"Limited Resources":      true,
	"Lutri, the Spellchaser": true,
	"Mox Emerald":            true,
	"Mox Jet":                true,
	"Mox Pearl":              true,
	"Mox Ruby":               true,
	"Mox Sapphire":           true,
	"Paradox Engine":         true,
	"Primeval Titan":         true,
	"Prophet of Kruphix":     true,
	"Recurring Nightmare":    true,
	"Sundering Titan":        true,
	"Sway of the Stars":      true,
	"Sylvan Primordial":      true,
	"Time Vault":             true,
	"Time Walk":              true,
	"Tinker":                 true,
	"Tolarian Academy":       true,
	"Trade Secrets":          true,
	"Upheaval":               true,
	"Yawgmoth's Bargain":     true,
}

// IsBanned reports whether a card name is on the static Commander banlist.
func IsBanned(name string) bool {
	return staticBanlist[name]
}

// isCommanderLegal applies the legality field plus the static banlist.
// Missing legality data is treated as legal; the banlist is the backstop.
func isCommanderLegal(legality, name string) bool {
	if IsBanned(name) {
		return false
	}
	switch strings.ToLower(legality) {
	case "banned", "not_legal":
		return false
	default:
		return true
	}
}
