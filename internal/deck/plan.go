package deck

import (
	"strings"

	"github.com/deckforge/deckforge/internal/cards"
)

// curveTargets maps a curve shape to its target average mana value.
var curveTargets = map[CurveShape]float64{
	CurveLow:     2.2,
	CurveMid:     2.8,
	CurveHigh:    3.4,
	CurveBimodal: 2.9,
}

// BuildPlan derives the complete strategy plan for a commander. It is a
// pure function of the commander's card, consulting the cache first when
// the commander has a stable oracle id.
func BuildPlan(commander *cards.Card, cache PlanCache) *CommanderPlan {
	if cache == nil {
		cache = NopPlanCache{}
	}
	if commander.OracleID != nil {
		if plan, ok := cache.Get(*commander.OracleID); ok {
			return plan
		}
	}

	oracle := strings.ToLower(commander.Oracle())

	plan := &CommanderPlan{
		CommanderName: commander.Name,
		ColorIdentity: commander.ColorIdentity,
		Themes:        DetectThemes(commander.Oracle()),
		PreferredTribes: DetectTribes(commander),
		CheatsBigPlay: detectsCheat(oracle),
	}

	plan.WinConditions = detectWinConditions(plan, oracle)
	plan.Tempo, plan.Curve = classifyTempoAndCurve(plan, oracle)
	plan.TargetAvgCMC = curveTargets[plan.Curve]
	plan.KeyResources = detectKeyResources(plan)
	plan.RequiredPackages = requiredPackages(plan)
	plan.RoleOverrides = roleOverrides(plan)
	plan.PackageMinimums = packageMinimums(plan)
	plan.WinConTargets = winConTargets(plan)

	if commander.OracleID != nil {
		cache.Put(*commander.OracleID, plan)
	}
	return plan
}

// detectsCheat reports whether the commander puts creatures into play
// without casting them, which relaxes the fast-tempo mana-value ceiling.
func detectsCheat(oracle string) bool {
	return strings.Contains(oracle, "put it onto the battlefield") ||
		strings.Contains(oracle, "put that card onto the battlefield") ||
		strings.Contains(oracle, "onto the battlefield tapped and attacking") ||
		strings.Contains(oracle, "from your hand onto the battlefield")
}

// detectWinConditions infers how the deck closes out games. Every commander
// has at least one win condition: combat is the default.
func detectWinConditions(plan *CommanderPlan, oracle string) []WinCondition {
	var wins []WinCondition

	if plan.HasTheme(ThemeCommanderDamage) || plan.HasTheme(ThemeVoltron) {
		wins = append(wins, WinCommanderDamage)
	}
	if plan.HasTheme(ThemeSacrifice) || strings.Contains(oracle, "each opponent loses") ||
		strings.Contains(oracle, "loses 1 life") {
		wins = append(wins, WinDrain)
	}
	if plan.HasTheme(ThemeTokens) {
		wins = append(wins, WinTokens)
	}
	if strings.Contains(oracle, "wins the game") || strings.Contains(oracle, "untap") &&
		strings.Contains(oracle, "copy") {
		wins = append(wins, WinCombo)
	}
	if strings.Contains(oracle, "mills") || strings.Contains(oracle, "mill ") {
		wins = append(wins, WinMill)
	}

	if len(wins) == 0 {
		wins = append(wins, WinCombat)
	}
	return wins
}

// classifyTempoAndCurve maps themes and text to a tempo class and curve
// shape via ordered rules; the first matching rule wins.
func classifyTempoAndCurve(plan *CommanderPlan, oracle string) (TempoClass, CurveShape) {
	switch {
	case plan.HasTheme(ThemeAttack) && plan.HasTheme(ThemeTokens):
		return TempoFast, CurveLow
	case plan.HasTheme(ThemeSpellslinger) && plan.HasTheme(ThemeCommanderDamage):
		return TempoFast, CurveLow
	case plan.CheatsBigPlay:
		// Cheating fat into play wants both cheap setup and huge targets,
		// even when the commander is otherwise aggressive.
		return TempoMedium, CurveBimodal
	case plan.HasTheme(ThemeAttack) || plan.HasTheme(ThemeCommanderDamage):
		return TempoFast, CurveLow
	case plan.HasTheme(ThemeGraveyard) && strings.Contains(oracle, "battlefield"):
		return TempoMedium, CurveBimodal
	case plan.HasTheme(ThemeLandfall) || plan.HasTheme(ThemeEnchantments):
		return TempoSlow, CurveHigh
	case plan.HasWinCondition(WinCombo) || plan.HasTheme(ThemeDraw):
		return TempoVariable, CurveMid
	case len(plan.Themes) == 0:
		return TempoMedium, CurveMid
	default:
		return TempoMedium, CurveMid
	}
}

// detectKeyResources names the resources the plan leans on, for the
// strategy explanation and shortlist relevance checks.
func detectKeyResources(plan *CommanderPlan) []string {
	var res []string
	if plan.HasTheme(ThemeSacrifice) || plan.HasTheme(ThemeDeath) {
		res = append(res, "creatures to sacrifice")
	}
	if plan.HasTheme(ThemeTokens) {
		res = append(res, "token production")
	}
	if plan.HasTheme(ThemeSpellslinger) {
		res = append(res, "cheap instants and sorceries")
	}
	if plan.HasTheme(ThemeGraveyard) {
		res = append(res, "a stocked graveyard")
	}
	if plan.HasTheme(ThemeVoltron) {
		res = append(res, "equipment and auras")
	}
	if plan.HasTheme(ThemeLandfall) {
		res = append(res, "extra land drops")
	}
	if len(res) == 0 {
		res = append(res, "creature combat")
	}
	return res
}

// requiredPackages maps active themes to the packages the deck must carry.
func requiredPackages(plan *CommanderPlan) []PackageID {
	seen := make(map[PackageID]bool)
	var pkgs []PackageID
	add := func(ids ...PackageID) {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				pkgs = append(pkgs, id)
			}
		}
	}

	// Every deck needs its ramp and draw density tracked.
	add(PkgRampDensity, PkgDrawDensity)

	if plan.HasTheme(ThemeSacrifice) || plan.HasTheme(ThemeDeath) {
		add(PkgSacOutlets, PkgSacFodder, PkgSacPayoffs)
	}
	if plan.HasTheme(ThemeTokens) {
		add(PkgTokenMakers, PkgTokenPayoffs)
	}
	if plan.HasTheme(ThemeGraveyard) {
		add(PkgReanimTargets, PkgReanimEffects)
	}
	if plan.HasTheme(ThemeSpellslinger) {
		add(PkgCheapSpells, PkgSpellPayoffs)
	}
	if plan.HasTheme(ThemeVoltron) {
		add(PkgEquipment, PkgAuras, PkgVoltronProtect)
	}
	return pkgs
}

// roleOverrides bumps role-family targets per active theme. These are
// minimums merged into the profile with max semantics, so a commander's
// structural needs survive casual user settings.
func roleOverrides(plan *CommanderPlan) map[RoleFamily]int {
	overrides := make(map[RoleFamily]int)
	bump := func(family RoleFamily, n int) {
		if n > overrides[family] {
			overrides[family] = n
		}
	}

	for _, theme := range plan.Themes {
		switch theme {
		case ThemeSpellslinger:
			bump(FamilyDraw, 13)
			bump(FamilySynergy, 28)
		case ThemeVoltron:
			bump(FamilyFinisher, 6)
			bump(FamilySynergy, 27)
		case ThemeTokens, ThemeSacrifice:
			bump(FamilyEnabler, 8)
			bump(FamilySynergy, 26)
		case ThemeGraveyard:
			bump(FamilyRecursion, 6)
		case ThemeLandfall:
			bump(FamilyRamp, 14)
		case ThemeDraw:
			bump(FamilyDraw, 13)
		case ThemeLifegain:
			bump(FamilySynergy, 26)
		}
	}
	if plan.HasWinCondition(WinCombo) {
		bump(FamilyInteraction, 8)
	}
	return overrides
}

// packageMinimums computes how many cards of each required package the deck
// needs. Minimums are theme-sensitive: a dedicated sacrifice deck wants
// four outlets where a deck that merely touches the theme wants three.
func packageMinimums(plan *CommanderPlan) map[PackageID]int {
	mins := make(map[PackageID]int)
	for _, pkg := range plan.RequiredPackages {
		switch pkg {
		case PkgSacOutlets:
			if plan.HasTheme(ThemeSacrifice) {
				mins[pkg] = 4
			} else {
				mins[pkg] = 3
			}
		case PkgSacFodder:
			mins[pkg] = 8
		case PkgSacPayoffs:
			mins[pkg] = 5
		case PkgTokenMakers:
			mins[pkg] = 8
		case PkgTokenPayoffs:
			mins[pkg] = 5
		case PkgReanimTargets:
			mins[pkg] = 6
		case PkgReanimEffects:
			mins[pkg] = 5
		case PkgCheapSpells:
			mins[pkg] = 15
		case PkgSpellPayoffs:
			mins[pkg] = 8
		case PkgEquipment:
			mins[pkg] = 8
		case PkgAuras:
			mins[pkg] = 4
		case PkgVoltronProtect:
			mins[pkg] = 6
		case PkgRampDensity:
			mins[pkg] = 10
		case PkgDrawDensity:
			mins[pkg] = 10
		}
	}
	return mins
}

// winConTargets computes payoff-count targets per win condition.
func winConTargets(plan *CommanderPlan) map[WinCondition]int {
	targets := make(map[WinCondition]int)
	for _, wc := range plan.WinConditions {
		switch wc {
		case WinDrain:
			targets[wc] = 6
		case WinTokens:
			targets[wc] = 8
		case WinCombo:
			targets[wc] = 4
		case WinMill:
			targets[wc] = 6
		case WinCommanderDamage:
			targets[wc] = 8
		case WinCombat:
			targets[wc] = 5
		}
	}
	return targets
}

// winConPackages maps win conditions to the packages that advance them,
// used by the package-completion score.
var winConPackages = map[WinCondition][]PackageID{
	WinDrain:           {PkgSacPayoffs, PkgSacOutlets},
	WinTokens:          {PkgTokenMakers, PkgTokenPayoffs},
	WinCombo:           {PkgCheapSpells},
	WinCommanderDamage: {PkgEquipment, PkgAuras, PkgVoltronProtect},
	WinMill:            nil,
	WinCombat:          nil,
}
