package deck

// partialTargets is a sparse overlay on ProfileTargets: zero-valued fields
// are "unset" and pass the current value through unchanged.
type partialTargets struct {
	Ramp                int
	Draw                int
	Removal             int
	Sweeper             int
	Interaction         int
	Finisher            int
	Synergy             int
	MinInteractionTotal int
	LandsMin            int
	LandsMax            int
	AvgCMC              float64
	MaxCMC              float64
}

// mergeMode controls how mergeTargets combines an overlay field with the
// current value.
type mergeMode int

const (
	mergeOverride mergeMode = iota // Overlay replaces current
	mergeMax                       // Keep the larger value
	mergeMin                       // Keep the smaller value
)

// mergeTargets applies a sparse overlay onto targets in place. Only fields
// the overlay explicitly sets (nonzero) are touched, so each configuration
// layer's precedence stays auditable: the call sequence is the precedence.
func mergeTargets(t *ProfileTargets, o partialTargets, mode mergeMode) {
	mergeInt := func(dst *int, v int) {
		if v == 0 {
			return
		}
		switch mode {
		case mergeMax:
			if v > *dst {
				*dst = v
			}
		case mergeMin:
			if v < *dst {
				*dst = v
			}
		default:
			*dst = v
		}
	}
	mergeFloat := func(dst *float64, v float64) {
		if v == 0 {
			return
		}
		switch mode {
		case mergeMax:
			if v > *dst {
				*dst = v
			}
		case mergeMin:
			if v < *dst {
				*dst = v
			}
		default:
			*dst = v
		}
	}

	mergeInt(&t.Ramp, o.Ramp)
	mergeInt(&t.Draw, o.Draw)
	mergeInt(&t.Removal, o.Removal)
	mergeInt(&t.Sweeper, o.Sweeper)
	mergeInt(&t.Interaction, o.Interaction)
	mergeInt(&t.Finisher, o.Finisher)
	mergeInt(&t.Synergy, o.Synergy)
	mergeInt(&t.MinInteractionTotal, o.MinInteractionTotal)
	mergeInt(&t.LandsMin, o.LandsMin)
	mergeInt(&t.LandsMax, o.LandsMax)
	mergeFloat(&t.AvgCMC, o.AvgCMC)
	mergeFloat(&t.MaxCMC, o.MaxCMC)
}

// archetypeOverrides are the partial target overlays per archetype.
var archetypeOverrides = map[Archetype]partialTargets{
	ArchetypeBalanced: {},
	ArchetypeTribal: {
		Synergy: 30,
	},
	ArchetypeSpellslinger: {
		Draw:    13,
		Synergy: 28,
	},
	ArchetypeVoltron: {
		Finisher: 6,
		Synergy:  27,
		Removal:  8,
	},
	ArchetypeControl: {
		Removal:     13,
		Sweeper:     6,
		Interaction: 10,
		Draw:        13,
	},
}

// powerOverrides adjust several knobs at once per power bracket.
var powerOverrides = map[PowerLevel]partialTargets{
	PowerPrecon: {
		Ramp:     10,
		Draw:     9,
		Removal:  8,
		LandsMin: 36,
		LandsMax: 38,
		AvgCMC:   3.2,
	},
	PowerUpgraded: {},
	PowerHigh: {
		Ramp:        13,
		Draw:        12,
		Interaction: 8,
		LandsMin:    33,
		LandsMax:    36,
		AvgCMC:      2.6,
	},
	PowerCEDH: {
		Ramp:        15,
		Draw:        13,
		Interaction: 12,
		LandsMin:    30,
		LandsMax:    33,
		AvgCMC:      2.0,
	},
}

// ResolveTargets merges the commander plan with user options into concrete
// numeric goals. Layers apply in a fixed order: defaults, archetype, power,
// meta, playstyle, then the commander plan's structural overrides with max
// semantics (min for the land ceiling) so a casual profile never starves
// the commander's requirements.
func ResolveTargets(plan *CommanderPlan, opts Options) *ProfileTargets {
	targets := &ProfileTargets{
		Ramp:                12,
		Draw:                11,
		Removal:             10,
		Sweeper:             4,
		Interaction:         6,
		Finisher:            4,
		Synergy:             25,
		MinInteractionTotal: 10,
		LandsMin:            34,
		LandsMax:            38,
		AvgCMC:              plan.TargetAvgCMC,
		MaxCMC:              7,
	}

	// (a) Archetype.
	mergeTargets(targets, archetypeOverrides[opts.Archetype], mergeOverride)

	// (b) Power level.
	mergeTargets(targets, powerOverrides[opts.Power], mergeOverride)

	// (c) Meta adjustments raise floors, never lower them.
	for _, meta := range opts.Meta {
		switch meta {
		case "combo":
			mergeTargets(targets, partialTargets{Interaction: 9, MinInteractionTotal: 12}, mergeMax)
		case "graveyard":
			mergeTargets(targets, partialTargets{Removal: 11, Interaction: 8}, mergeMax)
		}
	}

	// (d) Playstyle adjustments.
	switch opts.Playstyle {
	case "stax_lite":
		mergeTargets(targets, partialTargets{Interaction: 9}, mergeMax)
	case "battlecruiser":
		mergeTargets(targets, partialTargets{MaxCMC: 9, AvgCMC: 3.4}, mergeMax)
	}

	// (e) Commander-plan structural overrides.
	for family, count := range plan.RoleOverrides {
		overlay := partialTargets{}
		switch family {
		case FamilyRamp:
			overlay.Ramp = count
		case FamilyDraw:
			overlay.Draw = count
		case FamilyRemoval:
			overlay.Removal = count
		case FamilySweeper:
			overlay.Sweeper = count
		case FamilyInteraction, FamilyProtection:
			overlay.Interaction = count
		case FamilyFinisher:
			overlay.Finisher = count
		default:
			overlay.Synergy = count
		}
		mergeTargets(targets, overlay, mergeMax)
	}
	if plan.HasWinCondition(WinCombo) {
		mergeTargets(targets, partialTargets{MinInteractionTotal: 12}, mergeMax)
	}
	// The land ceiling is the one "less is more" knob: a fast plan may
	// lower it, never raise it above the user's setting.
	if plan.Tempo == TempoFast {
		mergeTargets(targets, partialTargets{LandsMax: 36}, mergeMin)
	}

	return targets
}
