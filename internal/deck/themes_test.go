package deck

import (
	"testing"
)

func TestDetectThemes(t *testing.T) {
	tests := []struct {
		name   string
		oracle string
		want   []Theme
	}{
		{
			name:   "empty text yields no themes",
			oracle: "",
			want:   nil,
		},
		{
			name:   "spellslinger",
			oracle: "Whenever you cast an instant or sorcery spell, copy it.",
			want:   []Theme{ThemeSpellslinger, ThemeCopy},
		},
		{
			name:   "tokens",
			oracle: "At the beginning of combat on your turn, create two 1/1 green Insect creature tokens.",
			want:   []Theme{ThemeTokens},
		},
		{
			name:   "sacrifice and death",
			oracle: "Whenever another creature dies, you gain 1 life and draw a card.",
			want:   []Theme{ThemeSacrifice, ThemeDeath},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectThemes(tt.oracle)
			for _, want := range tt.want {
				if !containsTheme(got, want) {
					t.Errorf("DetectThemes() = %v, missing %v", got, want)
				}
			}
			if tt.want == nil && got != nil {
				t.Errorf("DetectThemes() = %v, want nil", got)
			}
		})
	}
}

func containsTheme(themes []Theme, want Theme) bool {
	for _, th := range themes {
		if th == want {
			return true
		}
	}
	return false
}

func TestCardMatchesTheme(t *testing.T) {
	prowess := testCard("Monastery Adept", "Creature — Human Monk", "Prowess.", 2)
	if !CardMatchesTheme(prowess, ThemeSpellslinger) {
		t.Error("prowess card should match spellslinger theme text")
	}

	vanilla := testCard("Grizzly", "Creature — Bear", "", 2)
	if CardMatchesTheme(vanilla, ThemeSpellslinger) {
		t.Error("vanilla creature should not match spellslinger theme text")
	}

	raider := testCard("Border Raider", "Creature — Human Warrior",
		"Whenever this creature attacks, it gets +1/+0 until end of turn.", 2, "R")
	if !CardMatchesTheme(raider, ThemeAttack) {
		t.Error("attack trigger should match attack theme text")
	}

	// A generic trigger must not read as attack synergy just for starting
	// with "whenever".
	cleric := testCard("Parish Healer", "Creature — Human Cleric",
		"Whenever you gain life, scry 1.", 2, "W")
	if CardMatchesTheme(cleric, ThemeAttack) {
		t.Error("lifegain trigger should not match attack theme text")
	}
}

func TestCardTypeSupportsTheme(t *testing.T) {
	bolt := testCard("Bolt", "Instant", "Bolt deals 3 damage to any target.", 1)
	if !CardTypeSupportsTheme(bolt, ThemeSpellslinger) {
		t.Error("instant should type-support spellslinger")
	}
	if CardTypeSupportsTheme(bolt, ThemeVoltron) {
		t.Error("instant should not type-support voltron")
	}

	sword := testCard("Sword", "Artifact — Equipment", "Equip {2}.", 3)
	if !CardTypeSupportsTheme(sword, ThemeVoltron) {
		t.Error("equipment should type-support voltron")
	}
}

func TestDetectTribes(t *testing.T) {
	t.Run("oracle text names tribes", func(t *testing.T) {
		kaalia := testCommander("Kaalia of the Vast", "Legendary Creature — Human Cleric",
			"Whenever Kaalia of the Vast attacks, you may put an Angel, Demon, or Dragon creature card from your hand onto the battlefield tapped and attacking.",
			4, "W", "B", "R")

		tribes := DetectTribes(kaalia)
		for _, want := range []string{"Angel", "Demon", "Dragon"} {
			if !containsString(tribes, want) {
				t.Errorf("DetectTribes() = %v, missing %s", tribes, want)
			}
		}
		// The commander's own Human/Cleric subtypes must not leak in when the
		// text names tribes.
		if containsString(tribes, "Human") || containsString(tribes, "Cleric") {
			t.Errorf("DetectTribes() = %v, self-subtypes leaked in", tribes)
		}
	})

	t.Run("type line fallback", func(t *testing.T) {
		lord := testCommander("Elf Lord", "Legendary Creature — Elf Warrior",
			"Other creatures you control get +1/+1.", 3, "G")
		tribes := DetectTribes(lord)
		if !containsString(tribes, "Elf") {
			t.Errorf("DetectTribes() = %v, want Elf fallback from type line", tribes)
		}
	})
}

func containsString(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

func TestCardMatchesTribe(t *testing.T) {
	angel := testCard("Serra's Champion", "Creature — Angel", "Flying, vigilance.", 5, "W")
	if !CardMatchesTribe(angel, "Angel") {
		t.Error("Angel creature should match Angel tribe")
	}
	if CardMatchesTribe(angel, "Demon") {
		t.Error("Angel creature should not match Demon tribe")
	}

	lord := testCard("Choir Director", "Creature — Human Cleric",
		"Other Angels you control get +1/+1.", 3, "W")
	if !CardMatchesTribe(lord, "Angel") {
		t.Error("Angel payoff text should match Angel tribe")
	}
}
