package harness

import (
	"strings"
	"testing"
)

func TestRunReferenceCommanders(t *testing.T) {
	results := Run(7)
	if len(results) != 4 {
		t.Fatalf("results = %d, want one per reference commander", len(results))
	}

	for _, r := range results {
		t.Run(r.Commander, func(t *testing.T) {
			if r.Failure != "" {
				t.Fatalf("build failed: %s", r.Failure)
			}
			if r.ShortBy != 0 {
				t.Errorf("ShortBy = %d, want 0 with the synthetic pool", r.ShortBy)
			}
			axes := map[string]float64{
				"curve":       r.Metrics.CurveScore,
				"roleRatio":   r.Metrics.RoleRatioScore,
				"synergy":     r.Metrics.SynergyDensity,
				"stability":   r.Metrics.ManaStability,
				"interaction": r.Metrics.InteractionScore,
				"composite":   r.Metrics.Composite,
			}
			for name, v := range axes {
				if v < 0 || v > 1 {
					t.Errorf("%s = %v, want within [0, 1]", name, v)
				}
			}
			if r.Metrics.Composite == 0 {
				t.Error("composite = 0, want a nonzero score for a successful build")
			}
		})
	}
}

func TestRunSeededReplay(t *testing.T) {
	first := Run(11)
	second := Run(11)
	if len(first) != len(second) {
		t.Fatalf("result counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Metrics != second[i].Metrics {
			t.Errorf("%s metrics differ between runs with the same seed", first[i].Commander)
		}
	}
}

func TestSyntheticPoolResolves(t *testing.T) {
	pool, cardMap := SyntheticPool([]string{"R", "G"})
	if len(pool) == 0 {
		t.Fatal("empty synthetic pool")
	}
	for _, oc := range pool {
		card, ok := cardMap[strings.ToLower(oc.Name)]
		if !ok || card == nil {
			t.Fatalf("pool entry %s missing from card map", oc.Name)
		}
	}
}
