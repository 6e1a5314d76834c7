package badge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func starstruckTiers(t *testing.T) []Tier {
	t.Helper()
	b := ByID("starstruck")
	require.NotNil(t, b, "starstruck must exist in the catalog")
	return b.Tiers
}

func TestEvaluateStarstruck(t *testing.T) {
	tiers := starstruckTiers(t)

	tests := []struct {
		name        string
		counter     int
		wantCurrent string // "" = none
		wantNext    string
		wantPercent float64
		wantLabel   string
	}{
		{
			name:        "no stars yet",
			counter:     0,
			wantCurrent: "",
			wantNext:    "Base",
			wantPercent: 0,
			wantLabel:   "0 / 16 to Base",
		},
		{
			name:        "exactly at base",
			counter:     16,
			wantCurrent: "Base",
			wantNext:    "Bronze",
			wantPercent: 0,
			wantLabel:   "16 / 128 to Bronze",
		},
		{
			name:        "between base and bronze",
			counter:     100,
			wantCurrent: "Base",
			wantNext:    "Bronze",
			wantPercent: float64(100-16) / float64(128-16) * 100,
			wantLabel:   "100 / 128 to Bronze",
		},
		{
			name:        "beyond gold",
			counter:     5000,
			wantCurrent: "Gold",
			wantNext:    "",
			wantPercent: 100,
			wantLabel:   MaxTierLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Evaluate(tt.counter, tiers)

			if tt.wantCurrent == "" {
				assert.Nil(t, p.CurrentTier)
			} else {
				require.NotNil(t, p.CurrentTier)
				assert.Equal(t, tt.wantCurrent, p.CurrentTier.Name)
			}

			if tt.wantNext == "" {
				assert.Nil(t, p.NextTier)
			} else {
				require.NotNil(t, p.NextTier)
				assert.Equal(t, tt.wantNext, p.NextTier.Name)
			}

			assert.InDelta(t, tt.wantPercent, p.Percent, 0.001)
			assert.Equal(t, tt.wantLabel, p.Label)
		})
	}
}

func TestEvaluateBoundsAndMonotonicity(t *testing.T) {
	tiers := starstruckTiers(t)

	last := -1.0
	for counter := 0; counter <= 5000; counter += 7 {
		p := Evaluate(counter, tiers)
		assert.GreaterOrEqual(t, p.Percent, 0.0, "counter %d", counter)
		assert.LessOrEqual(t, p.Percent, 100.0, "counter %d", counter)

		// Overall position never moves backwards as the counter grows.
		position := float64(tierIndex(p, tiers))*100 + p.Percent
		assert.GreaterOrEqual(t, position, last, "counter %d", counter)
		last = position
	}
}

func tierIndex(p Progress, tiers []Tier) int {
	if p.CurrentTier == nil {
		return 0
	}
	for i := range tiers {
		if tiers[i].Name == p.CurrentTier.Name {
			return i + 1
		}
	}
	return 0
}

func TestEvaluateDegenerateTierLists(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		p := Evaluate(10, nil)
		assert.Nil(t, p.CurrentTier)
		assert.Nil(t, p.NextTier)
		assert.Zero(t, p.Percent)
		assert.Empty(t, p.Label)
	})

	t.Run("no thresholds at all", func(t *testing.T) {
		p := Evaluate(10, []Tier{{Name: "Base", Requirement: "unknown"}})
		assert.Nil(t, p.CurrentTier)
		assert.Zero(t, p.Percent)
	})

	t.Run("zero width range clamps instead of dividing by zero", func(t *testing.T) {
		tiers := []Tier{
			{Name: "Base", Threshold: threshold(10)},
			{Name: "Bronze", Threshold: threshold(10)},
		}
		p := Evaluate(10, tiers)
		assert.Equal(t, 100.0, p.Percent)
	})
}

func TestEvaluateStopsAtFirstUnmetThreshold(t *testing.T) {
	// A later, invalidly lower threshold must not be reached once the
	// scan stops.
	tiers := []Tier{
		{Name: "Base", Threshold: threshold(100)},
		{Name: "Bronze", Threshold: threshold(5)},
	}
	p := Evaluate(10, tiers)
	assert.Nil(t, p.CurrentTier)
	require.NotNil(t, p.NextTier)
	assert.Equal(t, "Base", p.NextTier.Name)
}

func TestEvaluateMissingMiddleThresholdStopsScan(t *testing.T) {
	tiers := []Tier{
		{Name: "Base", Threshold: threshold(2)},
		{Name: "Bronze"}, // no public threshold
		{Name: "Silver", Threshold: threshold(50)},
	}
	p := Evaluate(100, tiers)
	require.NotNil(t, p.CurrentTier)
	assert.Equal(t, "Base", p.CurrentTier.Name, "scan must stop at the threshold-less tier")
	require.NotNil(t, p.NextTier)
	assert.Equal(t, "Bronze", p.NextTier.Name)
}
