package badge

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Progress describes where a counter value sits within a badge's tier
// ladder.
type Progress struct {
	CurrentTier *Tier
	NextTier    *Tier
	Percent     float64
	Label       string
}

// MaxTierLabel is shown when every tier has been reached.
const MaxTierLabel = "Max Tier Reached! 🏆"

// Evaluate maps a non-negative counter onto a badge's tier ladder.
//
// The current tier is found by scanning from the lowest tier and stopping
// at the first tier whose threshold is unset or not yet met. Thresholds
// are expected to be strictly increasing; the early stop is deliberate and
// doubles as the tie-break should the data ever violate that.
func Evaluate(current int, tiers []Tier) Progress {
	if len(tiers) == 0 || !anyThreshold(tiers) {
		return Progress{}
	}

	currentIndex := -1
	for i := range tiers {
		if tiers[i].Threshold != nil && current >= *tiers[i].Threshold {
			currentIndex = i
		} else {
			break
		}
	}

	var p Progress
	if currentIndex >= 0 {
		p.CurrentTier = &tiers[currentIndex]
	}
	if currentIndex < len(tiers)-1 {
		p.NextTier = &tiers[currentIndex+1]
	}

	switch {
	case p.NextTier == nil:
		p.Percent = 100
		p.Label = MaxTierLabel

	case p.CurrentTier == nil:
		target := 1
		if p.NextTier.Threshold != nil {
			target = *p.NextTier.Threshold
		}
		p.Percent = clampPercent(float64(current) / float64(target) * 100)
		p.Label = progressLabel(current, target, p.NextTier.Name)

	default:
		prev := 0
		if p.CurrentTier.Threshold != nil {
			prev = *p.CurrentTier.Threshold
		}
		next := 100
		if p.NextTier.Threshold != nil {
			next = *p.NextTier.Threshold
		}
		if next <= prev {
			// Zero-width range only happens on broken data; clamp
			// instead of dividing by zero.
			p.Percent = 100
		} else {
			p.Percent = clampPercent(float64(current-prev) / float64(next-prev) * 100)
		}
		p.Label = progressLabel(current, next, p.NextTier.Name)
	}

	return p
}

func anyThreshold(tiers []Tier) bool {
	for i := range tiers {
		if tiers[i].Threshold != nil {
			return true
		}
	}
	return false
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func progressLabel(current, target int, nextName string) string {
	return fmt.Sprintf("%s / %s to %s",
		humanize.Comma(int64(current)),
		humanize.Comma(int64(target)),
		nextName,
	)
}
