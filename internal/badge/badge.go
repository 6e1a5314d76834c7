package badge

import "fmt"

// Type classifies how a badge appears on a profile.
type Type string

const (
	TypeAchievement Type = "Achievement"
	TypeHighlight   Type = "Highlight"
	TypeRetired     Type = "Retired/Unreleased"
)

// Rarity is a coarse difficulty classification, ordered from most to least
// common. It is editorial, not derived from platform data.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// Category groups badges by the kind of activity that earns them.
type Category string

const (
	CategoryContribution Category = "Contribution"
	CategoryCommunity    Category = "Community"
	CategoryWorkflow     Category = "Workflow"
	CategorySecurity     Category = "Security"
	CategoryMembership   Category = "Membership"
	CategorySpecial      Category = "Special"
)

// rarityRank orders rarities for sorting. Higher = rarer.
var rarityRank = map[Rarity]int{
	RarityCommon:    0,
	RarityRare:      1,
	RarityEpic:      2,
	RarityLegendary: 3,
}

// Tier is one threshold level within a multi-level badge. Threshold is nil
// for tiers that have no public numeric requirement.
type Tier struct {
	Name        string `json:"name"`
	Requirement string `json:"requirement"`
	Threshold   *int   `json:"threshold,omitempty"`
}

// Badge is a single achievement definition. Badges are immutable static
// data; tiers, when present, are ordered ascending by threshold.
type Badge struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Emoji       string   `json:"emoji"`
	Description string   `json:"description"`
	HowToEarn   string   `json:"howToEarn"`
	Type        Type     `json:"type"`
	Rarity      Rarity   `json:"rarity"`
	Category    Category `json:"category"`
	Tiers       []Tier   `json:"tiers,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// Validate checks a single badge definition.
func (b Badge) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("badge %q has no id", b.Name)
	}
	if b.Name == "" {
		return fmt.Errorf("badge %s has no name", b.ID)
	}
	switch b.Type {
	case TypeAchievement, TypeHighlight, TypeRetired:
	default:
		return fmt.Errorf("badge %s has unknown type %q", b.ID, b.Type)
	}
	if _, ok := rarityRank[b.Rarity]; !ok {
		return fmt.Errorf("badge %s has unknown rarity %q", b.ID, b.Rarity)
	}
	switch b.Category {
	case CategoryContribution, CategoryCommunity, CategoryWorkflow,
		CategorySecurity, CategoryMembership, CategorySpecial:
	default:
		return fmt.Errorf("badge %s has unknown category %q", b.ID, b.Category)
	}

	// Tier thresholds must be strictly increasing so the evaluator's scan
	// order is meaningful.
	lastThreshold := -1
	for i, tier := range b.Tiers {
		if tier.Name == "" {
			return fmt.Errorf("badge %s tier %d has no name", b.ID, i)
		}
		if tier.Threshold == nil {
			continue
		}
		if *tier.Threshold <= lastThreshold {
			return fmt.Errorf("badge %s tier %q threshold %d is not increasing", b.ID, tier.Name, *tier.Threshold)
		}
		lastThreshold = *tier.Threshold
	}

	return nil
}

// ValidateCatalog checks every badge and the uniqueness of ids. Static data
// should fail fast rather than silently mis-render.
func ValidateCatalog(badges []Badge) error {
	seen := make(map[string]bool, len(badges))
	for _, b := range badges {
		if err := b.Validate(); err != nil {
			return err
		}
		if seen[b.ID] {
			return fmt.Errorf("duplicate badge id %s", b.ID)
		}
		seen[b.ID] = true
	}
	return nil
}
