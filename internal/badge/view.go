package badge

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Tab selects which badge type a view shows.
type Tab int

const (
	TabAchievements Tab = iota
	TabHighlights
	TabRetired
	TabAll
)

// OwnershipFilter narrows a view to owned or unowned badges.
type OwnershipFilter int

const (
	OwnershipAll OwnershipFilter = iota
	OwnershipOwned
	OwnershipUnowned
)

// SortKey selects the view's sort order.
type SortKey int

const (
	SortByName SortKey = iota
	SortByRarity
	SortByCategory
)

// Query is the full set of view inputs. The zero value shows all
// achievements sorted by name.
type Query struct {
	Tab       Tab
	Search    string
	Ownership OwnershipFilter
	Category  Category // empty = all categories
	Sort      SortKey
}

// View derives the filtered, sorted badge list for a query. It is a pure
// function of its inputs and is re-derived on every change.
func View(badges []Badge, owned map[string]bool, q Query) []Badge {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	result := lo.Filter(badges, func(b Badge, _ int) bool {
		return matchesTab(b, q.Tab) &&
			matchesSearch(b, search) &&
			matchesOwnership(b, owned, q.Ownership) &&
			(q.Category == "" || b.Category == q.Category)
	})

	sortBadges(result, q.Sort)
	return result
}

func matchesTab(b Badge, tab Tab) bool {
	switch tab {
	case TabAchievements:
		return b.Type == TypeAchievement
	case TabHighlights:
		return b.Type == TypeHighlight
	case TabRetired:
		return b.Type == TypeRetired
	default:
		return true
	}
}

func matchesSearch(b Badge, search string) bool {
	if search == "" {
		return true
	}
	for _, field := range []string{b.Name, b.Description, b.HowToEarn, b.Notes} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func matchesOwnership(b Badge, owned map[string]bool, filter OwnershipFilter) bool {
	switch filter {
	case OwnershipOwned:
		return owned[b.ID]
	case OwnershipUnowned:
		return !owned[b.ID]
	default:
		return true
	}
}

func sortBadges(badges []Badge, key SortKey) {
	switch key {
	case SortByRarity:
		// Rarest first; ties keep their original order.
		sort.SliceStable(badges, func(i, j int) bool {
			return rarityRank[badges[i].Rarity] > rarityRank[badges[j].Rarity]
		})
	case SortByCategory:
		sort.SliceStable(badges, func(i, j int) bool {
			return strings.ToLower(string(badges[i].Category)) < strings.ToLower(string(badges[j].Category))
		})
	default:
		sort.SliceStable(badges, func(i, j int) bool {
			return strings.ToLower(badges[i].Name) < strings.ToLower(badges[j].Name)
		})
	}
}
