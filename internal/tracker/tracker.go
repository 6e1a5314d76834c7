package tracker

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/kestrelhq/badgehunt/internal/badge"
	"github.com/kestrelhq/badgehunt/internal/github"
)

// Report pairs a tiered badge with the user's live counter and the
// resulting tier evaluation.
type Report struct {
	Badge    *badge.Badge
	Counter  int
	Detail   string
	Progress badge.Progress
}

// counterFor extracts the stat that drives a badge's tiers. Only some
// tiered badges map onto data the public API exposes.
var counterFor = map[string]func(*github.UserStats) (int, string){
	"pull-shark": func(s *github.UserStats) (int, string) {
		return s.MergedPRs, fmt.Sprintf("%s merged pull requests", humanize.Comma(int64(s.MergedPRs)))
	},
	"starstruck": func(s *github.UserStats) (int, string) {
		if s.BestRepoName == "" {
			return s.BestRepoStars, "no starred repository yet"
		}
		return s.BestRepoStars, fmt.Sprintf("%s stars on %s", humanize.Comma(int64(s.BestRepoStars)), s.BestRepoName)
	},
	"galaxy-brain": func(s *github.UserStats) (int, string) {
		return s.AcceptedAnswers, fmt.Sprintf("%s accepted discussion answers", humanize.Comma(int64(s.AcceptedAnswers)))
	},
}

// UntrackableNote explains why an earnable badge has no report.
const UntrackableNote = "not measurable from public profile data"

// untrackableIDs are earnable badges whose criteria the public API does
// not expose: closing speed, co-authorship, and review bypass are not
// queryable.
var untrackableIDs = []string{"quickdraw", "pair-extraordinaire", "yolo"}

// BuildReports evaluates every trackable tiered badge against the
// fetched stats, in catalog order.
func BuildReports(stats *github.UserStats) []Report {
	return lo.FilterMap(badge.Catalog, func(b badge.Badge, _ int) (Report, bool) {
		extract, ok := counterFor[b.ID]
		if !ok {
			return Report{}, false
		}
		counter, detail := extract(stats)
		catalogBadge := badge.ByID(b.ID)
		return Report{
			Badge:    catalogBadge,
			Counter:  counter,
			Detail:   detail,
			Progress: badge.Evaluate(counter, catalogBadge.Tiers),
		}, true
	})
}

// Untrackable lists the earnable badges that cannot be measured from the
// public API, so the profile view can say so instead of showing zeros.
func Untrackable() []*badge.Badge {
	return lo.Map(untrackableIDs, func(id string, _ int) *badge.Badge {
		return badge.ByID(id)
	})
}
