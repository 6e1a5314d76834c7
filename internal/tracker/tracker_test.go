package tracker

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelhq/badgehunt/internal/badge"
	"github.com/kestrelhq/badgehunt/internal/github"
)

func TestBuildReports(t *testing.T) {
	stats := &github.UserStats{
		Login:           "octocat",
		MergedPRs:       100,
		BestRepoStars:   20,
		BestRepoName:    "beta",
		AcceptedAnswers: 0,
	}

	reports := BuildReports(stats)
	require.Len(t, reports, 3)

	byID := lo.KeyBy(reports, func(r Report) string { return r.Badge.ID })

	pullShark := byID["pull-shark"]
	assert.Equal(t, 100, pullShark.Counter)
	require.NotNil(t, pullShark.Progress.CurrentTier)
	assert.Equal(t, "Bronze", pullShark.Progress.CurrentTier.Name)
	require.NotNil(t, pullShark.Progress.NextTier)
	assert.Equal(t, "Silver", pullShark.Progress.NextTier.Name)
	assert.Equal(t, "100 merged pull requests", pullShark.Detail)

	starstruck := byID["starstruck"]
	assert.Equal(t, 20, starstruck.Counter)
	require.NotNil(t, starstruck.Progress.CurrentTier)
	assert.Equal(t, "Base", starstruck.Progress.CurrentTier.Name)
	assert.Equal(t, "20 stars on beta", starstruck.Detail)

	galaxyBrain := byID["galaxy-brain"]
	assert.Zero(t, galaxyBrain.Counter)
	assert.Nil(t, galaxyBrain.Progress.CurrentTier)
}

func TestBuildReportsFollowsCatalogOrder(t *testing.T) {
	reports := BuildReports(&github.UserStats{})
	ids := lo.Map(reports, func(r Report, _ int) string { return r.Badge.ID })
	assert.Equal(t, []string{"starstruck", "pull-shark", "galaxy-brain"}, ids)
}

func TestStarstruckDetailWithoutRepos(t *testing.T) {
	reports := BuildReports(&github.UserStats{})
	byID := lo.KeyBy(reports, func(r Report) string { return r.Badge.ID })
	assert.Equal(t, "no starred repository yet", byID["starstruck"].Detail)
}

func TestUntrackable(t *testing.T) {
	ids := lo.Map(Untrackable(), func(b *badge.Badge, _ int) string { return b.ID })
	assert.Equal(t, []string{"quickdraw", "pair-extraordinaire", "yolo"}, ids)
}
