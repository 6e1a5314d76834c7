package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kestrelhq/badgehunt/internal/badge"
	"github.com/kestrelhq/badgehunt/internal/tracker"
)

const statusLifetime = 3 * time.Second

func (m *Model) fetchStatsCmd(seq int, username string) tea.Cmd {
	gh := m.github
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stats, err := gh.FetchUserStats(ctx, username)
		if err != nil {
			return statsMsg{seq: seq, err: err}
		}
		return statsMsg{seq: seq, stats: stats, reports: tracker.BuildReports(stats)}
	}
}

func (m *Model) generateImageCmd(b *badge.Badge) tea.Cmd {
	ai := m.assistant
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		uri, err := ai.GenerateBadgeImage(ctx, b)
		return imageMsg{badgeID: b.ID, dataURI: uri, err: err}
	}
}

// readChatDeltaCmd pulls one fragment from the active stream. The model
// re-issues it after every delta until the channel closes.
func readChatDeltaCmd(seq int, stream <-chan string) tea.Cmd {
	return func() tea.Msg {
		delta, ok := <-stream
		if !ok {
			return chatDoneMsg{seq: seq}
		}
		return chatDeltaMsg{seq: seq, delta: delta}
	}
}

func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}
