package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kestrelhq/badgehunt/internal/github"
	"github.com/kestrelhq/badgehunt/internal/tracker"
)

// statsMsg delivers the result of a profile fetch. Seq ties it to the
// request that started it so late results for abandoned lookups are
// dropped.
type statsMsg struct {
	seq     int
	stats   *github.UserStats
	reports []tracker.Report
	err     error
}

// imageMsg delivers a generated badge image.
type imageMsg struct {
	badgeID string
	dataURI string
	err     error
}

// chatDeltaMsg delivers one streamed chat fragment.
type chatDeltaMsg struct {
	seq   int
	delta string
}

// chatDoneMsg marks the end of a streamed reply.
type chatDoneMsg struct {
	seq int
}

// updateMsg announces that a newer release is available.
type updateMsg struct {
	version string
}

// UpdateNotice builds the message the program sends into a running UI
// when the background update check finds a newer release.
func UpdateNotice(version string) tea.Msg {
	return updateMsg{version: version}
}

// statusClearMsg expires a transient status line.
type statusClearMsg struct {
	seq int
}
