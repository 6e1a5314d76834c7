package app

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/kestrelhq/badgehunt/internal/assistant"
	"github.com/kestrelhq/badgehunt/internal/badge"
)

const progressBarWidth = 24

func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n\n")

	switch m.tab {
	case tabAchievements, tabHighlights, tabRetired:
		if m.detail {
			s.WriteString(m.renderDetail())
		} else {
			s.WriteString(m.renderCatalog())
		}
	case tabGuides:
		s.WriteString(m.renderGuides())
	case tabFAQ:
		s.WriteString(m.renderFAQ())
	case tabProfile:
		s.WriteString(m.renderProfile())
	case tabChat:
		s.WriteString(m.renderChatTab())
	}

	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m *Model) renderHeader() string {
	var tabs []string
	for i := tab(0); i < tabCount; i++ {
		if i == m.tab {
			tabs = append(tabs, m.theme.TabActive.Render(tabNames[i]))
		} else {
			tabs = append(tabs, m.theme.Tab.Render(tabNames[i]))
		}
	}

	header := m.theme.Title.Render("badgehunt") + "  " + strings.Join(tabs, " ")
	if m.updateNotice != "" {
		header += "  " + m.theme.Accent.Render("update available: "+m.updateNotice)
	}
	return header
}

func (m *Model) renderCatalog() string {
	var s strings.Builder

	if m.searching || m.search.Value() != "" {
		s.WriteString(m.search.View() + "\n\n")
	}
	s.WriteString(m.theme.Muted.Render(m.filterSummary()) + "\n\n")

	if len(m.visible) == 0 {
		s.WriteString(m.theme.Muted.Render("no badges match"))
		return s.String()
	}

	for i, b := range m.visible {
		marker := "  "
		if i == m.cursor {
			marker = m.theme.Accent.Render("> ")
		}

		owned := "  "
		if m.store.IsOwned(b.ID) {
			owned = m.theme.Owned.Render("✓ ")
		}

		line := fmt.Sprintf("%s%s%-28s %-12s %s",
			marker, owned, b.Name, m.theme.Rarity(b.Rarity), m.theme.Muted.Render(string(b.Category)))
		s.WriteString(line + "\n")
	}
	return s.String()
}

func (m *Model) filterSummary() string {
	parts := []string{fmt.Sprintf("%d badges", len(m.visible))}

	switch m.ownership {
	case badge.OwnershipOwned:
		parts = append(parts, "owned only")
	case badge.OwnershipUnowned:
		parts = append(parts, "unowned only")
	}
	if cat := categoryCycle[m.categoryIx]; cat != "" {
		parts = append(parts, "category: "+string(cat))
	}
	switch m.sortKey {
	case badge.SortByRarity:
		parts = append(parts, "by rarity")
	case badge.SortByCategory:
		parts = append(parts, "by category")
	default:
		parts = append(parts, "by name")
	}
	return strings.Join(parts, " · ")
}

func (m *Model) renderDetail() string {
	b := m.selected()
	if b == nil {
		return ""
	}

	var s strings.Builder
	s.WriteString(m.theme.Title.Render(b.Name) + "  " + m.theme.Rarity(b.Rarity) + "\n")
	s.WriteString(m.theme.Muted.Render(string(b.Type)+" · "+string(b.Category)) + "\n\n")
	s.WriteString(wrap(b.Description, m.contentWidth()) + "\n\n")
	s.WriteString(m.theme.Accent.Render("How to earn: ") + wrap(b.HowToEarn, m.contentWidth()) + "\n")
	if b.Notes != "" {
		s.WriteString(m.theme.Muted.Render(wrap(b.Notes, m.contentWidth())) + "\n")
	}

	if len(b.Tiers) > 0 {
		s.WriteString("\n" + m.theme.Title.Render("Tiers") + "\n")
		for _, tier := range b.Tiers {
			s.WriteString(fmt.Sprintf("  %-8s %s\n", tier.Name, tier.Requirement))
		}
	}

	s.WriteString("\n")
	if m.store.IsOwned(b.ID) {
		s.WriteString(m.theme.Owned.Render("✓ owned") + "\n")
	}
	if _, ok := m.store.Image(b.ID); ok {
		s.WriteString(m.theme.Muted.Render("generated image cached, y to copy") + "\n")
	} else if m.generating[b.ID] {
		s.WriteString(m.spinner.View() + " generating image\n")
	}

	return m.theme.Detail.Render(s.String())
}

func (m *Model) renderGuides() string {
	var s strings.Builder
	for i, g := range badge.Guides {
		marker := "  "
		if i == m.guideCursor {
			marker = m.theme.Accent.Render("> ")
		}
		s.WriteString(marker + m.theme.Title.Render(g.Title) + "\n")
		if i == m.guideCursor {
			for n, step := range g.Steps {
				s.WriteString(fmt.Sprintf("  %d. %s: %s\n", n+1, step.Title, wrap(step.Description, m.contentWidth())))
			}
			if len(g.Tips) > 0 {
				s.WriteString("  " + m.theme.Accent.Render("Tips") + "\n")
				for _, tip := range g.Tips {
					s.WriteString("  • " + m.theme.Muted.Render(wrap(tip, m.contentWidth())) + "\n")
				}
			}
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m *Model) renderFAQ() string {
	var s strings.Builder
	for i, f := range badge.FAQs {
		marker := "  "
		if i == m.faqCursor {
			marker = m.theme.Accent.Render("> ")
		}
		s.WriteString(marker + m.theme.Title.Render(f.Question) + "\n")
		if i == m.faqCursor {
			s.WriteString("  " + wrap(f.Answer, m.contentWidth()) + "\n")
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m *Model) renderProfile() string {
	var s strings.Builder
	s.WriteString(m.username.View() + "\n\n")

	switch {
	case m.fetching:
		s.WriteString(m.spinner.View() + " looking up profile...\n")
	case m.profileErr != "":
		s.WriteString(m.theme.Error.Render(m.profileErr) + "\n")
	case m.stats != nil:
		s.WriteString(m.theme.Title.Render(m.stats.Name) + " " + m.theme.Muted.Render("@"+m.stats.Login) + "\n")
		if m.stats.Bio != "" {
			s.WriteString(wrap(m.stats.Bio, m.contentWidth()) + "\n")
		}
		s.WriteString(fmt.Sprintf("%s public repos · %s total stars\n\n",
			humanize.Comma(int64(m.stats.PublicRepos)), humanize.Comma(int64(m.stats.TotalStars))))

		for _, r := range m.reports {
			tierName := "unranked"
			if r.Progress.CurrentTier != nil {
				tierName = r.Progress.CurrentTier.Name
			}
			s.WriteString(fmt.Sprintf("%s %s\n", m.theme.Title.Render(r.Badge.Name), m.theme.Accent.Render(tierName)))
			s.WriteString("  " + m.theme.ProgressBar(r.Progress.Percent, progressBarWidth) + "  " + r.Progress.Label + "\n")
			s.WriteString("  " + m.theme.Muted.Render(r.Detail) + "\n\n")
		}
	default:
		s.WriteString(m.theme.Muted.Render("enter a username to check badge progress") + "\n")
	}
	return s.String()
}

func (m *Model) renderChatTab() string {
	var s strings.Builder
	s.WriteString(m.chatView.View() + "\n\n")
	if m.streaming {
		s.WriteString(m.spinner.View() + " thinking...\n")
	}
	s.WriteString(m.chatInput.View())
	return s.String()
}

// renderChat rebuilds the chat transcript into the viewport.
func (m *Model) renderChat() {
	width := m.chatView.Width
	if width <= 0 {
		width = 78
	}

	var s strings.Builder
	for _, msg := range m.history {
		if msg.Role == assistant.RoleUser {
			s.WriteString(m.theme.ChatUser.Render("you") + "\n")
		} else {
			s.WriteString(m.theme.ChatUser.Render("assistant") + "\n")
		}
		s.WriteString(m.theme.ChatBot.Render(wordwrap.String(msg.Content, width)) + "\n\n")
	}
	if m.partial != "" {
		s.WriteString(m.theme.ChatUser.Render("assistant") + "\n")
		s.WriteString(m.theme.ChatBot.Render(wordwrap.String(m.partial, width)) + "\n")
	}

	m.chatView.SetContent(s.String())
	m.chatView.GotoBottom()
}

func (m *Model) renderFooter() string {
	if m.status != "" {
		return m.theme.Accent.Render(m.status)
	}

	help := "tab: switch · q: quit · t: theme"
	switch m.tab {
	case tabAchievements, tabHighlights, tabRetired:
		if m.detail {
			help = "x: toggle owned · g: generate image · y: copy · esc: back"
		} else {
			help = "enter: details · x: toggle owned · /: search · o/s/c: filters · " + help
		}
	case tabProfile:
		help = "enter: edit username · " + help
	case tabChat:
		help = "enter: type message · " + help
	}
	return m.theme.Help.Render(help)
}

func (m *Model) contentWidth() int {
	if m.width > 8 {
		return m.width - 8
	}
	return 72
}

func wrap(text string, width int) string {
	return wordwrap.String(text, width)
}
