package app

import (
	"context"
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/kestrelhq/badgehunt/internal/assistant"
	"github.com/kestrelhq/badgehunt/internal/badge"
	"github.com/kestrelhq/badgehunt/internal/github"
	"github.com/kestrelhq/badgehunt/internal/store"
	"github.com/kestrelhq/badgehunt/internal/styles"
	"github.com/kestrelhq/badgehunt/internal/tracker"
)

type tab int

const (
	tabAchievements tab = iota
	tabHighlights
	tabRetired
	tabGuides
	tabFAQ
	tabProfile
	tabChat
	tabCount
)

var tabNames = [tabCount]string{
	"Achievements", "Highlights", "Retired", "Guides", "FAQ", "Profile", "Chat",
}

var badgeTabs = map[tab]badge.Tab{
	tabAchievements: badge.TabAchievements,
	tabHighlights:   badge.TabHighlights,
	tabRetired:      badge.TabRetired,
}

// categoryCycle is the category filter rotation; empty means all.
var categoryCycle = []badge.Category{
	"",
	badge.CategoryContribution,
	badge.CategoryCommunity,
	badge.CategoryWorkflow,
	badge.CategorySecurity,
	badge.CategoryMembership,
	badge.CategorySpecial,
}

// Model is the root TUI model.
type Model struct {
	store     *store.Store
	github    *github.Client
	assistant *assistant.Assistant
	logger    *zap.Logger
	theme     styles.Theme

	width  int
	height int
	tab    tab

	// catalog browsing
	search     textinput.Model
	searching  bool
	ownership  badge.OwnershipFilter
	sortKey    badge.SortKey
	categoryIx int
	visible    []badge.Badge
	cursor     int
	detail     bool
	generating map[string]bool

	guideCursor int
	faqCursor   int

	// profile lookup
	username   textinput.Model
	fetching   bool
	fetchSeq   int
	stats      *github.UserStats
	reports    []tracker.Report
	profileErr string
	spinner    spinner.Model

	// chat
	chatInput textinput.Model
	chatView  viewport.Model
	history   []assistant.Message
	streaming bool
	chatSeq   int
	stream    <-chan string
	partial   string

	status       string
	statusSeq    int
	updateNotice string
}

// New assembles the root model from its collaborators.
func New(st *store.Store, gh *github.Client, ai *assistant.Assistant, logger *zap.Logger) *Model {
	search := textinput.New()
	search.Placeholder = "search badges"
	search.CharLimit = 64

	username := textinput.New()
	username.Placeholder = "github username"
	username.CharLimit = 39

	chatInput := textinput.New()
	chatInput.Placeholder = "ask about badges"
	chatInput.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		store:      st,
		github:     gh,
		assistant:  ai,
		logger:     logger,
		theme:      styles.ByName(st.Theme()),
		search:     search,
		username:   username,
		chatInput:  chatInput,
		chatView:   viewport.New(80, 20),
		spinner:    sp,
		generating: make(map[string]bool),
	}
	m.refreshVisible()
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) query() badge.Query {
	return badge.Query{
		Tab:       badgeTabs[m.tab],
		Search:    m.search.Value(),
		Ownership: m.ownership,
		Category:  categoryCycle[m.categoryIx],
		Sort:      m.sortKey,
	}
}

// refreshVisible re-derives the badge list from the current query and
// keeps the cursor in range.
func (m *Model) refreshVisible() {
	if _, ok := badgeTabs[m.tab]; !ok {
		return
	}
	m.visible = badge.View(badge.Catalog, m.store.Owned(), m.query())
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.status = text
	m.statusSeq++
	return clearStatusCmd(m.statusSeq)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chatView.Width = msg.Width - 2
		m.chatView.Height = msg.Height - 8
		m.renderChat()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statsMsg:
		if msg.seq != m.fetchSeq {
			// A newer lookup superseded this one.
			return m, nil
		}
		m.fetching = false
		if msg.err != nil {
			m.stats = nil
			m.reports = nil
			m.profileErr = profileErrorText(msg.err)
			return m, nil
		}
		m.profileErr = ""
		m.stats = msg.stats
		m.reports = msg.reports
		return m, nil

	case imageMsg:
		delete(m.generating, msg.badgeID)
		if msg.err != nil {
			m.logger.Warn("image generation failed", zap.String("badge", msg.badgeID), zap.Error(msg.err))
			return m, m.setStatus("image generation failed")
		}
		m.store.PutImage(msg.badgeID, msg.dataURI)
		return m, m.setStatus("image generated and cached")

	case chatDeltaMsg:
		if msg.seq != m.chatSeq {
			return m, nil
		}
		m.partial += msg.delta
		m.renderChat()
		return m, readChatDeltaCmd(msg.seq, m.stream)

	case chatDoneMsg:
		if msg.seq != m.chatSeq {
			return m, nil
		}
		m.streaming = false
		if m.partial != "" {
			m.history = append(m.history, assistant.Message{Role: assistant.RoleAssistant, Content: m.partial})
		}
		m.partial = ""
		m.stream = nil
		m.renderChat()
		return m, nil

	case updateMsg:
		m.updateNotice = msg.version
		return m, nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Tab switching works everywhere, even with a text input focused.
	switch msg.String() {
	case "tab", "shift+tab":
		m.blurInputs()
		m.detail = false
		if msg.String() == "tab" {
			m.tab = (m.tab + 1) % tabCount
		} else {
			m.tab = (m.tab + tabCount - 1) % tabCount
		}
		m.enterTab()
		return m, nil
	}

	// Focused text inputs swallow everything except escape and enter.
	switch {
	case m.searching:
		return m.handleSearchKey(msg)
	case m.tab == tabProfile && m.username.Focused():
		return m.handleUsernameKey(msg)
	case m.tab == tabChat && m.chatInput.Focused():
		return m.handleChatKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "right", "l":
		m.detail = false
		m.tab = (m.tab + 1) % tabCount
		m.enterTab()
		return m, nil
	case "left", "h":
		m.detail = false
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.enterTab()
		return m, nil
	case "t":
		return m, m.toggleTheme()
	}

	switch m.tab {
	case tabAchievements, tabHighlights, tabRetired:
		return m.handleCatalogKey(msg)
	case tabGuides:
		m.guideCursor = moveCursor(msg, m.guideCursor, len(badge.Guides))
		return m, nil
	case tabFAQ:
		m.faqCursor = moveCursor(msg, m.faqCursor, len(badge.FAQs))
		return m, nil
	case tabProfile:
		if msg.String() == "enter" || msg.String() == "i" {
			m.username.Focus()
			return m, textinput.Blink
		}
		return m, nil
	case tabChat:
		if msg.String() == "enter" || msg.String() == "i" {
			m.chatInput.Focus()
			return m, textinput.Blink
		}
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) blurInputs() {
	m.searching = false
	m.search.Blur()
	m.username.Blur()
	m.chatInput.Blur()
}

// enterTab runs per-tab setup when the user switches in.
func (m *Model) enterTab() {
	m.refreshVisible()
	switch m.tab {
	case tabProfile:
		if m.stats == nil && !m.fetching {
			m.username.Focus()
		}
	case tabChat:
		if !m.streaming {
			m.chatInput.Focus()
		}
		m.renderChat()
	}
}

func (m *Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail {
		return m.handleDetailKey(msg)
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "o":
		m.ownership = (m.ownership + 1) % 3
		m.refreshVisible()
	case "s":
		m.sortKey = (m.sortKey + 1) % 3
		m.refreshVisible()
	case "c":
		m.categoryIx = (m.categoryIx + 1) % len(categoryCycle)
		m.refreshVisible()
	case "x", " ":
		if b := m.selected(); b != nil {
			owned := m.store.Toggle(b.ID)
			m.refreshVisible()
			if owned {
				return m, m.setStatus("marked " + b.Name + " as owned")
			}
			return m, m.setStatus("marked " + b.Name + " as not owned")
		}
	case "enter":
		if m.selected() != nil {
			m.detail = true
		}
	}
	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.selected()
	if b == nil {
		m.detail = false
		return m, nil
	}

	switch msg.String() {
	case "esc", "enter", "backspace":
		m.detail = false
	case "x", " ":
		m.store.Toggle(b.ID)
		m.refreshVisible()
	case "g":
		return m, m.startImageGeneration(b)
	case "y":
		return m, m.copyBadge(b)
	}
	return m, nil
}

// startImageGeneration kicks off image generation unless the badge
// already has a cached image or a generation in flight.
func (m *Model) startImageGeneration(b *badge.Badge) tea.Cmd {
	if _, ok := m.store.Image(b.ID); ok {
		return m.setStatus("image already generated")
	}
	if m.generating[b.ID] {
		return m.setStatus("image generation already running")
	}
	if !m.assistant.Configured() {
		return m.setStatus("set an OpenAI API key to generate images")
	}

	m.generating[b.ID] = true
	return tea.Batch(m.generateImageCmd(b), m.setStatus("generating image for "+b.Name))
}

// copyBadge puts the cached image data URI on the clipboard, or a text
// summary when no image exists yet.
func (m *Model) copyBadge(b *badge.Badge) tea.Cmd {
	text, ok := m.store.Image(b.ID)
	what := "image data URI"
	if !ok {
		text = b.Name + ": " + b.HowToEarn
		what = "badge summary"
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		return m.setStatus("clipboard unavailable")
	}
	return m.setStatus("copied " + what)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.refreshVisible()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshVisible()
	return m, cmd
}

func (m *Model) handleUsernameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.username.Blur()
		return m, nil
	case "enter":
		username := strings.TrimSpace(m.username.Value())
		if username == "" {
			return m, nil
		}
		m.username.Blur()
		return m, m.startLookup(username)
	}

	var cmd tea.Cmd
	m.username, cmd = m.username.Update(msg)
	return m, cmd
}

// startLookup begins a profile fetch, superseding any in-flight one.
func (m *Model) startLookup(username string) tea.Cmd {
	m.fetching = true
	m.profileErr = ""
	m.stats = nil
	m.reports = nil
	m.fetchSeq++
	return tea.Batch(m.spinner.Tick, m.fetchStatsCmd(m.fetchSeq, username))
}

func (m *Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.chatInput.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" || m.streaming {
			return m, nil
		}
		m.chatInput.SetValue("")
		return m, m.sendChat(text)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// sendChat appends the user turn and starts streaming the reply.
func (m *Model) sendChat(text string) tea.Cmd {
	stream, err := m.assistant.Chat(context.Background(), m.history, text)
	if err != nil {
		return m.setStatus(chatErrorText(err))
	}

	m.history = append(m.history, assistant.Message{Role: assistant.RoleUser, Content: text})
	m.partial = ""
	m.streaming = true
	m.stream = stream
	m.chatSeq++
	m.renderChat()
	return readChatDeltaCmd(m.chatSeq, stream)
}

func (m *Model) toggleTheme() tea.Cmd {
	next := "light"
	if m.theme.Name == "light" {
		next = "dark"
	}
	m.theme = styles.ByName(next)
	m.store.SetTheme(next)
	return m.setStatus(next + " theme")
}

func (m *Model) selected() *badge.Badge {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return badge.ByID(m.visible[m.cursor].ID)
}

func moveCursor(msg tea.KeyMsg, cursor, length int) int {
	switch msg.String() {
	case "up", "k":
		if cursor > 0 {
			return cursor - 1
		}
	case "down", "j":
		if cursor < length-1 {
			return cursor + 1
		}
	}
	return cursor
}

func profileErrorText(err error) string {
	switch {
	case errors.Is(err, github.ErrNotFound):
		return "that user does not exist"
	case errors.Is(err, github.ErrRateLimited):
		return "rate limited by the API, try again later or set a token"
	default:
		return "lookup failed, check your connection"
	}
}

func chatErrorText(err error) string {
	if errors.Is(err, assistant.ErrNoCredential) {
		return "set an OpenAI API key to chat"
	}
	return "chat request failed"
}
