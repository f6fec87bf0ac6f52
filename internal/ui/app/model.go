package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	focusdto "lernova/internal/modules/focus/dto"
	settingsdto "lernova/internal/modules/settings/dto"
	"lernova/internal/ui/components"
	"lernova/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type focusPort interface {
	Start(ctx context.Context, userID, topic, description string, keywords, allowedDomains []string) (focusdto.StartOutput, error)
	Active(ctx context.Context, userID string) (focusdto.ActiveOutput, error)
	Check(ctx context.Context, userID, url string, quick bool) (focusdto.CheckOutput, error)
	End(ctx context.Context, userID string) (focusdto.EndOutput, error)
	History(ctx context.Context, userID string, limit int) ([]focusdto.SessionOutput, error)
	Suggest(ctx context.Context, topic string) ([]focusdto.SuggestionOutput, error)
}

type settingsPort interface {
	Show(ctx context.Context, userID string) (settingsdto.SettingsOutput, error)
	Set(ctx context.Context, userID string, enabled, strict *bool) (settingsdto.SettingsOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabSession tabID = iota
	tabHistory
	tabSuggest
	tabCount
)

var tabLabels = [tabCount]string{"Session", "History", "Suggestions"}

const (
	historyLimit = 20
	checkLogSize = 12
	callTimeout  = 30 * time.Second
)

// ─── async messages ───────────────────────────────────────────────────────────

type activeLoadedMsg struct {
	active focusdto.ActiveOutput
	err    error
}

type sessionStartedMsg struct {
	out focusdto.StartOutput
	err error
}

type sessionEndedMsg struct {
	out focusdto.EndOutput
	err error
}

type checkedMsg struct {
	out focusdto.CheckOutput
	err error
}

type historyLoadedMsg struct {
	sessions []focusdto.SessionOutput
	err      error
}

type suggestionsLoadedMsg struct {
	topic string
	items []focusdto.SuggestionOutput
	err   error
}

type settingsLoadedMsg struct {
	settings settingsdto.SettingsOutput
	err      error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Refresh key.Binding
	End     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		End:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh, k.End},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the focus console. Data is only reloaded by explicit commands.
type Model struct {
	userID   string
	focus    focusPort
	settings settingsPort

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette

	active      focusdto.ActiveOutput
	strict      bool
	checks      []focusdto.CheckOutput
	history     []focusdto.SessionOutput
	suggestFor  string
	suggestions []focusdto.SuggestionOutput

	status string
	width  int
	height int
}

func NewModel(focus focusPort, settings settingsPort, userID string) Model {
	return Model{
		userID:    userID,
		focus:     focus,
		settings:  settings,
		activeTab: tabSession,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadActiveCmd(), m.loadSettingsCmd(), m.loadHistoryCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width

	case activeLoadedMsg:
		if msg.err != nil {
			m.status = "active session check: " + msg.err.Error()
			return m, nil
		}
		m.active = msg.active
		if msg.active.Active && msg.active.Session != nil {
			m.status = "focusing on: " + msg.active.Session.Topic
		}

	case sessionStartedMsg:
		if msg.err != nil {
			m.status = "focus start failed: " + msg.err.Error()
			return m, nil
		}
		m.checks = nil
		m.strict = msg.out.StrictMode
		m.status = "focus started: " + msg.out.Topic
		return m, m.loadActiveCmd()

	case sessionEndedMsg:
		if msg.err != nil {
			m.status = "focus end failed: " + msg.err.Error()
			return m, nil
		}
		if !msg.out.Ended {
			m.status = "no active focus session"
			return m, nil
		}
		m.active = focusdto.ActiveOutput{}
		m.checks = nil
		m.status = fmt.Sprintf("focus ended: %d checked, %d blocked", msg.out.Stats.URLsChecked, msg.out.Stats.URLsBlocked)
		if msg.out.ReportPath != "" {
			m.status += " (report " + msg.out.ReportPath + ")"
		}
		return m, m.loadHistoryCmd()

	case checkedMsg:
		if msg.err != nil {
			m.status = "check failed: " + msg.err.Error()
			return m, nil
		}
		m.checks = append([]focusdto.CheckOutput{msg.out}, m.checks...)
		if len(m.checks) > checkLogSize {
			m.checks = m.checks[:checkLogSize]
		}
		verdict := "allowed"
		if !msg.out.Allowed {
			verdict = "blocked"
		}
		m.status = verdict + ": " + msg.out.Domain
		return m, m.loadActiveCmd()

	case historyLoadedMsg:
		if msg.err != nil {
			m.status = "history: " + msg.err.Error()
			return m, nil
		}
		m.history = msg.sessions

	case suggestionsLoadedMsg:
		if msg.err != nil {
			m.status = "suggestions: " + msg.err.Error()
			return m, nil
		}
		m.suggestFor = msg.topic
		m.suggestions = msg.items
		m.activeTab = tabSuggest

	case settingsLoadedMsg:
		if msg.err != nil {
			m.status = "settings: " + msg.err.Error()
			return m, nil
		}
		m.strict = msg.settings.FocusModeStrict

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Command, msg.Arg)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			return m, m.palette.Open()
		case "r":
			return m, tea.Batch(m.loadActiveCmd(), m.loadHistoryCmd(), m.loadSettingsCmd())
		case "e":
			return m, m.endSessionCmd()
		}
	}
	return m, nil
}

func (m Model) executePalette(name, rest string) (tea.Model, tea.Cmd) {
	if name == "" {
		return m, nil
	}
	command, known := components.Lookup(name)
	if !known {
		m.status = "unknown command: " + name
		return m, nil
	}
	usage := "usage: " + command.Usage()

	switch name {
	case "focus:start":
		topic, keywords := splitKeywords(rest)
		if topic == "" {
			m.status = usage
			return m, nil
		}
		m.activeTab = tabSession
		return m, m.startSessionCmd(topic, keywords)

	case "focus:end":
		return m, m.endSessionCmd()

	case "focus:check", "focus:quick":
		if rest == "" {
			m.status = usage
			return m, nil
		}
		m.activeTab = tabSession
		return m, m.checkCmd(rest, name == "focus:quick")

	case "focus:suggest":
		topic := rest
		if topic == "" && m.active.Session != nil {
			topic = m.active.Session.Topic
		}
		if topic == "" {
			m.status = usage
			return m, nil
		}
		return m, m.suggestCmd(topic)

	case "settings:strict", "settings:enabled":
		on, ok := parseSwitch(rest)
		if !ok {
			m.status = usage
			return m, nil
		}
		if name == "settings:strict" {
			return m, m.updateSettingsCmd(nil, &on)
		}
		return m, m.updateSettingsCmd(&on, nil)
	}

	m.status = "unknown command: " + name
	return m, nil
}

func splitKeywords(raw string) (string, []string) {
	topic, list, found := strings.Cut(raw, "|")
	topic = strings.TrimSpace(topic)
	if !found {
		return topic, nil
	}
	var keywords []string
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return topic, keywords
}

func parseSwitch(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "yes":
		return true, true
	case "off", "false", "no":
		return false, true
	}
	return false, false
}

// ─── commands ─────────────────────────────────────────────────────────────────

func (m Model) loadActiveCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		out, err := m.focus.Active(ctx, m.userID)
		return activeLoadedMsg{active: out, err: err}
	}
}

func (m Model) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		out, err := m.focus.History(ctx, m.userID, historyLimit)
		return historyLoadedMsg{sessions: out, err: err}
	}
}

func (m Model) loadSettingsCmd() tea.Cmd {
	if m.settings == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		out, err := m.settings.Show(ctx, m.userID)
		return settingsLoadedMsg{settings: out, err: err}
	}
}

func (m Model) updateSettingsCmd(enabled, strict *bool) tea.Cmd {
	if m.settings == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		out, err := m.settings.Set(ctx, m.userID, enabled, strict)
		return settingsLoadedMsg{settings: out, err: err}
	}
}

func (m Model) startSessionCmd(topic string, keywords []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		out, err := m.focus.Start(ctx, m.userID, topic, "", keywords, nil)
		return sessionStartedMsg{out: out, err: err}
	}
}

func (m Model) endSessionCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		out, err := m.focus.End(ctx, m.userID)
		return sessionEndedMsg{out: out, err: err}
	}
}

func (m Model) checkCmd(url string, quick bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		out, err := m.focus.Check(ctx, m.userID, url, quick)
		return checkedMsg{out: out, err: err}
	}
}

func (m Model) suggestCmd(topic string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		out, err := m.focus.Suggest(ctx, topic)
		return suggestionsLoadedMsg{topic: topic, items: out, err: err}
	}
}

// ─── view ─────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = theme.Pane.Width(max(m.width-4, 20)).Render(m.activeView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabHistory:
		return m.historyView()
	case tabSuggest:
		return m.suggestView()
	default:
		return m.sessionView()
	}
}

func (m Model) sessionView() string {
	var sb strings.Builder
	if !m.active.Active || m.active.Session == nil {
		sb.WriteString(theme.Title.Render("No active focus session") + "\n\n")
		sb.WriteString(theme.Muted.Render("start one with  :focus:start <topic> | keyword, keyword"))
		return sb.String()
	}
	s := m.active.Session
	sb.WriteString(theme.Title.Render("Focus: "+s.Topic) + "\n")
	if s.Description != "" {
		sb.WriteString(theme.Muted.Render(s.Description) + "\n")
	}
	sb.WriteString(fmt.Sprintf("\nchecked %d  allowed %d  blocked %d\n",
		s.URLsChecked, s.URLsAllowed, s.URLsBlocked))
	if len(s.Keywords) > 0 {
		sb.WriteString(theme.Muted.Render("keywords: "+strings.Join(s.Keywords, ", ")) + "\n")
	}
	if len(s.AllowedDomains) > 0 {
		sb.WriteString(theme.Muted.Render("allowed: "+strings.Join(s.AllowedDomains, ", ")) + "\n")
	}
	if len(m.checks) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Recent checks") + "\n")
		for _, c := range m.checks {
			mark := theme.Allowed.Render("✓")
			if !c.Allowed {
				mark = theme.Blocked.Render("✗")
			}
			sb.WriteString(fmt.Sprintf("%s %s  %s\n", mark, c.URL, theme.Muted.Render(c.Reason)))
		}
	}
	return sb.String()
}

func (m Model) historyView() string {
	if len(m.history) == 0 {
		return theme.Muted.Render("no focus sessions yet")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Recent sessions") + "\n\n")
	for _, s := range m.history {
		state := theme.Muted.Render(s.CreatedAt.Local().Format("2006-01-02 15:04"))
		if s.Active {
			state = theme.Hot.Render("active")
		}
		sb.WriteString(fmt.Sprintf("%s  %s  %d/%d blocked\n", state, s.Topic, s.URLsBlocked, s.URLsChecked))
	}
	return sb.String()
}

func (m Model) suggestView() string {
	if len(m.suggestions) == 0 {
		return theme.Muted.Render("no suggestions; try  :focus:suggest <topic>")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Resources for "+m.suggestFor) + "\n\n")
	for _, s := range m.suggestions {
		sb.WriteString(theme.Hot.Render(s.Title) + "\n")
		sb.WriteString(theme.Muted.Render(s.Description) + "\n")
		sb.WriteString(s.URL + "\n\n")
	}
	return sb.String()
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "lernova  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.active.Active && m.active.Session != nil {
		left = theme.Hot.Render("● "+m.active.Session.Topic) + "  " + left
	}
	if m.strict {
		left = theme.Blocked.Render("strict") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}
