package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *model) View() string {
	switch m.stage {
	case stageLoading:
		return m.viewLoading()
	case stageDisplay:
		return m.viewDisplay()
	case stageFailed:
		return m.viewFailed()
	default:
		return ""
	}
}

func (m *model) viewLoading() string {
	body := helperStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), m.infoMessage))
	return joinNonEmpty([]string{m.heroView(), body})
}

func (m *model) viewFailed() string {
	parts := []string{m.heroView()}
	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(m.errorMessage))
	}
	parts = append(parts, helperStyle.Render(m.infoMessage))
	return joinNonEmpty(parts)
}

func (m *model) viewDisplay() string {
	parts := []string{m.heroView(), m.sessionMeterView(), m.viewport.View(), m.jumpPanel()}
	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		message := m.infoMessage
		if m.session.Loading() {
			message = fmt.Sprintf("%s %s", m.spinner.View(), message)
		}
		parts = append(parts, helperStyle.Render(message))
	}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	title := heroTitleStyle.Render("Mushaf")
	if m.config.Edition != "" {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, helperStyle.Render("  "+m.config.Edition))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, taglineStyle.Render(heroTagline(m.session.PageSize())))
}

func heroTagline(pageSize int) string {
	unit := fmt.Sprintf("%d ayahs", pageSize)
	if pageSize == 1 {
		unit = "one ayah"
	}
	return fmt.Sprintf(heroTaglineFormat, unit)
}

func (m *model) jumpPanel() string {
	label := sectionHeaderStyle.Render("Jump to")
	hint := helperStyle.Render("  press / to type an index")
	if m.jumpInput.Focused() {
		hint = helperStyle.Render("  Enter to jump, Esc to cancel")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", m.jumpInput.View(), hint)
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func (m *model) sessionMeterView() string {
	stats := []string{m.pageIndicator(), fmt.Sprintf("%d ayahs", m.session.Len())}
	if focus, ok := m.session.Pending(); ok {
		stats = append(stats, fmt.Sprintf("jumping to #%d", focus.Index))
	}
	if m.session.Loading() {
		stats = append(stats, "refreshing")
	}
	if badges := m.jobStatusBadges(); len(badges) > 0 {
		stats = append(stats, badges...)
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

// pageIndicator shows an arrow only on the sides where a page exists.
func (m *model) pageIndicator() string {
	prev, next := "  ", "  "
	if m.session.HasPrev() {
		prev = "← "
	}
	if m.session.HasNext() {
		next = " →"
	}
	return prev + m.pages.View() + next
}

func (m *model) jobStatusBadges() []string {
	var badges []string
	for _, kind := range []jobKind{jobKindFetch, jobKindRefresh} {
		if snapshot, ok := m.jobSnapshots[kind]; ok {
			badges = append(badges, jobBadge(snapshot))
		}
	}
	return badges
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) pageHint() keyHint {
	switch {
	case m.session.HasPrev() && m.session.HasNext():
		return keyHint{"←/→", "Previous/next page"}
	case m.session.HasNext():
		return keyHint{"→", "Next page"}
	case m.session.HasPrev():
		return keyHint{"←", "Previous page"}
	default:
		return keyHint{"←/→", "Only one page"}
	}
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		m.pageHint(),
		{"/", "Jump to ayah"},
		{"↑/↓", "Scroll"},
		{"g/G", "Top or bottom"},
		{"r", "Refresh"},
		{"?", "Toggle cheatsheet"},
		{"q", "Quit"},
	}
	rows := []string{sectionHeaderStyle.Render("Navigation Cheatsheet")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := min(i+columns, len(hints))
		var cells []string
		for _, hint := range hints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := keyDescStyle.Render(" " + hint.Description + "  ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	heroAccentColor        = lipgloss.Color("#2a9d8f")
	heroSecondaryTextColor = lipgloss.Color("#e9c46a")

	heroTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	taglineStyle   = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)

	badgeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#e9c46a")).Padding(0, 1)
	focusedBadgeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#f4a261")).Padding(0, 1)
	focusMarkerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f4a261"))
	referenceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("147"))
	verseTextStyle    = lipgloss.NewStyle().Align(lipgloss.Right)
	dividerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true).Align(lipgloss.Center).Border(lipgloss.NormalBorder(), true, false, false, false).BorderForeground(lipgloss.Color("#56526e"))
)
