package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/thecola13/team-maker/internal/logbook"
	"github.com/thecola13/team-maker/internal/roster"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	tabStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Padding(0, 1)
	activeTab     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Padding(0, 1).Underline(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	cardStyle     = lipgloss.NewStyle().Padding(0, 0, 1, 0)
)

// trackColor picks the header colour for a team's track.
func trackColor(track roster.Track) lipgloss.Color {
	switch track {
	case roster.TrackML:
		return lipgloss.Color("#2196f3")
	case roster.TrackEntrepreneurship:
		return lipgloss.Color("#f44336")
	default:
		return lipgloss.Color("#9e9e9e")
	}
}

// View renders the current state.
func (a *App) View() string {
	var body string
	switch a.mode {
	case modePickTeam:
		body = a.picker.View()
	case modeImport:
		body = lipgloss.JoinVertical(lipgloss.Left,
			"Import participants from a CSV export.",
			"",
			a.importPath.View(),
		)
	default:
		if a.tab == tabTeams {
			body = a.renderTeams()
		} else {
			body = a.renderParticipants()
		}
	}

	sections := []string{
		titleStyle.Render("⬡ TEAM MAKER"),
		a.renderTabs(),
		a.panel().Render(body),
	}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, a.renderFooter(), a.help.ShortHelpView(a.helpBindings()))
	return strings.Join(sections, "\n")
}

// panel sizes the main box once the terminal size is known.
func (a *App) panel() lipgloss.Style {
	if a.width <= 0 {
		return panelStyle
	}
	return panelStyle.Width(atLeast(40, a.width-4))
}

func (a *App) helpBindings() []key.Binding {
	switch {
	case a.mode != modeBrowse:
		return a.keys.inputHelp()
	case a.tab == tabTeams:
		return a.keys.teamHelp()
	default:
		return a.keys.participantHelp()
	}
}

func (a *App) renderTabs() string {
	store := a.session.Store()
	participants := fmt.Sprintf("Participants (%d)", store.ParticipantCount())
	teams := fmt.Sprintf("Teams (%d)", len(store.Teams()))
	if a.tab == tabTeams {
		return lipgloss.JoinHorizontal(lipgloss.Top, tabStyle.Render(participants), activeTab.Render(teams))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, activeTab.Render(participants), tabStyle.Render(teams))
}

func (a *App) renderParticipants() string {
	store := a.session.Store()
	header := []string{
		a.search.View(),
		mutedStyle.Render(fmt.Sprintf("Status: %s", a.status)),
		"",
	}
	if store.ParticipantCount() == 0 {
		return strings.Join(append(header, mutedStyle.Render("No participants yet. Press i to import a CSV export.")), "\n")
	}
	visible := a.visibleParticipants()
	if len(visible) == 0 {
		return strings.Join(append(header, mutedStyle.Render("No participants match the current search.")), "\n")
	}
	cursor := clamp(a.participantCursor, len(visible))
	start, end := window(cursor, len(visible), a.pageSize())
	rows := header
	for i := start; i < end; i++ {
		rows = append(rows, a.renderParticipantCard(visible[i], i == cursor))
	}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("%d of %d participants", len(visible), store.ParticipantCount())))
	return strings.Join(rows, "\n")
}

func (a *App) renderParticipantCard(p roster.Participant, selected bool) string {
	var badge string
	if team, ok := a.session.Store().TeamOf(p.Email()); ok {
		badge = okStyle.Render(fmt.Sprintf("✓ In Team: %s", team))
	} else {
		badge = warnStyle.Render("⚠ No Team")
	}
	lines := []string{
		fmt.Sprintf("%s  %s", displayName(p), badge),
		mutedStyle.Render(fmt.Sprintf("%s - %s", orDash(p.Get(roster.FieldDegreeProgram)), orDash(p.Get(roster.FieldYearOfStudy)))),
		mutedStyle.Render(fmt.Sprintf("First track: %s", orDash(p.Get(roster.FieldFirstTrack)))),
	}
	if selected {
		lines = append(lines,
			fmt.Sprintf("Email: %s", orDash(p.Email())),
			fmt.Sprintf("Phone: %s", orDash(p.Get(roster.FieldPhone))),
		)
		if motivation := strings.TrimSpace(p.Get(roster.FieldMotivation)); motivation != "" {
			lines = append(lines, fmt.Sprintf("Motivation: %s", motivation))
		}
		for _, field := range []string{roster.FieldLinkedIn, roster.FieldGitHub, roster.FieldCV} {
			if link := strings.TrimSpace(p.Get(field)); link != "" {
				lines = append(lines, fmt.Sprintf("%s: %s", field, link))
			}
		}
		return selectedStyle.Render(strings.Join(lines, "\n"))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderTeams() string {
	teams := a.session.Allocator().SortedTeams()
	if len(teams) == 0 {
		return mutedStyle.Render("No teams created yet. Press n to create one.")
	}
	cursor := clamp(a.teamCursor, len(teams))
	start, end := window(cursor, len(teams), a.pageSize())
	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, a.renderTeamCard(teams[i], i == cursor))
	}
	return strings.Join(rows, "\n")
}

func (a *App) renderTeamCard(team roster.Team, selected bool) string {
	capacity := a.session.Rules().Capacity
	head := lipgloss.NewStyle().Bold(true).Foreground(trackColor(team.Track)).
		Render(fmt.Sprintf("%s · %s", team.Name, team.Track))
	lines := []string{
		head,
		mutedStyle.Render(fmt.Sprintf("%d/%d Members", team.Len(), capacity)),
	}
	if team.Len() == 0 {
		lines = append(lines, mutedStyle.Render("No members"))
	}
	store := a.session.Store()
	for i, email := range team.Members {
		var line string
		if p, ok := store.FindParticipant(email); ok {
			line = fmt.Sprintf("👤 %s (%s)", displayName(p), orDash(p.Get(roster.FieldDegreeProgram)))
		} else {
			line = fmt.Sprintf("👤 %s (not on roster)", email)
		}
		if selected && i == a.memberCursor {
			line = "› " + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	if selected {
		return selectedStyle.Render(strings.Join(lines, "\n"))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderLogPanel() string {
	journal := a.session.Journal()
	if journal == nil {
		return ""
	}
	entries, _ := journal.Recent(5)
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, renderEntry(entry))
	}
	fileName := filepath.Base(journal.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s", fileName))
	return panelStyle.Render(fmt.Sprintf("%s\n%s", head, strings.Join(lines, "\n")))
}

func renderEntry(entry logbook.Entry) string {
	text := entry.Message
	if !entry.Time.IsZero() {
		text = fmt.Sprintf("%s %s", entry.Time.Local().Format("15:04"), text)
	}
	switch entry.Level {
	case logbook.LevelError:
		return errorStyle.Render(text)
	case logbook.LevelWarn:
		return warnStyle.Render(text)
	default:
		return mutedStyle.Render(text)
	}
}

func (a *App) renderFooter() string {
	if a.errMsg != "" {
		return errorStyle.Render(a.errMsg)
	}
	return mutedStyle.Render(a.statusMsg)
}

// pageSize estimates how many cards fit on screen.
func (a *App) pageSize() int {
	if a.height <= 0 {
		return 10
	}
	return atLeast(1, (a.height-16)/5)
}

// window returns the [start, end) slice keeping cursor visible.
func window(cursor, total, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > total {
		start = total - size
	}
	return start, start + size
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
