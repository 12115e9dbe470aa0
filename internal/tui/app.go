// internal/tui/app.go
//
// The TUI is the presentation layer over a roster session. It uses
// bubbletea, which follows The Elm Architecture:
//
// 1. Model: the App below (which tab, cursors, inputs, last message)
// 2. Update: key presses become session commands or cursor moves
// 3. View: renders the roster and teams from the session's store
//
// Every command goes straight to the session, which saves before returning,
// so the screen always shows persisted state.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thecola13/team-maker/internal/export"
	"github.com/thecola13/team-maker/internal/logging"
	"github.com/thecola13/team-maker/internal/roster"
	"github.com/thecola13/team-maker/internal/session"
)

// tab represents which screen we're on
type tab int

const (
	tabParticipants tab = iota
	tabTeams
)

// inputMode decides where key presses go
type inputMode int

const (
	modeBrowse   inputMode = iota // cursor movement and commands
	modeSearch                    // typing into the search box
	modeImport                    // typing a CSV path
	modePickTeam                  // choosing a team for the selected participant
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithExportPath sets where the export key writes the teams CSV.
func WithExportPath(path string) AppOption {
	return func(a *App) {
		if strings.TrimSpace(path) != "" {
			a.exportPath = path
		}
	}
}

// WithLogger attaches the process log.
func WithLogger(l *logging.Logger) AppOption {
	return func(a *App) {
		a.logger = l
	}
}

// teamItem implements list.Item for the team picker
type teamItem struct {
	name     string
	members  int
	capacity int
	track    roster.Track
}

func (i teamItem) Title() string { return i.name }
func (i teamItem) Description() string {
	return fmt.Sprintf("%s · %d/%d members", i.track, i.members, i.capacity)
}
func (i teamItem) FilterValue() string { return i.name }

// App is the main application model.
type App struct {
	session    *session.Session
	logger     *logging.Logger
	exportPath string
	keys       keyMap
	help       help.Model

	tab    tab
	mode   inputMode
	status roster.Status

	search     textinput.Model
	importPath textinput.Model
	picker     list.Model
	pickFor    string

	participantCursor int
	teamCursor        int
	memberCursor      int
	confirmReset      bool

	statusMsg string
	errMsg    string

	width  int
	height int
}

// NewApp creates the TUI over an open session.
func NewApp(s *session.Session, opts ...AppOption) *App {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "Name, degree, motivation, track..."

	importPath := textinput.New()
	importPath.Prompt = "CSV file: "
	importPath.Placeholder = "participants.csv"

	picker := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	picker.SetShowStatusBar(false)
	picker.SetShowHelp(false)
	picker.KeyMap.Quit.SetEnabled(false)

	app := &App{
		session:    s,
		exportPath: export.DefaultFileName,
		keys:       defaultKeyMap(),
		help:       help.New(),
		status:     roster.StatusAll,
		search:     search,
		importPath: importPath,
		picker:     picker,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	return app
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.picker.SetSize(atLeast(20, msg.Width-6), atLeast(6, msg.Height-12))
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.mode {
		case modeSearch:
			return a.updateSearch(msg)
		case modeImport:
			return a.updateImport(msg)
		case modePickTeam:
			return a.updatePicker(msg)
		default:
			return a.updateBrowse(msg)
		}
	}
	return a, nil
}

func (a *App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, a.keys.Reset) {
		a.confirmReset = false
	}
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.SwitchTab):
		if a.tab == tabParticipants {
			a.tab = tabTeams
		} else {
			a.tab = tabParticipants
		}
		a.clampCursors()
		a.clearMessages()
	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)
	case key.Matches(msg, a.keys.NewTeam):
		a.createTeam()
	case key.Matches(msg, a.keys.Import):
		a.mode = modeImport
		a.importPath.SetValue("")
		return a, a.importPath.Focus()
	case key.Matches(msg, a.keys.Export):
		a.export()
	case key.Matches(msg, a.keys.Save):
		if err := a.session.Save(); err != nil {
			a.fail(err)
		} else {
			a.succeed("State saved!")
		}
	case key.Matches(msg, a.keys.Reset):
		a.reset()
	case a.tab == tabParticipants:
		return a.updateParticipantKeys(msg)
	case a.tab == tabTeams:
		a.updateTeamKeys(msg)
	}
	return a, nil
}

func (a *App) updateParticipantKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Search):
		a.mode = modeSearch
		return a, a.search.Focus()
	case key.Matches(msg, a.keys.Filter):
		a.status = roster.NextStatus(a.status)
		a.participantCursor = 0
	case key.Matches(msg, a.keys.Assign):
		a.openPicker()
	case key.Matches(msg, a.keys.Remove):
		p, ok := a.selectedParticipant()
		if !ok {
			return a, nil
		}
		team, inTeam := a.session.Store().TeamOf(p.Email())
		if !inTeam {
			a.failMsg(fmt.Sprintf("%s is not on a team", displayName(p)))
			return a, nil
		}
		if err := a.session.Unassign(team, p.Email()); err != nil {
			a.fail(err)
			return a, nil
		}
		a.succeed(fmt.Sprintf("Removed %s from %s", displayName(p), team))
		a.clampCursors()
	}
	return a, nil
}

func (a *App) updateTeamKeys(msg tea.KeyMsg) {
	team, ok := a.selectedTeam()
	if !ok {
		return
	}
	switch {
	case key.Matches(msg, a.keys.DeleteTeam):
		if err := a.session.DeleteTeam(team.Name); err != nil {
			a.fail(err)
			return
		}
		a.succeed(fmt.Sprintf("Deleted %s", team.Name))
		a.clampCursors()
	case key.Matches(msg, a.keys.Track):
		next := a.session.Rules().NextTrack(team.Track)
		if err := a.session.SetTrack(team.Name, next); err != nil {
			a.fail(err)
			return
		}
		a.succeed(fmt.Sprintf("%s is now on the %s track", team.Name, next))
	case key.Matches(msg, a.keys.PrevMember):
		if a.memberCursor > 0 {
			a.memberCursor--
		}
	case key.Matches(msg, a.keys.NextMember):
		if a.memberCursor < team.Len()-1 {
			a.memberCursor++
		}
	case key.Matches(msg, a.keys.Remove):
		if team.Len() == 0 {
			return
		}
		a.memberCursor = clamp(a.memberCursor, team.Len())
		email := team.Members[a.memberCursor]
		if err := a.session.Unassign(team.Name, email); err != nil {
			a.fail(err)
			return
		}
		a.succeed(fmt.Sprintf("Removed %s from %s", email, team.Name))
		a.clampCursors()
	}
}

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Cancel) || key.Matches(msg, a.keys.Confirm) {
		a.search.Blur()
		a.mode = modeBrowse
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	a.participantCursor = 0
	return a, cmd
}

func (a *App) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.importPath.Blur()
		a.mode = modeBrowse
		return a, nil
	case key.Matches(msg, a.keys.Confirm):
		a.importPath.Blur()
		a.mode = modeBrowse
		path := strings.TrimSpace(a.importPath.Value())
		if path == "" {
			return a, nil
		}
		res, err := a.session.ImportFile(path)
		if err != nil {
			a.fail(err)
			return a, nil
		}
		if res.Imported == 0 {
			a.succeed("No new participants found.")
		} else {
			a.succeed(fmt.Sprintf("Imported %d new participants.", res.Imported))
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.importPath, cmd = a.importPath.Update(msg)
	return a, cmd
}

func (a *App) openPicker() {
	p, ok := a.selectedParticipant()
	if !ok {
		return
	}
	if team, inTeam := a.session.Store().TeamOf(p.Email()); inTeam {
		a.failMsg(fmt.Sprintf("%s is already in %s", displayName(p), team))
		return
	}
	rules := a.session.Rules()
	var items []list.Item
	for _, name := range a.session.Allocator().AvailableTeams() {
		team, _ := a.session.Store().Team(name)
		items = append(items, teamItem{name: name, members: team.Len(), capacity: rules.Capacity, track: team.Track})
	}
	if len(items) == 0 {
		a.failMsg("No available teams (create one or free up space)")
		return
	}
	a.picker.SetItems(items)
	a.picker.Select(0)
	a.picker.Title = fmt.Sprintf("Add %s to...", displayName(p))
	a.pickFor = p.Email()
	a.mode = modePickTeam
}

func (a *App) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filtering := a.picker.FilterState() == list.Filtering
	switch {
	case !filtering && key.Matches(msg, a.keys.Cancel):
		a.mode = modeBrowse
		a.pickFor = ""
		return a, nil
	case !filtering && key.Matches(msg, a.keys.Confirm):
		item, ok := a.picker.SelectedItem().(teamItem)
		a.mode = modeBrowse
		email := a.pickFor
		a.pickFor = ""
		if !ok {
			return a, nil
		}
		if err := a.session.Assign(item.name, email); err != nil {
			a.fail(err)
			return a, nil
		}
		a.succeed(fmt.Sprintf("Added to %s", item.name))
		return a, nil
	}
	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	return a, cmd
}

func (a *App) createTeam() {
	name, err := a.session.CreateTeam()
	if err != nil {
		a.fail(err)
		return
	}
	a.succeed(fmt.Sprintf("Created %s", name))
	for i, team := range a.session.Allocator().SortedTeams() {
		if team.Name == name {
			a.teamCursor = i
			a.memberCursor = 0
		}
	}
}

func (a *App) export() {
	n, err := a.session.ExportFile(a.exportPath)
	if err != nil {
		a.fail(err)
		return
	}
	a.succeed(fmt.Sprintf("Exported %d rows to %s", n, a.exportPath))
}

func (a *App) reset() {
	if !a.confirmReset {
		a.confirmReset = true
		a.failMsg("Confirm reset? Press R again to delete all participants and teams.")
		return
	}
	a.confirmReset = false
	if err := a.session.Reset(); err != nil {
		a.fail(err)
		return
	}
	a.participantCursor, a.teamCursor, a.memberCursor = 0, 0, 0
	a.succeed("Roster reset.")
}

func (a *App) moveCursor(delta int) {
	if a.tab == tabParticipants {
		a.participantCursor += delta
	} else {
		a.teamCursor += delta
		a.memberCursor = 0
	}
	a.clampCursors()
}

func (a *App) clampCursors() {
	a.participantCursor = clamp(a.participantCursor, len(a.visibleParticipants()))
	teams := a.session.Allocator().SortedTeams()
	a.teamCursor = clamp(a.teamCursor, len(teams))
	if len(teams) == 0 {
		a.memberCursor = 0
		return
	}
	a.memberCursor = clamp(a.memberCursor, teams[a.teamCursor].Len())
}

func clamp(value, length int) int {
	if length <= 0 || value < 0 {
		return 0
	}
	if value >= length {
		return length - 1
	}
	return value
}

// visibleParticipants applies the search box and status filter.
func (a *App) visibleParticipants() []roster.Participant {
	store := a.session.Store()
	found := roster.Search(store.Participants(), a.search.Value())
	return roster.FilterStatus(found, store.Teams(), a.status)
}

func (a *App) selectedParticipant() (roster.Participant, bool) {
	visible := a.visibleParticipants()
	if len(visible) == 0 {
		return nil, false
	}
	return visible[clamp(a.participantCursor, len(visible))], true
}

func (a *App) selectedTeam() (roster.Team, bool) {
	teams := a.session.Allocator().SortedTeams()
	if len(teams) == 0 {
		return roster.Team{}, false
	}
	return teams[clamp(a.teamCursor, len(teams))], true
}

func (a *App) succeed(message string) {
	a.statusMsg = message
	a.errMsg = ""
}

func (a *App) failMsg(message string) {
	a.statusMsg = ""
	a.errMsg = message
}

func (a *App) fail(err error) {
	a.failMsg(fmt.Sprintf("%s: %v", session.Label(err), err))
	a.logger.Printf("command failed: %v", err)
}

func (a *App) clearMessages() {
	a.statusMsg = ""
	a.errMsg = ""
}

func displayName(p roster.Participant) string {
	if name := strings.TrimSpace(p.FullName()); name != "" {
		return name
	}
	return p.Email()
}

func atLeast(a, b int) int {
	if a > b {
		return a
	}
	return b
}
