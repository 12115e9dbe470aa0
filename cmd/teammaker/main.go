// cmd/teammaker/main.go
//
// Entry point for the team-maker CLI. Run with no command to open the TUI,
// or pass one of the commands below to script the roster from a shell.
//
// Flow:
// 1. Make sure .teammaker/ exists in the project directory
// 2. Load config.yaml plus TEAMMAKER_* overrides
// 3. Open the roster session over the state document
// 4. Run the command, or launch the TUI

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thecola13/team-maker/internal/config"
	"github.com/thecola13/team-maker/internal/logbook"
	"github.com/thecola13/team-maker/internal/logging"
	"github.com/thecola13/team-maker/internal/persistence"
	"github.com/thecola13/team-maker/internal/session"
	"github.com/thecola13/team-maker/internal/tui"
)

const usage = `usage: teammaker [-project DIR] [command]

Commands:
  import FILE               add participants from a CSV export
  export [-o FILE]          write the teams spreadsheet
  list [-q TERM] [-status all|in|none]
                            print participants
  teams                     print teams and their members
  create-team               add the next free team
  delete-team NAME          remove a team, keeping its participants
  assign TEAM EMAIL         add a participant to a team
  unassign TEAM EMAIL       remove a participant from a team
  track TEAM TRACK          change a team's track
  reset -yes                delete every participant and team
  save                      rewrite the state document

With no command the interactive TUI starts.
`

func main() {
	fs := flag.NewFlagSet("teammaker", flag.ExitOnError)
	projectDir := fs.String("project", "", "path to the project directory (defaults to cwd)")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	_ = fs.Parse(os.Args[1:])

	project := *projectDir
	if project == "" {
		var err error
		project, err = os.Getwd()
		if err != nil {
			die("determine working directory: %v", err)
		}
	}
	absoluteProject, err := filepath.Abs(project)
	if err != nil {
		die("resolve project dir: %v", err)
	}

	env, err := setup(absoluteProject)
	if err != nil {
		die("%v", err)
	}
	if fs.NArg() == 0 {
		if err := runTUI(env); err != nil {
			env.close()
			die("run TUI: %v", err)
		}
		env.close()
		return
	}
	os.Exit(execute(env, fs.Args(), os.Stdout, os.Stderr))
}

// execute runs one command and returns the exit code. The environment is
// closed before it returns.
func execute(env *environment, args []string, stdout, stderr io.Writer) int {
	defer env.close()
	err := runCommand(env, args, stdout)
	if err == nil {
		return 0
	}
	err = env.logger.Errorf("%s: %s: %w", args[0], session.Label(err), err)
	if errors.Is(err, errUsage) {
		fmt.Fprint(stderr, usage)
	}
	fmt.Fprintln(stderr, err)
	return 1
}

// environment bundles everything a command needs.
type environment struct {
	cfg     *config.Config
	logger  *logging.Logger
	journal *logbook.Logbook
	session *session.Session
}

func setup(projectDir string) (*environment, error) {
	if err := config.InitDir(projectDir); err != nil {
		return nil, fmt.Errorf("init %s: %w", config.Dir, err)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.ProcessLogPath())
	if err != nil {
		return nil, err
	}
	journal, err := logbook.New(cfg.ActivityLogPath())
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("open activity log: %w", err)
	}
	rules := cfg.Rules()
	gateway := persistence.New(cfg.StatePath(), persistence.WithDefaultTrack(rules.DefaultTrack))
	s, err := session.Open(gateway, rules, session.WithJournal(journal))
	if err != nil {
		logger.Printf("open state %s: %v", cfg.StatePath(), err)
		logger.Close()
		return nil, fmt.Errorf("open state: %w", err)
	}
	logger.Printf("opened %s (%d participants, %d teams)", cfg.StatePath(), s.Store().ParticipantCount(), len(s.Store().Teams()))
	return &environment{cfg: cfg, logger: logger, journal: journal, session: s}, nil
}

func (e *environment) close() {
	e.logger.Close()
}

func runTUI(env *environment) error {
	p := tea.NewProgram(
		tui.NewApp(env.session,
			tui.WithExportPath(env.cfg.ExportPath()),
			tui.WithLogger(env.logger),
		),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return env.logger.Errorf("tui: %w", err)
	}
	return nil
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
