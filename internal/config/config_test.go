package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thecola13/team-maker/internal/roster"
)

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", cfg.Project.Version)
	}
	wantState := filepath.Join(projectDir, Dir, "state", "hackathon_state.json")
	if cfg.StatePath() != wantState {
		t.Fatalf("state path = %s, want %s", cfg.StatePath(), wantState)
	}
	if filepath.Base(cfg.ExportPath()) != "hackathon_teams.csv" {
		t.Fatalf("export path = %s", cfg.ExportPath())
	}
	if want := filepath.Join(projectDir, Dir, "logs", "teammaker.log"); cfg.ProcessLogPath() != want {
		t.Fatalf("process log = %s, want %s", cfg.ProcessLogPath(), want)
	}
	rules := cfg.Rules()
	if rules.Capacity != roster.DefaultCapacity || len(rules.Tracks) != 3 || rules.DefaultTrack != roster.TrackUnassigned {
		t.Fatalf("unexpected default rules: %+v", rules)
	}
}

func TestInitDirWritesParsableDefaults(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, sub := range []string{"logs", "state", "export", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(projectDir, Dir, sub)); err != nil {
			t.Fatalf("missing %s: %v", sub, err)
		}
	}
	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("load written defaults: %v", err)
	}
	if cfg.Project.Team.NamePrefix != "Team" {
		t.Fatalf("name prefix = %q", cfg.Project.Team.NamePrefix)
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	toolDir := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(toolDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
state_file: /tmp/elsewhere/state.json
team:
  capacity: 4
  default_track: open
  name_prefix: Squad
  tracks:
    - Open
    - Hardware
    - open
`)
	if err := os.WriteFile(filepath.Join(toolDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.StatePath() != filepath.Clean("/tmp/elsewhere/state.json") {
		t.Fatalf("absolute state path not kept: %s", cfg.StatePath())
	}
	rules := cfg.Rules()
	if rules.Capacity != 4 || rules.NamePrefix != "Squad" {
		t.Fatalf("rules = %+v", rules)
	}
	if len(rules.Tracks) != 2 {
		t.Fatalf("duplicate tracks not removed: %v", rules.Tracks)
	}
	if rules.DefaultTrack != "Open" {
		t.Fatalf("default track = %q, want canonical Open", rules.DefaultTrack)
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	projectDir := t.TempDir()
	toolDir := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(toolDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
team:
  default_track: Space
  tracks: [ML]
`)
	if err := os.WriteFile(filepath.Join(toolDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewConfig(projectDir); err == nil {
		t.Fatalf("expected validation error but got none")
	}
}

func TestEnvOverrides(t *testing.T) {
	projectDir := t.TempDir()
	toolDir := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(toolDir, 0o755); err != nil {
		t.Fatal(err)
	}
	dotenv := "TEAMMAKER_TEAM_CAPACITY=3\nTEAMMAKER_EXPORT_FILE=out/teams.csv\n"
	if err := os.WriteFile(filepath.Join(toolDir, ".env"), []byte(dotenv), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TEAMMAKER_TEAM_CAPACITY", "6")

	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.Project.Team.Capacity != 6 {
		t.Fatalf("capacity = %d, process env must win over .env", cfg.Project.Team.Capacity)
	}
	if cfg.ExportPath() != filepath.Join(toolDir, "out", "teams.csv") {
		t.Fatalf("export path = %s", cfg.ExportPath())
	}
}

func TestEnvOverrideParseError(t *testing.T) {
	t.Setenv("TEAMMAKER_TEAM_CAPACITY", "lots")
	_, err := NewConfig(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}
