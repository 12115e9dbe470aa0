// internal/config/config.go
//
// This package handles configuration and the .teammaker directory structure.
// Every project folder that team-maker runs in gets a .teammaker/ folder that
// holds the roster state, exports and logs.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/thecola13/team-maker/internal/roster"
)

const (
	// Dir is the name of the directory we create in each project
	Dir = ".teammaker"

	envPrefix         = "TEAMMAKER_"
	defaultStateFile  = "state/hackathon_state.json"
	defaultExportFile = "export/hackathon_teams.csv"
)

const defaultProjectConfigYAML = `# team-maker project configuration
version: 1

# Roster state document. Relative paths resolve against .teammaker/.
state_file: state/hackathon_state.json

# Where "export" writes the teams spreadsheet.
export_file: export/hackathon_teams.csv

team:
  capacity: 5
  default_track: Unassigned
  name_prefix: Team
  tracks:
    - Unassigned
    - ML
    - Entrepreneurship
`

// TeamConfig carries the event rules for teams.
type TeamConfig struct {
	Capacity     int      `yaml:"capacity"`
	Tracks       []string `yaml:"tracks"`
	DefaultTrack string   `yaml:"default_track"`
	NamePrefix   string   `yaml:"name_prefix"`
}

// ProjectConfig models .teammaker/config.yaml.
type ProjectConfig struct {
	Version    int        `yaml:"version"`
	StateFile  string     `yaml:"state_file"`
	ExportFile string     `yaml:"export_file"`
	Team       TeamConfig `yaml:"team"`
}

// EnvOverrides are read from TEAMMAKER_* variables and from .teammaker/.env.
// Zero values leave the file configuration untouched.
type EnvOverrides struct {
	StateFile    string `env:"STATE_FILE"`
	ExportFile   string `env:"EXPORT_FILE"`
	TeamCapacity int    `env:"TEAM_CAPACITY"`
}

// Config holds the runtime configuration for team-maker.
type Config struct {
	// ProjectDir is the directory team-maker was started from
	ProjectDir string

	// ToolDir is ProjectDir/.teammaker
	ToolDir string

	Project ProjectConfig
}

// InitDir creates the .teammaker directory structure in the given project
// directory and writes a default config.yaml if none exists.
//
// Structure created:
// .teammaker/
// ├── config.yaml
// ├── logs/     <- process log and activity journal
// ├── state/    <- roster state document
// └── export/   <- exported team spreadsheets
func InitDir(projectDir string) error {
	toolDir := filepath.Join(projectDir, Dir)
	dirs := []string{
		filepath.Join(toolDir, "logs"),
		filepath.Join(toolDir, "state"),
		filepath.Join(toolDir, "export"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(toolDir, "config.yaml"))
}

// NewConfig loads .teammaker/config.yaml and applies environment overrides.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		ToolDir:    filepath.Join(projectDir, Dir),
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigPath returns the on-disk location for the project config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.ToolDir, "config.yaml")
}

// EnvPath returns the optional dotenv file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.ToolDir, ".env")
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.ToolDir, "logs")
}

// ProcessLogPath returns the process log location.
func (c *Config) ProcessLogPath() string {
	return filepath.Join(c.LogsDir(), "teammaker.log")
}

// ActivityLogPath returns the activity journal location.
func (c *Config) ActivityLogPath() string {
	return filepath.Join(c.LogsDir(), "activity.log")
}

// StatePath returns the resolved roster state document path.
func (c *Config) StatePath() string {
	return c.Project.StateFile
}

// ExportPath returns the resolved default export path.
func (c *Config) ExportPath() string {
	return c.Project.ExportFile
}

// Rules projects the team section onto the allocator rules.
func (c *Config) Rules() roster.Rules {
	tracks := make([]roster.Track, 0, len(c.Project.Team.Tracks))
	for _, t := range c.Project.Team.Tracks {
		tracks = append(tracks, roster.Track(t))
	}
	return roster.Rules{
		Capacity:     c.Project.Team.Capacity,
		Tracks:       tracks,
		DefaultTrack: roster.Track(c.Project.Team.DefaultTrack),
		NamePrefix:   c.Project.Team.NamePrefix,
	}
}

func (c *Config) loadProjectConfig() error {
	path := c.ConfigPath()
	parsed := defaultProjectConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		parsed = ProjectConfig{}
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	overrides, err := c.loadEnvOverrides()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	parsed.applyOverrides(overrides)
	parsed.applyDefaults()
	parsed.normalize(c.ToolDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

// loadEnvOverrides merges .teammaker/.env under the process environment, so
// variables already set always win, and parses the TEAMMAKER_* subset.
func (c *Config) loadEnvOverrides() (EnvOverrides, error) {
	environment := map[string]string{}
	if dotenv, err := godotenv.Read(c.EnvPath()); err == nil {
		for k, v := range dotenv {
			environment[k] = v
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return EnvOverrides{}, fmt.Errorf("read %s: %w", c.EnvPath(), err)
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environment[k] = v
		}
	}
	var overrides EnvOverrides
	if err := env.ParseWithOptions(&overrides, env.Options{
		Prefix:      envPrefix,
		Environment: environment,
	}); err != nil {
		return EnvOverrides{}, fmt.Errorf("parse env: %w", err)
	}
	return overrides, nil
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{}
	pc.applyDefaults()
	return pc
}

func (pc *ProjectConfig) applyOverrides(o EnvOverrides) {
	if strings.TrimSpace(o.StateFile) != "" {
		pc.StateFile = o.StateFile
	}
	if strings.TrimSpace(o.ExportFile) != "" {
		pc.ExportFile = o.ExportFile
	}
	if o.TeamCapacity != 0 {
		pc.Team.Capacity = o.TeamCapacity
	}
}

func (pc *ProjectConfig) applyDefaults() {
	defaults := roster.DefaultRules()
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.StateFile) == "" {
		pc.StateFile = defaultStateFile
	}
	if strings.TrimSpace(pc.ExportFile) == "" {
		pc.ExportFile = defaultExportFile
	}
	if pc.Team.Capacity == 0 {
		pc.Team.Capacity = defaults.Capacity
	}
	if len(pc.Team.Tracks) == 0 {
		for _, t := range defaults.Tracks {
			pc.Team.Tracks = append(pc.Team.Tracks, string(t))
		}
	}
	if strings.TrimSpace(pc.Team.DefaultTrack) == "" {
		pc.Team.DefaultTrack = string(defaults.DefaultTrack)
	}
	if strings.TrimSpace(pc.Team.NamePrefix) == "" {
		pc.Team.NamePrefix = defaults.NamePrefix
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.StateFile = resolvePath(base, pc.StateFile)
	pc.ExportFile = resolvePath(base, pc.ExportFile)
	pc.Team.DefaultTrack = strings.TrimSpace(pc.Team.DefaultTrack)
	pc.Team.NamePrefix = strings.TrimSpace(pc.Team.NamePrefix)
	var tracks []string
	for _, t := range pc.Team.Tracks {
		t = strings.TrimSpace(t)
		if t == "" || contains(tracks, t) {
			continue
		}
		tracks = append(tracks, t)
	}
	pc.Team.Tracks = tracks
	for _, t := range tracks {
		if strings.EqualFold(t, pc.Team.DefaultTrack) {
			pc.Team.DefaultTrack = t
		}
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Team.Capacity < 1 {
		return fmt.Errorf("team.capacity must be >= 1")
	}
	if len(pc.Team.Tracks) == 0 {
		return fmt.Errorf("team.tracks must list at least one track")
	}
	if !contains(pc.Team.Tracks, pc.Team.DefaultTrack) {
		return fmt.Errorf("team.default_track %q is not one of team.tracks", pc.Team.DefaultTrack)
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
