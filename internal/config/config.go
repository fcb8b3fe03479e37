package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	AppDirName       = "make-your-choice"
	SettingsFileName = "settings.toml"
	HistoryFileName  = "history.jsonl"

	DefaultPingTimeout = 2 * time.Second
)

// Apply and block modes accepted in settings. They match the CLI flag values.
var (
	validModes      = map[string]bool{"gatekeep": true, "universal-redirect": true, "redirect": true}
	validBlockModes = map[string]bool{"both": true, "ping": true, "service": true}
)

// Settings are the persisted user preferences.
type Settings struct {
	Mode          string   `toml:"mode"`
	BlockMode     string   `toml:"block_mode"`
	MergeUnstable bool     `toml:"merge_unstable"`
	Selection     []string `toml:"selection,omitempty"`
	Nameserver    string   `toml:"nameserver,omitempty"`
	HostsFile     string   `toml:"hosts_file,omitempty"`
	Root          string   `toml:"root,omitempty"`
	FlushCommands []string `toml:"flush_commands,omitempty"`
	SupportURL    string   `toml:"support_url,omitempty"`
	PingTimeout   string   `toml:"ping_timeout,omitempty"`
	LastVersion   string   `toml:"last_version,omitempty"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Mode:          "gatekeep",
		BlockMode:     "both",
		MergeUnstable: true,
	}
}

// Validate checks enumerated values and durations.
func (s *Settings) Validate() error {
	if !validModes[s.Mode] {
		return fmt.Errorf("invalid mode: %s (must be gatekeep or universal-redirect)", s.Mode)
	}
	if !validBlockModes[s.BlockMode] {
		return fmt.Errorf("invalid block_mode: %s (must be both, ping, or service)", s.BlockMode)
	}
	if s.PingTimeout != "" {
		d, err := time.ParseDuration(s.PingTimeout)
		if err != nil {
			return fmt.Errorf("invalid ping_timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("ping_timeout must be positive")
		}
	}
	if s.Root != "" && !filepath.IsAbs(s.Root) {
		return fmt.Errorf("root must be an absolute path")
	}
	return nil
}

// PingTimeoutDuration returns the configured probe timeout or the default.
func (s *Settings) PingTimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(s.PingTimeout); err == nil && d > 0 {
		return d
	}
	return DefaultPingTimeout
}

// Paths holds the configured paths
type Paths struct {
	ConfigDir    string
	StateDir     string
	SettingsFile string
	HistoryFile  string
}

// DefaultPaths returns the default path configuration, following the XDG
// base directory variables when set.
func DefaultPaths() *Paths {
	configDir := filepath.Join(baseDir("XDG_CONFIG_HOME", os.UserConfigDir, ".config"), AppDirName)
	stateDir := filepath.Join(baseDir("XDG_STATE_HOME", nil, filepath.Join(".local", "state")), AppDirName)
	return &Paths{
		ConfigDir:    configDir,
		StateDir:     stateDir,
		SettingsFile: filepath.Join(configDir, SettingsFileName),
		HistoryFile:  filepath.Join(stateDir, HistoryFileName),
	}
}

// WithSettingsFile points the paths at an explicit settings file.
func (p *Paths) WithSettingsFile(path string) *Paths {
	out := *p
	out.SettingsFile = path
	out.ConfigDir = filepath.Dir(path)
	return &out
}

func baseDir(env string, osDefault func() (string, error), homeRel string) string {
	if dir := os.Getenv(env); dir != "" && filepath.IsAbs(dir) {
		return dir
	}
	if osDefault != nil {
		if dir, err := osDefault(); err == nil {
			return dir
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, homeRel)
	}
	return filepath.Join(os.TempDir(), homeRel)
}

// LoadSettings reads settings from path. A missing file yields defaults.
// Keys absent from the file keep their default values.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	var raw Settings
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if meta.IsDefined("mode") {
		settings.Mode = strings.ToLower(strings.TrimSpace(raw.Mode))
	}
	if meta.IsDefined("block_mode") {
		settings.BlockMode = strings.ToLower(strings.TrimSpace(raw.BlockMode))
	}
	if meta.IsDefined("merge_unstable") {
		settings.MergeUnstable = raw.MergeUnstable
	}
	if meta.IsDefined("selection") {
		settings.Selection = normalizeList(raw.Selection)
	}
	if meta.IsDefined("nameserver") {
		settings.Nameserver = strings.TrimSpace(raw.Nameserver)
	}
	if meta.IsDefined("hosts_file") {
		settings.HostsFile = strings.TrimSpace(raw.HostsFile)
	}
	if meta.IsDefined("root") {
		settings.Root = strings.TrimSpace(raw.Root)
	}
	if meta.IsDefined("flush_commands") {
		settings.FlushCommands = normalizeList(raw.FlushCommands)
	}
	if meta.IsDefined("support_url") {
		settings.SupportURL = strings.TrimSpace(raw.SupportURL)
	}
	if meta.IsDefined("ping_timeout") {
		settings.PingTimeout = strings.TrimSpace(raw.PingTimeout)
	}
	if meta.IsDefined("last_version") {
		settings.LastVersion = raw.LastVersion
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown settings keys: %s", strings.Join(keys, ", "))
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return settings, nil
}

// SaveSettings writes settings to path, creating the directory.
func SaveSettings(path string, settings *Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(settings); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Encode renders settings as TOML.
func (s *Settings) Encode() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
