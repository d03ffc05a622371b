// Package settings manages the persistent CLI configuration stored in
// ~/.config/valgo/config.yaml. The account password is never a valid key,
// it only travels through the VALGO_PASSWORD environment variable.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"pedro.to/valgo/region"
)

const (
	KeyUsername      = "username"
	KeyRegion        = "region"
	KeyClientVersion = "client_version"
	KeySessionsDir   = "sessions_dir"
)

var knownKeys = map[string]string{
	KeyUsername:      "Riot account username",
	KeyRegion:        "region affinity (na1, euw1, as2...)",
	KeyClientVersion: "pinned client version header",
	KeySessionsDir:   "directory for saved sessions",
}

// Settings wraps viper to manage the valgo config file.
type Settings struct {
	v        *viper.Viper
	filePath string
}

// New creates a Settings that reads from ~/.config/valgo/config.yaml,
// creating the config directory when missing.
func New() (*Settings, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("determining home directory: %w", err)
	}

	dir := filepath.Join(home, ".config", "valgo")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	filePath := filepath.Join(dir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return &Settings{v: v, filePath: filePath}, nil
}

// Get returns the value for a configuration key.
func (s *Settings) Get(key string) string {
	return s.v.GetString(key)
}

// Set writes a configuration key-value pair and persists it to disk.
func (s *Settings) Set(key, value string) error {
	if _, ok := knownKeys[key]; !ok {
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(KnownKeyNames(), ", "))
	}
	if key == KeyRegion {
		value = strings.ToLower(value)
		if _, err := region.FromAffinity(value); err != nil {
			return err
		}
	}
	s.v.Set(key, value)
	return s.v.WriteConfigAs(s.filePath)
}

// Entry is a single configuration key-value pair.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// List returns all set configuration entries.
func (s *Settings) List() []Entry {
	var entries []Entry
	for _, key := range KnownKeyNames() {
		if val := s.v.GetString(key); val != "" {
			entries = append(entries, Entry{Key: key, Value: val})
		}
	}
	return entries
}

// KnownKeyNames returns the valid key names in display order.
func KnownKeyNames() []string {
	return []string{KeyUsername, KeyRegion, KeyClientVersion, KeySessionsDir}
}

// FilePath returns the path to the configuration file.
func (s *Settings) FilePath() string {
	return s.filePath
}
