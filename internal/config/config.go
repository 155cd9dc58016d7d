// Package config provides configuration types and defaults for redline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DictionaryConfig locates the spellcheck word list and controls reloads.
type DictionaryConfig struct {
	// AffixPath and WordlistPath are the Hunspell-style .aff/.dic pair.
	// When both are empty, the parity placeholder classifier is used.
	AffixPath    string `mapstructure:"affix_path"`
	WordlistPath string `mapstructure:"wordlist_path"`

	// AutoReload re-initializes the dictionary when the files change.
	AutoReload     bool          `mapstructure:"auto_reload"`
	ReloadDebounce time.Duration `mapstructure:"reload_debounce"`

	// CacheTTL bounds how long check verdicts and suggestions are cached.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// ThemeConfig holds the prompt colors. Values are hex colors or ANSI-256
// palette indexes, whatever lipgloss accepts.
type ThemeConfig struct {
	Misspelled string `mapstructure:"misspelled"` // style for highlighted words
	Suggestion string `mapstructure:"suggestion"` // style for the suggestion hint
	Prompt     string `mapstructure:"prompt"`     // style for the prompt symbol
}

// Config holds all configuration options for redline.
type Config struct {
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Theme      ThemeConfig      `mapstructure:"theme"`
	Debug      bool             `mapstructure:"debug"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Dictionary: DictionaryConfig{
			AutoReload:     true,
			ReloadDebounce: time.Second,
			CacheTTL:       10 * time.Minute,
		},
		Theme: ThemeConfig{
			Misspelled: "203", // soft red
			Suggestion: "244", // gray
			Prompt:     "39",  // blue
		},
	}
}

// HasDictionary reports whether a word-list pair is configured.
func (c Config) HasDictionary() bool {
	return c.Dictionary.AffixPath != "" && c.Dictionary.WordlistPath != ""
}

// Validate rejects half-configured dictionaries: both paths or neither.
func (c Config) Validate() error {
	aff, dic := c.Dictionary.AffixPath, c.Dictionary.WordlistPath
	if (aff == "") != (dic == "") {
		return fmt.Errorf("dictionary requires both affix_path and wordlist_path, got affix_path=%q wordlist_path=%q", aff, dic)
	}
	if c.Dictionary.ReloadDebounce < 0 {
		return fmt.Errorf("reload_debounce must not be negative")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# redline configuration

# Hunspell-style dictionary pair. Leave both unset to fall back to the
# built-in placeholder classifier (highlights even-length words).
dictionary:
  # affix_path: /usr/share/hunspell/en_US.aff
  # wordlist_path: /usr/share/hunspell/en_US.dic

  # Reload the dictionary automatically when the files change.
  auto_reload: true
  reload_debounce: 1s

  # How long check verdicts and suggestions stay cached.
  cache_ttl: 10m

# Colors accept hex values ("#FF5F5F") or ANSI-256 indexes ("203").
theme:
  misspelled: "203"
  suggestion: "244"
  prompt: "39"

# Write a debug log (also enabled by --debug or REDLINE_DEBUG=1).
debug: false
`
}

// WriteDefaultConfig writes the commented default config to configPath,
// creating parent directories as needed. Existing files are left alone.
func WriteDefaultConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
