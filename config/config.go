package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/whales-names/whales/util"

	atomicfile "github.com/natefinch/atomic"
)

// Config holds the persisted settings. Global flags take precedence over it.
type Config struct {
	HostsFile string        `json:"hosts_file,omitempty" yaml:"hosts_file,omitempty"` // Hosts file to manage
	Platform  string        `json:"platform,omitempty" yaml:"platform,omitempty"`     // Platform family override
	WriteMode string        `json:"write_mode,omitempty" yaml:"write_mode,omitempty"` // atomic or truncate
	Manifest  string        `json:"manifest,omitempty" yaml:"manifest,omitempty"`     // Default manifest for apply and watch
	Debounce  util.Duration `json:"debounce,omitempty" yaml:"debounce,omitempty"`     // Quiet period before the watcher applies
}

const DefaultDebounce = 250 * time.Millisecond

func (c *Config) SetDefaults() {
	c.Debounce = c.Debounce.Or(DefaultDebounce)
}

// Effective returns the settings with the global flags applied on top.
func (c Config) Effective() Config {
	if IsSet("hosts-file") {
		c.HostsFile = *HostsFile
	}
	if IsSet("platform") {
		c.Platform = *Platform
	}
	if IsSet("write-mode") {
		c.WriteMode = *WriteMode
	}
	return c
}

func configPath() string {
	return filepath.Join(Home(), "config.json")
}
func readConfig() (out Config, err error) {
	data, err := os.ReadFile(configPath())
	if err != nil && !os.IsNotExist(err) {
		return
	}
	err = nil
	if len(data) != 0 {
		err = json.Unmarshal(data, &out)
	}
	out.SetDefaults()
	return
}
func writeConfigLocked(in *Config) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(configPath(), bytes.NewReader(data))
}

// cachedConfig is the loaded settings of one home directory.
type cachedConfig struct {
	home   string
	config *Config
}

var settings atomic.Pointer[cachedConfig]

// Update applies update to the stored settings and persists them.
func Update(update func(*Config) error) error {
	return WithLock(func() error {
		c, err := readConfig()
		if err != nil {
			return err
		}
		if err = update(&c); err != nil {
			return err
		}
		if err = writeConfigLocked(&c); err != nil {
			return err
		}
		settings.Store(&cachedConfig{home: Home(), config: &c})
		return nil
	})
}

// Get returns the stored settings, loading them on first use for the
// current home directory.
func Get() (*Config, error) {
	home := Home()
	if res := settings.Load(); res != nil && res.home == home {
		return res.config, nil
	}
	c, err := readConfig()
	if err != nil {
		return nil, err
	}
	settings.Store(&cachedConfig{home: home, config: &c})
	return &c, nil
}
