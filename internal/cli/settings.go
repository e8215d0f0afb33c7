package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/avatarkit/pkg/errors"
	"github.com/matzehuels/avatarkit/pkg/pipeline"
	"github.com/matzehuels/avatarkit/pkg/session"
)

// Cache and session backends.
const (
	backendFile   = "file"
	backendRedis  = "redis"
	backendNone   = "none"
	backendMemory = "memory"
)

// Settings is the optional config.toml. Command-line flags override it.
type Settings struct {
	Render RenderSettings `toml:"render"`
	Cache  CacheSettings  `toml:"cache"`
	Server ServerSettings `toml:"server"`
}

// RenderSettings are defaults for commands that render.
type RenderSettings struct {
	Width         int      `toml:"width"`
	Height        int      `toml:"height"`
	Scale         float64  `toml:"scale"`
	Formats       []string `toml:"formats"`
	Seed          uint64   `toml:"seed"`
	ClothingColor string   `toml:"clothing_color"`
}

// CacheSettings select the artifact cache.
type CacheSettings struct {
	Backend string `toml:"backend"` // file, redis or none
	Redis   string `toml:"redis"`
}

// ServerSettings configure `avatarkit serve`.
type ServerSettings struct {
	Addr          string   `toml:"addr"`
	Sessions      string   `toml:"sessions"` // memory or redis
	Redis         string   `toml:"redis"`
	SessionTTL    duration `toml:"session_ttl"`
	SecureCookies bool     `toml:"secure_cookies"`
}

// duration decodes TOML strings such as "12h".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func defaultSettings() Settings {
	return Settings{
		Render: RenderSettings{
			Width:   pipeline.DefaultWidth,
			Height:  pipeline.DefaultHeight,
			Scale:   pipeline.DefaultScale,
			Formats: []string{pipeline.FormatPNG},
		},
		Cache: CacheSettings{
			Backend: backendFile,
			Redis:   "localhost:6379",
		},
		Server: ServerSettings{
			Addr:       "localhost:8080",
			Sessions:   backendMemory,
			Redis:      "localhost:6379",
			SessionTTL: duration{session.DefaultTTL},
		},
	}
}

// settingsPath returns $XDG_CONFIG_HOME/avatarkit/config.toml.
func settingsPath() (string, error) {
	if cfgHome := os.Getenv("XDG_CONFIG_HOME"); cfgHome != "" {
		return filepath.Join(cfgHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadSettings reads path over the defaults. An empty path means the default
// location, which may be absent; an explicit path must exist.
func loadSettings(path string) (Settings, error) {
	s := defaultSettings()
	explicit := path != ""
	if !explicit {
		p, err := settingsPath()
		if err != nil {
			return s, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return defaultSettings(), nil
		}
		if os.IsNotExist(err) {
			return s, errors.Wrap(errors.ErrCodeFileNotFound, err, "settings file %s", path)
		}
		return s, errors.Wrap(errors.ErrCodeInvalidConfig, err, "settings file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return s, errors.New(errors.ErrCodeInvalidConfig, "settings file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return s, s.validate()
}

func (s Settings) validate() error {
	switch s.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return errInvalidBackend("cache.backend", s.Cache.Backend)
	}
	switch s.Server.Sessions {
	case backendMemory, backendRedis:
	default:
		return errInvalidBackend("server.sessions", s.Server.Sessions)
	}
	for _, f := range s.Render.Formats {
		if err := pipeline.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func errInvalidBackend(setting, value string) error {
	return errors.New(errors.ErrCodeInvalidConfig, "unknown %s backend %q", setting, value)
}
