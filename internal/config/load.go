package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var ErrConfigNotFound = errors.New("config file not found")

type Config struct {
	Bot       BotConfig       `koanf:"bot"`
	Detection DetectionConfig `koanf:"detection"`
	Logging   LoggingConfig   `koanf:"logging"`
	Database  DatabaseConfig  `koanf:"database"`
	Network   NetworkConfig   `koanf:"network"`
}

type BotConfig struct {
	Token        string `koanf:"token"`
	ClientID     string `koanf:"client_id"`
	LogChannelID uint64 `koanf:"log_channel_id"` // default when a guild has none configured
}

// DetectionConfig is the file-side rendition of the engine Options.
// Intervals are in milliseconds, the unmute duration in minutes.
type DetectionConfig struct {
	Enabled bool `koanf:"enabled"`

	WarnThreshold int `koanf:"warn_threshold"`
	MuteThreshold int `koanf:"mute_threshold"`
	KickThreshold int `koanf:"kick_threshold"`
	BanThreshold  int `koanf:"ban_threshold"`

	MaxIntervalMs           int `koanf:"max_interval_ms"`
	MaxDuplicatesIntervalMs int `koanf:"max_duplicates_interval_ms"`

	MaxDuplicatesWarn int `koanf:"max_duplicates_warn"`
	MaxDuplicatesMute int `koanf:"max_duplicates_mute"`
	MaxDuplicatesKick int `koanf:"max_duplicates_kick"`
	MaxDuplicatesBan  int `koanf:"max_duplicates_ban"`

	UnMuteMinutes int `koanf:"unmute_minutes"`

	IgnoredMembers     []uint64 `koanf:"ignored_members"`
	IgnoredRoles       []uint64 `koanf:"ignored_roles"`
	IgnoredGuilds      []uint64 `koanf:"ignored_guilds"`
	IgnoredChannels    []uint64 `koanf:"ignored_channels"`
	IgnoredPermissions []int64  `koanf:"ignored_permissions"`

	IgnoreBots bool `koanf:"ignore_bots"`

	WarnEnabled bool `koanf:"warn_enabled"`
	MuteEnabled bool `koanf:"mute_enabled"`
	KickEnabled bool `koanf:"kick_enabled"`
	BanEnabled  bool `koanf:"ban_enabled"`

	RemoveMessages bool `koanf:"remove_messages"`

	Debug   bool `koanf:"debug"`
	Verbose bool `koanf:"verbose"`
}

type LoggingConfig struct {
	Level string `koanf:"level"`
	Path  string `koanf:"path"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type NetworkConfig struct {
	Workers      int `koanf:"workers"`
	QueueSize    int `koanf:"queue_size"`
	HTTPPoolSize int `koanf:"http_pool_size"`
}

// EngineOptions maps the file config onto engine Options. Predicate filters
// have no file form; library users set them on the returned Options.
func (d *DetectionConfig) EngineOptions() Options {
	return Options{
		WarnThreshold:         d.WarnThreshold,
		MuteThreshold:         d.MuteThreshold,
		KickThreshold:         d.KickThreshold,
		BanThreshold:          d.BanThreshold,
		MaxInterval:           time.Duration(d.MaxIntervalMs) * time.Millisecond,
		MaxDuplicatesInterval: time.Duration(d.MaxDuplicatesIntervalMs) * time.Millisecond,
		MaxDuplicatesWarn:     d.MaxDuplicatesWarn,
		MaxDuplicatesMute:     d.MaxDuplicatesMute,
		MaxDuplicatesKick:     d.MaxDuplicatesKick,
		MaxDuplicatesBan:      d.MaxDuplicatesBan,
		UnMuteDuration:        time.Duration(d.UnMuteMinutes) * time.Minute,
		IgnoredMembers:        IDFilter{IDs: d.IgnoredMembers},
		IgnoredRoles:          RoleFilter{IDs: d.IgnoredRoles},
		IgnoredGuilds:         IDFilter{IDs: d.IgnoredGuilds},
		IgnoredChannels:       IDFilter{IDs: d.IgnoredChannels},
		IgnoredPermissions:    d.IgnoredPermissions,
		IgnoreBots:            d.IgnoreBots,
		WarnEnabled:           d.WarnEnabled,
		MuteEnabled:           d.MuteEnabled,
		KickEnabled:           d.KickEnabled,
		BanEnabled:            d.BanEnabled,
		RemoveMessages:        d.RemoveMessages,
		Debug:                 d.Debug,
		Verbose:               d.Verbose,
	}
}

var GlobalConfig *Config

// Load reads a TOML config file and applies environment overrides for
// secrets.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}
	if clientID := os.Getenv("CLIENT_ID"); clientID != "" {
		cfg.Bot.ClientID = clientID
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	GlobalConfig = cfg
	return cfg, nil
}

func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		cfg = DefaultConfig()
		if token := os.Getenv("DISCORD_TOKEN"); token != "" {
			cfg.Bot.Token = token
		}
		GlobalConfig = cfg
	}
	return cfg
}

func DefaultConfig() *Config {
	opts := DefaultOptions()
	return &Config{
		Detection: DetectionConfig{
			Enabled:                 true,
			WarnThreshold:           opts.WarnThreshold,
			MuteThreshold:           opts.MuteThreshold,
			KickThreshold:           opts.KickThreshold,
			BanThreshold:            opts.BanThreshold,
			MaxIntervalMs:           int(opts.MaxInterval / time.Millisecond),
			MaxDuplicatesIntervalMs: int(opts.MaxDuplicatesInterval / time.Millisecond),
			MaxDuplicatesWarn:       opts.MaxDuplicatesWarn,
			MaxDuplicatesMute:       opts.MaxDuplicatesMute,
			MaxDuplicatesKick:       opts.MaxDuplicatesKick,
			MaxDuplicatesBan:        opts.MaxDuplicatesBan,
			UnMuteMinutes:           int(opts.UnMuteDuration / time.Minute),
			IgnoreBots:              opts.IgnoreBots,
			WarnEnabled:             opts.WarnEnabled,
			MuteEnabled:             opts.MuteEnabled,
			KickEnabled:             opts.KickEnabled,
			BanEnabled:              opts.BanEnabled,
			RemoveMessages:          opts.RemoveMessages,
		},
		Logging: LoggingConfig{
			Level: "info",
			Path:  "logs/antispam.log",
		},
		Database: DatabaseConfig{
			Path: "data/antispam.db",
		},
		Network: NetworkConfig{
			Workers:      4,
			QueueSize:    1024,
			HTTPPoolSize: 4,
		},
	}
}

func Get() *Config {
	if GlobalConfig == nil {
		return DefaultConfig()
	}
	return GlobalConfig
}
