package bootstrap

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/JulMan-Dev/discord-anti-spam/internal/bot"
	"github.com/JulMan-Dev/discord-anti-spam/internal/config"
	"github.com/JulMan-Dev/discord-anti-spam/internal/database"
	"github.com/JulMan-Dev/discord-anti-spam/internal/dispatcher"
	"github.com/JulMan-Dev/discord-anti-spam/internal/engine"
	"github.com/JulMan-Dev/discord-anti-spam/internal/logging"
	"github.com/JulMan-Dev/discord-anti-spam/internal/metrics"
)

type Bootstrap struct {
	Config      *config.Config
	Components  *Components
	initialized bool
}

type Components struct {
	Engine     *engine.Engine
	Dispatcher *dispatcher.Dispatcher
	Session    *bot.Session
	Moderator  *bot.DiscordModerator
}

func New() *Bootstrap {
	return &Bootstrap{}
}

func (b *Bootstrap) Initialize() error {
	if err := b.loadConfig(); err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	if err := b.initializeLogging(); err != nil {
		return fmt.Errorf("logging init failed: %w", err)
	}

	if err := b.initializeDatabase(); err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	metrics.InitGlobalRegistry()
	config.InitGuildSettings()

	if err := b.wireComponents(); err != nil {
		return fmt.Errorf("component wiring failed: %w", err)
	}

	b.initialized = true
	logging.Info("Bootstrap complete")
	return nil
}

func (b *Bootstrap) loadConfig() error {
	// Missing .env is fine, the config loader falls back to real env vars.
	_ = godotenv.Load()

	cfg := config.LoadOrDefault("config.toml")
	if cfg.Bot.Token == "" {
		cfg.Bot.Token = os.Getenv("DISCORD_TOKEN")
	}
	if cfg.Bot.Token == "" {
		return fmt.Errorf("no bot token in config.toml or DISCORD_TOKEN")
	}

	b.Config = cfg
	return nil
}

func (b *Bootstrap) initializeLogging() error {
	return logging.Init(b.Config.Logging.Level, b.Config.Logging.Path)
}

func (b *Bootstrap) initializeDatabase() error {
	return database.Initialize(b.Config.Database.Path)
}
