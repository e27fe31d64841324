package bootstrap

import (
	"github.com/JulMan-Dev/discord-anti-spam/internal/database"
	"github.com/JulMan-Dev/discord-anti-spam/internal/logging"
)

// Shutdown tears components down in reverse wiring order so queued
// sanctions drain before the session drops.
func Shutdown(c *Components) {
	logging.Info("starting graceful shutdown")

	if c.Dispatcher != nil {
		logging.Info("stopping dispatcher workers")
		c.Dispatcher.Stop()
	}

	if c.Session != nil {
		logging.Info("closing Discord session")
		if err := c.Session.Close(); err != nil {
			logging.Warn("session close: %v", err)
		}
	}

	if err := database.Close(); err != nil {
		logging.Warn("database close: %v", err)
	}

	logging.Info("graceful shutdown complete")
	logging.Sync()
}
