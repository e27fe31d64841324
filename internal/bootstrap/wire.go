package bootstrap

import (
	"fmt"

	"github.com/JulMan-Dev/discord-anti-spam/internal/bot"
	"github.com/JulMan-Dev/discord-anti-spam/internal/commands"
	"github.com/JulMan-Dev/discord-anti-spam/internal/database"
	"github.com/JulMan-Dev/discord-anti-spam/internal/dispatcher"
	"github.com/JulMan-Dev/discord-anti-spam/internal/engine"
	"github.com/JulMan-Dev/discord-anti-spam/internal/logging"
	"github.com/JulMan-Dev/discord-anti-spam/internal/notifier"
)

func (b *Bootstrap) wireComponents() error {
	logging.Info("wiring components")

	if database.GetDB() == nil {
		return fmt.Errorf("database connection not available")
	}

	opts := b.Config.Detection.EngineOptions()
	eng := engine.New(opts, uint32(b.Config.Network.QueueSize))

	if err := bot.Initialize(b.Config.Bot.Token); err != nil {
		return err
	}
	session := bot.GetSession()

	moderator := bot.NewDiscordModerator(session, b.Config.Network.HTTPPoolSize)
	disp := dispatcher.New(eng, moderator, b.Config.Network.Workers)

	session.SetupEventHandlers(eng)
	notifier.SetSession(session.GetDiscord())
	bot.RegisterObservers(eng, b.Config.Bot.LogChannelID)

	if err := session.Connect(); err != nil {
		return err
	}
	eng.SetSelfID(session.BotID)

	if err := commands.Initialize(session, eng); err != nil {
		logging.Warn("command registration failed: %v", err)
	}

	disp.Start()

	b.Components = &Components{
		Engine:     eng,
		Dispatcher: disp,
		Session:    session,
		Moderator:  moderator,
	}
	return nil
}
