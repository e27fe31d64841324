package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/JulMan-Dev/discord-anti-spam/internal/bot"
	"github.com/JulMan-Dev/discord-anti-spam/internal/engine"
	"github.com/JulMan-Dev/discord-anti-spam/internal/logging"
)

// Handler routes slash command interactions.
type Handler struct {
	session *bot.Session
	engine  *engine.Engine
}

var globalHandler *Handler

// Initialize registers commands and the interaction handler.
func Initialize(session *bot.Session, eng *engine.Engine) error {
	globalHandler = &Handler{
		session: session,
		engine:  eng,
	}

	session.AddHandler(globalHandler.handleInteraction)

	commands := GetAllCommands()
	if err := session.RegisterCommands(commands); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	logging.Info("command handler initialized with %d commands", len(commands))
	return nil
}

func (h *Handler) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	var err error
	switch i.ApplicationCommandData().Name {
	case "ping":
		err = h.handlePing(s, i)
	case "status":
		err = h.handleStatus(s, i)
	case "stats":
		err = h.handleStats(s, i)
	case "thresholds":
		err = h.handleThresholds(s, i)
	case "antispam":
		err = h.handleAntispamToggle(s, i)
	case "logchannel":
		err = h.handleLogChannel(s, i)
	case "ignore":
		err = h.handleIgnore(s, i)
	case "reset":
		err = h.handleReset(s, i)
	default:
		return
	}

	if err != nil {
		logging.Warn("command %s failed: %v", i.ApplicationCommandData().Name, err)
	}
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
}
