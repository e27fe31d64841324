package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (h *Handler) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return respond(s, i, fmt.Sprintf("Pong! Gateway latency: %d ms", s.HeartbeatLatency().Milliseconds()))
}
