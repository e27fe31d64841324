package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/JulMan-Dev/discord-anti-spam/internal/logging"
	"github.com/JulMan-Dev/discord-anti-spam/pkg/util"
)

type Session struct {
	discord *discordgo.Session
	token   string
	BotID   uint64
}

var globalSession *Session

// Initialize creates the Discord session.
func Initialize(token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	globalSession = &Session{
		discord: dg,
		token:   token,
	}
	return nil
}

func GetSession() *Session {
	return globalSession
}

func (s *Session) GetDiscord() *discordgo.Session {
	return s.discord
}

func (s *Session) Token() string {
	return s.token
}

// Connect opens the gateway connection and resolves the bot's own id.
func (s *Session) Connect() error {
	if err := s.discord.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if s.discord.State.User != nil {
		s.BotID = util.ParseSnowflake(s.discord.State.User.ID)
		logging.Info("connected as %s (%d)", s.discord.State.User.Username, s.BotID)
	}
	return nil
}

func (s *Session) Close() error {
	if s.discord != nil {
		return s.discord.Close()
	}
	return nil
}

func (s *Session) AddHandler(handler any) {
	s.discord.AddHandler(handler)
}

// RegisterCommands registers the slash commands globally.
func (s *Session) RegisterCommands(commands []*discordgo.ApplicationCommand) error {
	for _, cmd := range commands {
		if _, err := s.discord.ApplicationCommandCreate(s.discord.State.User.ID, "", cmd); err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		logging.Debug("registered command /%s", cmd.Name)
	}
	return nil
}
