package commands

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/JulMan-Dev/discord-anti-spam/internal/bot"
)

// handleStats gathers host statistics; slow calls run behind a deferred
// response.
func (h *Handler) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return err
	}

	embed := buildStatsEmbed()
	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

func buildStatsEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📊 System Statistics",
		Color: 0x57F287,
	}

	if info, err := host.Info(); err == nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Host",
			Value: fmt.Sprintf("%s (%s %s)\nUptime: %s",
				info.Hostname, info.Platform, info.PlatformVersion,
				(time.Duration(info.Uptime) * time.Second).String()),
		})
	}

	if percents, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(percents) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "CPU",
			Value:  fmt.Sprintf("%.1f%% of %d cores", percents[0], runtime.NumCPU()),
			Inline: true,
		})
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Memory",
			Value: fmt.Sprintf("%.1f%% of %.1f GiB", vm.UsedPercent,
				float64(vm.Total)/(1024*1024*1024)),
			Inline: true,
		})
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "Process",
		Value:  fmt.Sprintf("%d goroutines, %.1f MiB heap", runtime.NumGoroutine(), float64(ms.HeapAlloc)/(1024*1024)),
		Inline: true,
	})

	if latency, err := bot.ProbeGatewayLatency(5 * time.Second); err == nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Gateway probe",
			Value: fmt.Sprintf("heartbeat round trip **%d ms**", latency.Milliseconds()),
		})
	}

	return embed
}
