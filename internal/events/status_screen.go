// The live-status screen: a persistent embed with backend reachability
// and application counters, refreshed in place through its button.
package events

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/config"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/database"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/rcon"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/whitelist"
	"github.com/bwmarrin/discordgo"
)

// IDStatusRefresh is the custom ID of the refresh button on the status screen
const IDStatusRefresh = "wl_status_refresh"

// BuildStatusEmbed renders the current whitelist status: application
// counters, active backend and its reachability right now
func BuildStatusEmbed() *discordgo.MessageEmbed {
	cfg := config.Get()

	pending, _ := database.CountByStatus(models.StatusPending)
	approved, _ := database.CountByStatus(models.StatusApproved)
	rejected, _ := database.CountByStatus(models.StatusRejected)

	backendName := "Consola remota (RCON)"
	backendState := "🔴 Inalcanzable"
	if cfg.UseFileBackend() {
		backendName = "Archivo whitelist.json"
		backendState = "🔴 Archivo ilegible"
		if counter, ok := services.Store.(whitelist.Counter); ok {
			if n, err := counter.Count(); err == nil {
				backendState = fmt.Sprintf("🟢 %d nombres", n)
			}
		}
	} else if rcon.NewClient(cfg.RconHost, cfg.RconPort, cfg.RconPassword).Ping() {
		backendState = "🟢 Conectada"
	}

	return &discordgo.MessageEmbed{
		Title: "⛏️ Estado de la whitelist",
		Color: 0x57F287,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "⏳ Pendientes", Value: fmt.Sprintf("%d", pending), Inline: true},
			{Name: "✅ Aprobadas", Value: fmt.Sprintf("%d", approved), Inline: true},
			{Name: "❌ Rechazadas", Value: fmt.Sprintf("%d", rejected), Inline: true},
			{Name: "Backend", Value: backendName, Inline: true},
			{Name: "Estado", Value: backendState, Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "💫 PancyStudios"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// StatusComponents returns the action row with the refresh button
func StatusComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Actualizar",
				Style:    discordgo.SecondaryButton,
				CustomID: IDStatusRefresh,
				Emoji:    &discordgo.ComponentEmoji{Name: "🔄"},
			},
		}},
	}
}

// handleStatusRefresh re-renders the status screen in place. The update
// responds on the pressed message itself, no new message is posted
func handleStatusRefresh(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := BuildStatusEmbed()
	components := StatusComponents()

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error actualizando la pantalla de estado: %v", err), "Status")
	}
}
