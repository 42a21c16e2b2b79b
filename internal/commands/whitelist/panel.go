package whitelist

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyWhitelistGo/internal/events"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/discord"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/errors"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/setup"
	"github.com/bwmarrin/discordgo"
)

// createPanelCommand creates the /whitelist panel subcommand
func createPanelCommand() *discord.Command {
	return discord.NewCommand(
		"panel",
		"Publica el panel de administración del servidor",
		"whitelist",
		panelHandler,
	).AsAdminOnly()
}

// panelHandler posts the admin panel in the invoking channel, editing
// the previous panel when its pointer survives
func panelHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		embed := &discordgo.MessageEmbed{
			Title: "🔧 Panel de administración",
			Description: "Acciones rápidas sobre el servidor de Minecraft. " +
				"Cada botón abre un formulario y ejecuta el comando en la consola.",
			Color:     0xED4245,
			Footer:    &discordgo.MessageEmbedFooter{Text: "Solo administradores del bot"},
			Timestamp: time.Now().Format(time.RFC3339),
		}
		components := []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Banear", Style: discordgo.DangerButton, CustomID: events.PanelBan, Emoji: &discordgo.ComponentEmoji{Name: "🔨"}},
				discordgo.Button{Label: "Desbanear", Style: discordgo.SecondaryButton, CustomID: events.PanelUnban, Emoji: &discordgo.ComponentEmoji{Name: "🕊️"}},
				discordgo.Button{Label: "Expulsar", Style: discordgo.SecondaryButton, CustomID: events.PanelKick, Emoji: &discordgo.ComponentEmoji{Name: "👢"}},
				discordgo.Button{Label: "Anunciar", Style: discordgo.PrimaryButton, CustomID: events.PanelBroadcast, Emoji: &discordgo.ComponentEmoji{Name: "📣"}},
			}},
		}

		if ptr, ok := setup.Get().Lookup(setup.ScreenPanel); ok {
			_, err := ctx.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
				Channel:    ptr.ChannelID,
				ID:         ptr.MessageID,
				Embeds:     &[]*discordgo.MessageEmbed{embed},
				Components: &components,
			})
			if err == nil {
				ctx.ReplyEphemeral(fmt.Sprintf("✅ Panel actualizado en <#%s>.", ptr.ChannelID))
				return
			}
			logger.Warn("El panel anterior ya no existe, publicando uno nuevo", "Panel")
		}

		msg, err := ctx.Session.ChannelMessageSendComplex(ctx.Interaction.ChannelID, &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		})
		if err != nil {
			logger.Error(fmt.Sprintf("No se pudo publicar el panel: %v", err), "Panel")
			ctx.ReplyEphemeral("❌ No se pudo publicar el panel en este canal.")
			return
		}

		if err := setup.Get().Save(setup.ScreenPanel, models.SetupPointer{ChannelID: msg.ChannelID, MessageID: msg.ID}); err != nil {
			logger.Warn("No se pudo guardar el puntero del panel: "+err.Error(), "Panel")
		}

		ctx.ReplyEphemeral("✅ Panel de administración publicado.")
	}()
	return nil
}
