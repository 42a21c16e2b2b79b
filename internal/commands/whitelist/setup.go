package whitelist

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyWhitelistGo/internal/events"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/config"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/discord"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/errors"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/setup"
	"github.com/bwmarrin/discordgo"
)

// createSetupCommand creates the /whitelist setup subcommand
func createSetupCommand() *discord.Command {
	return discord.NewCommand(
		"setup",
		"Publica el formulario de solicitud de whitelist",
		"whitelist",
		setupHandler,
	).AsAdminOnly()
}

// setupHandler posts the apply screen, or edits the previous one when a
// pointer to it survives
func setupHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		cfg := config.Get()
		channelID := cfg.ApplyChannelID
		if channelID == "" {
			channelID = ctx.Interaction.ChannelID
		}

		embed := applyScreenEmbed()
		components := []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Solicitar whitelist",
					Style:    discordgo.PrimaryButton,
					CustomID: events.IDApplyButton,
					Emoji:    &discordgo.ComponentEmoji{Name: "📝"},
				},
			}},
		}

		// Re-running setup edits the old message instead of duplicating it
		if ptr, ok := setup.Get().Lookup(setup.ScreenApply); ok {
			_, err := ctx.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
				Channel:    ptr.ChannelID,
				ID:         ptr.MessageID,
				Embeds:     &[]*discordgo.MessageEmbed{embed},
				Components: &components,
			})
			if err == nil {
				ctx.ReplyEphemeral(fmt.Sprintf("✅ Formulario actualizado en <#%s>.", ptr.ChannelID))
				return
			}
			logger.Warn("El mensaje de setup anterior ya no existe, publicando uno nuevo", "Setup")
		}

		msg, err := ctx.Session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		})
		if err != nil {
			logger.Error(fmt.Sprintf("No se pudo publicar el formulario: %v", err), "Setup")
			ctx.ReplyEphemeral("❌ No se pudo publicar el formulario en ese canal.")
			return
		}

		if err := setup.Get().Save(setup.ScreenApply, models.SetupPointer{ChannelID: msg.ChannelID, MessageID: msg.ID}); err != nil {
			logger.Warn("No se pudo guardar el puntero de setup: "+err.Error(), "Setup")
		}

		ctx.ReplyEphemeral(fmt.Sprintf("✅ Formulario publicado en <#%s>.", msg.ChannelID))
	}()
	return nil
}

func applyScreenEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "⛏️ Whitelist del servidor",
		Description: "Para jugar en nuestro servidor de Minecraft necesitas estar en la whitelist.\n\n" +
			"Pulsa el botón y rellena el formulario. El equipo revisará tu solicitud " +
			"y te avisaremos por DM con el resultado.",
		Color: 0x57F287,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "☕ Java", Value: "Usa tu nombre de Minecraft tal cual", Inline: true},
			{Name: "🪨 Bedrock", Value: "Usa tu gamertag, nosotros nos encargamos del resto", Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "💫 PancyStudios"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
