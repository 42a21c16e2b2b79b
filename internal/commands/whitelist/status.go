package whitelist

import (
	"fmt"

	"github.com/PancyStudios/PancyWhitelistGo/internal/events"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/discord"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/errors"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/setup"
	"github.com/bwmarrin/discordgo"
)

// createStatusCommand creates the /whitelist status subcommand
func createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Publica la pantalla de estado de la whitelist",
		"whitelist",
		statusHandler,
	).AsAdminOnly()
}

// statusHandler posts the live-status screen in the invoking channel,
// editing the previous one when its pointer survives. The screen keeps
// itself current through its refresh button
func statusHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		embed := events.BuildStatusEmbed()
		components := events.StatusComponents()

		if ptr, ok := setup.Get().Lookup(setup.ScreenStatus); ok {
			_, err := ctx.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
				Channel:    ptr.ChannelID,
				ID:         ptr.MessageID,
				Embeds:     &[]*discordgo.MessageEmbed{embed},
				Components: &components,
			})
			if err == nil {
				ctx.ReplyEphemeral(fmt.Sprintf("✅ Pantalla de estado actualizada en <#%s>.", ptr.ChannelID))
				return
			}
			logger.Warn("La pantalla de estado anterior ya no existe, publicando una nueva", "Status")
		}

		msg, err := ctx.Session.ChannelMessageSendComplex(ctx.Interaction.ChannelID, &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		})
		if err != nil {
			logger.Error(fmt.Sprintf("No se pudo publicar la pantalla de estado: %v", err), "Status")
			ctx.ReplyEphemeral("❌ No se pudo publicar la pantalla de estado en este canal.")
			return
		}

		if err := setup.Get().Save(setup.ScreenStatus, models.SetupPointer{ChannelID: msg.ChannelID, MessageID: msg.ID}); err != nil {
			logger.Warn("No se pudo guardar el puntero de la pantalla de estado: "+err.Error(), "Status")
		}

		ctx.ReplyEphemeral("✅ Pantalla de estado publicada.")
	}()
	return nil
}
