package discord

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/admins"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// AdminMiddleware verifica que el usuario pertenezca al conjunto de
// administradores antes de ejecutar un comando restringido
func (c *ExtendedClient) AdminMiddleware(ctx *CommandContext) error {
	userID := ctx.User().ID

	if admins.Get().IsMember(userID) {
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🚫 Acceso Denegado",
		Description: "No tienes permisos de administrador del bot para usar este comando.",
		Color:       0xFF0000,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	_ = ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})

	logger.Warn(fmt.Sprintf("Usuario sin permisos intentó usar un comando de admin: %s", userID), "AdminMiddleware")
	return fmt.Errorf("user is not an administrator")
}
