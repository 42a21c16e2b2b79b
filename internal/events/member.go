// Package events provides event handlers for member events
package events

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/config"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/discord"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildMemberAdd)
	client.Session.AddHandler(onGuildMemberRemove)
}

// onGuildMemberAdd is called when a new member joins the server. The DM
// points them at the application channel so they know how to get
// whitelisted
func onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	logger.Info(fmt.Sprintf("👋 Nuevo miembro: %s#%s en servidor %s",
		m.User.Username, m.User.Discriminator, m.GuildID), "Member")

	guild, err := s.Guild(m.GuildID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error obteniendo servidor: %v", err), "Member")
		return
	}

	cfg := config.Get()

	channel, err := s.UserChannelCreate(m.User.ID)
	if err != nil {
		return
	}

	dmEmbed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("¡Bienvenido/a a %s!", guild.Name),
		Description: "Para jugar en nuestro servidor de Minecraft necesitas estar en la whitelist.",
		Color:       0x3498db,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: guild.IconURL("256"),
		},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "📝 Solicita tu acceso",
				Value: fmt.Sprintf("Pulsa el botón de solicitud en <#%s> y rellena el formulario.", cfg.ApplyChannelID),
			},
			{
				Name:  "⏳ Revisión",
				Value: "El equipo revisará tu solicitud y te avisaremos por DM.",
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, dmErr := s.ChannelMessageSendEmbed(channel.ID, dmEmbed); dmErr != nil {
		logger.Debug("No se pudo enviar DM de bienvenida (DMs cerrados)", "Member")
	}
}

// onGuildMemberRemove is called when a member leaves the server
func onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	logger.Info(fmt.Sprintf("👋 Adiós: %s#%s salió del servidor %s",
		m.User.Username, m.User.Discriminator, m.GuildID), "Member")
}
