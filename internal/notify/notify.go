// Package notify fans resolved applications out to the announcement
// channels, the review message itself, MQTT and the live feed.
package notify

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/config"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/mqtt"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/web"
)

const (
	colorApproved = 0x57F287
	colorRejected = 0xED4245
)

// DiscordNotifier implements the review notifier against a live session
type DiscordNotifier struct {
	Session *discordgo.Session
	Config  *config.Config
}

// New builds a notifier for the running bot session
func New(session *discordgo.Session, cfg *config.Config) *DiscordNotifier {
	return &DiscordNotifier{Session: session, Config: cfg}
}

// Approved announces an approval: outcome channel, audit channel, review
// message edit, applicant DM and the event feeds. Each surface fails
// independently, a dead channel never blocks the rest
func (n *DiscordNotifier) Approved(app *models.Application, duplicate bool) {
	description := fmt.Sprintf("**%s** ha sido añadido a la whitelist. ¡Bienvenido!", app.Username)
	if duplicate {
		description = fmt.Sprintf("**%s** ya estaba en la whitelist, su rol fue re-sincronizado.", app.Username)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "✅ Solicitud Aprobada",
		Description: description,
		Color:       colorApproved,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Jugador", Value: app.ResolvedName, Inline: true},
			{Name: "Edición", Value: app.Edition, Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	n.send(n.Config.ApprovedChannelID, embed)
	n.audit(app, "aprobada", fmt.Sprintf("Nombre resuelto: `%s`", app.ResolvedName))
	n.closeReviewMessage(app, colorApproved, "Aprobada por <@"+app.ReviewerID+">")
	n.dm(app.ApplicantID, fmt.Sprintf("🎉 Tu solicitud de whitelist fue aprobada. Ya puedes entrar al servidor como **%s**.", app.ResolvedName))
	n.publish(app, "approved", duplicate)
}

// Rejected announces a rejection with its reason
func (n *DiscordNotifier) Rejected(app *models.Application) {
	embed := &discordgo.MessageEmbed{
		Title:       "❌ Solicitud Rechazada",
		Description: fmt.Sprintf("La solicitud de **%s** fue rechazada.", app.Username),
		Color:       colorRejected,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Motivo", Value: app.Reason},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	n.send(n.Config.RejectedChannelID, embed)
	n.audit(app, "rechazada", fmt.Sprintf("Motivo: %s", app.Reason))
	n.closeReviewMessage(app, colorRejected, "Rechazada por <@"+app.ReviewerID+">")
	n.dm(app.ApplicantID, fmt.Sprintf("Tu solicitud de whitelist fue rechazada.\n**Motivo:** %s", app.Reason))
	n.publish(app, "rejected", false)
}

func (n *DiscordNotifier) send(channelID string, embed *discordgo.MessageEmbed) {
	if channelID == "" {
		return
	}
	if _, err := n.Session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo anunciar en el canal %s: %v", channelID, err), "Notify")
	}
}

// audit posts exactly one entry per resolution to the audit channel
func (n *DiscordNotifier) audit(app *models.Application, verb, detail string) {
	embed := &discordgo.MessageEmbed{
		Title: "📋 Registro de revisión",
		Description: fmt.Sprintf("Solicitud de <@%s> (`%s`) %s por <@%s>.\n%s",
			app.ApplicantID, app.Username, verb, app.ReviewerID, detail),
		Color:     0x5865F2,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	n.send(n.Config.AuditChannelID, embed)
}

// stampClosedEmbed recolors a review embed, stamps the reviewer footer
// and moves the timestamp from submission time to resolution time
func stampClosedEmbed(embed *discordgo.MessageEmbed, color int, footer string) {
	embed.Color = color
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	embed.Timestamp = time.Now().Format(time.RFC3339)
}

// closeReviewMessage recolors the review embed and strips its buttons so
// the resolution is visible at a glance and stale presses stop early
func (n *DiscordNotifier) closeReviewMessage(app *models.Application, color int, footer string) {
	msg, err := n.Session.ChannelMessage(app.ChannelID, app.MessageID)
	if err != nil || len(msg.Embeds) == 0 {
		logger.Warn("No se pudo recuperar el mensaje de revisión "+app.MessageID, "Notify")
		return
	}

	embed := msg.Embeds[0]
	stampClosedEmbed(embed, color, footer)

	empty := []discordgo.MessageComponent{}
	_, err = n.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    app.ChannelID,
		ID:         app.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &empty,
	})
	if err != nil {
		logger.Warn("No se pudo cerrar el mensaje de revisión: "+err.Error(), "Notify")
	}
}

func (n *DiscordNotifier) dm(userID, content string) {
	channel, err := n.Session.UserChannelCreate(userID)
	if err != nil {
		logger.Debug("No se pudo abrir DM con "+userID, "Notify")
		return
	}
	if _, err := n.Session.ChannelMessageSend(channel.ID, content); err != nil {
		logger.Debug("No se pudo enviar DM a "+userID, "Notify")
	}
}

// publish fans the resolution out to MQTT and the websocket feed
func (n *DiscordNotifier) publish(app *models.Application, eventType string, duplicate bool) {
	event := models.ReviewEvent{
		Type:         eventType,
		MessageID:    app.MessageID,
		ApplicantID:  app.ApplicantID,
		Username:     app.Username,
		ResolvedName: app.ResolvedName,
		ReviewerID:   app.ReviewerID,
		Reason:       app.Reason,
		Duplicate:    duplicate,
		Timestamp:    time.Now().Unix(),
	}

	if mc := mqtt.Get(); mc != nil {
		mc.PublishReviewEvent(event)
	}
	web.Feed().Broadcast(event)
}
