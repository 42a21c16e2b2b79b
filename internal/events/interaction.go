// Package events provides event handlers for interaction events.
// Buttons and modals drive the whole application workflow: the apply
// button opens the form, the form creates a pending review message and
// the review buttons resolve it.
package events

import (
	goerrors "errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/admins"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/config"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/database"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/discord"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/rcon"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/review"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/whitelist"
	"github.com/bwmarrin/discordgo"
)

// Component and modal custom IDs for the whitelist workflow
const (
	IDApplyButton   = "wl_apply"
	IDApplyModal    = "wl_apply_modal"
	IDApproveButton = "wl_approve"
	IDRejectButton  = "wl_reject"
	idRejectModal   = "wl_reject_modal:" // followed by the review message ID
)

// Java names are 3-16 word characters; Bedrock gamertags also allow
// spaces. One pattern covers both, the edition decides the prefix later
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_ ]{3,16}$`)

// RegisterInteractionEvents registers all interaction-related event handlers
func RegisterInteractionEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onInteractionCreate)
}

// onInteractionCreate is called for buttons and modal submits.
// Slash commands are already handled by the CommandHandler
func onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type == discordgo.InteractionMessageComponent {
		customID := i.MessageComponentData().CustomID
		logger.Debug(fmt.Sprintf("🔘 Componente clickeado: %s", customID), "Interaction")

		switch {
		case customID == IDApplyButton:
			handleApplyButton(s, i)
		case customID == IDApproveButton:
			handleApproveButton(s, i)
		case customID == IDRejectButton:
			handleRejectButton(s, i)
		case customID == IDStatusRefresh:
			handleStatusRefresh(s, i)
		case strings.HasPrefix(customID, panelIDPrefix):
			handlePanelButton(s, i)
		default:
			logger.Debug(fmt.Sprintf("Componente no manejado: %s", customID), "Interaction")
		}
		return
	}

	if i.Type == discordgo.InteractionModalSubmit {
		modalID := i.ModalSubmitData().CustomID
		logger.Debug(fmt.Sprintf("📝 Modal enviado: %s", modalID), "Interaction")

		switch {
		case modalID == IDApplyModal:
			handleApplyModal(s, i)
		case strings.HasPrefix(modalID, idRejectModal):
			handleRejectModal(s, i, strings.TrimPrefix(modalID, idRejectModal))
		case strings.HasPrefix(modalID, panelModalPrefix):
			handlePanelModal(s, i)
		default:
			logger.Debug(fmt.Sprintf("Modal no manejado: %s", modalID), "Interaction")
		}
		return
	}
}

// handleApplyButton opens the application form
func handleApplyButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: IDApplyModal,
			Title:    "Solicitud de Whitelist",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "username",
						Label:       "Tu nombre en Minecraft",
						Style:       discordgo.TextInputShort,
						Required:    true,
						MinLength:   3,
						MaxLength:   16,
						Placeholder: "Steve",
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "edition",
						Label:       "¿Java o Bedrock?",
						Style:       discordgo.TextInputShort,
						Required:    true,
						MaxLength:   10,
						Placeholder: "java",
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "played_before",
						Label:       "¿Has jugado antes en el servidor?",
						Style:       discordgo.TextInputShort,
						Required:    false,
						MaxLength:   50,
						Placeholder: "sí / no",
					},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "notes",
						Label:       "Algo más que quieras contarnos",
						Style:       discordgo.TextInputParagraph,
						Required:    false,
						MaxLength:   500,
					},
				}},
			},
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error abriendo el formulario: %v", err), "Interaction")
	}
}

// handleApplyModal validates the form, posts the review message and
// persists the pending record keyed by that message's ID
func handleApplyModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	cfg := config.Get()

	username := strings.TrimSpace(modalValue(data, "username"))
	edition := normalizeEdition(modalValue(data, "edition"))
	playedBefore := strings.TrimSpace(modalValue(data, "played_before"))
	notes := strings.TrimSpace(modalValue(data, "notes"))

	if !usernamePattern.MatchString(username) {
		respondEphemeral(s, i, "❌ El nombre `"+username+"` no es un nombre de Minecraft válido (3 a 16 caracteres, letras, números y guion bajo).")
		return
	}
	if edition == "" {
		respondEphemeral(s, i, "❌ La edición debe ser `java` o `bedrock`.")
		return
	}

	applicant := interactionUser(i)

	// Names that are already whitelisted never reach the review queue
	if checker, ok := services.Store.(whitelist.Checker); ok {
		resolvedName := whitelist.Resolve(username, edition)
		if present, err := checker.Has(resolvedName); err == nil && present {
			respondEphemeral(s, i, fmt.Sprintf("ℹ️ **%s** ya está en la whitelist, no hace falta solicitarlo de nuevo.", resolvedName))
			return
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📨 Nueva solicitud de whitelist",
		Description: fmt.Sprintf("Solicitud de <@%s>", applicant.ID),
		Color:       0xFEE75C,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Nombre", Value: username, Inline: true},
			{Name: "Edición", Value: edition, Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Pendiente de revisión"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if playedBefore != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "¿Ha jugado antes?", Value: playedBefore})
	}
	if notes != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Notas", Value: notes})
	}

	msg, err := s.ChannelMessageSendComplex(cfg.ReviewChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Aprobar", Style: discordgo.SuccessButton, CustomID: IDApproveButton, Emoji: &discordgo.ComponentEmoji{Name: "✅"}},
				discordgo.Button{Label: "Rechazar", Style: discordgo.DangerButton, CustomID: IDRejectButton, Emoji: &discordgo.ComponentEmoji{Name: "❌"}},
			}},
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("No se pudo publicar la solicitud en el canal de revisión: %v", err), "Interaction")
		respondEphemeral(s, i, "❌ No se pudo enviar tu solicitud, inténtalo de nuevo más tarde.")
		return
	}

	app := review.NewApplication(msg.ID, msg.ChannelID, applicant.ID, username, edition, playedBefore, notes)
	if _, err := database.CreateApplication(app); err != nil {
		logger.Error(fmt.Sprintf("No se pudo persistir la solicitud %s: %v", msg.ID, err), "Interaction")
		_ = s.ChannelMessageDelete(msg.ChannelID, msg.ID)
		respondEphemeral(s, i, "❌ No se pudo registrar tu solicitud, inténtalo de nuevo más tarde.")
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("✅ Tu solicitud para **%s** fue enviada. Te avisaremos por DM cuando sea revisada.", username))
}

// handleApproveButton resolves the application behind the pressed message
func handleApproveButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	// The whitelist mutation can take a moment, defer first
	if err := deferEphemeral(s, i); err != nil {
		return
	}

	outcome, err := services.Review.Approve(i.Message.ID, interactionUser(i).ID)
	switch {
	case err == nil:
		followUp(s, i, approveAck(outcome))
	case goerrors.Is(err, review.ErrAlreadyResolved):
		followUp(s, i, "ℹ️ Esta solicitud ya fue resuelta por otro revisor.")
	case goerrors.Is(err, rcon.ErrUnreachable):
		followUp(s, i, "⚠️ No se pudo contactar con el servidor de Minecraft. La solicitud sigue pendiente, inténtalo más tarde.")
	default:
		logger.Error(fmt.Sprintf("Error aprobando %s: %v", i.Message.ID, err), "Interaction")
		followUp(s, i, "❌ Ocurrió un error al aprobar la solicitud.")
	}
}

// approveAck builds the reviewer-facing acknowledgement. A failed role
// grant keeps the approval but must read as a partial success
func approveAck(outcome *review.Outcome) string {
	var msg string
	switch {
	case outcome.Duplicate && outcome.RoleGranted:
		msg = fmt.Sprintf("✅ **%s** ya estaba en la whitelist, su rol fue re-sincronizado.", outcome.App.ResolvedName)
	case outcome.Duplicate:
		msg = fmt.Sprintf("✅ **%s** ya estaba en la whitelist.", outcome.App.ResolvedName)
	default:
		msg = fmt.Sprintf("✅ **%s** fue añadido a la whitelist.", outcome.App.ResolvedName)
	}
	if !outcome.RoleGranted {
		msg += "\n⚠️ No se pudo asignar el rol de whitelist, asígnalo manualmente."
	}
	return msg
}

// handleRejectButton opens the reason modal for the pressed message
func handleRejectButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: idRejectModal + i.Message.ID,
			Title:    "Rechazar solicitud",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "reason",
						Label:       "Motivo del rechazo",
						Style:       discordgo.TextInputParagraph,
						Required:    true,
						MinLength:   review.MinReasonLength,
						MaxLength:   500,
						Placeholder: "Se enviará al solicitante por DM",
					},
				}},
			},
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error abriendo el modal de rechazo: %v", err), "Interaction")
	}
}

// handleRejectModal resolves the application as rejected with the reason
func handleRejectModal(s *discordgo.Session, i *discordgo.InteractionCreate, messageID string) {
	reason := modalValue(i.ModalSubmitData(), "reason")

	if err := deferEphemeral(s, i); err != nil {
		return
	}

	_, err := services.Review.Reject(messageID, interactionUser(i).ID, reason)
	switch {
	case err == nil:
		followUp(s, i, "✅ Solicitud rechazada. El solicitante fue notificado por DM.")
	case goerrors.Is(err, review.ErrReasonTooShort):
		followUp(s, i, fmt.Sprintf("❌ El motivo debe tener al menos %d caracteres.", review.MinReasonLength))
	case goerrors.Is(err, review.ErrAlreadyResolved):
		followUp(s, i, "ℹ️ Esta solicitud ya fue resuelta por otro revisor.")
	default:
		logger.Error(fmt.Sprintf("Error rechazando %s: %v", messageID, err), "Interaction")
		followUp(s, i, "❌ Ocurrió un error al rechazar la solicitud.")
	}
}

// requireAdmin gates review and panel surfaces behind the admin set
func requireAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	userID := interactionUser(i).ID
	if admins.Get().IsMember(userID) {
		return true
	}
	respondEphemeral(s, i, "🚫 No tienes permisos para revisar solicitudes.")
	logger.Warn("Usuario sin permisos intentó usar los botones de revisión: "+userID, "Interaction")
	return false
}

// interactionUser returns the user behind an interaction, in guild or DM
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// modalValue extracts a text input value from a submitted modal
func modalValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, component := range data.Components {
		actionRow, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range actionRow.Components {
			if textInput, ok := c.(*discordgo.TextInput); ok && textInput.CustomID == customID {
				return textInput.Value
			}
		}
	}
	return ""
}

// normalizeEdition maps free-form edition text to "java" or "bedrock",
// returning "" when it matches neither
func normalizeEdition(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "java", "j":
		return "java"
	case "bedrock", "b", "be":
		return "bedrock"
	}
	return ""
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error respondiendo interacción: %v", err), "Interaction")
	}
}

func deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error difiriendo interacción: %v", err), "Interaction")
	}
	return err
}

func followUp(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error editando respuesta diferida: %v", err), "Interaction")
	}
}
