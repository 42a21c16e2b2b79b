// Admin panel buttons: each opens a modal and runs the resulting
// command against the server console.
package events

import (
	goerrors "errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

const (
	panelIDPrefix    = "panel_"
	panelModalPrefix = "panel_modal_"

	PanelBan       = "panel_ban"
	PanelUnban     = "panel_unban"
	PanelKick      = "panel_kick"
	PanelBroadcast = "panel_broadcast"
)

// tellrawPayload is the structural form of a tellraw message. Building
// it as a struct and marshalling keeps player text from breaking out of
// the command
type tellrawPayload struct {
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
	Bold  bool   `json:"bold,omitempty"`
}

// handlePanelButton opens the modal matching the pressed panel button
func handlePanelButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	customID := i.MessageComponentData().CustomID

	var data *discordgo.InteractionResponseData
	switch customID {
	case PanelBan:
		data = panelModal("ban", "Banear jugador",
			textInput("player", "Nombre del jugador", true, 16),
			paragraphInput("reason", "Motivo del baneo", false, 200))
	case PanelUnban:
		data = panelModal("unban", "Desbanear jugador",
			textInput("player", "Nombre del jugador", true, 16))
	case PanelKick:
		data = panelModal("kick", "Expulsar jugador",
			textInput("player", "Nombre del jugador", true, 16),
			paragraphInput("reason", "Motivo de la expulsión", false, 200))
	case PanelBroadcast:
		data = panelModal("broadcast", "Anuncio en el servidor",
			paragraphInput("message", "Mensaje a anunciar", true, 256))
	default:
		logger.Debug("Botón de panel no manejado: "+customID, "Panel")
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: data,
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error abriendo modal de panel: %v", err), "Panel")
	}
}

var (
	errUnknownPanelAction = goerrors.New("acción de panel desconocida")
	errInvalidPlayer      = goerrors.New("nombre de jugador inválido")
	errEmptyBroadcast     = goerrors.New("mensaje de anuncio vacío")
)

// buildPanelCommand turns a panel modal submission into a console
// command plus its confirmation message. Announcement text only enters
// the tellraw command through the marshalled JSON component
func buildPanelCommand(action, player, reason, message string) (string, string, error) {
	switch action {
	case "ban":
		if !usernamePattern.MatchString(player) {
			return "", "", errInvalidPlayer
		}
		return strings.TrimSpace(fmt.Sprintf("ban %s %s", player, reason)),
			fmt.Sprintf("🔨 **%s** fue baneado del servidor.", player), nil
	case "unban":
		if !usernamePattern.MatchString(player) {
			return "", "", errInvalidPlayer
		}
		return "pardon " + player,
			fmt.Sprintf("🕊️ **%s** fue desbaneado.", player), nil
	case "kick":
		if !usernamePattern.MatchString(player) {
			return "", "", errInvalidPlayer
		}
		return strings.TrimSpace(fmt.Sprintf("kick %s %s", player, reason)),
			fmt.Sprintf("👢 **%s** fue expulsado.", player), nil
	case "broadcast":
		if message == "" {
			return "", "", errEmptyBroadcast
		}
		payload, err := json.Marshal(tellrawPayload{Text: "[Anuncio] " + message, Color: "gold", Bold: true})
		if err != nil {
			return "", "", err
		}
		return "tellraw @a " + string(payload), "📣 Anuncio enviado al servidor.", nil
	}
	return "", "", errUnknownPanelAction
}

// handlePanelModal runs the command built from a submitted panel modal.
// Membership is re-checked at submit time, the button gate alone could
// be stale by the time the form comes back
func handlePanelModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	data := i.ModalSubmitData()
	action := strings.TrimPrefix(data.CustomID, panelModalPrefix)

	command, confirmation, err := buildPanelCommand(action,
		strings.TrimSpace(modalValue(data, "player")),
		strings.TrimSpace(modalValue(data, "reason")),
		strings.TrimSpace(modalValue(data, "message")))
	switch {
	case goerrors.Is(err, errUnknownPanelAction):
		logger.Debug("Modal de panel no manejado: "+data.CustomID, "Panel")
		return
	case goerrors.Is(err, errInvalidPlayer):
		respondEphemeral(s, i, "❌ Nombre de jugador inválido.")
		return
	case goerrors.Is(err, errEmptyBroadcast):
		respondEphemeral(s, i, "❌ El mensaje no puede estar vacío.")
		return
	case err != nil:
		respondEphemeral(s, i, "❌ No se pudo construir el anuncio.")
		return
	}

	if err := deferEphemeral(s, i); err != nil {
		return
	}

	if _, err := services.Console.Execute(command); err != nil {
		logger.Error(fmt.Sprintf("Comando de panel falló (%s): %v", action, err), "Panel")
		followUp(s, i, "⚠️ No se pudo contactar con el servidor de Minecraft.")
		return
	}

	logger.Info(fmt.Sprintf("Comando de panel ejecutado por %s: %s", interactionUser(i).ID, command), "Panel")
	followUp(s, i, confirmation)
}

func panelModal(action, title string, rows ...discordgo.MessageComponent) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID:   panelModalPrefix + action,
		Title:      title,
		Components: rows,
	}
}

func textInput(id, label string, required bool, maxLen int) discordgo.MessageComponent {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:  id,
			Label:     label,
			Style:     discordgo.TextInputShort,
			Required:  required,
			MaxLength: maxLen,
		},
	}}
}

func paragraphInput(id, label string, required bool, maxLen int) discordgo.MessageComponent {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:  id,
			Label:     label,
			Style:     discordgo.TextInputParagraph,
			Required:  required,
			MaxLength: maxLen,
		},
	}}
}
