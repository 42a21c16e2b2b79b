package events

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/admins"
	"github.com/bwmarrin/discordgo"
)

type fakeConsole struct {
	mu       sync.Mutex
	commands []string
}

func (f *fakeConsole) Execute(command string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, command)
	return "", nil
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// stubSession builds a session whose HTTP client never leaves the test
func stubSession(t *testing.T) *discordgo.Session {
	t.Helper()
	s, err := discordgo.New("Bot token-de-prueba")
	if err != nil {
		t.Fatalf("no se pudo crear la sesión: %v", err)
	}
	s.Client = &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNoContent,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     make(http.Header),
		}, nil
	})}
	return s
}

// panelSubmit builds the modal-submit interaction a panel form produces
func panelSubmit(userID, action string, fields map[string]string) *discordgo.InteractionCreate {
	rows := make([]discordgo.MessageComponent, 0, len(fields))
	for id, value := range fields {
		rows = append(rows, &discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.TextInput{CustomID: id, Value: value},
		}})
	}
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:   discordgo.InteractionModalSubmit,
		Member: &discordgo.Member{User: &discordgo.User{ID: userID}},
		Data: discordgo.ModalSubmitInteractionData{
			CustomID:   panelModalPrefix + action,
			Components: rows,
		},
	}}
}

func TestBuildPanelCommand(t *testing.T) {
	cases := []struct {
		name    string
		action  string
		player  string
		reason  string
		message string
		command string
		err     error
	}{
		{name: "ban con motivo", action: "ban", player: "Steve123", reason: "uso de hacks", command: "ban Steve123 uso de hacks"},
		{name: "ban sin motivo", action: "ban", player: "Steve123", command: "ban Steve123"},
		{name: "unban", action: "unban", player: "Steve123", command: "pardon Steve123"},
		{name: "kick", action: "kick", player: "Alex", reason: "spam", command: "kick Alex spam"},
		{name: "nombre demasiado corto", action: "ban", player: "x", err: errInvalidPlayer},
		{name: "nombre con inyección", action: "kick", player: "Alex;stop", err: errInvalidPlayer},
		{name: "anuncio vacío", action: "broadcast", err: errEmptyBroadcast},
		{name: "acción desconocida", action: "misterio", err: errUnknownPanelAction},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			command, confirmation, err := buildPanelCommand(tc.action, tc.player, tc.reason, tc.message)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("error = %v, esperado %v", err, tc.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildPanelCommand falló: %v", err)
			}
			if command != tc.command {
				t.Errorf("comando = %q, esperado %q", command, tc.command)
			}
			if confirmation == "" {
				t.Error("la confirmación no puede estar vacía")
			}
		})
	}
}

func TestBuildPanelCommandBroadcastEncodesMessage(t *testing.T) {
	message := `Reinicio a las 22:00 "hora del servidor" {no falten}`

	command, _, err := buildPanelCommand("broadcast", "", "", message)
	if err != nil {
		t.Fatalf("buildPanelCommand falló: %v", err)
	}
	if !strings.HasPrefix(command, "tellraw @a ") {
		t.Fatalf("comando = %q, debe empezar con tellraw @a", command)
	}

	var payload tellrawPayload
	if err := json.Unmarshal([]byte(strings.TrimPrefix(command, "tellraw @a ")), &payload); err != nil {
		t.Fatalf("el componente del tellraw no es JSON válido: %v", err)
	}
	if payload.Text != "[Anuncio] "+message {
		t.Errorf("texto = %q, el mensaje debe viajar dentro del componente", payload.Text)
	}
	if !payload.Bold || payload.Color != "gold" {
		t.Errorf("estilo = %q/%v, esperado gold en negrita", payload.Color, payload.Bold)
	}
	// The raw quotes must never land in the command without escaping
	if strings.Contains(command, `22:00 "hora`) {
		t.Error("el mensaje se concatenó sin codificar dentro del comando")
	}
}

func TestPanelModalRechecksMembership(t *testing.T) {
	admins.Init(filepath.Join(t.TempDir(), "admins.json"))
	console := &fakeConsole{}
	services = &Services{Console: console}

	handlePanelModal(stubSession(t), panelSubmit("usuario-999", "unban", map[string]string{"player": "Steve123"}))
	if len(console.commands) != 0 {
		t.Fatalf("comandos ejecutados = %v, un usuario sin permisos no debe llegar a la consola", console.commands)
	}

	handlePanelModal(stubSession(t), panelSubmit(admins.SuperAdminID, "unban", map[string]string{"player": "Steve123"}))
	if len(console.commands) != 1 || console.commands[0] != "pardon Steve123" {
		t.Fatalf("comandos ejecutados = %v, esperado [pardon Steve123]", console.commands)
	}
}
