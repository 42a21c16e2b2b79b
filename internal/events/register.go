// Package events provides a registry for organizing bot events.
// Events are organized by category (ready, guild, member, interaction)
package events

import (
	"github.com/PancyStudios/PancyWhitelistGo/pkg/discord"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/rcon"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/review"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/whitelist"
)

// Services holds the collaborators the interaction handlers need
type Services struct {
	Review  *review.Service
	Console rcon.Executor
	Store   whitelist.Store
}

var services *Services

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient, svcs *Services) {
	logger.System("📋 Registrando eventos del bot...", "Events")

	services = svcs

	// Ready event (bot startup)
	RegisterReadyEvent(client)

	// Guild events (server join/leave)
	RegisterGuildEvents(client)

	// Member events (join/leave)
	RegisterMemberEvents(client)

	// Interaction events (apply form, review buttons, admin panel)
	RegisterInteractionEvents(client)

	logger.Success("✅ Todos los eventos registrados correctamente", "Events")
}
