// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (utils, whitelist)
package commands

import (
	"github.com/PancyStudios/PancyWhitelistGo/internal/commands/utils"
	"github.com/PancyStudios/PancyWhitelistGo/internal/commands/whitelist"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Utility commands (/utils ping, /utils status, /utils help, /utils stats)
	utils.RegisterUtilsCommands(client)

	// Whitelist commands (/whitelist setup, /whitelist panel, /whitelist status, /whitelist admin ...)
	whitelist.RegisterWhitelistCommands(client)
}
