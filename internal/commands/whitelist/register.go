// Package whitelist provides the /whitelist command group: the setup of
// the application screen, the admin panel and the administrator set.
package whitelist

import (
	"github.com/PancyStudios/PancyWhitelistGo/pkg/discord"
)

// RegisterWhitelistCommands registers the /whitelist command group
func RegisterWhitelistCommands(client *discord.ExtendedClient) {
	setupCmd := createSetupCommand()
	panelCmd := createPanelCommand()
	statusCmd := createStatusCommand()

	group := client.CommandHandler.BuildCommandGroup(
		"whitelist",
		"Gestión de la whitelist del servidor",
		setupCmd,
		panelCmd,
		statusCmd,
	)

	// /whitelist admin add | list
	adminGroup := client.CommandHandler.BuildSubcommandGroup(
		"whitelist",
		"admin",
		"Gestión de administradores del bot",
		createAdminAddCommand(),
		createAdminListCommand(),
	)
	group.Options = append(group.Options, adminGroup)

	client.CommandHandler.AddGlobalCommand(group)
}
