package utils

import (
	"github.com/PancyStudios/PancyWhitelistGo/pkg/discord"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/errors"
)

// createHelpCommand creates the /utils help subcommand
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Muestra información de ayuda",
		"utils",
		helpHandler,
	)
}

// helpHandler handles the /utils help command
func helpHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		ctx.Reply(
			"📖 **Ayuda de PancyWhitelist Go**\n\n" +
				"**Para jugadores:**\n" +
				"• Pulsa el botón de solicitud en el canal de whitelist y rellena el formulario\n" +
				"• Te avisaremos por DM cuando tu solicitud sea revisada\n\n" +
				"**Comandos disponibles:**\n" +
				"• `/utils ping` - Comprueba la latencia\n" +
				"• `/utils status` - Estado del bot y del servidor\n" +
				"• `/utils stats` - Estadísticas del bot\n" +
				"• `/whitelist setup` - Publica el formulario de solicitud (staff)\n" +
				"• `/whitelist panel` - Publica el panel de administración (staff)\n" +
				"• `/whitelist status` - Estadísticas de la whitelist (staff)\n" +
				"• `/whitelist admin add <usuario>` - Añade un administrador (staff)\n" +
				"• `/whitelist admin list` - Lista los administradores (staff)",
		)
	}()
	return nil
}
