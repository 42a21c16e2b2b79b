package utils

import (
	"fmt"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/config"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/database"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/discord"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/errors"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/rcon"
)

// createStatusCommand creates the /utils status subcommand
func createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Muestra el estado del bot",
		"utils",
		statusHandler,
	)
}

// statusHandler handles the /utils status command
func statusHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		db := database.Get()
		dbStatus, _ := db.GetStatus()

		cfg := config.Get()
		backend := "📁 Archivo whitelist.json"
		if !cfg.UseFileBackend() {
			backend = "🖥️ Consola remota: 🔴 inalcanzable"
			if rcon.NewClient(cfg.RconHost, cfg.RconPort, cfg.RconPassword).Ping() {
				backend = "🖥️ Consola remota: 🟢 conectada"
			}
		}

		ctx.Reply(fmt.Sprintf(
			"📊 **Estado del Bot**\n"+
				"• Bot: 🟢 Online\n"+
				"• Base de datos: %s\n"+
				"• Backend de whitelist: %s\n"+
				"• Servidores: %d",
			dbStatus,
			backend,
			ctx.Client.GuildCount(),
		))
	}()
	return nil
}
