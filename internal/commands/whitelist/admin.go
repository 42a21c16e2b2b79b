package whitelist

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/admins"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/discord"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

// createAdminAddCommand creates the /whitelist admin add subcommand
func createAdminAddCommand() *discord.Command {
	return discord.NewCommand(
		"add",
		"Añade un administrador del bot",
		"whitelist",
		adminAddHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a añadir como administrador",
			Required:    true,
		},
	).AsAdminOnly()
}

// adminAddHandler handles /whitelist admin add
func adminAddHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		user := ctx.GetUserOption("usuario")
		if user == nil {
			ctx.ReplyEphemeral("❌ Debes indicar un usuario.")
			return
		}

		if err := admins.Get().Add(user.ID); err != nil {
			if err == admins.ErrAlreadyAdmin {
				ctx.ReplyEphemeral(fmt.Sprintf("ℹ️ <@%s> ya es administrador.", user.ID))
				return
			}
			ctx.ReplyEphemeral("❌ No se pudo guardar el administrador: " + err.Error())
			return
		}

		ctx.ReplyEphemeral(fmt.Sprintf("✅ <@%s> ahora es administrador del bot.", user.ID))
	}()
	return nil
}

// createAdminListCommand creates the /whitelist admin list subcommand
func createAdminListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"Lista los administradores del bot",
		"whitelist",
		adminListHandler,
	).AsAdminOnly()
}

// adminListHandler handles /whitelist admin list
func adminListHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		ids := admins.Get().All()
		lines := make([]string, 0, len(ids))
		for _, id := range ids {
			line := fmt.Sprintf("• <@%s>", id)
			if id == admins.SuperAdminID {
				line += " (super admin)"
			}
			lines = append(lines, line)
		}

		ctx.ReplyEphemeral("👮 **Administradores del bot:**\n" + strings.Join(lines, "\n"))
	}()
	return nil
}
