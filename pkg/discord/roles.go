package discord

import (
	"github.com/bwmarrin/discordgo"
)

// RoleGranter assigns the configured whitelist role to guild members
type RoleGranter struct {
	Session *discordgo.Session
	GuildID string
	RoleID  string
}

// NewRoleGranter builds a granter for a guild and role
func NewRoleGranter(session *discordgo.Session, guildID, roleID string) *RoleGranter {
	return &RoleGranter{Session: session, GuildID: guildID, RoleID: roleID}
}

// Grant adds the role to a member. Granting an already held role is a
// no-op on the Discord side, so re-syncing is safe
func (g *RoleGranter) Grant(userID string) error {
	if g.RoleID == "" {
		return nil
	}
	return g.Session.GuildMemberRoleAdd(g.GuildID, userID, g.RoleID)
}
