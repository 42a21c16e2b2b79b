// Package events provides event handlers for the bot
package events

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/config"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/discord"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/errors"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterReadyEvent registers the ready event handler
func RegisterReadyEvent(client *discord.ExtendedClient) {
	client.Session.AddHandler(onReady)
	client.Session.AddHandler(onDebug)
}

// onReady is called when the bot successfully connects to Discord
func onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.Success(fmt.Sprintf("✅ Bot conectado: %s#%s", r.User.Username, r.User.Discriminator), "Ready")
	logger.Info(fmt.Sprintf("📊 Conectado a %d servidores", len(r.Guilds)), "Ready")

	go func() {
		defer errors.RecoverMiddleware()()
		rotateStatus(s)
	}()
}

// rotateStatus cycles the configured statuses every minute. With a
// single status it is set once and the ticker is skipped
func rotateStatus(s *discordgo.Session) {
	statuses := config.Get().StatusRotation
	if len(statuses) == 0 {
		return
	}

	if err := s.UpdateGameStatus(0, statuses[0]); err != nil {
		logger.Error(fmt.Sprintf("Error estableciendo estado: %v", err), "Ready")
	}
	if len(statuses) == 1 {
		return
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	i := 1
	for range ticker.C {
		if err := s.UpdateGameStatus(0, statuses[i%len(statuses)]); err != nil {
			logger.Debug(fmt.Sprintf("Error rotando estado: %v", err), "Ready")
		}
		i++
	}
}

func onDebug(s *discordgo.Session, log string) {
	logger.Debug(log, "DiscordGO")
}
