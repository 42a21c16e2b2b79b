// Package web provides API routes for the web server.
package web

import (
	"net/http"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/database"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/discord"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/whitelist"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes. The store is the active
// whitelist backend, queried for entry counts when it supports them
func SetupAPIRoutes(s *Server, store whitelist.Store) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/whitelist/stats", whitelistStatsHandler(store))
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyWhitelist Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// whitelistStatsHandler returns application counters and, when the
// backend can report it, the number of whitelisted names
func whitelistStatsHandler(store whitelist.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		pending, _ := database.CountByStatus(models.StatusPending)
		approved, _ := database.CountByStatus(models.StatusApproved)
		rejected, _ := database.CountByStatus(models.StatusRejected)

		stats := gin.H{
			"applications": gin.H{
				"pending":  pending,
				"approved": approved,
				"rejected": rejected,
			},
		}

		if counter, ok := store.(whitelist.Counter); ok {
			if n, err := counter.Count(); err == nil {
				stats["whitelistedNames"] = n
			}
		}

		c.JSON(http.StatusOK, stats)
	}
}
