// Package main is the entry point for the PancyWhitelist Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	goerrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PancyStudios/PancyWhitelistGo/internal/commands"
	"github.com/PancyStudios/PancyWhitelistGo/internal/events"
	"github.com/PancyStudios/PancyWhitelistGo/internal/notify"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/admins"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/config"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/database"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/discord"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/errors"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/mqtt"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/rcon"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/review"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/setup"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/web"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/whitelist"
)

// appStore adapts the database application functions to the review seam
type appStore struct{}

func (appStore) Get(messageID string) (*models.Application, error) {
	return database.GetApplication(messageID)
}

func (appStore) Resolve(messageID string, status models.ApplicationStatus, reviewerID, resolvedName, reason string) (*models.Application, error) {
	app, err := database.ResolveApplication(messageID, status, reviewerID, resolvedName, reason)
	if goerrors.Is(err, database.ErrApplicationAlreadyResolved) {
		// A concurrent reviewer won the conditional update
		return nil, review.ErrAlreadyResolved
	}
	return app, err
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando PancyWhitelist Go...", "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			err := discordClient.Stop()
			if err != nil {
				return
			}
		}
	})

	// Initialize database
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		logger.Debug(fmt.Sprintf("Error connecting to database: %v", cfg.MongoDBURL), "Main")
		// Continue without database, it will attempt to reconnect
	}
	defer func() {
		if db != nil {
			err := db.Disconnect()
			if err != nil {
				return
			}
		}
	}()

	// Initialize global DataManagers
	if db != nil {
		database.InitGlobalDataManagers(db)
	}

	// Local state files
	admins.Init(cfg.AdminsFile)
	setup.Init(cfg.SetupFile)

	// Remote console, shared by both backends
	console := rcon.NewClient(cfg.RconHost, cfg.RconPort, cfg.RconPassword)

	// Whitelist backend selection
	var store whitelist.Store
	if cfg.UseFileBackend() {
		store = whitelist.NewFileStore(cfg.WhitelistPath, console)
		logger.System("Backend de whitelist: archivo "+cfg.WhitelistPath, "Main")
	} else {
		store = whitelist.NewRemoteStore(console)
		logger.System("Backend de whitelist: consola remota "+console.Addr(), "Main")
	}

	// Initialize MQTT
	mqttClientID := "pancywhitelist"
	if !cfg.IsProd() {
		mqttClientID = "pancywhitelist_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	// Other services can query the counters over MQTT
	mqttClient.On("stats", func(payload map[string]interface{}) (interface{}, error) {
		pending, _ := database.CountByStatus(models.StatusPending)
		approved, _ := database.CountByStatus(models.StatusApproved)
		rejected, _ := database.CountByStatus(models.StatusRejected)
		return map[string]int64{"pending": pending, "approved": approved, "rejected": rejected}, nil
	})

	// Initialize web server
	webServer := web.Init(cfg.LogsWebhook)
	web.SetupAPIRoutes(webServer, store)
	web.SetupLiveFeed(webServer)
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Wire the review pipeline
	notifier := notify.New(discordClient.Session, cfg)
	roles := discord.NewRoleGranter(discordClient.Session, cfg.GuildID, cfg.WhitelistRoleID)
	reviewService := review.NewService(store, appStore{}, roles, notifier)

	// Register commands using the commands package
	commands.RegisterAll(discordClient)

	// Register events using the events package
	events.RegisterAll(discordClient, &events.Services{
		Review:  reviewService,
		Console: console,
		Store:   store,
	})

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func(discordClient *discord.ExtendedClient) {
		err := discordClient.Stop()
		if err != nil {

		}
	}(discordClient)

	logger.Success("PancyWhitelist Go iniciado correctamente!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando PancyWhitelist Go...", "Main")
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
