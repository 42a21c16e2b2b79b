// Package config provides configuration management for the bot.
// It loads environment variables and makes them available throughout the application.
package config

import (
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the bot
type Config struct {
	// Discord
	BotToken   string
	GuildID    string
	DevGuildID string

	// Canales del flujo de whitelist
	ApplyChannelID    string
	ReviewChannelID   string
	ApprovedChannelID string
	RejectedChannelID string
	AuditChannelID    string

	// Rol otorgado al aprobar
	WhitelistRoleID string

	// RCON
	RconHost     string
	RconPort     string
	RconPassword string

	// Backend de whitelist: "remote" o "file"
	WhitelistBackend string
	WhitelistPath    string

	// Archivos locales
	AdminsFile string
	SetupFile  string

	// MongoDB
	MongoDBURL string
	DBName     string

	// MQTT
	MQTTHost     string
	MQTTPort     string
	MQTTUser     string
	MQTTPassword string

	// Web Server
	Port string

	// Environment
	Environment string

	// Webhooks
	ErrorWebhook string
	LogsWebhook  string

	// Estados rotativos del bot (separados por "|")
	StatusRotation []string
}

var (
	Version   = "Dev-Local"
	BuildTime = "Hoy"
)

// cfg holds the global configuration instance
var (
	cfg     *Config
	cfgOnce sync.Once
)

// resetForTesting resets the configuration for testing purposes.
// This function should only be called from test code.
func resetForTesting() {
	cfg = nil
	cfgOnce = sync.Once{}
}

// loadConfig performs the actual configuration loading
func loadConfig() {
	// Load .env file if it exists (ignoring error if it doesn't)
	_ = godotenv.Load()

	cfg = &Config{
		// Discord
		BotToken:   getEnv("botToken", ""),
		GuildID:    getEnv("guildId", ""),
		DevGuildID: getEnv("devGuildId", ""),

		// Canales
		ApplyChannelID:    getEnv("applyChannelId", ""),
		ReviewChannelID:   getEnv("reviewChannelId", ""),
		ApprovedChannelID: getEnv("approvedChannelId", ""),
		RejectedChannelID: getEnv("rejectedChannelId", ""),
		AuditChannelID:    getEnv("auditChannelId", ""),

		WhitelistRoleID: getEnv("whitelistRoleId", ""),

		// RCON
		RconHost:     getEnv("RCON_Host", "localhost"),
		RconPort:     getEnv("RCON_Port", "25575"),
		RconPassword: getEnv("RCON_Password", ""),

		// Backend
		WhitelistBackend: getEnv("whitelistBackend", "remote"),
		WhitelistPath:    getEnv("whitelistPath", "whitelist.json"),

		// Archivos locales
		AdminsFile: getEnv("adminsFile", "admins.json"),
		SetupFile:  getEnv("setupFile", "whitelist_setup.json"),

		// MongoDB
		MongoDBURL: getEnv("mongodbUrl", "mongodb://localhost:27017"),
		DBName:     getEnv("dbName", "PancyWhitelist"),

		// MQTT
		MQTTHost:     getEnv("MQTT_Host", "localhost"),
		MQTTPort:     getEnv("MQTT_Port", "1883"),
		MQTTUser:     getEnv("MQTT_User", ""),
		MQTTPassword: getEnv("MQTT_Password", ""),

		// Web Server
		Port: getEnv("PORT", "3000"),

		// Environment
		Environment: getEnv("enviroment", "dev"),

		// Webhooks
		ErrorWebhook: getEnv("errorWebhook", ""),
		LogsWebhook:  getEnv("logsWebhook", ""),

		StatusRotation: splitStatuses(getEnv("statusRotation", "📝 /whitelist|⛏️ Revisando solicitudes")),
	}
}

// Load initializes the configuration from environment variables
func Load() (*Config, error) {
	cfgOnce.Do(loadConfig)
	return cfg, nil
}

// Get returns the current configuration
func Get() *Config {
	// Use sync.Once to ensure thread-safe initialization if Load wasn't called
	cfgOnce.Do(loadConfig)
	return cfg
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitStatuses parses the "|" separated status rotation list,
// dropping empty entries
func splitStatuses(raw string) []string {
	parts := strings.Split(raw, "|")
	statuses := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			statuses = append(statuses, p)
		}
	}
	return statuses
}

// IsProd returns true if the environment is production
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// UseFileBackend returns true if the whitelist is managed through the
// shared whitelist.json file instead of the remote console
func (c *Config) UseFileBackend() bool {
	return c.WhitelistBackend == "file"
}
