package config

import (
	"os"
	"reflect"
	"testing"
)

func TestLoad(t *testing.T) {
	// Set up test environment variables
	os.Setenv("botToken", "test-token")
	os.Setenv("PORT", "3001")
	os.Setenv("enviroment", "test")
	os.Setenv("RCON_Host", "mc.example.com")
	defer func() {
		os.Unsetenv("botToken")
		os.Unsetenv("PORT")
		os.Unsetenv("enviroment")
		os.Unsetenv("RCON_Host")
	}()

	// Reset global config
	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.BotToken != "test-token" {
		t.Errorf("BotToken = %v, want %v", config.BotToken, "test-token")
	}

	if config.Port != "3001" {
		t.Errorf("Port = %v, want %v", config.Port, "3001")
	}

	if config.Environment != "test" {
		t.Errorf("Environment = %v, want %v", config.Environment, "test")
	}

	if config.RconHost != "mc.example.com" {
		t.Errorf("RconHost = %v, want %v", config.RconHost, "mc.example.com")
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	if got := getEnv("TEST_VAR", "default"); got != "test-value" {
		t.Errorf("getEnv() = %v, want %v", got, "test-value")
	}

	if got := getEnv("NON_EXISTENT_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %v, want %v", got, "default")
	}
}

func TestIsProd(t *testing.T) {
	resetForTesting()
	os.Setenv("enviroment", "prod")
	config, _ := Load()

	if !config.IsProd() {
		t.Error("IsProd() should return true when environment is 'prod'")
	}

	resetForTesting()
	os.Setenv("enviroment", "dev")
	config, _ = Load()

	if config.IsProd() {
		t.Error("IsProd() should return false when environment is not 'prod'")
	}

	os.Unsetenv("enviroment")
}

func TestUseFileBackend(t *testing.T) {
	resetForTesting()
	os.Setenv("whitelistBackend", "file")
	config, _ := Load()

	if !config.UseFileBackend() {
		t.Error("UseFileBackend() should return true when whitelistBackend is 'file'")
	}

	resetForTesting()
	os.Unsetenv("whitelistBackend")
	config, _ = Load()

	if config.UseFileBackend() {
		t.Error("UseFileBackend() should return false for the default backend")
	}
}

func TestSplitStatuses(t *testing.T) {
	got := splitStatuses("uno| dos |")
	want := []string{"uno", "dos"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitStatuses() = %v, want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	resetForTesting()

	// Get should create a new config if none exists
	config := Get()
	if config == nil {
		t.Fatal("Get() returned nil")
	}

	// Get should return the same config on subsequent calls
	config2 := Get()
	if config != config2 {
		t.Error("Get() should return the same config on subsequent calls")
	}
}

func TestDefaultValues(t *testing.T) {
	// Clear all environment variables
	os.Unsetenv("botToken")
	os.Unsetenv("mongodbUrl")
	os.Unsetenv("dbName")
	os.Unsetenv("RCON_Port")
	os.Unsetenv("whitelistBackend")
	os.Unsetenv("whitelistPath")
	os.Unsetenv("PORT")
	os.Unsetenv("enviroment")

	resetForTesting()
	config, _ := Load()

	// Check default values
	if config.MongoDBURL != "mongodb://localhost:27017" {
		t.Errorf("MongoDBURL default = %v, want %v", config.MongoDBURL, "mongodb://localhost:27017")
	}

	if config.DBName != "PancyWhitelist" {
		t.Errorf("DBName default = %v, want %v", config.DBName, "PancyWhitelist")
	}

	if config.RconPort != "25575" {
		t.Errorf("RconPort default = %v, want %v", config.RconPort, "25575")
	}

	if config.WhitelistBackend != "remote" {
		t.Errorf("WhitelistBackend default = %v, want %v", config.WhitelistBackend, "remote")
	}

	if config.WhitelistPath != "whitelist.json" {
		t.Errorf("WhitelistPath default = %v, want %v", config.WhitelistPath, "whitelist.json")
	}

	if config.Port != "3000" {
		t.Errorf("Port default = %v, want %v", config.Port, "3000")
	}

	if config.Environment != "dev" {
		t.Errorf("Environment default = %v, want %v", config.Environment, "dev")
	}

	if len(config.StatusRotation) == 0 {
		t.Error("StatusRotation default should not be empty")
	}
}
