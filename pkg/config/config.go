package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
)

type GameConfig struct {
	AdminID          string `json:"admin_id"`
	TimerBotID       string `json:"timer_bot_id"`
	StakeUnit        int64  `json:"stake_unit"`
	DailyAmount      int64  `json:"daily_amount"`
	TimerPollSeconds int    `json:"timer_poll_seconds"`
	EventsWebhookURL string `json:"events_webhook_url"`
}

type DatabaseConfig struct {
	Type string `json:"type"` // "sqlite" ou "postgres"
}

type GeneralConfig struct {
	BotName         string         `json:"bot_name"`
	CurrencyName    string         `json:"currency_name"`
	CurrencySymbol  string         `json:"currency_symbol"`
	EnableAPI       bool           `json:"enable_api"`
	ApiPort         string         `json:"api_port"`
	AllowedChannels []string       `json:"allowed_channels"`
	Database        DatabaseConfig `json:"database"`
}

var (
	Game       GameConfig
	Bot        GeneralConfig
	DBType     string
	ConnString string
)

func Load() {
	loadJSON("game.json", &Game)
	loadJSON("config.json", &Bot)

	// ADMIN_ID do .env sobrescreve o game.json
	if id := os.Getenv("ADMIN_ID"); id != "" {
		Game.AdminID = id
	}
	if id := os.Getenv("TIMER_BOT_ID"); id != "" {
		Game.TimerBotID = id
	}
	if Game.AdminID == "" {
		log.Fatal("admin_id is required (game.json or ADMIN_ID env)")
	}
	if Game.StakeUnit <= 0 {
		Game.StakeUnit = 100
	}
	if Game.DailyAmount <= 0 {
		Game.DailyAmount = 100
	}
	if Game.TimerPollSeconds <= 0 {
		Game.TimerPollSeconds = 30
	}

	setupDatabaseConfig()
}

func setupDatabaseConfig() {
	// DB_TYPE do .env sobrescreve o config.json
	DBType = os.Getenv("DB_TYPE")
	if DBType == "" {
		DBType = Bot.Database.Type
	}
	if DBType == "" {
		DBType = "sqlite"
	}

	switch DBType {
	case "postgres":
		ConnString = buildPostgresConnectionString()
	case "sqlite":
		fallthrough
	default:
		// Caminho do SQLite vem do .env ou usa default
		ConnString = os.Getenv("SQLITE_PATH")
		if ConnString == "" {
			ConnString = "./timebet.db"
		}
		DBType = "sqlite"
	}
}

func buildPostgresConnectionString() string {
	// Usar a DATABASE_URL completa se disponível (funciona com pgx)
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		log.Println("Using DATABASE_URL from environment")
		return dbURL
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		log.Fatal("DB_HOST is required for PostgreSQL. Set it in .env file or use DATABASE_URL")
	}

	portStr := os.Getenv("DB_PORT")
	port := 5432
	if portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	user := os.Getenv("DB_USER")
	if user == "" {
		log.Fatal("DB_USER is required for PostgreSQL. Set it in .env file")
	}

	password := os.Getenv("DB_PASSWORD")
	if password == "" {
		log.Fatal("DB_PASSWORD is required for PostgreSQL. Set it in .env file")
	}

	dbname := os.Getenv("DB_NAME")
	if dbname == "" {
		dbname = "postgres"
	}

	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "require"
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

func loadJSON(filename string, target interface{}) {
	file, err := os.ReadFile(filename)
	if err != nil {
		log.Fatalf("Error reading %s: %v", filename, err)
	}

	err = json.Unmarshal(file, target)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", filename, err)
	}
}

// IsChannelAllowed checks if a channel ID is in the allowed channels list
// Returns true if the list is empty (all channels allowed) or if the channel is in the list
func (c *GeneralConfig) IsChannelAllowed(channelID string) bool {
	if len(c.AllowedChannels) == 0 {
		return true
	}
	for _, id := range c.AllowedChannels {
		if id == channelID {
			return true
		}
	}
	return false
}
