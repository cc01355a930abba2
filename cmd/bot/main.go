package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"timebet/internal/api"
	"timebet/internal/commands"
	"timebet/internal/database"
	"timebet/internal/game"
	"timebet/internal/timerbot"
	"timebet/internal/webhook"
	"timebet/pkg/config"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	// Load Configuration
	config.Load()

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		log.Fatal("DISCORD_TOKEN not found in environment variables")
	}

	database.Initialize()
	defer database.DB.Close()

	// Build the game engine on top of the database-backed ledger.
	engine, err := game.New(game.Options{
		AdminID:    config.Game.AdminID,
		TimerBotID: config.Game.TimerBotID,
		StakeUnit:  config.Game.StakeUnit,
		Store:      database.NewLedgerStore(),
		Emitter:    webhook.NewSender(config.Game.EventsWebhookURL),
	})
	if err != nil {
		log.Fatal("Error creating game engine: ", err)
	}

	commands.Setup(engine)

	// Start API Server
	if config.Bot.EnableAPI {
		go api.Start(engine)
	} else {
		log.Println("API is disabled in config.json")
	}

	// Create Discord Session
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatal("Error creating Discord session: ", err)
	}

	// Register Handlers
	dg.AddHandler(commands.MessageCreate)
	dg.AddHandler(commands.SlashHandler)

	// Identify Intent
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	// Open Websocket
	err = dg.Open()
	if err != nil {
		log.Fatal("Error opening connection: ", err)
	}

	// Start the settlement poller
	ctx, cancel := context.WithCancel(context.Background())
	go timerbot.New(engine, config.Game.TimerBotID, int64(config.Game.TimerPollSeconds)).Run(ctx)

	// Register Slash Commands
	log.Println("Registering slash commands...")
	for _, v := range commands.SlashCommands {
		if _, err := dg.ApplicationCommandCreate(dg.State.User.ID, "", v); err != nil {
			log.Panicf("Cannot create '%v' command: %v", v.Name, err)
		}
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")

	// Wait here until CTRL-C or other term signal is received.
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	cancel()
	dg.Close()
}
