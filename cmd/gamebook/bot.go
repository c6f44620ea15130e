package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/librogame/passomorto/internal/config"
	"github.com/librogame/passomorto/internal/handlers/discord"
	"github.com/librogame/passomorto/internal/repositories/chapters"
	"github.com/librogame/passomorto/internal/repositories/saves"
	"github.com/librogame/passomorto/internal/services/creation"
	"github.com/librogame/passomorto/internal/services/game"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Discord bot",
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.Printf("Application ID: %s", cfg.Discord.AppID)
	if cfg.Discord.GuildID != "" {
		log.Printf("Guild ID: %s", cfg.Discord.GuildID)
	}

	chapterRepo, err := chapters.LoadFile(cfg.Game.DataPath)
	if err != nil {
		return fmt.Errorf("failed to load game data from %s: %w", cfg.Game.DataPath, err)
	}
	log.Printf("Loaded %d chapters from %s", chapterRepo.Count(), cfg.Game.DataPath)

	// Keep the Redis client for cleanup
	var redisClient *redis.Client

	var saveRepo saves.Repository = saves.NewInMemoryRepository()
	if cfg.Redis.URL != "" {
		log.Printf("Connecting to Redis at: %s", cfg.Redis.URL)

		opts, parseErr := redis.ParseURL(cfg.Redis.URL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
			log.Println("Falling back to in-memory saves")
		} else {
			redisClient = redis.NewClient(opts)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
				cancel()
				log.Printf("Failed to connect to Redis: %v", pingErr)
				log.Println("Falling back to in-memory saves")
				redisClient = nil
			} else {
				cancel()
				log.Println("Using Redis for save persistence")
				saveRepo = saves.NewRedis(redisClient)
			}
		}
	} else {
		log.Println("No REDIS_URL found, using in-memory saves")
	}

	gameService := game.NewService(&game.ServiceConfig{
		ChapterRepository: chapterRepo,
		SaveRepository:    saveRepo,
	})
	creationService := creation.NewService()

	handler := discord.NewHandler(&discord.HandlerConfig{
		GameService:     gameService,
		CreationService: creationService,
		TurnDelay:       cfg.Game.TurnDelay,
	})

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	dg.AddHandler(handler.HandleInteraction)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	defer func() {
		if closeErr := dg.Close(); closeErr != nil {
			log.Printf("Failed to close Discord connection: %v", closeErr)
		}
	}()

	if err := handler.RegisterCommands(dg, cfg.Discord.GuildID); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	if cfg.Discord.GuildID != "" {
		log.Printf("Registered commands for guild: %s", cfg.Discord.GuildID)
	} else {
		log.Println("Registered global commands (may take up to 1 hour to propagate)")
	}

	fmt.Println("Bot is now running. Press CTRL-C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	fmt.Println("Shutting down...")

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}

	return nil
}
