package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/pig/internal/config"
	"github.com/KirkDiggler/pig/internal/dice"
	"github.com/KirkDiggler/pig/internal/handlers/console"
	"github.com/KirkDiggler/pig/internal/player"
	gameRepo "github.com/KirkDiggler/pig/internal/repositories/game"
	playerRepo "github.com/KirkDiggler/pig/internal/repositories/player"
	"github.com/KirkDiggler/pig/internal/services/game"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatalf("Invalid log level %q: %v", cfg.LogLevel, err)
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize dice roller
	var diceCfg *dice.Config
	if !cfg.RandomSeed {
		diceCfg = &dice.Config{Seed: cfg.Seed}
	}
	diceRoller := dice.New(diceCfg)

	// Live game state lives in memory unless Redis is configured
	var games gameRepo.Repository = gameRepo.NewMemory()
	var players playerRepo.Repository = playerRepo.NewMemory()

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}

		redisGames, err := gameRepo.NewRedis(&gameRepo.Config{
			RedisClient: redisClient,
			TTL:         cfg.StateTTL,
		})
		if err != nil {
			logger.Fatalf("Failed to create game repository: %v", err)
		}
		games = redisGames

		redisPlayers, err := playerRepo.NewRedis(&playerRepo.Config{
			RedisClient: redisClient,
			TTL:         cfg.StateTTL,
		})
		if err != nil {
			logger.Fatalf("Failed to create player repository: %v", err)
		}
		players = redisPlayers

		logger.WithField("addr", cfg.RedisAddr).Info("storing live game state in redis")
	}

	factory, err := player.NewFactory(&player.FactoryConfig{
		ScoreMode:         player.ScoreMode(cfg.ScoreMode),
		ComputerTarget:    cfg.ComputerTarget,
		ComputerThreshold: cfg.ComputerThreshold,
	})
	if err != nil {
		logger.Fatalf("Failed to create player factory: %v", err)
	}

	session, err := console.NewSession(&console.Config{
		In:      os.Stdin,
		Out:     os.Stdout,
		Factory: factory,
		Rules: game.Rules{
			WinningScore:    cfg.WinningScore,
			InstantWinScore: cfg.InstantWinScore,
		},
		Timed:        cfg.Timed,
		TimeLimit:    cfg.TimeLimit,
		AutoComputer: cfg.AutoComputer,
		DiceRoller:   diceRoller,
		GameRepo:     games,
		PlayerRepo:   players,
		StaleAfter:   cfg.StateTTL,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatalf("Failed to create console session: %v", err)
	}

	if err := session.Run(ctx); err != nil {
		logger.Fatalf("Session ended with error: %v", err)
	}
}
