package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/pig/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	playerKeyPrefix      = "pig:player:"
	gamePlayersKeyPrefix = "pig:game_players:"
)

// Config holds configuration for the Redis player repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// TTL bounds how long a snapshot outlives its game, zero keeps it
	TTL time.Duration
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed player repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
		ttl:    cfg.TTL,
	}, nil
}

// SavePlayer persists a player to Redis
func (r *redisRepository) SavePlayer(ctx context.Context, input *SavePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}

	player := input.Player

	// Ensure the player has an ID
	if player.ID == "" {
		return errors.New("player ID cannot be empty")
	}

	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	pipe := r.client.TxPipeline()

	playerKey := fmt.Sprintf("%s%s", playerKeyPrefix, player.ID)
	pipe.Set(ctx, playerKey, playerJSON, r.ttl)

	// If the player is in a game, add them to the game's player set
	if player.CurrentGameID != "" {
		gamePlayersKey := fmt.Sprintf("%s%s", gamePlayersKeyPrefix, player.CurrentGameID)
		pipe.SAdd(ctx, gamePlayersKey, player.ID)
		if r.ttl > 0 {
			pipe.Expire(ctx, gamePlayersKey, r.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	return nil
}

// GetPlayersInGame retrieves all players in a game from Redis
func (r *redisRepository) GetPlayersInGame(ctx context.Context, input *GetPlayersInGameInput) (*GetPlayersInGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	gamePlayersKey := fmt.Sprintf("%s%s", gamePlayersKeyPrefix, input.GameID)
	playerIDs, err := r.client.SMembers(ctx, gamePlayersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player IDs for game: %w", err)
	}

	if len(playerIDs) == 0 {
		return &GetPlayersInGameOutput{
			Players: []*models.Player{},
		}, nil
	}

	pipe := r.client.Pipeline()
	playerCommands := make(map[string]*redis.StringCmd)

	for _, playerID := range playerIDs {
		playerKey := fmt.Sprintf("%s%s", playerKeyPrefix, playerID)
		playerCommands[playerID] = pipe.Get(ctx, playerKey)
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	players := make([]*models.Player, 0, len(playerIDs))
	for playerID, cmd := range playerCommands {
		playerJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Player expired between getting the IDs and fetching the player
				continue
			}
			return nil, fmt.Errorf("failed to get player %s: %w", playerID, err)
		}

		var player models.Player
		if err := json.Unmarshal([]byte(playerJSON), &player); err != nil {
			return nil, fmt.Errorf("failed to unmarshal player %s: %w", playerID, err)
		}

		players = append(players, &player)
	}

	return &GetPlayersInGameOutput{
		Players: players,
	}, nil
}

// DeletePlayersInGame removes every player of a game and the game's player set
func (r *redisRepository) DeletePlayersInGame(ctx context.Context, input *DeletePlayersInGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	gamePlayersKey := fmt.Sprintf("%s%s", gamePlayersKeyPrefix, input.GameID)
	playerIDs, err := r.client.SMembers(ctx, gamePlayersKey).Result()
	if err != nil {
		return fmt.Errorf("failed to get player IDs for game: %w", err)
	}

	keys := make([]string, 0, len(playerIDs)+1)
	for _, playerID := range playerIDs {
		keys = append(keys, fmt.Sprintf("%s%s", playerKeyPrefix, playerID))
	}
	keys = append(keys, gamePlayersKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}

	return nil
}
