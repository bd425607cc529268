package player

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/pig/internal/repositories/player Repository

import "context"

// Repository defines the interface for live player state
type Repository interface {
	// SavePlayer persists a player
	SavePlayer(ctx context.Context, input *SavePlayerInput) error

	// GetPlayersInGame retrieves all players in a game
	GetPlayersInGame(ctx context.Context, input *GetPlayersInGameInput) (*GetPlayersInGameOutput, error)

	// DeletePlayersInGame removes every player of a game
	DeletePlayersInGame(ctx context.Context, input *DeletePlayersInGameInput) error
}
