package player

import (
	"context"
	"errors"

	"github.com/KirkDiggler/pig/internal/models"
)

// memoryRepository keeps player snapshots in process memory
type memoryRepository struct {
	players map[string]models.Player
}

// NewMemory creates an in-process player repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		players: make(map[string]models.Player),
	}
}

// SavePlayer stores a copy of the player
func (r *memoryRepository) SavePlayer(ctx context.Context, input *SavePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}

	if input.Player.ID == "" {
		return errors.New("player ID cannot be empty")
	}

	r.players[input.Player.ID] = *input.Player
	return nil
}

// GetPlayersInGame retrieves all players in a game
func (r *memoryRepository) GetPlayersInGame(ctx context.Context, input *GetPlayersInGameInput) (*GetPlayersInGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	players := []*models.Player{}
	for _, player := range r.players {
		if player.CurrentGameID != input.GameID {
			continue
		}
		p := player
		players = append(players, &p)
	}

	return &GetPlayersInGameOutput{
		Players: players,
	}, nil
}

// DeletePlayersInGame removes every player of a game
func (r *memoryRepository) DeletePlayersInGame(ctx context.Context, input *DeletePlayersInGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	for id, player := range r.players {
		if player.CurrentGameID == input.GameID {
			delete(r.players, id)
		}
	}
	return nil
}
