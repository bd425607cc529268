package game

import (
	"context"
	"errors"

	"github.com/KirkDiggler/pig/internal/models"
)

// memoryRepository keeps game snapshots in process memory
type memoryRepository struct {
	games map[string]models.Game
}

// NewMemory creates an in-process game repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		games: make(map[string]models.Game),
	}
}

// SaveGame stores a copy of the game
func (r *memoryRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	if input.Game.ID == "" {
		return errors.New("game ID cannot be empty")
	}

	r.games[input.Game.ID] = copyGame(input.Game)
	return nil
}

// GetGame retrieves a copy of a game by ID
func (r *memoryRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	game, ok := r.games[input.GameID]
	if !ok {
		return nil, ErrGameNotFound
	}

	out := copyGame(&game)
	return &out, nil
}

// DeleteGame removes a game
func (r *memoryRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	delete(r.games, input.GameID)
	return nil
}

// GetActiveGames retrieves all active games
func (r *memoryRepository) GetActiveGames(ctx context.Context, input *GetActiveGamesInput) (*GetActiveGamesOutput, error) {
	games := []*models.Game{}
	for _, game := range r.games {
		if !game.Status.IsActive() {
			continue
		}
		out := copyGame(&game)
		games = append(games, &out)
	}

	return &GetActiveGamesOutput{
		Games: games,
	}, nil
}

func copyGame(game *models.Game) models.Game {
	out := *game
	out.PlayerIDs = append([]string(nil), game.PlayerIDs...)
	out.WinnerIDs = append([]string(nil), game.WinnerIDs...)
	return out
}
