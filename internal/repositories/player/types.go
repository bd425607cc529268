package player

import "github.com/KirkDiggler/pig/internal/models"

// SavePlayerInput contains parameters for saving a player
type SavePlayerInput struct {
	Player *models.Player
}

// GetPlayersInGameInput contains parameters for retrieving players in a game
type GetPlayersInGameInput struct {
	GameID string
}

// GetPlayersInGameOutput contains the result of retrieving players in a game
type GetPlayersInGameOutput struct {
	Players []*models.Player
}

// DeletePlayersInGameInput contains parameters for removing a game's players
type DeletePlayersInGameInput struct {
	GameID string
}
