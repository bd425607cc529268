package messaging

import (
	"github.com/KirkDiggler/pig/internal/models"
)

// Prompts written before blocking on a line of input
const (
	PromptTurn        = "Enter 'r' to roll or 'h' to hold or 'q' to quit: "
	PromptPlayAgain   = "Do you want to play another game? (yes/no): "
	PromptPlayerCount = "Enter the number of players (minimum 2): "

	// PromptPlayerType takes the 1-based player number
	PromptPlayerType = "Enter the type of player %d (human/computer): "
)

// Goodbye is printed whenever the session ends on request
const Goodbye = "Goodbye!"

// ErrorType identifies a kind of rejected input
type ErrorType string

const (
	// ErrorTypeInvalidCommand is an unknown turn command, the turn prompt repeats
	ErrorTypeInvalidCommand ErrorType = "invalid_command"

	// ErrorTypeInvalidPlayerCount is a player count that is not a whole number
	ErrorTypeInvalidPlayerCount ErrorType = "invalid_player_count"

	// ErrorTypeTooFewPlayers is a player count below two
	ErrorTypeTooFewPlayers ErrorType = "too_few_players"

	// ErrorTypeInvalidPlayerType is a player type other than human or computer
	ErrorTypeInvalidPlayerType ErrorType = "invalid_player_type"
)

// GetTurnStartMessageInput contains parameters for the turn header
type GetTurnStartMessageInput struct {
	PlayerName string
}

// GetTurnStartMessageOutput contains the turn header
type GetTurnStartMessageOutput struct {
	Message string
}

// GetRollResultMessageInput contains parameters for a roll result message
type GetRollResultMessageInput struct {
	// Roll is the roll that was just made
	Roll *models.Roll

	// Player is the state of the player after the roll
	Player *models.Player
}

// GetRollResultMessageOutput contains the lines describing a roll
type GetRollResultMessageOutput struct {
	Lines []string
}

// GetHoldMessageInput contains parameters for a hold message
type GetHoldMessageInput struct {
	// Player is the state of the player after the hold
	Player *models.Player
}

// GetHoldMessageOutput contains the hold line
type GetHoldMessageOutput struct {
	Message string
}

// GetWinnerMessageInput contains parameters for the winner announcement
type GetWinnerMessageInput struct {
	// PlayerNames lists every winner in turn order
	PlayerNames []string

	// TimeUp marks an announcement forced by the time limit
	TimeUp bool
}

// GetWinnerMessageOutput contains the winner announcement
type GetWinnerMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for an error message
type GetErrorMessageInput struct {
	ErrorType ErrorType
}

// GetErrorMessageOutput contains the error message
type GetErrorMessageOutput struct {
	Message string
}
