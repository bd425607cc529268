package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        GameError = "config cannot be nil"
	ErrNotEnoughPlayers GameError = "a game needs at least two players"
	ErrNilPlayer        GameError = "player cannot be nil"
	ErrNilDiceRoller    GameError = "dice roller cannot be nil"
	ErrNilPrompter      GameError = "prompter cannot be nil"
	ErrNilOutput        GameError = "output cannot be nil"
	ErrInvalidRules     GameError = "winning scores must be positive"
)
