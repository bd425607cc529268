package player

// PlayerError is a custom error type for player-related errors
type PlayerError string

// Error implements the error interface
func (e PlayerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidPlayerType PlayerError = "invalid player type"
	ErrInvalidScoreMode  PlayerError = "invalid score mode"
)
