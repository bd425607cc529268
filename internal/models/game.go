package models

import (
	"time"
)

// GameStatus represents the current state of a game
type GameStatus string

const (
	// GameStatusActive indicates a game is in progress
	GameStatusActive GameStatus = "active"

	// GameStatusCompleted indicates a game ended with a winner announcement
	GameStatusCompleted GameStatus = "completed"

	// GameStatusTimedOut indicates the time limit ended the game
	GameStatusTimedOut GameStatus = "timed_out"

	// GameStatusQuit indicates a player quit the game
	GameStatusQuit GameStatus = "quit"
)

// IsActive reports whether the game is still being played
func (s GameStatus) IsActive() bool {
	return s == GameStatusActive
}

// Game represents a snapshot of a running Pig game
type Game struct {
	// ID is the unique identifier for the game
	ID string

	// Status is the current state of the game
	Status GameStatus

	// PlayerIDs contains the IDs of players in turn order
	PlayerIDs []string

	// CurrentPlayer is the index into PlayerIDs of the player on turn
	CurrentPlayer int

	// WinningScore is the threshold every player must reach for a shared win
	WinningScore int

	// Timed indicates the game runs against a time limit
	Timed bool

	// WinnerIDs holds the winners once the game is over
	WinnerIDs []string

	// CreatedAt is when the game was created
	CreatedAt time.Time

	// UpdatedAt is when the game was last updated
	UpdatedAt time.Time
}
