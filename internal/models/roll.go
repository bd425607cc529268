package models

import (
	"time"
)

// Roll represents a single die roll in a game
type Roll struct {
	// Value is the result of the dice roll
	Value int

	// PlayerID is the ID of the player who made the roll
	PlayerID string

	// GameID is the ID of the game the roll belongs to
	GameID string

	// Timestamp is when the roll was made
	Timestamp time.Time

	// IsBust indicates the roll was a 1 and ended the turn
	IsBust bool
}
