package models

import (
	"time"
)

// PlayerType distinguishes who makes decisions for a player
type PlayerType string

const (
	// PlayerTypeHuman is driven by typed input
	PlayerTypeHuman PlayerType = "human"

	// PlayerTypeComputer carries the computer decision policy
	PlayerTypeComputer PlayerType = "computer"
)

// Player represents a participant in a game
type Player struct {
	// ID is the unique identifier for the player
	ID string

	// Name is the display name of the player
	Name string

	// Type is human or computer
	Type PlayerType

	// Score is the total accumulated across turns
	Score int

	// TurnTotal is the points gathered in the current turn
	TurnTotal int

	// CurrentGameID is the ID of the game the player is currently in
	CurrentGameID string

	// LastRoll is the value of the player's last roll
	LastRoll int

	// LastRollTime is when the player last rolled
	LastRollTime time.Time
}
