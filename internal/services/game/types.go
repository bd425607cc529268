package game

import (
	"context"
	"io"
	"time"

	"github.com/KirkDiggler/pig/internal/common/clock"
	"github.com/KirkDiggler/pig/internal/common/uuid"
	"github.com/KirkDiggler/pig/internal/dice"
	"github.com/KirkDiggler/pig/internal/models"
	"github.com/KirkDiggler/pig/internal/player"
	gameRepo "github.com/KirkDiggler/pig/internal/repositories/game"
	playerRepo "github.com/KirkDiggler/pig/internal/repositories/player"
	"github.com/KirkDiggler/pig/internal/services/messaging"
	"github.com/sirupsen/logrus"
)

// Defaults applied when a rule or option is left at zero
const (
	DefaultWinningScore    = 140
	DefaultInstantWinScore = 100
	DefaultTimeLimit       = 60 * time.Second
)

// Outcome tells the caller what to do once Play returns
type Outcome string

const (
	// OutcomeFinished means winners were announced
	OutcomeFinished Outcome = "finished"

	// OutcomeQuit means the session should end
	OutcomeQuit Outcome = "quit"

	// OutcomeReplay means a fresh game was requested
	OutcomeReplay Outcome = "replay"
)

// PlayOutput contains the result of playing a game
type PlayOutput struct {
	// GameID is the unique identifier of the game
	GameID string

	// Outcome is how the game ended
	Outcome Outcome

	// Status is the final game status
	Status models.GameStatus

	// Winners lists the winning player names in turn order
	Winners []string

	// WinnerIDs lists the winning player IDs in the same order
	WinnerIDs []string
}

// SwitchCheck runs each time the turn is about to pass to the next player.
// A non-nil output ends the game with that output instead of switching.
type SwitchCheck func(ctx context.Context) (*PlayOutput, error)

// Rules holds the thresholds that end a game
type Rules struct {
	// WinningScore ends the game when every player has reached it
	WinningScore int

	// InstantWinScore ends the game as soon as the player finishing a turn reaches it
	InstantWinScore int

	// BeforeSwitch is consulted where the turn would pass, optional
	BeforeSwitch SwitchCheck
}

// Config holds configuration for a game
type Config struct {
	// Players in turn order, at least two
	Players []*player.Player

	Rules Rules

	// AutoComputer feeds computer decisions in place of typed input
	AutoComputer bool

	// Console dependencies
	Prompter Prompter
	Output   io.Writer

	// Repository dependencies, in-memory when nil
	GameRepo   gameRepo.Repository
	PlayerRepo playerRepo.Repository

	// Service dependencies
	DiceRoller    dice.Roller
	Messaging     messaging.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        logrus.FieldLogger
}

// TimedConfig holds configuration for a game played against the clock
type TimedConfig struct {
	Game *Config

	// Timed enables the time limit
	Timed bool

	// TimeLimit is measured from the start of Play, DefaultTimeLimit when zero
	TimeLimit time.Duration
}
