package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/pig/internal/common/clock"
	"github.com/KirkDiggler/pig/internal/common/uuid"
	"github.com/KirkDiggler/pig/internal/dice"
	"github.com/KirkDiggler/pig/internal/player"
	gameRepo "github.com/KirkDiggler/pig/internal/repositories/game"
	playerRepo "github.com/KirkDiggler/pig/internal/repositories/player"
	"github.com/KirkDiggler/pig/internal/services/game"
	"github.com/KirkDiggler/pig/internal/services/messaging"
	"github.com/sirupsen/logrus"
)

// DefaultStaleAfter is how long an active snapshot may sit untouched before
// a new session clears it
const DefaultStaleAfter = time.Hour

// Session runs games at the terminal until the players are done
type Session struct {
	prompter   *Prompter
	out        io.Writer
	factory    *player.Factory
	messaging  messaging.Service
	gameRepo   gameRepo.Repository
	playerRepo playerRepo.Repository
	clock      clock.Clock
	staleAfter time.Duration
	config     *Config
	logger     logrus.FieldLogger
}

// Config holds the configuration for a console session
type Config struct {
	In  io.Reader
	Out io.Writer

	// Factory creates the players entered at setup
	Factory *player.Factory

	// Rules for every game, zero values take the game defaults
	Rules        game.Rules
	Timed        bool
	TimeLimit    time.Duration
	AutoComputer bool

	DiceRoller dice.Roller

	// Live state stores, in-memory when nil
	GameRepo   gameRepo.Repository
	PlayerRepo playerRepo.Repository

	// StaleAfter bounds how long an abandoned active game is kept,
	// DefaultStaleAfter when zero
	StaleAfter time.Duration

	Messaging     messaging.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        logrus.FieldLogger
}

// NewSession creates a new console session
func NewSession(cfg *Config) (*Session, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Factory == nil {
		return nil, ErrNilFactory
	}

	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	prompter, err := NewPrompter(cfg.In, cfg.Out)
	if err != nil {
		return nil, err
	}

	msgs := cfg.Messaging
	if msgs == nil {
		msgs, err = messaging.NewService(&messaging.ServiceConfig{})
		if err != nil {
			return nil, fmt.Errorf("failed to create messaging service: %w", err)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	session := &Session{
		prompter:   prompter,
		out:        cfg.Out,
		factory:    cfg.Factory,
		messaging:  msgs,
		gameRepo:   cfg.GameRepo,
		playerRepo: cfg.PlayerRepo,
		clock:      cfg.Clock,
		staleAfter: cfg.StaleAfter,
		config:     cfg,
		logger:     logger,
	}

	if session.gameRepo == nil {
		session.gameRepo = gameRepo.NewMemory()
	}
	if session.playerRepo == nil {
		session.playerRepo = playerRepo.NewMemory()
	}
	if session.clock == nil {
		session.clock = clock.New()
	}
	if session.staleAfter <= 0 {
		session.staleAfter = DefaultStaleAfter
	}

	return session, nil
}

// Run plays games until someone quits, declines a replay, enters an invalid
// setup, the input ends or ctx is canceled. Only infrastructure failures are
// returned.
func (s *Session) Run(ctx context.Context) error {
	s.sweepStale(ctx)

	err := s.run(ctx)
	switch {
	case errors.Is(err, io.EOF):
		s.logger.Debug("input closed")
		return s.say(messaging.Goodbye)
	case errors.Is(err, context.Canceled):
		s.logger.Debug("session interrupted")
		return s.say(messaging.Goodbye)
	}
	return err
}

// sweepStale clears active games left behind by a session that never got to
// clean up, such as a killed process. Failures are logged and skipped.
func (s *Session) sweepStale(ctx context.Context) {
	active, err := s.gameRepo.GetActiveGames(ctx, &gameRepo.GetActiveGamesInput{})
	if err != nil {
		s.logger.WithError(err).Warn("failed to list active games")
		return
	}

	cutoff := s.clock.Now().Add(-s.staleAfter)
	for _, listed := range active.Games {
		if !listed.UpdatedAt.Before(cutoff) {
			continue
		}

		// Re-read so a game saved since the listing is left alone
		current, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{GameID: listed.ID})
		if err != nil && !errors.Is(err, gameRepo.ErrGameNotFound) {
			s.logger.WithError(err).WithField("game_id", listed.ID).Warn("failed to read active game")
			continue
		}
		if current != nil && !current.UpdatedAt.Before(cutoff) {
			continue
		}

		players, err := s.playerRepo.GetPlayersInGame(ctx, &playerRepo.GetPlayersInGameInput{GameID: listed.ID})
		if err != nil {
			s.logger.WithError(err).WithField("game_id", listed.ID).Warn("failed to read players of stale game")
			continue
		}

		s.logger.WithFields(logrus.Fields{
			"game_id":    listed.ID,
			"players":    len(players.Players),
			"updated_at": listed.UpdatedAt,
		}).Info("clearing stale game")

		if err := s.playerRepo.DeletePlayersInGame(ctx, &playerRepo.DeletePlayersInGameInput{GameID: listed.ID}); err != nil {
			s.logger.WithError(err).WithField("game_id", listed.ID).Warn("failed to delete players of stale game")
			continue
		}
		if err := s.gameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{GameID: listed.ID}); err != nil {
			s.logger.WithError(err).WithField("game_id", listed.ID).Warn("failed to delete stale game")
		}
	}
}

func (s *Session) run(ctx context.Context) error {
	for {
		players, err := s.setup(ctx)
		if err != nil {
			return err
		}
		if players == nil {
			return nil
		}

		out, err := s.play(ctx, players)
		if err != nil {
			return err
		}

		switch out.Outcome {
		case game.OutcomeReplay:
			continue
		case game.OutcomeQuit:
			return nil
		}

		again, err := s.playAgain(ctx)
		if err != nil {
			return err
		}
		if !again {
			return s.say(messaging.Goodbye)
		}
	}
}

// setup asks for the players. Nil players with a nil error means the input
// was rejected and the session is over.
func (s *Session) setup(ctx context.Context) ([]*player.Player, error) {
	answer, err := s.prompter.Prompt(ctx, messaging.PromptPlayerCount)
	if err != nil {
		return nil, err
	}

	count, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return nil, s.reject(ctx, messaging.ErrorTypeInvalidPlayerCount)
	}
	if count < 2 {
		return nil, s.reject(ctx, messaging.ErrorTypeTooFewPlayers)
	}

	players := make([]*player.Player, 0, count)
	for i := 1; i <= count; i++ {
		answer, err := s.prompter.Prompt(ctx, fmt.Sprintf(messaging.PromptPlayerType, i))
		if err != nil {
			return nil, err
		}

		kind := strings.ToLower(strings.TrimSpace(answer))
		p, err := s.factory.Create(kind, fmt.Sprintf("Player %d", i))
		if errors.Is(err, player.ErrInvalidPlayerType) {
			return nil, s.reject(ctx, messaging.ErrorTypeInvalidPlayerType)
		}
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	s.logger.WithField("players", count).Debug("players ready")

	return players, nil
}

func (s *Session) play(ctx context.Context, players []*player.Player) (*game.PlayOutput, error) {
	t, err := game.NewTimed(&game.TimedConfig{
		Game: &game.Config{
			Players:       players,
			Rules:         s.config.Rules,
			AutoComputer:  s.config.AutoComputer,
			Prompter:      s.prompter,
			Output:        s.out,
			GameRepo:      s.gameRepo,
			PlayerRepo:    s.playerRepo,
			DiceRoller:    s.config.DiceRoller,
			Messaging:     s.messaging,
			Clock:         s.clock,
			UUIDGenerator: s.config.UUIDGenerator,
			Logger:        s.logger,
		},
		Timed:     s.config.Timed,
		TimeLimit: s.config.TimeLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return t.Play(ctx)
}

func (s *Session) playAgain(ctx context.Context) (bool, error) {
	answer, err := s.prompter.Prompt(ctx, messaging.PromptPlayAgain)
	if err != nil {
		return false, err
	}
	return strings.ToLower(strings.TrimSpace(answer)) == "yes", nil
}

// reject prints the message for bad setup input
func (s *Session) reject(ctx context.Context, errorType messaging.ErrorType) error {
	msg, err := s.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: errorType,
	})
	if err != nil {
		return err
	}

	s.logger.WithField("error_type", errorType).Debug("setup rejected")

	return s.say(msg.Message)
}

func (s *Session) say(line string) error {
	if _, err := fmt.Fprintln(s.out, line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
