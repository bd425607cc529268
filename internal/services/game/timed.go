package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/pig/internal/models"
	"github.com/KirkDiggler/pig/internal/services/messaging"
	"github.com/sirupsen/logrus"
)

// TimedGame wraps a Game and ends it on the first turn switch after the
// time limit has passed, naming whoever leads at that moment.
type TimedGame struct {
	game      *Game
	timed     bool
	timeLimit time.Duration
	startTime time.Time
}

var _ Service = (*TimedGame)(nil)

// NewTimed creates a game that checks the time limit each time the turn passes
func NewTimed(cfg *TimedConfig) (*TimedGame, error) {
	if cfg == nil || cfg.Game == nil {
		return nil, ErrNilConfig
	}

	t := &TimedGame{
		timed:     cfg.Timed,
		timeLimit: cfg.TimeLimit,
	}
	if t.timeLimit <= 0 {
		t.timeLimit = DefaultTimeLimit
	}

	gameCfg := *cfg.Game
	next := gameCfg.Rules.BeforeSwitch
	gameCfg.Rules.BeforeSwitch = func(ctx context.Context) (*PlayOutput, error) {
		out, err := t.checkTime(ctx)
		if err != nil || out != nil || next == nil {
			return out, err
		}
		return next(ctx)
	}

	g, err := New(&gameCfg)
	if err != nil {
		return nil, err
	}
	g.timed = cfg.Timed
	t.game = g

	return t, nil
}

// Game returns the wrapped game
func (t *TimedGame) Game() *Game {
	return t.game
}

// StartTime returns when Play first started, zero before that
func (t *TimedGame) StartTime() time.Time {
	return t.startTime
}

// Play records the start time and runs the wrapped game
func (t *TimedGame) Play(ctx context.Context) (*PlayOutput, error) {
	if t.startTime.IsZero() {
		t.startTime = t.game.clock.Now()
	}
	return t.game.Play(ctx)
}

// checkTime ends the game when time is up. It runs as the before-switch
// check, so a nil output lets the turn pass.
func (t *TimedGame) checkTime(ctx context.Context) (*PlayOutput, error) {
	if !t.timed {
		return nil, nil
	}

	elapsed := t.game.clock.Now().Sub(t.startTime)
	if elapsed < t.timeLimit {
		return nil, nil
	}

	t.game.logger.WithFields(logrus.Fields{
		"elapsed":    elapsed.String(),
		"time_limit": t.timeLimit.String(),
	}).Info("time limit reached")

	return t.EndGame(ctx)
}

// EndGame announces every player tied at the highest score and asks whether
// to play again. Anything but "yes" ends the session.
func (t *TimedGame) EndGame(ctx context.Context) (*PlayOutput, error) {
	out := &PlayOutput{
		GameID: t.game.id,
		Status: models.GameStatusTimedOut,
	}
	for _, stats := range t.game.Leaderboard().Leaders() {
		out.Winners = append(out.Winners, stats.PlayerName)
		out.WinnerIDs = append(out.WinnerIDs, stats.PlayerID)
	}

	if err := t.game.announceWinners(ctx, out.Winners, true); err != nil {
		return nil, err
	}

	answer, err := t.game.prompter.Prompt(ctx, messaging.PromptPlayAgain)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay answer: %w", err)
	}

	if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
		out.Outcome = OutcomeQuit
		return out, t.game.say(messaging.Goodbye)
	}

	out.Outcome = OutcomeReplay
	return out, nil
}
