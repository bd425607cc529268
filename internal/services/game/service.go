package game

import (
	"context"
	"fmt"
	"io"
	"strings"
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

// Game drives the round-robin turn loop of one Pig game
type Game struct {
	id           string
	players      []*player.Player
	current      int
	rules        Rules
	autoComputer bool
	timed        bool
	createdAt    time.Time

	prompter   Prompter
	out        io.Writer
	gameRepo   gameRepo.Repository
	playerRepo playerRepo.Repository
	diceRoller dice.Roller
	messaging  messaging.Service
	clock      clock.Clock
	logger     logrus.FieldLogger
}

var _ Service = (*Game)(nil)

// New creates a new game
func New(cfg *Config) (*Game, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if len(cfg.Players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	for _, p := range cfg.Players {
		if p == nil {
			return nil, ErrNilPlayer
		}
	}

	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	if cfg.Prompter == nil {
		return nil, ErrNilPrompter
	}

	if cfg.Output == nil {
		return nil, ErrNilOutput
	}

	rules := cfg.Rules
	if rules.WinningScore == 0 {
		rules.WinningScore = DefaultWinningScore
	}
	if rules.InstantWinScore == 0 {
		rules.InstantWinScore = DefaultInstantWinScore
	}
	if rules.WinningScore < 0 || rules.InstantWinScore < 0 {
		return nil, ErrInvalidRules
	}

	g := &Game{
		players:      append([]*player.Player(nil), cfg.Players...),
		rules:        rules,
		autoComputer: cfg.AutoComputer,
		prompter:     cfg.Prompter,
		out:          cfg.Output,
		gameRepo:     cfg.GameRepo,
		playerRepo:   cfg.PlayerRepo,
		diceRoller:   cfg.DiceRoller,
		messaging:    cfg.Messaging,
		clock:        cfg.Clock,
		logger:       cfg.Logger,
	}

	if g.gameRepo == nil {
		g.gameRepo = gameRepo.NewMemory()
	}
	if g.playerRepo == nil {
		g.playerRepo = playerRepo.NewMemory()
	}
	if g.messaging == nil {
		svc, err := messaging.NewService(&messaging.ServiceConfig{})
		if err != nil {
			return nil, fmt.Errorf("failed to create messaging service: %w", err)
		}
		g.messaging = svc
	}
	if g.clock == nil {
		g.clock = clock.New()
	}
	if g.logger == nil {
		g.logger = logrus.StandardLogger()
	}

	ids := cfg.UUIDGenerator
	if ids == nil {
		ids = uuid.New()
	}
	g.id = ids.NewUUID()
	g.createdAt = g.clock.Now()
	g.logger = g.logger.WithField("game_id", g.id)

	return g, nil
}

// ID returns the unique identifier of the game
func (g *Game) ID() string {
	return g.id
}

// Players returns the players in turn order
func (g *Game) Players() []*player.Player {
	return g.players
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() *player.Player {
	return g.players[g.current]
}

// SwitchPlayer passes the turn to the next player in order
func (g *Game) SwitchPlayer() {
	g.current = (g.current + 1) % len(g.players)
}

// Leaderboard returns the current standings in turn order
func (g *Game) Leaderboard() *models.Leaderboard {
	board := &models.Leaderboard{
		GameID:      g.id,
		PlayerStats: make([]*models.PlayerStats, 0, len(g.players)),
	}
	for _, p := range g.players {
		board.PlayerStats = append(board.PlayerStats, &models.PlayerStats{
			PlayerID:   p.ID(),
			PlayerName: p.Name(),
			Score:      p.Score(),
		})
	}
	return board
}

// Play runs turns until a player quits, winners are announced or the
// before-switch check ends the game.
func (g *Game) Play(ctx context.Context) (*PlayOutput, error) {
	if err := g.save(ctx, models.GameStatusActive); err != nil {
		return nil, err
	}
	defer g.cleanup()

	g.logger.WithFields(logrus.Fields{
		"players":           len(g.players),
		"winning_score":     g.rules.WinningScore,
		"instant_win_score": g.rules.InstantWinScore,
	}).Info("game started")

	for g.allBelow(g.rules.WinningScore) {
		p := g.CurrentPlayer()

		quit, err := g.playTurn(ctx, p)
		if err != nil {
			return nil, err
		}
		if quit {
			return g.finish(ctx, &PlayOutput{
				Outcome: OutcomeQuit,
				Status:  models.GameStatusQuit,
			})
		}

		if err := g.save(ctx, models.GameStatusActive); err != nil {
			return nil, err
		}

		if winners := g.winners(p); len(winners) > 0 {
			out := &PlayOutput{
				Outcome: OutcomeFinished,
				Status:  models.GameStatusCompleted,
			}
			for _, w := range winners {
				out.Winners = append(out.Winners, w.Name())
				out.WinnerIDs = append(out.WinnerIDs, w.ID())
			}
			if err := g.announceWinners(ctx, out.Winners, false); err != nil {
				return nil, err
			}
			return g.finish(ctx, out)
		}

		out, err := g.advance(ctx)
		if err != nil {
			return nil, err
		}
		if out != nil {
			return g.finish(ctx, out)
		}
	}

	// The guard stopped the loop: someone reached the winning score without
	// the instant win, so they are the winners.
	out := &PlayOutput{
		Outcome: OutcomeFinished,
		Status:  models.GameStatusCompleted,
	}
	for _, p := range g.players {
		if p.Score() >= g.rules.WinningScore {
			out.Winners = append(out.Winners, p.Name())
			out.WinnerIDs = append(out.WinnerIDs, p.ID())
		}
	}
	if err := g.announceWinners(ctx, out.Winners, false); err != nil {
		return nil, err
	}
	return g.finish(ctx, out)
}

// playTurn runs one player's turn and reports whether they quit
func (g *Game) playTurn(ctx context.Context, p *player.Player) (bool, error) {
	header, err := g.messaging.GetTurnStartMessage(ctx, &messaging.GetTurnStartMessageInput{
		PlayerName: p.Name(),
	})
	if err != nil {
		return false, err
	}
	if err := g.say(header.Message); err != nil {
		return false, err
	}

	for {
		command, err := g.nextCommand(ctx, p)
		if err != nil {
			return false, err
		}

		switch player.Decision(command) {
		case player.DecisionRoll:
			busted, err := g.roll(ctx, p)
			if err != nil {
				return false, err
			}
			if busted {
				return false, nil
			}

		case player.DecisionHold:
			return false, g.hold(ctx, p)

		case "q":
			g.logger.WithField("player", p.Name()).Info("player quit")
			return true, g.say(messaging.Goodbye)

		default:
			msg, err := g.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
				ErrorType: messaging.ErrorTypeInvalidCommand,
			})
			if err != nil {
				return false, err
			}
			if err := g.say(msg.Message); err != nil {
				return false, err
			}
		}
	}
}

// nextCommand reads the next turn command, or takes it from the computer
// policy when autonomous computer turns are enabled.
func (g *Game) nextCommand(ctx context.Context, p *player.Player) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if g.autoComputer && p.IsComputer() {
		if decision, ok := p.Decide(); ok {
			// Echo the decision so the transcript reads as if it were typed
			if _, err := fmt.Fprintf(g.out, "%s%s\n", messaging.PromptTurn, decision); err != nil {
				return "", fmt.Errorf("failed to write output: %w", err)
			}
			return string(decision), nil
		}
	}

	line, err := g.prompter.Prompt(ctx, messaging.PromptTurn)
	if err != nil {
		return "", fmt.Errorf("failed to read turn command: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// roll rolls for the player and reports whether the turn busted
func (g *Game) roll(ctx context.Context, p *player.Player) (bool, error) {
	value := p.Roll(g.diceRoller)
	roll := &models.Roll{
		Value:     value,
		PlayerID:  p.ID(),
		GameID:    g.id,
		Timestamp: g.clock.Now(),
		IsBust:    value == 1,
	}

	g.logger.WithFields(logrus.Fields{
		"player":     p.Name(),
		"roll":       roll.Value,
		"turn_total": p.TurnTotal(),
		"score":      p.Score(),
		"bust":       roll.IsBust,
	}).Debug("rolled")

	snapshot := p.Snapshot()
	snapshot.LastRollTime = roll.Timestamp

	msg, err := g.messaging.GetRollResultMessage(ctx, &messaging.GetRollResultMessageInput{
		Roll:   roll,
		Player: snapshot,
	})
	if err != nil {
		return false, err
	}

	return roll.IsBust, g.say(msg.Lines...)
}

func (g *Game) hold(ctx context.Context, p *player.Player) error {
	p.Hold()

	g.logger.WithFields(logrus.Fields{
		"player": p.Name(),
		"score":  p.Score(),
	}).Debug("held")

	msg, err := g.messaging.GetHoldMessage(ctx, &messaging.GetHoldMessageInput{
		Player: p.Snapshot(),
	})
	if err != nil {
		return err
	}

	return g.say(msg.Message)
}

// winners applies the end-of-turn checks for the player who just finished
func (g *Game) winners(last *player.Player) []*player.Player {
	if last.Score() >= g.rules.InstantWinScore {
		return []*player.Player{last}
	}

	if !g.allAtLeast(g.rules.WinningScore) {
		return nil
	}

	winners := make([]*player.Player, 0, len(g.players))
	for _, p := range g.players {
		if p.Score() >= g.rules.WinningScore {
			winners = append(winners, p)
		}
	}
	return winners
}

// advance runs the before-switch check and then passes the turn
func (g *Game) advance(ctx context.Context) (*PlayOutput, error) {
	if g.rules.BeforeSwitch != nil {
		out, err := g.rules.BeforeSwitch(ctx)
		if err != nil || out != nil {
			return out, err
		}
	}

	g.SwitchPlayer()
	return nil, nil
}

func (g *Game) announceWinners(ctx context.Context, names []string, timeUp bool) error {
	msg, err := g.messaging.GetWinnerMessage(ctx, &messaging.GetWinnerMessageInput{
		PlayerNames: names,
		TimeUp:      timeUp,
	})
	if err != nil {
		return err
	}
	return g.say(msg.Message)
}

func (g *Game) finish(ctx context.Context, out *PlayOutput) (*PlayOutput, error) {
	out.GameID = g.id

	g.logger.WithFields(logrus.Fields{
		"outcome": out.Outcome,
		"status":  out.Status,
		"winners": out.Winners,
	}).Info("game over")

	if err := g.save(ctx, out.Status, out.WinnerIDs...); err != nil {
		return nil, err
	}
	return out, nil
}

// save writes the game and player snapshots to the live state repositories
func (g *Game) save(ctx context.Context, status models.GameStatus, winnerIDs ...string) error {
	now := g.clock.Now()

	game := &models.Game{
		ID:            g.id,
		Status:        status,
		PlayerIDs:     make([]string, 0, len(g.players)),
		CurrentPlayer: g.current,
		WinnerIDs:     winnerIDs,
		WinningScore:  g.rules.WinningScore,
		Timed:         g.timed,
		CreatedAt:     g.createdAt,
		UpdatedAt:     now,
	}

	for _, p := range g.players {
		game.PlayerIDs = append(game.PlayerIDs, p.ID())

		snapshot := p.Snapshot()
		snapshot.CurrentGameID = g.id
		if err := g.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{
			Player: snapshot,
		}); err != nil {
			return fmt.Errorf("failed to save player %s: %w", p.Name(), err)
		}
	}

	if err := g.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{
		Game: game,
	}); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// cleanup removes the live snapshots once the game is over
func (g *Game) cleanup() {
	ctx := context.Background()

	if err := g.playerRepo.DeletePlayersInGame(ctx, &playerRepo.DeletePlayersInGameInput{
		GameID: g.id,
	}); err != nil {
		g.logger.WithError(err).Warn("failed to delete player snapshots")
	}

	if err := g.gameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{
		GameID: g.id,
	}); err != nil {
		g.logger.WithError(err).Warn("failed to delete game snapshot")
	}
}

func (g *Game) allBelow(score int) bool {
	for _, p := range g.players {
		if p.Score() >= score {
			return false
		}
	}
	return true
}

func (g *Game) allAtLeast(score int) bool {
	for _, p := range g.players {
		if p.Score() < score {
			return false
		}
	}
	return true
}

// say writes each line followed by a newline
func (g *Game) say(lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(g.out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
