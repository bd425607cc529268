package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/pig/internal/common/clock/mocks"
	diceMocks "github.com/KirkDiggler/pig/internal/dice/mocks"
	"github.com/KirkDiggler/pig/internal/models"
	"github.com/KirkDiggler/pig/internal/player"
	gameRepo "github.com/KirkDiggler/pig/internal/repositories/game"
	gameMocks "github.com/KirkDiggler/pig/internal/repositories/game/mocks"
	playerRepo "github.com/KirkDiggler/pig/internal/repositories/player"
	"github.com/KirkDiggler/pig/internal/services/game"
	"github.com/KirkDiggler/pig/internal/services/messaging"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	logrusTest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockDiceRoller *diceMocks.MockRoller
	mockClock      *clockMocks.MockClock
	ctx            context.Context

	factory *player.Factory
	output  *bytes.Buffer
	logger  *logrus.Logger
	logHook *logrusTest.Hook
	now     time.Time
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockDiceRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	s.now = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time {
		return s.now
	}).AnyTimes()

	factory, err := player.NewFactory(&player.FactoryConfig{})
	s.Require().NoError(err)
	s.factory = factory

	s.output = &bytes.Buffer{}
	s.logger, s.logHook = logrusTest.NewNullLogger()
}

func (s *SessionTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *SessionTestSuite) config(in io.Reader, rules game.Rules) *Config {
	return &Config{
		In:         in,
		Out:        s.output,
		Factory:    s.factory,
		Rules:      rules,
		Timed:      true,
		TimeLimit:  time.Minute,
		DiceRoller: s.mockDiceRoller,
		Clock:      s.mockClock,
		Logger:     s.logger,
	}
}

func (s *SessionTestSuite) runConfig(cfg *Config) {
	session, err := NewSession(cfg)
	s.Require().NoError(err)

	s.Require().NoError(session.Run(s.ctx))
}

func (s *SessionTestSuite) run(input string, rules game.Rules) {
	s.runConfig(s.config(strings.NewReader(input), rules))
}

func (s *SessionTestSuite) logMessages() []string {
	var messages []string
	for _, entry := range s.logHook.AllEntries() {
		messages = append(messages, entry.Message)
	}
	return messages
}

// rollAfter makes the next roll return value once d has passed
func (s *SessionTestSuite) rollAfter(d time.Duration, value int) {
	s.mockDiceRoller.EXPECT().Roll(6).DoAndReturn(func(sides int) int {
		s.now = s.now.Add(d)
		return value
	})
}

func (s *SessionTestSuite) TestNewSessionValidation() {
	_, err := NewSession(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewSession(&Config{Out: s.output, DiceRoller: s.mockDiceRoller})
	s.ErrorIs(err, ErrNilFactory)

	_, err = NewSession(&Config{Out: s.output, Factory: s.factory})
	s.ErrorIs(err, ErrNilDiceRoller)

	_, err = NewSession(&Config{Out: s.output, Factory: s.factory, DiceRoller: s.mockDiceRoller})
	s.ErrorIs(err, ErrNilInput)

	_, err = NewSession(&Config{In: strings.NewReader(""), Factory: s.factory, DiceRoller: s.mockDiceRoller})
	s.ErrorIs(err, ErrNilOutput)
}

func (s *SessionTestSuite) TestNonIntegerPlayerCountAborts() {
	s.run("two\n2\n", game.Rules{})

	s.Equal(messaging.PromptPlayerCount+
		"Invalid number of players. Please enter a whole number.\n", s.output.String())
}

func (s *SessionTestSuite) TestTooFewPlayersAborts() {
	s.run("1\n", game.Rules{})

	s.Equal(messaging.PromptPlayerCount+
		"Number of players must be at least 2.\n", s.output.String())
}

func (s *SessionTestSuite) TestInvalidPlayerTypeAborts() {
	s.run("2\nhuman\nrobot\n", game.Rules{})

	s.Equal(messaging.PromptPlayerCount+
		"Enter the type of player 1 (human/computer): "+
		"Enter the type of player 2 (human/computer): "+
		"Invalid player type. Please enter 'human' or 'computer'.\n", s.output.String())
}

func (s *SessionTestSuite) TestQuitEndsTheSession() {
	s.run("2\n HUMAN \nComputer\nq\n", game.Rules{})

	s.Equal(messaging.PromptPlayerCount+
		"Enter the type of player 1 (human/computer): "+
		"Enter the type of player 2 (human/computer): "+
		"\nPlayer 1's turn\n"+
		messaging.PromptTurn+
		"Goodbye!\n", s.output.String())
}

func (s *SessionTestSuite) TestEndOfInputIsTreatedAsQuit() {
	s.rollAfter(0, 3)
	s.run("2\nhuman\nhuman\nr", game.Rules{})

	out := s.output.String()
	s.Contains(out, "Rolled a 3\n")
	s.True(strings.HasSuffix(out, messaging.PromptTurn+"Goodbye!\n"))
	s.Equal(1, strings.Count(out, "Goodbye!"))
}

func (s *SessionTestSuite) TestEndOfInputDuringSetup() {
	s.run("3\nhuman\n", game.Rules{})

	s.True(strings.HasSuffix(s.output.String(),
		"Enter the type of player 2 (human/computer): Goodbye!\n"))
}

func (s *SessionTestSuite) TestDecliningAnotherGame() {
	s.rollAfter(0, 6)
	s.run("2\nhuman\nhuman\nr\nh\nno\n", game.Rules{WinningScore: 10, InstantWinScore: 1000})

	s.True(strings.HasSuffix(s.output.String(),
		"Player 1 held. Turn total: 0, Total score: 12\n"+
			"Player(s) Player 1 wins!\n"+
			messaging.PromptPlayAgain+
			"Goodbye!\n"))
}

func (s *SessionTestSuite) TestAnotherGameStartsOverAtSetup() {
	s.rollAfter(0, 6)
	s.run("2\nhuman\nhuman\nr\nh\nyes\n1\n", game.Rules{WinningScore: 10, InstantWinScore: 1000})

	out := s.output.String()
	s.Equal(2, strings.Count(out, messaging.PromptPlayerCount))
	s.True(strings.HasSuffix(out, "Number of players must be at least 2.\n"))
	s.NotContains(out, "Goodbye!")
}

func (s *SessionTestSuite) TestTimeUpReplayIsAskedOnce() {
	s.rollAfter(61*time.Second, 5)
	s.run("2\nhuman\nhuman\nr\nh\nyes\n1\n", game.Rules{})

	out := s.output.String()
	s.Contains(out, "\nTime is up! Player(s) Player 1 wins!\n")
	s.Equal(1, strings.Count(out, messaging.PromptPlayAgain))
	s.Equal(2, strings.Count(out, messaging.PromptPlayerCount))
}

func (s *SessionTestSuite) TestTimeUpDeclined() {
	s.rollAfter(2*time.Minute, 2)
	s.run("2\nhuman\ncomputer\nr\nh\nNo\n", game.Rules{})

	s.True(strings.HasSuffix(s.output.String(),
		"\nTime is up! Player(s) Player 1 wins!\n"+
			messaging.PromptPlayAgain+
			"Goodbye!\n"))
	s.Equal(1, strings.Count(s.output.String(), messaging.PromptPlayerCount))
}

func (s *SessionTestSuite) TestCancelWhileWaitingForInputSaysGoodbye() {
	in, writer := io.Pipe()
	defer writer.Close()

	session, err := NewSession(s.config(in, game.Rules{}))
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	time.AfterFunc(50*time.Millisecond, cancel)

	done := make(chan error, 1)
	go func() {
		done <- session.Run(ctx)
	}()

	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(time.Second):
		s.FailNow("session kept waiting for input after cancel")
	}

	s.Equal(messaging.PromptPlayerCount+"Goodbye!\n", s.output.String())
}

func (s *SessionTestSuite) TestCancelMidGameSaysGoodbye() {
	in, writer := io.Pipe()
	defer writer.Close()

	session, err := NewSession(s.config(in, game.Rules{}))
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	go func() {
		writer.Write([]byte("2\nhuman\nhuman\n"))
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() {
		done <- session.Run(ctx)
	}()

	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(time.Second):
		s.FailNow("session kept waiting for input after cancel")
	}

	s.True(strings.HasSuffix(s.output.String(),
		"\nPlayer 1's turn\n"+messaging.PromptTurn+"Goodbye!\n"))
}

func (s *SessionTestSuite) TestStaleGamesAreClearedAtStart() {
	games := gameRepo.NewMemory()
	players := playerRepo.NewMemory()

	for _, g := range []*models.Game{
		{ID: "abandoned", Status: models.GameStatusActive, UpdatedAt: s.now.Add(-2 * time.Hour)},
		{ID: "running", Status: models.GameStatusActive, UpdatedAt: s.now.Add(-10 * time.Minute)},
	} {
		s.Require().NoError(games.SaveGame(s.ctx, &gameRepo.SaveGameInput{Game: g}))
		s.Require().NoError(players.SavePlayer(s.ctx, &playerRepo.SavePlayerInput{
			Player: &models.Player{ID: g.ID + "-player", Name: "Player 1", CurrentGameID: g.ID},
		}))
	}

	cfg := s.config(strings.NewReader("1\n"), game.Rules{})
	cfg.GameRepo = games
	cfg.PlayerRepo = players
	s.runConfig(cfg)

	_, err := games.GetGame(s.ctx, &gameRepo.GetGameInput{GameID: "abandoned"})
	s.ErrorIs(err, gameRepo.ErrGameNotFound)
	abandoned, err := players.GetPlayersInGame(s.ctx, &playerRepo.GetPlayersInGameInput{GameID: "abandoned"})
	s.Require().NoError(err)
	s.Empty(abandoned.Players)

	_, err = games.GetGame(s.ctx, &gameRepo.GetGameInput{GameID: "running"})
	s.NoError(err)
	running, err := players.GetPlayersInGame(s.ctx, &playerRepo.GetPlayersInGameInput{GameID: "running"})
	s.Require().NoError(err)
	s.Len(running.Players, 1)

	s.Contains(s.logMessages(), "clearing stale game")
}

func (s *SessionTestSuite) TestStaleGamesAreClearedFromRedis() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	games, err := gameRepo.NewRedis(&gameRepo.Config{RedisClient: client})
	s.Require().NoError(err)
	players, err := playerRepo.NewRedis(&playerRepo.Config{RedisClient: client})
	s.Require().NoError(err)

	s.Require().NoError(games.SaveGame(s.ctx, &gameRepo.SaveGameInput{Game: &models.Game{
		ID:        "abandoned",
		Status:    models.GameStatusActive,
		UpdatedAt: s.now.Add(-3 * time.Hour),
	}}))
	s.Require().NoError(players.SavePlayer(s.ctx, &playerRepo.SavePlayerInput{
		Player: &models.Player{ID: "p1", Name: "Player 1", CurrentGameID: "abandoned"},
	}))

	cfg := s.config(strings.NewReader("two\n"), game.Rules{})
	cfg.GameRepo = games
	cfg.PlayerRepo = players
	cfg.StaleAfter = 2 * time.Hour
	s.runConfig(cfg)

	active, err := games.GetActiveGames(s.ctx, &gameRepo.GetActiveGamesInput{})
	s.Require().NoError(err)
	s.Empty(active.Games)
	s.False(mr.Exists("pig:player:p1"))
}

func (s *SessionTestSuite) TestStaleSweepFailureDoesNotStopTheSession() {
	mockGameRepo := gameMocks.NewMockRepository(s.mockCtrl)
	mockGameRepo.EXPECT().GetActiveGames(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))

	cfg := s.config(strings.NewReader("1\n"), game.Rules{})
	cfg.GameRepo = mockGameRepo
	s.runConfig(cfg)

	s.Equal(messaging.PromptPlayerCount+"Number of players must be at least 2.\n", s.output.String())
	s.Contains(s.logMessages(), "failed to list active games")
}
