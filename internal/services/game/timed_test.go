package game

import (
	"context"
	"strings"
	"time"

	"github.com/KirkDiggler/pig/internal/models"
	"github.com/KirkDiggler/pig/internal/services/messaging"
)

func (s *GameServiceTestSuite) newTimedGame(timed bool, types ...string) *TimedGame {
	t, err := NewTimed(&TimedConfig{
		Game:      s.config(s.players(types...)),
		Timed:     timed,
		TimeLimit: time.Minute,
	})
	s.Require().NoError(err)
	return t
}

// rollAfter makes the next roll return value once d has passed
func (s *GameServiceTestSuite) rollAfter(d time.Duration, value int) {
	s.mockDiceRoller.EXPECT().Roll(6).DoAndReturn(func(sides int) int {
		s.now = s.now.Add(d)
		return value
	})
}

func (s *GameServiceTestSuite) TestNewTimedValidation() {
	_, err := NewTimed(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewTimed(&TimedConfig{})
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewTimed(&TimedConfig{Game: s.config(s.players("human"))})
	s.ErrorIs(err, ErrNotEnoughPlayers)

	t, err := NewTimed(&TimedConfig{Game: s.config(s.players("human", "human")), Timed: true})
	s.Require().NoError(err)
	s.Equal(DefaultTimeLimit, t.timeLimit)
}

func (s *GameServiceTestSuite) TestTimeUpNamesTheLeader() {
	t := s.newTimedGame(true, "human", "human")
	s.rollAfter(61*time.Second, 5)
	s.script("r", "h", "no")

	out, err := t.Play(s.ctx)
	s.Require().NoError(err)

	s.Equal(OutcomeQuit, out.Outcome)
	s.Equal(models.GameStatusTimedOut, out.Status)
	s.Equal([]string{"Player 1"}, out.Winners)
	s.Equal(s.testGameID, out.GameID)

	s.True(strings.HasSuffix(s.output.String(),
		"Player 1 held. Turn total: 0, Total score: 10\n\nTime is up! Player(s) Player 1 wins!\nGoodbye!\n"))
	s.Equal(messaging.PromptPlayAgain, s.prompter.prompts[len(s.prompter.prompts)-1])

	// The turn never passed to Player 2
	s.NotContains(s.output.String(), "Player 2's turn")
}

func (s *GameServiceTestSuite) TestTimeUpTieAndReplay() {
	t := s.newTimedGame(true, "human", "human", "human")
	s.rollAfter(0, 4)
	s.rollAfter(0, 4)
	s.rollAfter(time.Minute, 1)
	s.script("r", "h", "r", "h", "r", "YES")

	out, err := t.Play(s.ctx)
	s.Require().NoError(err)

	// Player 1 and 2 both hold 8, Player 3 busted at the limit
	s.Equal(OutcomeReplay, out.Outcome)
	s.Equal(models.GameStatusTimedOut, out.Status)
	s.Equal([]string{"Player 1", "Player 2"}, out.Winners)
	s.Len(out.WinnerIDs, 2)
	s.Contains(s.output.String(), "\nTime is up! Player(s) Player 1, Player 2 wins!\n")
	s.NotContains(s.output.String(), "Goodbye!")
}

func (s *GameServiceTestSuite) TestTimeNotUpKeepsPlaying() {
	t := s.newTimedGame(true, "human", "human")
	s.rollAfter(59*time.Second, 3)
	s.script("r", "h", "q")

	out, err := t.Play(s.ctx)
	s.Require().NoError(err)

	s.Equal(OutcomeQuit, out.Outcome)
	s.Equal(models.GameStatusQuit, out.Status)
	s.Contains(s.output.String(), "Player 2's turn")
	s.NotContains(s.output.String(), "Time is up!")
}

func (s *GameServiceTestSuite) TestUntimedIgnoresTheClock() {
	t := s.newTimedGame(false, "human", "human")
	s.rollAfter(time.Hour, 3)
	s.script("r", "h", "q")

	out, err := t.Play(s.ctx)
	s.Require().NoError(err)

	s.Equal(OutcomeQuit, out.Outcome)
	s.NotContains(s.output.String(), "Time is up!")
}

func (s *GameServiceTestSuite) TestTimeIsOnlyCheckedAtTheSwitch() {
	t := s.newTimedGame(true, "human", "human")

	// Time runs out on the first roll but the turn carries on until the hold
	s.rollAfter(2*time.Minute, 6)
	s.rollAfter(0, 6)
	s.script("r", "r", "h", "no")

	out, err := t.Play(s.ctx)
	s.Require().NoError(err)

	s.Equal(models.GameStatusTimedOut, out.Status)
	s.Equal(24, t.Game().Players()[0].Score())
	s.Equal(2, strings.Count(s.output.String(), "Rolled a 6"))
}

func (s *GameServiceTestSuite) TestStartTimeIsSetOnce() {
	t := s.newTimedGame(true, "human", "human")
	s.True(t.StartTime().IsZero())

	s.script("q")
	_, err := t.Play(s.ctx)
	s.Require().NoError(err)
	s.Equal(s.testTime, t.StartTime())

	s.now = s.now.Add(time.Hour)
	s.script("q")
	_, err = t.Play(s.ctx)
	s.Require().NoError(err)
	s.Equal(s.testTime, t.StartTime())
}

func (s *GameServiceTestSuite) TestTimeCheckRunsOnTheSwitchPath() {
	t := s.newTimedGame(true, "human", "human")
	t.startTime = s.now

	out, err := t.Game().advance(s.ctx)
	s.Require().NoError(err)
	s.Nil(out)
	s.Equal("Player 2", t.Game().CurrentPlayer().Name())

	s.now = s.now.Add(time.Minute)
	s.script("no")

	out, err = t.Game().advance(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(out)
	s.Equal(OutcomeQuit, out.Outcome)
	s.Equal([]string{"Player 1", "Player 2"}, out.Winners)

	// The turn does not pass once time is up
	s.Equal("Player 2", t.Game().CurrentPlayer().Name())
}

func (s *GameServiceTestSuite) TestBeforeSwitchChainsToConfiguredCheck() {
	var calls int
	cfg := s.config(s.players("human", "human"))
	cfg.Rules.BeforeSwitch = func(ctx context.Context) (*PlayOutput, error) {
		calls++
		return nil, nil
	}

	t, err := NewTimed(&TimedConfig{Game: cfg, Timed: true, TimeLimit: time.Minute})
	s.Require().NoError(err)

	s.script("h", "h", "q")
	_, err = t.Play(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, calls)
}

func (s *GameServiceTestSuite) TestReplayPromptErrorIsReturned() {
	t := s.newTimedGame(true, "human", "human")
	s.rollAfter(time.Minute, 2)
	s.script("r", "h")

	_, err := t.Play(s.ctx)
	s.Error(err)
	s.Contains(err.Error(), "replay answer")
}
