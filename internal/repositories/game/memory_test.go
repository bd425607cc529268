package game

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/pig/internal/models"
	"github.com/stretchr/testify/suite"
)

type MemoryRepositoryTestSuite struct {
	suite.Suite
	repo    Repository
	testNow time.Time
}

func (s *MemoryRepositoryTestSuite) SetupTest() {
	s.repo = NewMemory()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func TestMemoryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryRepositoryTestSuite))
}

func (s *MemoryRepositoryTestSuite) TestSaveGetDelete() {
	game := &models.Game{
		ID:           "test-game-id",
		Status:       models.GameStatusActive,
		PlayerIDs:    []string{"player-1", "player-2"},
		WinningScore: 140,
		CreatedAt:    s.testNow,
	}
	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: game}))

	// Mutating the caller's copy must not leak into the store
	game.PlayerIDs[0] = "changed"
	game.CurrentPlayer = 1

	retrieved, err := s.repo.GetGame(context.Background(), &GetGameInput{GameID: "test-game-id"})
	s.Require().NoError(err)
	s.Equal([]string{"player-1", "player-2"}, retrieved.PlayerIDs)
	s.Zero(retrieved.CurrentPlayer)

	active, err := s.repo.GetActiveGames(context.Background(), &GetActiveGamesInput{})
	s.Require().NoError(err)
	s.Len(active.Games, 1)

	s.Require().NoError(s.repo.DeleteGame(context.Background(), &DeleteGameInput{GameID: "test-game-id"}))

	_, err = s.repo.GetGame(context.Background(), &GetGameInput{GameID: "test-game-id"})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *MemoryRepositoryTestSuite) TestActiveGamesSkipsFinished() {
	s.Require().NoError(s.repo.SaveGame(context.Background(), &SaveGameInput{
		Game: &models.Game{ID: "done", Status: models.GameStatusCompleted},
	}))

	active, err := s.repo.GetActiveGames(context.Background(), &GetActiveGamesInput{})
	s.Require().NoError(err)
	s.Empty(active.Games)
}
