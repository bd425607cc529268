package models

// PlayerStats represents a player's standing in a game
type PlayerStats struct {
	// PlayerID is the unique identifier of the player
	PlayerID string

	// PlayerName is the display name of the player
	PlayerName string

	// Score is the player's total score
	Score int
}

// Leaderboard represents the current standings in a game
type Leaderboard struct {
	// GameID is the unique identifier for the game
	GameID string

	// PlayerStats contains statistics for each player in turn order
	PlayerStats []*PlayerStats
}

// Leaders returns every player tied at the highest score, in turn order
func (l *Leaderboard) Leaders() []*PlayerStats {
	if l == nil || len(l.PlayerStats) == 0 {
		return nil
	}

	best := l.PlayerStats[0].Score
	for _, stats := range l.PlayerStats[1:] {
		if stats.Score > best {
			best = stats.Score
		}
	}

	leaders := make([]*PlayerStats, 0, len(l.PlayerStats))
	for _, stats := range l.PlayerStats {
		if stats.Score == best {
			leaders = append(leaders, stats)
		}
	}
	return leaders
}
