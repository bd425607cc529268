package player

import (
	"github.com/KirkDiggler/pig/internal/dice"
	"github.com/KirkDiggler/pig/internal/models"
)

// ScoreMode controls when rolled points reach the score
type ScoreMode string

const (
	// ScoreModeLive adds every non-bust roll to the score immediately and
	// adds the turn total again on hold.
	ScoreModeLive ScoreMode = "live"

	// ScoreModeBanked only moves points to the score on hold.
	ScoreModeBanked ScoreMode = "banked"
)

// Valid reports whether the mode is known
func (m ScoreMode) Valid() bool {
	return m == ScoreModeLive || m == ScoreModeBanked
}

// Player holds the mutable per-player state of one game
type Player struct {
	id        string
	name      string
	kind      models.PlayerType
	score     int
	turnTotal int
	lastRoll  int
	mode      ScoreMode
	policy    Policy
}

func (p *Player) ID() string              { return p.id }
func (p *Player) Name() string            { return p.name }
func (p *Player) Type() models.PlayerType { return p.kind }
func (p *Player) Score() int              { return p.score }
func (p *Player) TurnTotal() int          { return p.turnTotal }

// IsComputer reports whether the player carries the computer policy
func (p *Player) IsComputer() bool {
	return p.kind == models.PlayerTypeComputer
}

// Roll draws one die. A 1 wipes the turn total and leaves the score alone;
// anything else is added to the turn total (and, in live mode, the score).
func (p *Player) Roll(roller dice.Roller) int {
	roll := roller.Roll(dice.Sides)
	p.lastRoll = roll

	if roll == 1 {
		p.turnTotal = 0
		return roll
	}

	p.turnTotal += roll
	if p.mode == ScoreModeLive {
		p.score += roll
	}
	return roll
}

// Hold banks the turn total and ends the turn
func (p *Player) Hold() {
	p.score += p.turnTotal
	p.turnTotal = 0
}

// Decide asks the player's policy for advice
func (p *Player) Decide() (Decision, bool) {
	return p.policy.Decide(p.score, p.turnTotal)
}

// Snapshot returns a copy of the player state for storage
func (p *Player) Snapshot() *models.Player {
	return &models.Player{
		ID:        p.id,
		Name:      p.name,
		Type:      p.kind,
		Score:     p.score,
		TurnTotal: p.turnTotal,
		LastRoll:  p.lastRoll,
	}
}
