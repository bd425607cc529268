package player

// Decision is a turn command, spelled the way a player types it
type Decision string

const (
	// DecisionRoll rolls the die again
	DecisionRoll Decision = "r"

	// DecisionHold banks the turn total and ends the turn
	DecisionHold Decision = "h"
)

// Default thresholds for the computer policy
const (
	DefaultComputerTarget    = 100
	DefaultComputerThreshold = 25
)

// Policy decides between rolling and holding
type Policy interface {
	// Decide returns the advised decision and whether the policy gives advice at all
	Decide(score, turnTotal int) (Decision, bool)
}

// HumanPolicy gives no advice, decisions come from typed input
type HumanPolicy struct{}

// Decide implements Policy
func (HumanPolicy) Decide(score, turnTotal int) (Decision, bool) {
	return "", false
}

// ComputerPolicy keeps rolling until the turn total reaches Threshold or
// whatever is left to reach Target, whichever is smaller.
type ComputerPolicy struct {
	Target    int
	Threshold int
}

// Decide implements Policy
func (p ComputerPolicy) Decide(score, turnTotal int) (Decision, bool) {
	remaining := p.Target - score
	if turnTotal < min(p.Threshold, remaining) {
		return DecisionRoll, true
	}
	return DecisionHold, true
}
