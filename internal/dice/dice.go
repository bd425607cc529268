package dice

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/pig/internal/dice Roller

import (
	"math/rand"
	"time"
)

// Sides is the number of faces on a Pig die
const Sides = 6

// Roller rolls a single die
type Roller interface {
	// Roll returns a uniformly random value in [1, sides]
	Roll(sides int) int
}

// Die provides dice rolling functionality backed by a seedable source
type Die struct {
	random *rand.Rand
}

// Config for dice roller
type Config struct {
	// Seed is used verbatim, zero included
	Seed int64
}

// New creates a new dice roller. A nil config seeds from the clock.
func New(cfg *Config) *Die {
	var seed int64
	if cfg != nil {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &Die{
		random: random,
	}
}

// Roll generates a random dice roll with the specified number of sides
func (d *Die) Roll(sides int) int {
	if sides < 1 {
		sides = Sides
	}
	return d.random.Intn(sides) + 1
}
