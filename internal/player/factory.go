package player

import (
	"github.com/KirkDiggler/pig/internal/common/uuid"
	"github.com/KirkDiggler/pig/internal/models"
)

// FactoryConfig holds configuration for the player factory
type FactoryConfig struct {
	// ScoreMode applied to every created player, live when empty
	ScoreMode ScoreMode

	// Computer policy thresholds, 100 and 25 when zero
	ComputerTarget    int
	ComputerThreshold int

	UUIDGenerator uuid.UUID
}

// Factory constructs players from a type tag
type Factory struct {
	mode     ScoreMode
	computer ComputerPolicy
	uuid     uuid.UUID
}

// NewFactory creates a new player factory
func NewFactory(cfg *FactoryConfig) (*Factory, error) {
	if cfg == nil {
		cfg = &FactoryConfig{}
	}

	mode := cfg.ScoreMode
	if mode == "" {
		mode = ScoreModeLive
	}
	if !mode.Valid() {
		return nil, ErrInvalidScoreMode
	}

	ids := cfg.UUIDGenerator
	if ids == nil {
		ids = uuid.New()
	}

	computer := ComputerPolicy{
		Target:    cfg.ComputerTarget,
		Threshold: cfg.ComputerThreshold,
	}
	if computer.Target == 0 {
		computer.Target = DefaultComputerTarget
	}
	if computer.Threshold == 0 {
		computer.Threshold = DefaultComputerThreshold
	}

	return &Factory{
		mode:     mode,
		computer: computer,
		uuid:     ids,
	}, nil
}

// Create returns a fresh player for the exact type tag "human" or "computer"
func (f *Factory) Create(playerType, name string) (*Player, error) {
	var policy Policy
	kind := models.PlayerType(playerType)
	switch kind {
	case models.PlayerTypeHuman:
		policy = HumanPolicy{}
	case models.PlayerTypeComputer:
		policy = f.computer
	default:
		return nil, ErrInvalidPlayerType
	}

	return &Player{
		id:     f.uuid.NewUUID(),
		name:   name,
		kind:   kind,
		mode:   f.mode,
		policy: policy,
	}, nil
}
