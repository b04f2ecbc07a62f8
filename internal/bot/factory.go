package bot

import (
	"fmt"
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelEasy:
		return &EasyBot{}, nil
	case BotLevelStandard:
		return &StandardBot{Tuning: DefaultTuning}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// BrainForDifficulty maps an identity difficulty string to a brain, defaulting
// to the standard strategy.
func BrainForDifficulty(difficulty string) Brain {
	if difficulty == "easy" {
		return &EasyBot{}
	}
	return &StandardBot{Tuning: DefaultTuning}
}
