package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"kaat/internal/domain"
)

// RuleFlags toggles the rule variants the engine supports.
type RuleFlags struct {
	// AllowDefaultTrump lets the auction winner re-select the suit that is
	// already the default trump.
	AllowDefaultTrump bool `json:"allow_default_trump"`
	// LateTrumpChange enables the call-ten caller's one-time trump override
	// before play begins.
	LateTrumpChange bool `json:"late_trump_change"`
}

// GameConfig is the table-level configuration loaded from the data folder.
type GameConfig struct {
	RoundsTotal  int    `json:"rounds_total"`
	DefaultTrump string `json:"default_trump"` // "C","D","H","S"

	// TurnTimeoutSeconds bounds how long a human seat may hold the open
	// phase-slot before its default legal action is applied. Zero disables
	// the timeout.
	TurnTimeoutSeconds int `json:"turn_timeout_seconds"`

	BotMinDelaySeconds      int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds      int `json:"bot_max_delay_seconds"`
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`

	Rules RuleFlags `json:"rules"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the built-in configuration used when no data file is
// present.
func Default() *GameConfig {
	return &GameConfig{
		RoundsTotal:             5,
		DefaultTrump:            "S",
		TurnTimeoutSeconds:      30,
		BotMinDelaySeconds:      1,
		BotMaxDelaySeconds:      3,
		BotAutoFillDelaySeconds: 5,
		Rules: RuleFlags{
			AllowDefaultTrump: true,
			LateTrumpChange:   true,
		},
	}
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := Default()
		if err := json.Unmarshal(data, c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, or the defaults when no
// file was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return Default()
	}
	return cfg
}

// DefaultTrumpSuit resolves the configured default trump, falling back to
// spades on an unrecognized value.
func (c *GameConfig) DefaultTrumpSuit() domain.Suit {
	switch c.DefaultTrump {
	case "C":
		return domain.Clubs
	case "D":
		return domain.Diamonds
	case "H":
		return domain.Hearts
	case "S":
		return domain.Spades
	default:
		return domain.Spades
	}
}
