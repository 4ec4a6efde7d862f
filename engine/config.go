package engine

import (
	"fmt"
	"time"
)

type HeuristicConfig struct {
	Five      float64 `json:"five"`
	OpenFour  float64 `json:"open_4"`
	Four      float64 `json:"four"`
	OpenThree float64 `json:"open_3"`
	Three     float64 `json:"three"`
	OpenTwo   float64 `json:"open_2"`
}

func DefaultHeuristics() HeuristicConfig {
	return HeuristicConfig{
		Five:      100000.0,
		OpenFour:  10000.0,
		Four:      5000.0,
		OpenThree: 1000.0,
		Three:     500.0,
		OpenTwo:   100.0,
	}
}

// Config carries everything needed to build a Searcher and run it.
type Config struct {
	MaxDepth        int             `json:"max_depth"`
	TimeLimitMs     int             `json:"time_limit_ms"`
	JitterSeed      uint64          `json:"jitter_seed"`
	JitterAmplitude float64         `json:"jitter_amplitude"`
	Heuristics      HeuristicConfig `json:"heuristics"`
}

func DefaultConfig() Config {
	return Config{
		MaxDepth:        5,
		TimeLimitMs:     9500,
		JitterSeed:      0,
		JitterAmplitude: 0.05,
		Heuristics:      DefaultHeuristics(),
	}
}

func (c Config) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitMs) * time.Millisecond
}

// Validate rejects configurations the search refuses to start with. A zero or
// negative time limit is allowed: the search then returns its fallback move.
func (c Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth %d", ErrInvalidDepth, c.MaxDepth)
	}
	if c.JitterAmplitude < 0 {
		return fmt.Errorf("jitter amplitude must not be negative, got %f", c.JitterAmplitude)
	}
	return nil
}

// NewEvaluatorFromConfig builds the evaluator described by the config.
func NewEvaluatorFromConfig(c Config) *Evaluator {
	var jitter Jitter = NoJitter{}
	if c.JitterAmplitude > 0 {
		jitter = NewPositionJitter(c.JitterSeed, c.JitterAmplitude)
	}
	return NewEvaluator(c.Heuristics, jitter)
}
