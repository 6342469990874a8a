package solver

import "fmt"

// Config defines policy iteration settings.
type Config struct {
	Gamma     float64 `json:"gamma"`
	Epsilon   float64 `json:"epsilon"`
	MaxSweeps int     `json:"max_sweeps"`
	// Modified enables the free shuttle and overnight storage fee.
	Modified bool `json:"modified"`
	// Workers bounds the goroutines used per sweep. Zero means GOMAXPROCS.
	Workers int `json:"workers"`
}

// DefaultConfig returns the reference settings.
func DefaultConfig() Config {
	return Config{Gamma: 0.9, Epsilon: 0.1, MaxSweeps: 10000, Modified: true}
}

// Validate checks the settings.
func (c Config) Validate() error {
	if c.Gamma < 0 || c.Gamma >= 1 {
		return fmt.Errorf("gamma must be in [0,1), got %v", c.Gamma)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %v", c.Epsilon)
	}
	if c.MaxSweeps <= 0 {
		return fmt.Errorf("max_sweeps must be positive, got %d", c.MaxSweeps)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
