package rental

import "fmt"

// LocationRates holds the Poisson rates of one location.
type LocationRates struct {
	Rent   float64 `json:"rent"`
	Return float64 `json:"return"`
}

// Config defines the problem instance.
type Config struct {
	Capacity     int     `json:"capacity"`
	MaxMove      int     `json:"max_move"`
	RentalReward float64 `json:"rental_reward"`
	MoveCost     float64 `json:"move_cost"`
	// FreeShuttles is the number of cars moved from the first to the second
	// location at no cost when modified rewards are enabled.
	FreeShuttles int `json:"free_shuttles"`
	// StorageLimit is the overnight count above which StorageFee is charged
	// per location when modified rewards are enabled.
	StorageLimit int           `json:"storage_limit"`
	StorageFee   float64       `json:"storage_fee"`
	First        LocationRates `json:"first"`
	Second       LocationRates `json:"second"`
}

// DefaultConfig returns the reference instance: 20 cars per lot, 5 moves per
// night, rental rates 3 and 4, return rates 3 and 2.
func DefaultConfig() Config {
	return Config{
		Capacity:     20,
		MaxMove:      5,
		RentalReward: 10,
		MoveCost:     2,
		FreeShuttles: 1,
		StorageLimit: 10,
		StorageFee:   4,
		First:        LocationRates{Rent: 3, Return: 3},
		Second:       LocationRates{Rent: 4, Return: 2},
	}
}

// Validate checks the instance parameters.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.MaxMove < 0 {
		return fmt.Errorf("max_move must not be negative, got %d", c.MaxMove)
	}
	if c.FreeShuttles < 0 {
		return fmt.Errorf("free_shuttles must not be negative, got %d", c.FreeShuttles)
	}
	if c.StorageLimit < 0 {
		return fmt.Errorf("storage_limit must not be negative, got %d", c.StorageLimit)
	}
	for name, r := range map[string]LocationRates{"first": c.First, "second": c.Second} {
		if r.Rent <= 0 || r.Return <= 0 {
			return fmt.Errorf("%s location rates must be positive, got rent=%v return=%v", name, r.Rent, r.Return)
		}
	}
	return nil
}
