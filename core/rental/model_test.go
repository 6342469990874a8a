package rental

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/carrental/core/poisson"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(DefaultConfig(), poisson.NewCache())
	require.NoError(t, err)
	return m
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero capacity", func(c *Config) { c.Capacity = 0 }, false},
		{"negative move", func(c *Config) { c.MaxMove = -1 }, false},
		{"negative shuttles", func(c *Config) { c.FreeShuttles = -1 }, false},
		{"negative storage limit", func(c *Config) { c.StorageLimit = -2 }, false},
		{"zero rent rate", func(c *Config) { c.First.Rent = 0 }, false},
		{"negative return rate", func(c *Config) { c.Second.Return = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewModelRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = -3
	_, err := NewModel(cfg, nil)
	assert.Error(t, err)
}

func TestNewModelDefaultsCache(t *testing.T) {
	m, err := NewModel(DefaultConfig(), nil)
	require.NoError(t, err)
	assert.NotNil(t, m.Cache())
}

func TestStates(t *testing.T) {
	m := newTestModel(t)
	states := m.States()
	require.Len(t, states, 21*21)
	assert.Equal(t, State{0, 0}, states[0])
	assert.Equal(t, State{0, 20}, states[20])
	assert.Equal(t, State{20, 20}, states[len(states)-1])
	for _, s := range states {
		assert.True(t, m.Contains(s))
	}
	assert.False(t, m.Contains(State{21, 0}))
	assert.False(t, m.Contains(State{0, -1}))
}

func TestActionRange(t *testing.T) {
	m := newTestModel(t)
	tests := []struct {
		s      State
		lo, hi int
	}{
		{State{0, 0}, 0, 0},
		{State{3, 0}, 0, 3},
		{State{0, 2}, -2, 0},
		{State{20, 20}, -5, 5},
		{State{7, 4}, -4, 5},
	}
	for _, tt := range tests {
		lo, hi, err := m.ActionRange(tt.s)
		require.NoError(t, err)
		assert.Equal(t, tt.lo, lo, "lo for %s", tt.s)
		assert.Equal(t, tt.hi, hi, "hi for %s", tt.s)
	}

	_, _, err := m.ActionRange(State{21, 3})
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestValidateAction(t *testing.T) {
	m := newTestModel(t)
	assert.NoError(t, m.ValidateAction(State{5, 5}, 5))
	assert.NoError(t, m.ValidateAction(State{5, 5}, -5))
	assert.ErrorIs(t, m.ValidateAction(State{5, 5}, 6), ErrInvalidAction)
	assert.ErrorIs(t, m.ValidateAction(State{2, 0}, -1), ErrInvalidAction)
	assert.ErrorIs(t, m.ValidateAction(State{-1, 0}, 0), ErrInvalidState)
}

func TestAfterTransferCapsAtCapacity(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, State{15, 10}, m.AfterTransfer(State{20, 5}, 5))
	assert.Equal(t, State{20, 15}, m.AfterTransfer(State{18, 20}, -5))
	assert.Equal(t, State{4, 4}, m.AfterTransfer(State{4, 4}, 0))
}

// panicsWith runs fn and returns the error it panicked with.
func panicsWith(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		var ok bool
		err, ok = r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
	}()
	fn()
	return nil
}

func TestIndex(t *testing.T) {
	assert.Equal(t, 0, Index(State{}, 21))
	assert.Equal(t, 21, Index(State{First: 1, Second: 0}, 21))
	assert.Equal(t, 440, Index(State{First: 20, Second: 20}, 21))

	for _, s := range []State{{First: 0, Second: 21}, {First: 21, Second: 0}, {First: -1, Second: 3}, {First: 2, Second: -1}} {
		err := panicsWith(t, func() { Index(s, 21) })
		assert.True(t, errors.Is(err, ErrInvalidState), "state %s", s)
	}
}
