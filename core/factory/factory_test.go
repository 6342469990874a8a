package factory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeter struct{ Name string }

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry[greeter]()
	require.NoError(t, r.Register("hello", func(conf map[string]any) (greeter, error) {
		var c struct {
			Name string `json:"name"`
		}
		if err := Decode(conf, &c); err != nil {
			return greeter{}, err
		}
		return greeter{Name: c.Name}, nil
	}))
	require.NoError(t, r.Register("broken", func(map[string]any) (greeter, error) {
		return greeter{}, errors.New("boom")
	}))

	g, err := r.Create(ModuleConfig{Type: "hello", Conf: map[string]any{"name": "lot"}})
	require.NoError(t, err)
	assert.Equal(t, "lot", g.Name)

	_, err = r.Create(ModuleConfig{Type: "broken"})
	assert.EqualError(t, err, "boom")

	_, err = r.Create(ModuleConfig{Type: "missing"})
	assert.ErrorContains(t, err, "unknown module type")
	assert.Equal(t, []string{"broken", "hello"}, r.Names())
}

func TestRegistryRejectsDuplicatesAndNil(t *testing.T) {
	r := NewRegistry[int]()
	assert.Error(t, r.Register("nil", nil))
	f := func(map[string]any) (int, error) { return 1, nil }
	require.NoError(t, r.Register("one", f))
	assert.Error(t, r.Register("one", f))
}

func TestDecodeWeaklyTyped(t *testing.T) {
	var c struct {
		Port    int  `json:"port"`
		Enabled bool `json:"enabled"`
	}
	require.NoError(t, Decode(map[string]any{"port": "9090", "enabled": "true"}, &c))
	assert.Equal(t, 9090, c.Port)
	assert.True(t, c.Enabled)
}
