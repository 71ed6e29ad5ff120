package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sink struct {
	URL     string
	Enabled bool
}

type sinkConf struct {
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

func newSinkRegistry(t *testing.T) *Registry[*sink] {
	t.Helper()
	reg := NewRegistry[*sink]()
	require.NoError(t, reg.Register("influx", func(conf map[string]any) (*sink, error) {
		var c sinkConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sink{URL: c.URL, Enabled: c.Enabled}, nil
	}))
	return reg
}

func TestRegistryCreate(t *testing.T) {
	reg := newSinkRegistry(t)
	s, err := reg.Create(ModuleConfig{Type: "influx", Conf: map[string]any{"url": "http://db:8086", "enabled": true}})
	require.NoError(t, err)
	assert.Equal(t, "http://db:8086", s.URL)
	assert.True(t, s.Enabled)
}

func TestDecodeWeakTypes(t *testing.T) {
	var c sinkConf
	require.NoError(t, Decode(map[string]any{"enabled": "true"}, &c))
	assert.True(t, c.Enabled)
}

func TestRegistryErrors(t *testing.T) {
	reg := newSinkRegistry(t)
	require.ErrorIs(t, reg.Register("influx", func(map[string]any) (*sink, error) { return nil, nil }), ErrDuplicateModule)
	require.Error(t, reg.Register("nil", nil))

	_, err := reg.Create(ModuleConfig{Type: "kafka"})
	require.ErrorIs(t, err, ErrUnknownModule)
}

func TestRegistryNames(t *testing.T) {
	reg := newSinkRegistry(t)
	require.NoError(t, reg.Register("prometheus", func(map[string]any) (*sink, error) { return &sink{}, nil }))
	require.NoError(t, reg.Register("nop", func(map[string]any) (*sink, error) { return &sink{}, nil }))
	assert.Equal(t, []string{"influx", "nop", "prometheus"}, reg.Names())
}
