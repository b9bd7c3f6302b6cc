package orca

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.ClusterStaticAgents)
	assert.Equal(t, 2.0, cfg.TimeHorizon)
	assert.Equal(t, 1e-4, cfg.RelaxationStep)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero time horizon", func(c *Config) { c.TimeHorizon = 0 }, ErrInvalidTimeHorizon},
		{"negative time horizon", func(c *Config) { c.TimeHorizon = -1 }, ErrInvalidTimeHorizon},
		{"nan time horizon", func(c *Config) { c.TimeHorizon = math.NaN() }, ErrInvalidTimeHorizon},
		{"infinite time horizon", func(c *Config) { c.TimeHorizon = math.Inf(1) }, ErrInvalidTimeHorizon},
		{"negative static threshold", func(c *Config) { c.StaticSpeedThreshold = -1 }, ErrInvalidConfig},
		{"zero relaxation step", func(c *Config) { c.RelaxationStep = 0 }, ErrInvalidConfig},
		{"negative max relaxations", func(c *Config) { c.MaxRelaxations = -1 }, ErrInvalidConfig},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.target), "got %v", err)

			_, err = New(cfg)
			assert.True(t, errors.Is(err, tc.target))
		})
	}
}
