package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ufo "github.com/stronnag/kbd2ufo/pkg/ufo"
)

func TestValidateDefaults(t *testing.T) {
	saved := Config
	defer func() { Config = saved }()
	require.NoError(t, Validate())
}

func TestValidateRates(t *testing.T) {
	saved := Config
	defer func() { Config = saved }()

	Config.RateHz = 0
	assert.ErrorContains(t, Validate(), "rate-hz")
	Config = saved

	Config.KeepaliveHz = -1
	assert.ErrorContains(t, Validate(), "keepalive-hz")
	Config = saved

	Config.HoldMs = 0
	assert.ErrorContains(t, Validate(), "hold-ms")
}

func TestValidateCenters(t *testing.T) {
	saved := Config
	defer func() { Config = saved }()

	Config.C2Center = 256
	err := Validate()
	require.ErrorIs(t, err, ufo.ErrRange)
	assert.ErrorContains(t, err, "c2-center")
	Config = saved

	Config.ThrBase = -1
	err = Validate()
	require.ErrorIs(t, err, ufo.ErrRange)
	assert.ErrorContains(t, err, "thr-base")
}
