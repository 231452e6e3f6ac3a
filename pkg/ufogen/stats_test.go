package ufogen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ufo "github.com/stronnag/kbd2ufo/pkg/ufo"
)

func TestStatsSummary(t *testing.T) {
	neutral, err := ufo.BuildAnalog(0x80, 0x80, 0x00, 0x80, 0x00)
	require.NoError(t, err)
	fast, err := ufo.BuildAnalog(0x80, 0x80, 0x00, 0x80, 0x01)
	require.NoError(t, err)

	st := NewStats()
	t0 := time.Unix(2000, 0)
	st.Frame(fast, t0)
	st.Frame(neutral, t0.Add(50*time.Millisecond))
	st.Frame(neutral, t0.Add(100*time.Millisecond))
	st.Frame(ufo.Keepalive0101, t0.Add(100*time.Millisecond))
	st.Frame(neutral, t0.Add(150*time.Millisecond))

	m := st.Summary()
	assert.Equal(t, "3", m["Analog"])
	assert.Equal(t, "1", m["Takeoff"])
	assert.Equal(t, "1", m["Alive"])
	assert.Equal(t, "150ms", m["Elapsed"])
	assert.Contains(t, m["Gap"], "ms")
}

func TestStatsEmpty(t *testing.T) {
	m := NewStats().Summary()
	assert.Equal(t, "0", m["Analog"])
	assert.NotContains(t, m, "Alive")
	assert.NotContains(t, m, "Gap")
	assert.NotContains(t, m, "Elapsed")
}
