package profiler

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestProfiler_ReportsEachInterval(t *testing.T) {
	now := time.Unix(0, 0)
	var buf bytes.Buffer
	p := NewProfiler(
		WithClock(func() time.Time { return now }),
		WithLogger(zerolog.New(&buf)),
	)

	for i := 0; i < 29; i++ {
		now = now.Add(time.Second / 60)
		assert.False(t, p.Tick())
	}
	now = now.Add(time.Second / 2)
	assert.True(t, p.Tick())

	assert.InDelta(t, 30/(29.0/60+0.5), p.Last().FPS, 0.01)
	assert.Contains(t, buf.String(), `"component":"profiler"`)
	assert.Contains(t, buf.String(), `"fps"`)
	assert.Greater(t, p.Last().SysMB, 0.0)
}

func TestProfiler_IntervalOption(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithClock(func() time.Time { return now }), WithInterval(10*time.Millisecond), WithInterval(0))

	now = now.Add(10 * time.Millisecond)
	assert.True(t, p.Tick())
	assert.Equal(t, Stats{}, NewProfiler().Last())
}
