package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLight_Defaults(t *testing.T) {
	l := NewLight(LightTypeAmbient)
	assert.Equal(t, LightTypeAmbient, l.Type())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
	assert.True(t, l.Enabled())
	assert.Equal(t, "ambient", l.Type().String())
}

func TestNewLight_Options(t *testing.T) {
	l := NewLight(LightTypePoint,
		WithPosition(mgl32.Vec3{10, 10, 10}),
		WithIntensity(0.6),
		WithColor(mgl32.Vec3{0.5, 0.5, 1}),
		WithDirection(mgl32.Vec3{0, 0, -4}),
	)

	s := l.Snapshot()
	assert.Equal(t, LightTypePoint, s.Type)
	assert.Equal(t, mgl32.Vec3{10, 10, 10}, s.Position)
	assert.Equal(t, float32(0.6), s.Intensity)
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, s.Direction)

	l.SetIntensity(0.1)
	assert.Equal(t, float32(0.6), s.Intensity)
	assert.Equal(t, float32(0.1), l.Intensity())
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#4F9BFF")
	require.NoError(t, err)
	assert.InDelta(t, 0x4F/255.0, c[0], 1e-6)
	assert.InDelta(t, 0x9B/255.0, c[1], 1e-6)
	assert.InDelta(t, 1.0, c[2], 1e-6)

	_, err = ParseHexColor("#12345")
	assert.Error(t, err)
	_, err = ParseHexColor("zzzzzz")
	assert.Error(t, err)
}
