package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNew_NoopMeter(t *testing.T) {
	i, err := New(noop.Meter{})
	require.NoError(t, err)
	require.NotNil(t, i)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		i.LoadRequested(ctx, "jellyfish.glb")
		i.CacheHit(ctx, "jellyfish.glb")
		i.Fetched(ctx, "jellyfish.glb")
		i.LoadFailed(ctx, "jellyfish.glb")
		i.Invalidated(ctx, "jellyfish.glb")
		i.Transitioned(ctx, "loading", "ready")
		i.HostError(ctx, true)
	})
}

func TestNilInstruments(t *testing.T) {
	var i *Instruments
	assert.NotPanics(t, func() {
		i.LoadRequested(context.Background(), "x")
		i.HostError(context.Background(), false)
	})
}

func TestDefault(t *testing.T) {
	assert.NotNil(t, Default())
}
