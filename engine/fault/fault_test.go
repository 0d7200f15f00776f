package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(cause))
	assert.Equal(t, KindCapability, KindOf(&CapabilityError{}))
	assert.Equal(t, KindLoad, KindOf(&LoadError{Path: "a.glb", Err: cause}))
	assert.Equal(t, KindBind, KindOf(&BindError{Clip: "swim", Err: cause}))
	assert.Equal(t, KindRuntime, KindOf(fmt.Errorf("frame: %w", &RuntimeError{Source: "scheduler", Err: cause})))
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("boom")

	assert.ErrorIs(t, &LoadError{Path: "a.glb", Err: cause}, cause)
	assert.ErrorIs(t, &BindError{Clip: "swim", Err: cause}, cause)
	assert.ErrorIs(t, &RuntimeError{Source: "host", Err: cause}, cause)
	assert.ErrorIs(t, &CapabilityError{Err: cause}, cause)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, CapabilityMessage, Message(&CapabilityError{Err: errors.New("no adapter")}))
	assert.Equal(t, FallbackMessage, Message(nil))

	msg := Message(&LoadError{Path: "jellyfish.glb", Err: errors.New("unexpected EOF")})
	assert.Contains(t, msg, FallbackMessage)
	assert.Contains(t, msg, "unexpected EOF")
}

func TestFilter_Match(t *testing.T) {
	f := NewFilter(nil, "/assets/jellyfish.glb")

	assert.True(t, f.Match(errors.New("webgl context lost")))
	assert.True(t, f.Match(errors.New("WGPU: surface outdated")))
	assert.True(t, f.Match(errors.New("failed to decode Jellyfish mesh")))
	assert.True(t, f.Match(&RuntimeError{Source: "scheduler", Err: errors.New("anything")}))

	assert.False(t, f.Match(errors.New("unrelated widget crashed")))
	assert.False(t, f.Match(nil))
}

func TestFilter_EngineNameNotProse(t *testing.T) {
	f := NewFilter(nil, "jellyfish.glb")

	assert.False(t, f.Match(errors.New("upload failed after three attempts")))
	assert.False(t, f.Match(errors.New("Threema notification timed out")))
	assert.True(t, f.Match(errors.New("THREE.js: unsupported texture format")))
	assert.True(t, f.Match(errors.New("three.js r160 loader error")))
}

func TestFilter_CustomKeywords(t *testing.T) {
	f := NewFilter([]string{" Vulkan ", ""}, "")

	assert.Equal(t, []string{"vulkan"}, f.Keywords())
	assert.True(t, f.Match(errors.New("vulkan device lost")))
	assert.False(t, f.Match(errors.New("webgl context lost")))
}
