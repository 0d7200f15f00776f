package window

import (
	"sync"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func newTestWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{mu: &sync.Mutex{}, title: "oxy-backdrop", width: 1280, height: 720}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func TestWindow_TitleIsQueued(t *testing.T) {
	w := newTestWindow(WithTitle("backdrop"))

	_, ok := w.pendingTitle()
	assert.False(t, ok)

	w.SetTitle("Unable to load 3D scene.")
	assert.Equal(t, "Unable to load 3D scene.", w.Title())
	title, ok := w.pendingTitle()
	assert.True(t, ok)
	assert.Equal(t, "Unable to load 3D scene.", title)

	_, ok = w.pendingTitle()
	assert.False(t, ok)

	w.SetTitle("Unable to load 3D scene.")
	_, ok = w.pendingTitle()
	assert.False(t, ok)
}

func TestWindow_SizeOptions(t *testing.T) {
	w := newTestWindow(WithSize(800, 0))
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 720, w.Height())

	w.setSize(640, 480)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
}

func TestWindow_UninitializedPlatform(t *testing.T) {
	w := newTestWindow()
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
}

func TestWindow_RouteKey(t *testing.T) {
	w := newTestWindow()
	assert.True(t, routeKey(w, glfw.KeyEscape, glfw.Press))
	assert.False(t, routeKey(w, glfw.KeyEscape, glfw.Repeat))
	assert.False(t, routeKey(w, glfw.KeyR, glfw.Press))

	var down, up []uint32
	w.SetKeyDownCallback(func(k uint32) { down = append(down, k) })
	w.SetKeyUpCallback(func(k uint32) { up = append(up, k) })

	assert.False(t, routeKey(w, glfw.KeyEscape, glfw.Press))
	assert.False(t, routeKey(w, glfw.KeyR, glfw.Repeat))
	assert.False(t, routeKey(w, glfw.KeyR, glfw.Release))
	assert.Equal(t, []uint32{uint32(glfw.KeyEscape), uint32(glfw.KeyR)}, down)
	assert.Equal(t, []uint32{uint32(glfw.KeyR)}, up)
}
