package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var errNotInitialized = errors.New("window is not initialized")

// glfwHost is the native window behind an engineWindow. The backdrop only needs a surface
// to draw into, a title for status messages and a few keys, so no client API is requested.
type glfwHost struct {
	owner  *engineWindow
	handle *glfw.Window
	open   bool
}

// newPlatformWindow opens the native window on the calling thread, which stays locked to it.
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("glfw create window: %w", err)
	}

	host := &glfwHost{owner: w, handle: handle, open: true}
	host.applySizeLimits()
	host.bindCallbacks()
	host.syncFramebufferSize()
	w.internalWindow = host
	return nil
}

func (h *glfwHost) applySizeLimits() {
	h.handle.SetSizeLimits(h.owner.minWidth, h.owner.minHeight, h.owner.maxWidth, h.owner.maxHeight)
}

// bindCallbacks routes key presses and framebuffer resizes to the owner's callbacks.
// Resizes are reported in pixels, which differ from screen coordinates on high-DPI displays.
func (h *glfwHost) bindCallbacks() {
	h.handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if routeKey(h.owner, key, action) {
			h.requestClose()
		}
	})
	h.handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		h.owner.setSize(width, height)
		if h.owner.onResize != nil {
			h.owner.onResize(width, height)
		}
	})
}

func (h *glfwHost) syncFramebufferSize() {
	h.owner.setSize(h.handle.GetFramebufferSize())
}

func (h *glfwHost) running() bool {
	return h.open && !h.handle.ShouldClose()
}

// requestClose is safe from any goroutine.
func (h *glfwHost) requestClose() {
	h.handle.SetShouldClose(true)
}

// destroy must run on the thread that opened the window. Later calls are no-ops.
func (h *glfwHost) destroy() {
	if !h.open {
		return
	}
	h.open = false
	h.handle.SetShouldClose(true)
	h.handle.Destroy()
	glfw.Terminate()
}

// routeKey hands a key event to the owner's callbacks. Escape closes the window when no
// key-down callback is installed.
//
// Returns:
//   - bool: true if the window should close
func routeKey(w *engineWindow, key glfw.Key, action glfw.Action) bool {
	switch action {
	case glfw.Press, glfw.Repeat:
		if w.onKeyDown == nil {
			return key == glfw.KeyEscape && action == glfw.Press
		}
		w.onKeyDown(uint32(key))
	case glfw.Release:
		if w.onKeyUp != nil {
			w.onKeyUp(uint32(key))
		}
	}
	return false
}

func hostOf(w *engineWindow) *glfwHost {
	h, _ := w.internalWindow.(*glfwHost)
	return h
}

func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	h := hostOf(w)
	if h == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(h.handle)
}

func platformIsRunningCheck(w *engineWindow) bool {
	h := hostOf(w)
	return h != nil && h.running()
}

func platformRequestClose(w *engineWindow) {
	if h := hostOf(w); h != nil {
		h.requestClose()
	}
}

func platformCloseWindow(w *engineWindow) error {
	h := hostOf(w)
	if h == nil {
		return errNotInitialized
	}
	h.destroy()
	return nil
}

// platformProcessMessages drains pending events without blocking.
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}

func platformSetTitle(w *engineWindow, title string) {
	if h := hostOf(w); h != nil {
		h.handle.SetTitle(title)
	}
}
