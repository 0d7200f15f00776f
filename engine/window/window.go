package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window defines the interface for the native window hosting the backdrop surface.
// Event callbacks run on the thread that calls ProcessMessages.
type Window interface {
	// SetUpdateCallback registers a function called once per message pump iteration.
	//
	// Parameters:
	//   - callback: the function to call after events are processed
	SetUpdateCallback(callback func())

	// SetResizeCallback registers a function called when the framebuffer size changes.
	//
	// Parameters:
	//   - callback: receives the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback registers a function called when a key is pressed or repeats.
	//
	// Parameters:
	//   - callback: receives the key code (see common.Key*)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback registers a function called when a key is released.
	//
	// Parameters:
	//   - callback: receives the key code (see common.Key*)
	SetKeyUpCallback(callback func(keyCode uint32))

	// Title returns the current window title.
	Title() string

	// SetTitle changes the window title. Safe to call from any goroutine; the native
	// title is updated on the next message pump iteration.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// SurfaceDescriptor returns the platform surface descriptor used to create a WebGPU surface.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is still open.
	IsRunning() bool

	// RequestClose asks the message pump to return. Safe to call from any goroutine.
	RequestClose()

	// Close destroys the native window. Must be called on the main thread; further calls are no-ops.
	//
	// Returns:
	//   - error: if the window was never initialized
	Close() error

	// ProcessMessages pumps native events until the window closes. Must be called on the main thread.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

type engineWindow struct {
	mu *sync.Mutex

	// Title of the window
	title string
	// titleDirty is set by SetTitle and cleared once the native title is updated
	titleDirty bool

	// Max/min size constraints of the window
	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// Current framebuffer size of the window
	width  int
	height int

	// Native window host (glfwHost)
	internalWindow any

	onUpdate  func()
	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)
	onKeyUp   func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow creates the native window with the options applied.
//
// Parameters:
//   - options: functional options configuring title and size
//
// Returns:
//   - Window: the created window
//   - error: if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		mu:        &sync.Mutex{},
		title:     "oxy-backdrop",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *engineWindow) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.title == title {
		return
	}
	w.title = title
	w.titleDirty = true
}

// pendingTitle returns the title to apply natively, if one changed since the last call.
func (w *engineWindow) pendingTitle() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.titleDirty {
		return "", false
	}
	w.titleDirty = false
	return w.title, true
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if title, ok := w.pendingTitle(); ok {
			platformSetTitle(w, title)
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

// setSize stores the framebuffer size reported by the platform.
func (w *engineWindow) setSize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width = width
	w.height = height
}
