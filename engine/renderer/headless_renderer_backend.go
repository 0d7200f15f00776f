package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene"
)

// headlessRendererBackendImpl records frames instead of drawing them.
type headlessRendererBackendImpl struct {
	mu          sync.Mutex
	width       int
	height      int
	presentMode PresentMode
	frames      uint64
	last        scene.Frame
}

var _ RendererBackend = &headlessRendererBackendImpl{}

func newHeadlessRendererBackend() *headlessRendererBackendImpl {
	return &headlessRendererBackendImpl{}
}

func (b *headlessRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
	return nil
}

func (b *headlessRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *headlessRendererBackendImpl) DrawFrame(f scene.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames++
	b.last = f
	return nil
}

func (b *headlessRendererBackendImpl) Release() {}

// Drawn returns the number of frames drawn and the most recent one.
func (b *headlessRendererBackendImpl) Drawn() (uint64, scene.Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames, b.last
}
