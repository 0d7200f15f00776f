package probe

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuProbeContext holds the instance and adapter acquired by a WebGPU probe.
type wgpuProbeContext struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
}

func (c *wgpuProbeContext) Release() {
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
}

// wgpuContextFactory creates a surfaceless instance and asks it for any adapter.
type wgpuContextFactory struct {
	forceFallbackAdapter bool
}

func newWGPUContextFactory(forceFallbackAdapter bool) ContextFactory {
	return &wgpuContextFactory{forceFallbackAdapter: forceFallbackAdapter}
}

func (f *wgpuContextFactory) CreateProbeContext() (ProbeContext, error) {
	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return nil, fmt.Errorf("wgpu: failed to create instance")
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: f.forceFallbackAdapter,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("wgpu: failed to request adapter: %w", err)
	}
	if adapter == nil {
		instance.Release()
		return nil, fmt.Errorf("wgpu: no adapter available")
	}
	return &wgpuProbeContext{instance: instance, adapter: adapter}, nil
}
