package engine

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/probe"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"

	"github.com/rs/zerolog"
)

// OpenRenderer creates a renderer of backendType, substituting the headless backend when the
// host has no usable rendering context. The headless renderer still drives frames for the
// window, so a mount on such a host lands in the capability error with Retry available.
//
// Parameters:
//   - p: checked before the GPU backend is created; nil skips the check
//   - backendType: the requested backend
//   - surface: the window providing the surface, or nil
//   - logger: receives a warning when the headless backend is substituted
//   - options: renderer options, applied to whichever backend is created
//
// Returns:
//   - renderer.Renderer: the renderer
//   - error: if neither the requested nor the headless backend could be created
func OpenRenderer(p probe.Probe, backendType renderer.RendererBackendType, surface renderer.Surface, logger zerolog.Logger, options ...renderer.RendererBuilderOption) (renderer.Renderer, error) {
	if backendType == renderer.BackendTypeHeadless {
		return renderer.NewRenderer(backendType, surface, options...)
	}

	if p != nil && !p.Probe() {
		logger.Warn().Err(p.Err()).Str("requested", backendType.String()).Msg("no rendering context, using headless renderer")
		return renderer.NewRenderer(renderer.BackendTypeHeadless, surface, options...)
	}

	r, err := renderer.NewRenderer(backendType, surface, options...)
	if err == nil {
		return r, nil
	}
	logger.Warn().Err(err).Str("requested", backendType.String()).Msg("renderer unavailable, using headless renderer")
	hr, headlessErr := renderer.NewRenderer(renderer.BackendTypeHeadless, surface, options...)
	if headlessErr != nil {
		return nil, errors.Join(err, headlessErr)
	}
	return hr, nil
}
