package display

// ViewKind tags which presentation a View carries.
type ViewKind int

const (
	// ViewFallback shows the placeholder primitive, optionally with a loading indicator.
	ViewFallback ViewKind = iota
	// ViewLoaded shows the loaded asset.
	ViewLoaded
	// ViewMessage replaces the 3D content with a message and a retry affordance.
	ViewMessage
)

func (k ViewKind) String() string {
	switch k {
	case ViewFallback:
		return "fallback"
	case ViewLoaded:
		return "loaded"
	case ViewMessage:
		return "message"
	default:
		return "unknown"
	}
}

// View is the presentation variant derived from a display state.
// Only the fields relevant to Kind are set.
type View struct {
	Kind ViewKind

	// Loading is set on ViewFallback while an asset is on its way.
	Loading bool

	// Message is the user-facing text of ViewMessage.
	Message string

	// Retry is set on ViewMessage when a remount may succeed.
	Retry bool
}

func viewFor(s State, message string) View {
	switch s {
	case StateReady:
		return View{Kind: ViewLoaded}
	case StateError:
		return View{Kind: ViewMessage, Message: message, Retry: true}
	default:
		return View{Kind: ViewFallback, Loading: true}
	}
}
