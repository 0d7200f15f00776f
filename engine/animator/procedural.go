package animator

import (
	"math"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/model"
)

// Procedural is the motion applied when an asset has no playable clips:
// a constant spin about the vertical axis plus a slow vertical bob.
type Procedural struct {
	// RotationStep is the Y rotation added per tick, in radians.
	RotationStep float32

	// BobAmplitude is the peak vertical offset.
	BobAmplitude float32

	// BobFrequency is the angular frequency of the bob, in radians per second.
	BobFrequency float32
}

// DefaultProcedural returns the default idle motion.
func DefaultProcedural() Procedural {
	return Procedural{
		RotationStep: 0.001,
		BobAmplitude: 0.1,
		BobFrequency: 0.3,
	}
}

// Apply advances n by one tick. The rotation accumulates; the vertical offset is a pure
// function of elapsed so it never drifts.
//
// Parameters:
//   - n: the node to move
//   - elapsed: seconds since the scheduler started
func (p Procedural) Apply(n model.Node, elapsed float32) {
	if n == nil {
		return
	}
	n.RotateY(p.RotationStep)
	pos := n.Position()
	pos[1] = p.BobAmplitude * float32(math.Sin(float64(elapsed*p.BobFrequency)))
	n.SetPosition(pos)
}
