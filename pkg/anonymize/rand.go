package anonymize

import mrand "math/rand/v2"

// Source supplies the randomness behind every replacement rule.
// Tests inject a deterministic implementation to assert exact outputs.
type Source interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

type mathSource struct{}

func (mathSource) IntN(n int) int { return mrand.IntN(n) }

// NewSource returns the default math/rand based source.
func NewSource() Source { return mathSource{} }
