package transcoder

import "github.com/wippyai/bincode/errors"

// depthGuard is the container budget of one encode or decode call.
// Every enter must be paired with a deferred leave.
type depthGuard struct {
	phase     errors.Phase
	limit     int
	remaining int
	limited   bool
}

func newDepthGuard(phase errors.Phase, o options) depthGuard {
	return depthGuard{
		phase:     phase,
		limit:     o.maxDepth,
		remaining: o.maxDepth,
		limited:   o.depthLimited,
	}
}

func (g *depthGuard) enter(path []string) error {
	if !g.limited {
		return nil
	}
	if g.remaining <= 0 {
		return errors.DepthExceeded(g.phase, path, g.limit)
	}
	g.remaining--
	return nil
}

func (g *depthGuard) leave() {
	if g.limited {
		g.remaining++
	}
}
