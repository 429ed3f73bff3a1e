package vrml

import "time"

// debugStats holds per-step timing metrics.
// Only populated when the scene is in debug mode.
type debugStats struct {
	tickTime  time.Duration
	tweenTime time.Duration
	eventTime time.Duration
	ticked    int
	tweens    int
}

// debugLog logs timing stats for one Step at debug level.
func (s *Scene) debugLog(now float64, stats debugStats) {
	if !s.opts.Debug {
		return
	}
	total := stats.tickTime + stats.tweenTime + stats.eventTime
	s.log.Debug("step",
		"now", now,
		"tick", stats.tickTime,
		"tween", stats.tweenTime,
		"events", stats.eventTime,
		"total", total,
		"ticked", stats.ticked,
		"tweens", stats.tweens,
		"routes", s.routeCount(),
	)
}

// debugCheckTreeDepth warns if the first-parent chain above n exceeds the
// threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	seen := map[*Node]bool{}
	for p := n; p != nil && !seen[p]; {
		seen[p] = true
		depth++
		if len(p.parents) == 0 {
			break
		}
		p = p.parents[0]
	}
	if depth > debugMaxTreeDepth {
		debugLogger().Warn("tree depth exceeds threshold", "node", n.String(), "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugCheckChildCount warns if a node references more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if c := len(n.Children()); c > debugMaxChildCount {
		debugLogger().Warn("child count exceeds threshold", "node", n.String(), "children", c, "threshold", debugMaxChildCount)
	}
}
