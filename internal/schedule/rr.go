package schedule

import (
	"github.com/platelminto/basketball-scheduler-sub000/internal/config"
	"github.com/platelminto/basketball-scheduler-sub000/internal/roundrobin"
)

// GenerateRRPairings runs C2 once per level, producing the fixed
// round-robin rounds that SolveHalf and SolveMirror both draw from.
func GenerateRRPairings(cfg *config.Config) RRPairings {
	out := make(RRPairings, len(cfg.Levels))
	for _, lv := range cfg.Levels {
		out[lv.Name] = roundrobin.Generate(len(lv.Teams))
	}
	return out
}
