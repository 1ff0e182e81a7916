package ornament

import (
	"log/slog"
	"time"
)

// debugEvery is the frame interval between debug stat lines.
const debugEvery = 60

// debugLog writes per-frame stats every debugEvery frames. Called with s.mu
// held, only in debug mode.
func (s *Scene) debugLog(step time.Duration) {
	if !s.debug || s.frames%debugEvery != 0 {
		return
	}
	attrs := make([]any, 0, 4+len(s.groups))
	attrs = append(attrs,
		slog.Uint64("frame", s.frames),
		slog.Duration("update", step),
		slog.String("state", s.mode.State().String()),
		slog.Float64("spin", s.engine.Spin()),
	)
	for _, g := range s.groups {
		attrs = append(attrs, slog.Float64(g.Name()+"_gap", g.MaxDistance()))
	}
	s.logger.Debug("frame", attrs...)
}
