package telemetry

import (
	"log/slog"
	"time"

	"mad-sand/internal/sims/sand"
)

// TickRecord is one row of per-tick resolver telemetry.
type TickRecord struct {
	Tick        uint64  `csv:"tick"`
	Particles   int     `csv:"particles"`
	Sand        int     `csv:"sand"`
	Water       int     `csv:"water"`
	Stone       int     `csv:"stone"`
	Queued      int     `csv:"queued"`
	Invalidated int     `csv:"invalidated"`
	Stale       int     `csv:"stale"`
	Blocked     int     `csv:"blocked"`
	Committed   int     `csv:"committed"`
	Swapped     int     `csv:"swapped"`
	Shortened   int     `csv:"shortened"`
	TickMicros  float64 `csv:"tick_us"`
}

// Sample captures the world's state after a tick that took elapsed.
func Sample(w *sand.World, elapsed time.Duration) TickRecord {
	st := w.Stats()
	rec := TickRecord{
		Tick:        st.Tick,
		Queued:      st.Queued,
		Invalidated: st.Invalidated,
		Stale:       st.Stale,
		Blocked:     st.Blocked,
		Committed:   st.Committed,
		Swapped:     st.Swapped,
		Shortened:   st.Shortened,
		TickMicros:  float64(elapsed) / float64(time.Microsecond),
	}
	rec.Sand = w.CountOf(sand.Sand)
	rec.Water = w.CountOf(sand.Water)
	rec.Stone = w.CountOf(sand.Stone)
	rec.Particles = rec.Sand + rec.Water + rec.Stone
	return rec
}

// LogValue implements slog.LogValuer for structured logging.
func (r TickRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("tick", r.Tick),
		slog.Int("particles", r.Particles),
		slog.Int("queued", r.Queued),
		slog.Int("committed", r.Committed),
		slog.Int("swapped", r.Swapped),
		slog.Int("blocked", r.Blocked),
		slog.Float64("tick_us", r.TickMicros),
	)
}
