package telemetry

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a run's TickRecords.
type Summary struct {
	Ticks          int
	FinalParticles int

	CommittedMean float64
	CommittedStd  float64
	SwappedTotal  int
	BlockedTotal  int

	TickMicrosMean float64
	TickMicrosStd  float64
	TickMicrosMax  float64
}

// Summarize reduces records into a Summary. An empty slice yields the zero
// Summary.
func Summarize(records []TickRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	committed := make([]float64, len(records))
	micros := make([]float64, len(records))
	s := Summary{Ticks: len(records), FinalParticles: records[len(records)-1].Particles}
	for i, r := range records {
		committed[i] = float64(r.Committed)
		micros[i] = r.TickMicros
		s.SwappedTotal += r.Swapped
		s.BlockedTotal += r.Blocked
		s.TickMicrosMax = math.Max(s.TickMicrosMax, r.TickMicros)
	}
	s.CommittedMean, s.CommittedStd = meanStd(committed)
	s.TickMicrosMean, s.TickMicrosStd = meanStd(micros)
	return s
}

func meanStd(xs []float64) (float64, float64) {
	if len(xs) < 2 {
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("ticks", s.Ticks),
		slog.Int("particles", s.FinalParticles),
		slog.Float64("committed_mean", s.CommittedMean),
		slog.Float64("committed_std", s.CommittedStd),
		slog.Int("swapped", s.SwappedTotal),
		slog.Int("blocked", s.BlockedTotal),
		slog.Float64("tick_us_mean", s.TickMicrosMean),
		slog.Float64("tick_us_std", s.TickMicrosStd),
		slog.Float64("tick_us_max", s.TickMicrosMax),
	)
}
