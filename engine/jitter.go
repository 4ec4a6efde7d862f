package engine

// Jitter adds a small tie-breaking offset to a static evaluation. It must be a
// pure function of its inputs: alpha-beta relies on a position scoring the
// same on every visit.
type Jitter interface {
	Offset(board Board, forPlayer PlayerColor) float64
}

type NoJitter struct{}

func (NoJitter) Offset(Board, PlayerColor) float64 {
	return 0
}

// PositionJitter derives a symmetric offset in [-Amplitude, Amplitude] from
// the position hash mixed with Seed. Different seeds give different but
// reproducible move preferences among equal positions.
type PositionJitter struct {
	Seed      uint64
	Amplitude float64
}

func NewPositionJitter(seed uint64, amplitude float64) PositionJitter {
	return PositionJitter{Seed: seed, Amplitude: amplitude}
}

func (j PositionJitter) Offset(board Board, forPlayer PlayerColor) float64 {
	if j.Amplitude == 0 {
		return 0
	}
	rng := splitmix64{state: PositionHash(board) ^ j.Seed ^ uint64(forPlayer+1)<<56}
	// 53 high bits give a uniform float in [0, 1).
	unit := float64(rng.next()>>11) / float64(uint64(1)<<53)
	return (2*unit - 1) * j.Amplitude
}
