package game

import "time"

// DefaultSampleRate is used until the host reports its rate
const DefaultSampleRate = 48000.0

// Clock counts audio samples. Phase timing compares the samples elapsed since
// the last mark against thresholds precomputed from durations, so the whole
// schedule is exact and independent of wall time.
type Clock struct {
	rate float64
	now  uint64 // samples since creation
	mark uint64 // sample of the last phase transition
}

// NewClock returns a clock running at rate samples per second
func NewClock(rate float64) Clock {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return Clock{rate: rate}
}

// SetRate changes the sample rate; elapsed counts are kept
func (c *Clock) SetRate(rate float64) {
	if rate > 0 {
		c.rate = rate
	}
}

// Rate returns the sample rate
func (c *Clock) Rate() float64 { return c.rate }

// Tick advances the clock by one sample period
func (c *Clock) Tick() { c.now++ }

// Mark records the current sample as the reference for Due
func (c *Clock) Mark() { c.mark = c.now }

// Due reports whether at least threshold samples passed since the last Mark
func (c *Clock) Due(threshold uint64) bool {
	return c.now-c.mark >= threshold
}

// Samples converts a duration into a whole number of samples at the clock rate
func (c *Clock) Samples(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d.Seconds()*c.rate + 0.5)
}

// Now returns the elapsed time in seconds
func (c *Clock) Now() float64 { return float64(c.now) / c.rate }

// Elapsed returns the seconds since the last Mark
func (c *Clock) Elapsed() float64 { return float64(c.now-c.mark) / c.rate }
