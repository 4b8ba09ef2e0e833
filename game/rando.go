package game

// RandoMax is the largest value Rando.Next returns
const RandoMax = 32767

// Rando is a small linear congruential generator. Each game owns its own so
// that a seed fully determines the drawn sequence.
type Rando struct {
	next uint64
}

// NewRando returns a generator seeded with seed
func NewRando(seed uint32) Rando {
	return Rando{next: uint64(seed)}
}

// Seed restarts the generator
func (r *Rando) Seed(seed uint32) {
	r.next = uint64(seed)
}

// Next returns a value in [0, RandoMax]
func (r *Rando) Next() uint32 {
	r.next = r.next*1103515245 + 12345
	return uint32(r.next/65536) % (RandoMax + 1)
}

// Intn returns a value in [0, n). n must be positive.
func (r *Rando) Intn(n int) int {
	return int(r.Next() % uint32(n))
}
