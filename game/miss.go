package game

// MissBudget counts the player's mistakes in a game against the number of
// mistakes currently tolerated. The tolerance grows by one every
// RoundsForMiss rounds; zero disables growth.
type MissBudget struct {
	RoundsForMiss int

	nbMiss  int
	maxMiss int
	lastRFM int
}

// Reset starts a new game with no tolerance and no misses
func (b *MissBudget) Reset(roundsForMiss int) {
	b.RoundsForMiss = roundsForMiss
	b.nbMiss = 0
	b.maxMiss = 0
	b.lastRFM = 0
}

// RecordMiss counts a mistake and reports whether the budget is now exceeded
func (b *MissBudget) RecordMiss() bool {
	b.nbMiss++
	return b.Exceeded()
}

// Exceeded reports whether more mistakes were made than tolerated
func (b *MissBudget) Exceeded() bool {
	return b.nbMiss > b.maxMiss
}

// MaybeGrant is called at the start of each round, before the round counter
// moves. It returns true when one more miss was granted.
func (b *MissBudget) MaybeGrant(round int) bool {
	if b.RoundsForMiss <= 0 {
		return false
	}
	if round-b.lastRFM < b.RoundsForMiss {
		return false
	}
	b.maxMiss++
	b.lastRFM = round
	return true
}

func (b *MissBudget) NbMiss() int  { return b.nbMiss }
func (b *MissBudget) MaxMiss() int { return b.maxMiss }
