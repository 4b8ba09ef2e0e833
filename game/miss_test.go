package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissBudgetGrowsEveryNRounds(t *testing.T) {
	var b MissBudget
	b.Reset(2)

	granted := []bool{}
	for round := 0; round < 7; round++ {
		granted = append(granted, b.MaybeGrant(round))
	}
	assert.Equal(t, []bool{false, false, true, false, true, false, true}, granted)
	assert.Equal(t, 3, b.MaxMiss())
	assert.Equal(t, 6, b.lastRFM)
}

func TestMissBudgetDisabled(t *testing.T) {
	var b MissBudget
	b.Reset(0)
	for round := 0; round < MaxRound; round++ {
		assert.False(t, b.MaybeGrant(round))
	}
	assert.Equal(t, 0, b.MaxMiss())
}

func TestMissBudgetExceeded(t *testing.T) {
	var b MissBudget
	b.Reset(1)
	b.MaybeGrant(1)
	assert.False(t, b.RecordMiss())
	assert.True(t, b.RecordMiss())
	assert.Equal(t, 2, b.NbMiss())

	b.Reset(1)
	assert.Equal(t, 0, b.NbMiss())
	assert.Equal(t, 0, b.MaxMiss())
	assert.False(t, b.Exceeded())
}
