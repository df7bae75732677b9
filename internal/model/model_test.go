package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cecepns/trailrun/internal/model"
)

func TestEventCapacity(t *testing.T) {
	e := model.Event{MaxParticipants: 3}

	assert.False(t, e.IsFull())
	assert.Equal(t, 3, e.RemainingSlots())

	e.RegisteredCount = 2
	assert.False(t, e.IsFull())
	assert.Equal(t, 1, e.RemainingSlots())

	e.RegisteredCount = 3
	assert.True(t, e.IsFull())
	assert.Equal(t, 0, e.RemainingSlots())
}

func TestRemainingSlotsNeverNegative(t *testing.T) {
	// an admin can confirm past capacity; the public view clamps at zero
	e := model.Event{MaxParticipants: 2, RegisteredCount: 5}

	assert.True(t, e.IsFull())
	assert.Equal(t, 0, e.RemainingSlots())
}

func TestEventCapacityShrunkBelowConfirmed(t *testing.T) {
	// capacity edits never touch existing registrations
	e := model.Event{MaxParticipants: 1, RegisteredCount: 4}

	assert.True(t, e.IsFull())
	assert.Equal(t, 0, e.RemainingSlots())
}
