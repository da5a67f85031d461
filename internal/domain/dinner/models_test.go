//go:build unit
// +build unit

package dinner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMode_Attending(t *testing.T) {
	assert.True(t, ModeDineIn.Attending())
	assert.True(t, ModeDineInLate.Attending())
	assert.True(t, ModeTakeaway.Attending())
	assert.False(t, ModeNone.Attending())
	assert.False(t, Mode("").Attending())
}

func TestDinnerEvent_IsBookable(t *testing.T) {
	event := &DinnerEvent{State: StateScheduled}
	assert.True(t, event.IsBookable())
	event.State = StateAnnounced
	assert.True(t, event.IsBookable())
	event.State = StateCancelled
	assert.False(t, event.IsBookable())
	event.State = StateConsumed
	assert.False(t, event.IsBookable())
}

func TestMenuUpdate_Validate(t *testing.T) {
	update := &MenuUpdate{MenuTitle: "Lasagne", TotalCost: 120000}
	assert.NoError(t, update.Validate())

	update.MenuTitle = ""
	assert.Error(t, update.Validate())

	update.MenuTitle = "Lasagne"
	update.TotalCost = -1
	assert.Error(t, update.Validate())
}

func TestDinnerEventQuery_Validate(t *testing.T) {
	q := NewDinnerEventQuery()
	assert.NoError(t, q.Validate())

	q.From = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	q.To = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, q.Validate(), ErrInvertedRange)

	q = NewDinnerEventQuery()
	q.States = []string{"COOKING"}
	assert.Error(t, q.Validate())
}
