package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusAccepted, StatusCancelled, true},
		{StatusRejected, StatusCancelled, true},
		{StatusAccepted, StatusRejected, false},
		{StatusRejected, StatusAccepted, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusAccepted, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusAccepted, StatusPending, false},
	}

	for _, tc := range cases {
		a := &Appointment{Status: tc.from}
		assert.Equal(t, tc.allowed, a.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestDecide_SetsDecidedAt(t *testing.T) {
	a := &Appointment{Status: StatusPending}
	require.NoError(t, a.Decide(StatusAccepted))
	assert.Equal(t, StatusAccepted, a.Status)
	assert.NotNil(t, a.DecidedAt)
}

func TestDecide_OnlyAcceptOrReject(t *testing.T) {
	a := &Appointment{Status: StatusPending}
	assert.ErrorIs(t, a.Decide(StatusCancelled), ErrInvalidStatus)
	assert.ErrorIs(t, a.Decide(StatusPending), ErrInvalidStatus)
	assert.ErrorIs(t, a.Decide(Status("bogus")), ErrInvalidStatus)
}

func TestCancel_FromEveryNonTerminalState(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusAccepted, StatusRejected} {
		a := &Appointment{Status: from}
		require.NoError(t, a.Cancel(), "cancel from %s", from)
		assert.Equal(t, StatusCancelled, a.Status)
		assert.NotNil(t, a.CancelledAt)
	}

	terminal := &Appointment{Status: StatusCancelled}
	assert.ErrorIs(t, terminal.Cancel(), ErrInvalidStatusTransition)
}

func TestSuggestSpecialist(t *testing.T) {
	assert.Equal(t, "Cardiologist", SuggestSpecialist("Chest Pain"))
	assert.Equal(t, "Dentist", SuggestSpecialist("Toothache"))
	assert.Equal(t, "General Physician", SuggestSpecialist("something unrecognized"))
}
