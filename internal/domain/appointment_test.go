package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{name: "scheduled to confirmed", from: StatusScheduled, to: StatusConfirmed, want: true},
		{name: "scheduled to cancelled", from: StatusScheduled, to: StatusCancelled, want: true},
		{name: "scheduled to no_show", from: StatusScheduled, to: StatusNoShow, want: true},
		{name: "scheduled skips checked_in", from: StatusScheduled, to: StatusCheckedIn, want: false},
		{name: "scheduled skips completed", from: StatusScheduled, to: StatusCompleted, want: false},
		{name: "confirmed to checked_in", from: StatusConfirmed, to: StatusCheckedIn, want: true},
		{name: "confirmed to no_show", from: StatusConfirmed, to: StatusNoShow, want: true},
		{name: "checked_in to in_progress", from: StatusCheckedIn, to: StatusInProgress, want: true},
		{name: "checked_in to no_show forbidden", from: StatusCheckedIn, to: StatusNoShow, want: false},
		{name: "in_progress to completed", from: StatusInProgress, to: StatusCompleted, want: true},
		{name: "in_progress to cancelled", from: StatusInProgress, to: StatusCancelled, want: true},
		{name: "completed is terminal", from: StatusCompleted, to: StatusCancelled, want: false},
		{name: "cancelled is terminal", from: StatusCancelled, to: StatusScheduled, want: false},
		{name: "no_show is terminal", from: StatusNoShow, to: StatusConfirmed, want: false},
		{name: "no backwards transition", from: StatusConfirmed, to: StatusScheduled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Appointment{Status: tt.from}
			assert.Equal(t, tt.want, a.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointment_IsActive(t *testing.T) {
	active := []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusCheckedIn, StatusInProgress}
	for _, s := range active {
		a := Appointment{Status: s}
		assert.True(t, a.IsActive(), string(s))
	}

	inactive := []AppointmentStatus{StatusCompleted, StatusCancelled, StatusNoShow}
	for _, s := range inactive {
		a := Appointment{Status: s}
		assert.False(t, a.IsActive(), string(s))
	}
}

func TestAppointment_CountsAsBooked(t *testing.T) {
	completed := Appointment{Status: StatusCompleted}
	assert.True(t, completed.CountsAsBooked())

	cancelled := Appointment{Status: StatusCancelled}
	assert.False(t, cancelled.CountsAsBooked())

	noShow := Appointment{Status: StatusNoShow}
	assert.False(t, noShow.CountsAsBooked())

	scheduled := Appointment{Status: StatusScheduled}
	assert.True(t, scheduled.CountsAsBooked())
}

func TestAppointment_CanBeCancelled(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusCheckedIn, StatusInProgress} {
		a := Appointment{Status: s}
		assert.True(t, a.CanBeCancelled(), string(s))
	}
	for _, s := range []AppointmentStatus{StatusCompleted, StatusCancelled, StatusNoShow} {
		a := Appointment{Status: s}
		assert.False(t, a.CanBeCancelled(), string(s))
	}
}

func TestAppointment_CanBeRescheduled(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusScheduled, StatusConfirmed} {
		a := Appointment{Status: s}
		assert.True(t, a.CanBeRescheduled(), string(s))
	}
	for _, s := range []AppointmentStatus{StatusCheckedIn, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow} {
		a := Appointment{Status: s}
		assert.False(t, a.CanBeRescheduled(), string(s))
	}
}
