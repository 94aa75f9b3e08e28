package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentOverlaps(t *testing.T) {
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	appt := Appointment{
		StartTime: base,
		EndTime:   base.Add(30 * time.Minute),
	}

	assert.True(t, appt.Overlaps(base.Add(15*time.Minute), base.Add(45*time.Minute)))
	assert.True(t, appt.Overlaps(base.Add(-15*time.Minute), base.Add(15*time.Minute)))
	assert.True(t, appt.Overlaps(base, base.Add(30*time.Minute)))

	// Back-to-back slots do not overlap
	assert.False(t, appt.Overlaps(base.Add(30*time.Minute), base.Add(60*time.Minute)))
	assert.False(t, appt.Overlaps(base.Add(-30*time.Minute), base))
}
