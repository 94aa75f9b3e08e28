package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPetAgeYears(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	p := Pet{}
	assert.Equal(t, -1, p.AgeYears(now), "unknown birthdate")

	born := time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)
	p.BirthDate = &born
	assert.Equal(t, 6, p.AgeYears(now), "birthday today")

	born = time.Date(2020, 6, 16, 0, 0, 0, 0, time.UTC)
	p.BirthDate = &born
	assert.Equal(t, 5, p.AgeYears(now), "birthday tomorrow")
}
