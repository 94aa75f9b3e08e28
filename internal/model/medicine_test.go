package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMedicineIsLowStock(t *testing.T) {
	m := Medicine{CurrentStock: 5, MinimumStock: 10}
	assert.True(t, m.IsLowStock())

	m = Medicine{CurrentStock: 10, MinimumStock: 10}
	assert.True(t, m.IsLowStock(), "at the threshold counts as low")

	m = Medicine{CurrentStock: 11, MinimumStock: 10}
	assert.False(t, m.IsLowStock())
}

func TestMedicineExpiration(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	m := Medicine{}
	assert.False(t, m.IsExpiringSoon(now, 30), "no expiration date set")
	assert.False(t, m.IsExpired(now))

	in10 := now.AddDate(0, 0, 10)
	m.ExpirationDate = &in10
	assert.True(t, m.IsExpiringSoon(now, 30))
	assert.False(t, m.IsExpired(now))

	in60 := now.AddDate(0, 0, 60)
	m.ExpirationDate = &in60
	assert.False(t, m.IsExpiringSoon(now, 30))

	past := now.AddDate(0, 0, -1)
	m.ExpirationDate = &past
	assert.False(t, m.IsExpiringSoon(now, 30), "already expired is not expiring soon")
	assert.True(t, m.IsExpired(now))
}
