package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePurchaseStatus(t *testing.T) {
	tests := []struct {
		name       string
		prescribed int
		inClinic   int
		external   int
		want       PurchaseStatus
	}{
		{"nothing fulfilled", 10, 0, 0, PurchaseNotPurchased},
		{"partial in clinic", 10, 4, 0, PurchasePartial},
		{"partial external", 10, 0, 4, PurchasePartial},
		{"partial mixed", 10, 3, 3, PurchasePartial},
		{"full in clinic", 10, 10, 0, PurchaseInClinic},
		{"full external", 10, 0, 10, PurchaseExternal},
		{"full mixed", 10, 6, 4, PurchaseComplete},
		{"over-fulfilled in clinic", 10, 12, 0, PurchaseInClinic},
		{"over-fulfilled mixed", 10, 8, 4, PurchaseComplete},
		{"negative totals clamp to not purchased", 10, -2, 0, PurchaseNotPurchased},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePurchaseStatus(tt.prescribed, tt.inClinic, tt.external)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPurchaseStatusIsTerminal(t *testing.T) {
	assert.False(t, PurchaseNotPurchased.IsTerminal())
	assert.False(t, PurchasePartial.IsTerminal())
	assert.True(t, PurchaseInClinic.IsTerminal())
	assert.True(t, PurchaseExternal.IsTerminal())
	assert.True(t, PurchaseComplete.IsTerminal())
}

// A sequence of sales must only ever move the status forward: once terminal,
// re-deriving from larger cumulative totals never returns to a live state.
func TestResolvePurchaseStatusMonotonic(t *testing.T) {
	prescribed := 10
	totals := [][2]int{{0, 0}, {3, 0}, {3, 4}, {6, 4}}

	terminalSeen := false
	for _, tot := range totals {
		status := ResolvePurchaseStatus(prescribed, tot[0], tot[1])
		if terminalSeen {
			assert.True(t, status.IsTerminal())
		}
		if status.IsTerminal() {
			terminalSeen = true
		}
	}
	assert.True(t, terminalSeen)
}
