package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor_Thresholds(t *testing.T) {
	tests := []struct {
		visitIndex int
		want       int
	}{
		{visitIndex: 1, want: 0},
		{visitIndex: 4, want: 0},
		{visitIndex: 5, want: 5},
		{visitIndex: 9, want: 5},
		{visitIndex: 10, want: 10},
		{visitIndex: 14, want: 10},
		{visitIndex: 15, want: 15},
		{visitIndex: 100, want: 15},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.visitIndex), "visitIndex=%d", tt.visitIndex)
	}
}

func TestTierFor_Monotonic(t *testing.T) {
	prev := 0
	for visitIndex := 1; visitIndex <= 30; visitIndex++ {
		tier := TierFor(visitIndex)
		assert.GreaterOrEqual(t, tier, prev, "tier dropped at visitIndex=%d", visitIndex)
		prev = tier
	}
}

func TestNextMilestone_OneVisitAway(t *testing.T) {
	milestone, ok := NextMilestone(4)
	require.True(t, ok)
	assert.Equal(t, 5, milestone)

	milestone, ok = NextMilestone(9)
	require.True(t, ok)
	assert.Equal(t, 10, milestone)

	milestone, ok = NextMilestone(14)
	require.True(t, ok)
	assert.Equal(t, 15, milestone)
}

func TestNextMilestone_NoneOtherwise(t *testing.T) {
	for _, visitIndex := range []int{1, 2, 3, 5, 8, 10, 15, 20} {
		_, ok := NextMilestone(visitIndex)
		assert.False(t, ok, "visitIndex=%d", visitIndex)
	}
}

func TestLoyaltyFor_FirstVisit(t *testing.T) {
	status := LoyaltyFor(1)

	assert.Equal(t, 0, status.DiscountPercent)
	assert.Equal(t, 1, status.VisitIndex)
	assert.Nil(t, status.NextMilestone)
}

func TestLoyaltyFor_ApproachingMilestone(t *testing.T) {
	status := LoyaltyFor(9)

	assert.Equal(t, 5, status.DiscountPercent)
	require.NotNil(t, status.NextMilestone)
	assert.Equal(t, 10, *status.NextMilestone)
}
