package domain

// Visit count thresholds for discount tiers
const (
	tier5Visits  = 5
	tier10Visits = 10
	tier15Visits = 15
)

// LoyaltyStatus derived discount state for a guest.
// Не хранится: пересчитывается по истории визитов на каждом событии.
type LoyaltyStatus struct {
	DiscountPercent int
	VisitIndex      int  // Порядковый номер визита, включая только что созданный
	NextMilestone   *int // Скидка следующего уровня, если до неё остался один визит
}

// TierFor returns the discount percent for the given visit index
func TierFor(visitIndex int) int {
	switch {
	case visitIndex >= tier15Visits:
		return 15
	case visitIndex >= tier10Visits:
		return 10
	case visitIndex >= tier5Visits:
		return 5
	default:
		return 0
	}
}

// NextMilestone returns the upcoming discount percent when the guest is
// exactly one visit away from a higher tier
func NextMilestone(visitIndex int) (int, bool) {
	switch visitIndex {
	case tier5Visits - 1:
		return 5, true
	case tier10Visits - 1:
		return 10, true
	case tier15Visits - 1:
		return 15, true
	default:
		return 0, false
	}
}

// LoyaltyFor собирает статус лояльности по номеру визита
func LoyaltyFor(visitIndex int) LoyaltyStatus {
	status := LoyaltyStatus{
		DiscountPercent: TierFor(visitIndex),
		VisitIndex:      visitIndex,
	}
	if milestone, ok := NextMilestone(visitIndex); ok {
		status.NextMilestone = &milestone
	}
	return status
}
