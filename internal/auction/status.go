package auction

import (
	"time"

	"github.com/movebid/moving-auction-service/internal/models"
)

// DeriveStatus computes the effective status of an announcement from its
// stored status and bidding window. Every reader goes through this so stored
// and derived status never silently diverge: an Active announcement whose
// window has closed reads as Expired even before the transition is persisted.
func DeriveStatus(stored models.AnnouncementStatus, biddingEnd, now time.Time) models.AnnouncementStatus {
	if stored == models.ActiveAnnouncement && Remaining(biddingEnd, now).Expired {
		return models.ExpiredAnnouncement
	}
	return stored
}

// allowedTransitions lists the legal status transitions. Completed is
// terminal; an Expired announcement may still be completed from bids already
// received, but never re-opened.
var allowedTransitions = map[models.AnnouncementStatus][]models.AnnouncementStatus{
	models.ActiveAnnouncement:    {models.ExpiredAnnouncement, models.CompletedAnnouncement},
	models.ExpiredAnnouncement:   {models.CompletedAnnouncement},
	models.CompletedAnnouncement: {},
}

// ValidTransition reports whether moving from one status to another is legal.
func ValidTransition(from, to models.AnnouncementStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanAcceptBid reports whether a new bid is admissible: only an effectively
// Active announcement with an open window accepts bids.
func CanAcceptBid(stored models.AnnouncementStatus, biddingEnd, now time.Time) bool {
	return DeriveStatus(stored, biddingEnd, now) == models.ActiveAnnouncement
}
