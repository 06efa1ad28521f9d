package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/movebid/moving-auction-service/internal/auction"
	"github.com/movebid/moving-auction-service/internal/models"
	"github.com/movebid/moving-auction-service/internal/notify"
	"github.com/movebid/moving-auction-service/internal/repository"
	"github.com/movebid/moving-auction-service/internal/utils"
)

// SummaryCache is the consumer-side port for the bid summary cache.
type SummaryCache interface {
	Get(ctx context.Context, announcementID string) (*auction.Summary, bool, error)
	Set(ctx context.Context, announcementID string, summary auction.Summary) error
	Invalidate(ctx context.Context, announcementID string) error
}

type AnnouncementService struct {
	Repo     repository.AnnouncementRepository
	Bids     repository.BidRepository
	Notifier notify.Notifier
	Cache    SummaryCache
	Logger   *log.Logger
	now      func() time.Time
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(repo repository.AnnouncementRepository, bids repository.BidRepository, notifier notify.Notifier, cache SummaryCache, logger *log.Logger) *AnnouncementService {
	return &AnnouncementService{
		Repo:     repo,
		Bids:     bids,
		Notifier: notifier,
		Cache:    cache,
		Logger:   logger,
		now:      time.Now,
	}
}

// publish sends a notification event. A publish failure is logged and
// swallowed: the state change that triggered it has already succeeded and is
// never rolled back for a notification problem.
func (s *AnnouncementService) publish(ctx context.Context, event notify.Event) {
	if err := s.Notifier.Publish(ctx, event); err != nil {
		s.Logger.Printf("failed to publish %s event for announcement %s: %v", event.Type, event.AnnouncementID, err)
	}
}

// CreateAnnouncement validates and stores a customer submission and emits the
// booking confirmation event. The bidding window opens at creation time.
func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, req models.AnnouncementRequest, locale string) (*models.Announcement, error) {
	if req.FromCity == "" || req.ToCity == "" || req.ApartmentSize == "" || req.ContactEmail == "" {
		return nil, models.NewValidationError("missing required fields: fromCity, toCity, apartmentSize and contactEmail")
	}
	if !req.BiddingEnd.After(s.now()) {
		return nil, models.NewValidationError("biddingEnd must be in the future")
	}

	announcement, err := s.Repo.CreateAnnouncement(ctx, req)
	if err != nil {
		s.Logger.Printf("failed to create announcement: %v", err)
		return nil, models.NewDependencyFailure("announcement store unavailable")
	}

	s.publish(ctx, notify.NewEvent(notify.EventBookingConfirmation,
		announcement.ID, announcement.FromCity, announcement.ToCity, announcement.ContactEmail, locale))

	return announcement, nil
}

// buildView assembles the read model: derived status and the time-remaining
// label, re-evaluated on every read.
func (s *AnnouncementService) buildView(announcement models.Announcement) models.AnnouncementView {
	now := s.now()
	return models.AnnouncementView{
		Announcement:    announcement,
		EffectiveStatus: auction.DeriveStatus(announcement.Status, announcement.BiddingEnd, now),
		TimeRemaining:   auction.Remaining(announcement.BiddingEnd, now).Label(),
	}
}

// persistDerivedExpiry writes back a lazily derived Active -> Expired
// transition. Best effort: the derived status is already what readers see.
func (s *AnnouncementService) persistDerivedExpiry(ctx context.Context, announcement models.Announcement, effective models.AnnouncementStatus) {
	if effective != announcement.Status && auction.ValidTransition(announcement.Status, effective) {
		if err := s.Repo.UpdateStatus(ctx, announcement.ID, models.ExpiredAnnouncement); err != nil {
			s.Logger.Printf("failed to persist expiry for announcement %s: %v", announcement.ID, err)
		}
	}
}

// GetAnnouncements returns a page of announcement views.
func (s *AnnouncementService) GetAnnouncements(ctx context.Context, limitStr, offsetStr string, fromCities, toCities []string) ([]models.AnnouncementView, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	announcements, err := s.Repo.GetAnnouncements(ctx, limit, offset, fromCities, toCities)
	if err != nil {
		s.Logger.Printf("failed to fetch announcements: %v", err)
		return nil, models.NewDependencyFailure("announcement store unavailable")
	}

	views := make([]models.AnnouncementView, 0, len(announcements))
	for _, a := range announcements {
		view := s.buildView(a)
		s.persistDerivedExpiry(ctx, a, view.EffectiveStatus)
		views = append(views, view)
	}
	return views, nil
}

// GetAnnouncement returns one announcement view including bid statistics and
// the presumptive winner. A confirmed winner always takes precedence over the
// presumptive one.
func (s *AnnouncementService) GetAnnouncement(ctx context.Context, id string) (*models.AnnouncementView, error) {
	announcement, err := s.Repo.GetAnnouncementByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewInvalidReference("announcement not found")
		}
		s.Logger.Printf("failed to fetch announcement %s: %v", id, err)
		return nil, models.NewDependencyFailure("announcement store unavailable")
	}

	view := s.buildView(*announcement)
	s.persistDerivedExpiry(ctx, *announcement, view.EffectiveStatus)

	bids, err := s.Bids.GetAnnouncementBids(ctx, id)
	if err != nil {
		s.Logger.Printf("failed to fetch bids for announcement %s: %v", id, err)
		return nil, models.NewDependencyFailure("bid store unavailable")
	}

	view.BidCount = len(bids)
	summary := auction.Summarize(bids)
	view.LowestPrice = summary.LowestPrice

	if announcement.WinningBidID != nil {
		view.PresumptiveBidID = announcement.WinningBidID
	} else if winner := auction.PresumptiveWinner(bids); winner != nil {
		view.PresumptiveBidID = &winner.ID
	}
	return &view, nil
}

// ConfirmWinner assigns a winning bid and completes the announcement. An
// Expired announcement may still be completed from bids already received.
// Confirming the same winner again is a no-op; the winner-determined event
// fires at most once.
func (s *AnnouncementService) ConfirmWinner(ctx context.Context, announcementID, bidID, locale string) (*models.Announcement, error) {
	if announcementID == "" || bidID == "" {
		return nil, models.NewValidationError("missing required parameters: announcementId or bidId")
	}

	announcement, err := s.Repo.GetAnnouncementByID(ctx, announcementID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewInvalidReference("announcement not found")
		}
		s.Logger.Printf("failed to fetch announcement %s: %v", announcementID, err)
		return nil, models.NewDependencyFailure("announcement store unavailable")
	}

	bid, err := s.Bids.GetBidByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewInvalidReference("bid not found")
		}
		s.Logger.Printf("failed to fetch bid %s: %v", bidID, err)
		return nil, models.NewDependencyFailure("bid store unavailable")
	}
	if bid.AnnouncementID != announcementID {
		return nil, models.NewInvalidReference("bid does not belong to this announcement")
	}

	if announcement.WinningBidID != nil && *announcement.WinningBidID == bidID {
		return announcement, nil
	}
	if !auction.ValidTransition(announcement.Status, models.CompletedAnnouncement) {
		return nil, models.NewConflict("a different winner has already been confirmed")
	}

	updated, err := s.Repo.SetWinner(ctx, announcementID, bidID)
	if err != nil {
		if errors.Is(err, repository.ErrWinnerConflict) {
			return nil, models.NewConflict("a different winner has already been confirmed")
		}
		s.Logger.Printf("failed to set winner for announcement %s: %v", announcementID, err)
		return nil, models.NewDependencyFailure("announcement store unavailable")
	}

	// Claim the notification latch before publishing. A concurrent or retried
	// confirmation of the same bid finds the latch taken and stays silent, so
	// the winner event fires at most once per announcement.
	first, err := s.Repo.MarkWinnerNotified(ctx, announcementID)
	if err != nil {
		s.Logger.Printf("failed to latch winner notification for announcement %s: %v", announcementID, err)
	} else if first {
		s.publish(ctx, notify.NewEvent(notify.EventWinnerDetermined,
			updated.ID, updated.FromCity, updated.ToCity, updated.ContactEmail, locale))
	}

	if err := s.Cache.Invalidate(ctx, announcementID); err != nil {
		s.Logger.Printf("failed to invalidate bid summary for announcement %s: %v", announcementID, err)
	}
	return updated, nil
}

// SendReminders emits one reminder event per announcement whose window closes
// within the given duration. The reminder flag is latched only after a
// successful publish so a failed dispatch is retried on the next sweep.
// Sweeps are driven by an external scheduler, not by this service.
func (s *AnnouncementService) SendReminders(ctx context.Context, window time.Duration, locale string) (int, error) {
	announcements, err := s.Repo.ExpiringBefore(ctx, s.now().Add(window))
	if err != nil {
		s.Logger.Printf("failed to list expiring announcements: %v", err)
		return 0, models.NewDependencyFailure("announcement store unavailable")
	}

	sent := 0
	for _, a := range announcements {
		event := notify.NewEvent(notify.EventReminder, a.ID, a.FromCity, a.ToCity, a.ContactEmail, locale)
		if err := s.Notifier.Publish(ctx, event); err != nil {
			s.Logger.Printf("failed to publish reminder for announcement %s: %v", a.ID, err)
			continue
		}
		if err := s.Repo.MarkReminderSent(ctx, a.ID); err != nil {
			s.Logger.Printf("failed to mark reminder sent for announcement %s: %v", a.ID, err)
			continue
		}
		sent++
	}
	return sent, nil
}

// SendReviewRequests emits one review request per completed announcement
// whose move date has passed, latching the flag like SendReminders does.
func (s *AnnouncementService) SendReviewRequests(ctx context.Context, locale string) (int, error) {
	announcements, err := s.Repo.AwaitingReview(ctx, s.now())
	if err != nil {
		s.Logger.Printf("failed to list announcements awaiting review: %v", err)
		return 0, models.NewDependencyFailure("announcement store unavailable")
	}

	sent := 0
	for _, a := range announcements {
		event := notify.NewEvent(notify.EventReviewRequest, a.ID, a.FromCity, a.ToCity, a.ContactEmail, locale)
		if err := s.Notifier.Publish(ctx, event); err != nil {
			s.Logger.Printf("failed to publish review request for announcement %s: %v", a.ID, err)
			continue
		}
		if err := s.Repo.MarkReviewRequested(ctx, a.ID); err != nil {
			s.Logger.Printf("failed to mark review requested for announcement %s: %v", a.ID, err)
			continue
		}
		sent++
	}
	return sent, nil
}
