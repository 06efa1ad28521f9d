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
)

type BidService struct {
	Repo          repository.BidRepository
	Announcements repository.AnnouncementRepository
	Notifier      notify.Notifier
	Cache         SummaryCache
	Logger        *log.Logger
	now           func() time.Time
}

// NewBidService creates a new BidService.
func NewBidService(repo repository.BidRepository, announcements repository.AnnouncementRepository, notifier notify.Notifier, cache SummaryCache, logger *log.Logger) *BidService {
	return &BidService{
		Repo:          repo,
		Announcements: announcements,
		Notifier:      notifier,
		Cache:         cache,
		Logger:        logger,
		now:           time.Now,
	}
}

// SubmitBid validates and stores a company's offer. Bidding against a closed
// announcement is a Conflict so the bidder knows retrying is pointless; a
// store outage is a DependencyFailure and worth retrying. The final
// Active-window check happens in the store at write time, so a window that
// closes between this read and the write is still caught.
func (s *BidService) SubmitBid(ctx context.Context, announcementID string, req models.BidRequest, locale string) (*models.Bid, error) {
	if req.CompanyName == "" || req.ContactEmail == "" {
		return nil, models.NewValidationError("missing required fields: companyName and contactEmail")
	}
	if !req.Price.IsPositive() {
		return nil, models.NewValidationError("price must be positive")
	}

	announcement, err := s.Announcements.GetAnnouncementByID(ctx, announcementID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewInvalidReference("announcement not found")
		}
		s.Logger.Printf("failed to fetch announcement %s: %v", announcementID, err)
		return nil, models.NewDependencyFailure("announcement store unavailable")
	}

	if !auction.CanAcceptBid(announcement.Status, announcement.BiddingEnd, s.now()) {
		return nil, models.NewConflict("the bidding window for this announcement is closed")
	}

	bid, err := s.Repo.CreateBid(ctx, announcementID, req)
	if err != nil {
		if errors.Is(err, repository.ErrWindowClosed) {
			return nil, models.NewConflict("the bidding window for this announcement is closed")
		}
		s.Logger.Printf("failed to create bid for announcement %s: %v", announcementID, err)
		return nil, models.NewDependencyFailure("bid store unavailable")
	}

	if err := s.Cache.Invalidate(ctx, announcementID); err != nil {
		s.Logger.Printf("failed to invalidate bid summary for announcement %s: %v", announcementID, err)
	}

	event := notify.NewEvent(notify.EventBidReceived,
		announcement.ID, announcement.FromCity, announcement.ToCity, announcement.ContactEmail, locale)
	if err := s.Notifier.Publish(ctx, event); err != nil {
		s.Logger.Printf("failed to publish bid_received event for announcement %s: %v", announcementID, err)
	}

	return bid, nil
}

// ListBids returns the bids of one announcement in ranked order, computed
// fresh from the full current bid set.
func (s *BidService) ListBids(ctx context.Context, announcementID string) ([]models.Bid, error) {
	if _, err := s.Announcements.GetAnnouncementByID(ctx, announcementID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewInvalidReference("announcement not found")
		}
		s.Logger.Printf("failed to fetch announcement %s: %v", announcementID, err)
		return nil, models.NewDependencyFailure("announcement store unavailable")
	}

	bids, err := s.Repo.GetAnnouncementBids(ctx, announcementID)
	if err != nil {
		s.Logger.Printf("failed to fetch bids for announcement %s: %v", announcementID, err)
		return nil, models.NewDependencyFailure("bid store unavailable")
	}
	return auction.Rank(bids), nil
}

// GetBidSummary returns the bid statistics for one announcement, served from
// the cache when possible. A zero-bid announcement reports the distinct
// no-bids shape, not numeric zero prices.
func (s *BidService) GetBidSummary(ctx context.Context, announcementID string) (*auction.Summary, error) {
	if _, err := s.Announcements.GetAnnouncementByID(ctx, announcementID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.NewInvalidReference("announcement not found")
		}
		s.Logger.Printf("failed to fetch announcement %s: %v", announcementID, err)
		return nil, models.NewDependencyFailure("announcement store unavailable")
	}

	if cached, hit, err := s.Cache.Get(ctx, announcementID); err != nil {
		s.Logger.Printf("failed to read bid summary cache for announcement %s: %v", announcementID, err)
	} else if hit {
		return cached, nil
	}

	bids, err := s.Repo.GetAnnouncementBids(ctx, announcementID)
	if err != nil {
		s.Logger.Printf("failed to fetch bids for announcement %s: %v", announcementID, err)
		return nil, models.NewDependencyFailure("bid store unavailable")
	}

	summary := auction.Summarize(bids)
	if err := s.Cache.Set(ctx, announcementID, summary); err != nil {
		s.Logger.Printf("failed to cache bid summary for announcement %s: %v", announcementID, err)
	}
	return &summary, nil
}
