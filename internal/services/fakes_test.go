package services

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/movebid/moving-auction-service/internal/auction"
	"github.com/movebid/moving-auction-service/internal/models"
	"github.com/movebid/moving-auction-service/internal/notify"
	"github.com/movebid/moving-auction-service/internal/repository"

	"github.com/google/uuid"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type fakeAnnouncementRepo struct {
	announcements    map[string]*models.Announcement
	statusUpdates    map[string]models.AnnouncementStatus
	remindersSent    []string
	reviewsRequested []string
	expiring         []models.Announcement
	awaitingReview   []models.Announcement
	setWinnerCalls   int
	failAll          bool
	// readOverride, when set, is returned by GetAnnouncementByID instead of
	// the stored record, standing in for a read that went stale while a
	// concurrent writer changed the row.
	readOverride *models.Announcement
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{
		announcements: make(map[string]*models.Announcement),
		statusUpdates: make(map[string]models.AnnouncementStatus),
	}
}

func (f *fakeAnnouncementRepo) add(a models.Announcement) *models.Announcement {
	f.announcements[a.ID] = &a
	return &a
}

func (f *fakeAnnouncementRepo) CreateAnnouncement(_ context.Context, req models.AnnouncementRequest) (*models.Announcement, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	a := models.Announcement{
		ID:            uuid.New().String(),
		FromCity:      req.FromCity,
		ToCity:        req.ToCity,
		ApartmentSize: req.ApartmentSize,
		ContactEmail:  req.ContactEmail,
		Status:        models.ActiveAnnouncement,
		BiddingStart:  testNow,
		BiddingEnd:    req.BiddingEnd,
		CreatedAt:     testNow,
	}
	return f.add(a), nil
}

func (f *fakeAnnouncementRepo) GetAnnouncements(_ context.Context, _, _ int, _, _ []string) ([]models.Announcement, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	var out []models.Announcement
	for _, a := range f.announcements {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAnnouncementRepo) GetAnnouncementByID(_ context.Context, id string) (*models.Announcement, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	if f.readOverride != nil {
		copied := *f.readOverride
		return &copied, nil
	}
	a, ok := f.announcements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAnnouncementRepo) UpdateStatus(_ context.Context, id string, status models.AnnouncementStatus) error {
	f.statusUpdates[id] = status
	if a, ok := f.announcements[id]; ok && a.Status == models.ActiveAnnouncement {
		a.Status = status
	}
	return nil
}

func (f *fakeAnnouncementRepo) SetWinner(_ context.Context, id, bidID string) (*models.Announcement, error) {
	f.setWinnerCalls++
	a, ok := f.announcements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if a.WinningBidID != nil && *a.WinningBidID != bidID {
		return nil, repository.ErrWinnerConflict
	}
	a.Status = models.CompletedAnnouncement
	a.WinningBidID = &bidID
	copied := *a
	return &copied, nil
}

func (f *fakeAnnouncementRepo) MarkWinnerNotified(_ context.Context, id string) (bool, error) {
	a, ok := f.announcements[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if a.WinnerNotified {
		return false, nil
	}
	a.WinnerNotified = true
	return true, nil
}

func (f *fakeAnnouncementRepo) ExpiringBefore(_ context.Context, _ time.Time) ([]models.Announcement, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	return f.expiring, nil
}

func (f *fakeAnnouncementRepo) MarkReminderSent(_ context.Context, id string) error {
	f.remindersSent = append(f.remindersSent, id)
	return nil
}

func (f *fakeAnnouncementRepo) AwaitingReview(_ context.Context, _ time.Time) ([]models.Announcement, error) {
	return f.awaitingReview, nil
}

func (f *fakeAnnouncementRepo) MarkReviewRequested(_ context.Context, id string) error {
	f.reviewsRequested = append(f.reviewsRequested, id)
	return nil
}

type fakeBidRepo struct {
	bids         map[string][]models.Bid
	windowClosed bool
	createCalls  int
}

func newFakeBidRepo() *fakeBidRepo {
	return &fakeBidRepo{bids: make(map[string][]models.Bid)}
}

func (f *fakeBidRepo) add(b models.Bid) {
	f.bids[b.AnnouncementID] = append(f.bids[b.AnnouncementID], b)
}

func (f *fakeBidRepo) CreateBid(_ context.Context, announcementID string, req models.BidRequest) (*models.Bid, error) {
	f.createCalls++
	if f.windowClosed {
		return nil, repository.ErrWindowClosed
	}
	bid := models.Bid{
		ID:             uuid.New().String(),
		AnnouncementID: announcementID,
		CompanyName:    req.CompanyName,
		ContactEmail:   req.ContactEmail,
		Price:          req.Price,
		CreatedAt:      testNow,
	}
	f.add(bid)
	return &bid, nil
}

func (f *fakeBidRepo) GetAnnouncementBids(_ context.Context, announcementID string) ([]models.Bid, error) {
	return f.bids[announcementID], nil
}

func (f *fakeBidRepo) GetBidByID(_ context.Context, bidID string) (*models.Bid, error) {
	for _, bids := range f.bids {
		for _, b := range bids {
			if b.ID == bidID {
				copied := b
				return &copied, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

type fakeNotifier struct {
	events  []notify.Event
	failErr error
}

func (f *fakeNotifier) Publish(_ context.Context, event notify.Event) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeNotifier) eventsOfType(t notify.EventType) []notify.Event {
	var out []notify.Event
	for _, e := range f.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type fakeCache struct {
	entries       map[string]auction.Summary
	invalidations []string
	gets          int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]auction.Summary)}
}

func (f *fakeCache) Get(_ context.Context, id string) (*auction.Summary, bool, error) {
	f.gets++
	s, ok := f.entries[id]
	if !ok {
		return nil, false, nil
	}
	return &s, true, nil
}

func (f *fakeCache) Set(_ context.Context, id string, summary auction.Summary) error {
	f.entries[id] = summary
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, id string) error {
	f.invalidations = append(f.invalidations, id)
	delete(f.entries, id)
	return nil
}

func assertStatusCode(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}
	errorResponse, ok := err.(*models.ErrorResponse)
	if !ok {
		t.Fatalf("expected *models.ErrorResponse, got %T: %v", err, err)
	}
	if errorResponse.StatusCode != want {
		t.Fatalf("status = %d, want %d (%s)", errorResponse.StatusCode, want, errorResponse.Message)
	}
}
