package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/movebid/moving-auction-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not resolve.
var ErrNotFound = errors.New("record not found")

// ErrWinnerConflict is returned when the guarded winner write matches no row
// because a different winning bid is already recorded.
var ErrWinnerConflict = errors.New("a different winning bid is already recorded")

// AnnouncementRepository is the persistence port for announcements.
type AnnouncementRepository interface {
	CreateAnnouncement(ctx context.Context, req models.AnnouncementRequest) (*models.Announcement, error)
	GetAnnouncements(ctx context.Context, limit, offset int, fromCities, toCities []string) ([]models.Announcement, error)
	GetAnnouncementByID(ctx context.Context, id string) (*models.Announcement, error)
	UpdateStatus(ctx context.Context, id string, status models.AnnouncementStatus) error
	SetWinner(ctx context.Context, id, bidID string) (*models.Announcement, error)
	MarkWinnerNotified(ctx context.Context, id string) (bool, error)
	ExpiringBefore(ctx context.Context, cutoff time.Time) ([]models.Announcement, error)
	MarkReminderSent(ctx context.Context, id string) error
	AwaitingReview(ctx context.Context, now time.Time) ([]models.Announcement, error)
	MarkReviewRequested(ctx context.Context, id string) error
}

// PostgresAnnouncementRepository implements AnnouncementRepository on pgx.
type PostgresAnnouncementRepository struct {
	DB *pgxpool.Pool
}

func NewPostgresAnnouncementRepository(db *pgxpool.Pool) *PostgresAnnouncementRepository {
	return &PostgresAnnouncementRepository{DB: db}
}

const announcementColumns = `id, from_city, to_city, apartment_size, volume_m3, floor, has_elevator,
       needs_packing, needs_assembly, preferred_date, description, contact_email, status,
       winning_bid_id, bidding_start, bidding_end, created_at,
       winner_notified, reminder_sent, review_requested`

func scanAnnouncement(row pgx.Row) (*models.Announcement, error) {
	var a models.Announcement
	err := row.Scan(
		&a.ID,
		&a.FromCity,
		&a.ToCity,
		&a.ApartmentSize,
		&a.VolumeM3,
		&a.Floor,
		&a.HasElevator,
		&a.NeedsPacking,
		&a.NeedsAssembly,
		&a.PreferredDate,
		&a.Description,
		&a.ContactEmail,
		&a.Status,
		&a.WinningBidID,
		&a.BiddingStart,
		&a.BiddingEnd,
		&a.CreatedAt,
		&a.WinnerNotified,
		&a.ReminderSent,
		&a.ReviewRequested,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// CreateAnnouncement inserts a new announcement. The bidding window starts at
// creation time; the initial status is always Active.
func (r *PostgresAnnouncementRepository) CreateAnnouncement(ctx context.Context, req models.AnnouncementRequest) (*models.Announcement, error) {
	now := time.Now().UTC()
	newAnnouncement := models.Announcement{
		ID:            uuid.New().String(),
		FromCity:      req.FromCity,
		ToCity:        req.ToCity,
		ApartmentSize: req.ApartmentSize,
		VolumeM3:      req.VolumeM3,
		Floor:         req.Floor,
		HasElevator:   req.HasElevator,
		NeedsPacking:  req.NeedsPacking,
		NeedsAssembly: req.NeedsAssembly,
		PreferredDate: req.PreferredDate,
		Description:   req.Description,
		ContactEmail:  req.ContactEmail,
		Status:        models.ActiveAnnouncement,
		BiddingStart:  now,
		BiddingEnd:    req.BiddingEnd.UTC(),
		CreatedAt:     now,
	}

	_, err := r.DB.Exec(ctx, `
       INSERT INTO announcement (id, from_city, to_city, apartment_size, volume_m3, floor, has_elevator,
                                 needs_packing, needs_assembly, preferred_date, description, contact_email,
                                 status, bidding_start, bidding_end, created_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
   `,
		newAnnouncement.ID,
		newAnnouncement.FromCity,
		newAnnouncement.ToCity,
		newAnnouncement.ApartmentSize,
		newAnnouncement.VolumeM3,
		newAnnouncement.Floor,
		newAnnouncement.HasElevator,
		newAnnouncement.NeedsPacking,
		newAnnouncement.NeedsAssembly,
		newAnnouncement.PreferredDate,
		newAnnouncement.Description,
		newAnnouncement.ContactEmail,
		newAnnouncement.Status,
		newAnnouncement.BiddingStart,
		newAnnouncement.BiddingEnd,
		newAnnouncement.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert announcement: %w", err)
	}
	return &newAnnouncement, nil
}

// GetAnnouncements returns a page of announcements, optionally filtered by
// origin and destination city.
func (r *PostgresAnnouncementRepository) GetAnnouncements(ctx context.Context, limit, offset int, fromCities, toCities []string) ([]models.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcement`
	var filters []string
	var args []interface{}
	argIndex := 1

	if len(fromCities) > 0 {
		filters = append(filters, fmt.Sprintf("from_city = ANY($%d)", argIndex))
		args = append(args, pq.Array(fromCities))
		argIndex++
	}
	if len(toCities) > 0 {
		filters = append(filters, fmt.Sprintf("to_city = ANY($%d)", argIndex))
		args = append(args, pq.Array(toCities))
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, *a)
	}
	return announcements, rows.Err()
}

// GetAnnouncementByID returns one announcement or ErrNotFound.
func (r *PostgresAnnouncementRepository) GetAnnouncementByID(ctx context.Context, id string) (*models.Announcement, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+announcementColumns+` FROM announcement WHERE id = $1`, id)
	return scanAnnouncement(row)
}

// UpdateStatus persists a lazily derived status transition. Terminal statuses
// are never overwritten here: the write is guarded on the current status
// still being Active.
func (r *PostgresAnnouncementRepository) UpdateStatus(ctx context.Context, id string, status models.AnnouncementStatus) error {
	_, err := r.DB.Exec(ctx, `UPDATE announcement SET status = $1 WHERE id = $2 AND status = 'Active'`, status, id)
	return err
}

// SetWinner assigns the winning bid and moves the announcement to Completed.
// The write is guarded on no other winning bid being recorded, so two
// concurrent confirmations race against the store: the loser matches no row
// and gets ErrWinnerConflict instead of overwriting a confirmed winner.
// Re-confirming the same bid passes the guard and is a no-op rewrite.
func (r *PostgresAnnouncementRepository) SetWinner(ctx context.Context, id, bidID string) (*models.Announcement, error) {
	row := r.DB.QueryRow(ctx, `
       UPDATE announcement
       SET status = $1, winning_bid_id = $2
       WHERE id = $3 AND (winning_bid_id IS NULL OR winning_bid_id = $2)
       RETURNING `+announcementColumns,
		models.CompletedAnnouncement, bidID, id)
	announcement, err := scanAnnouncement(row)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrWinnerConflict
	}
	return announcement, err
}

// MarkWinnerNotified latches the winner notification flag. Only the caller
// that flips the flag gets true; everyone else sees the latch already taken
// and must not publish again.
func (r *PostgresAnnouncementRepository) MarkWinnerNotified(ctx context.Context, id string) (bool, error) {
	tag, err := r.DB.Exec(ctx, `UPDATE announcement SET winner_notified = TRUE WHERE id = $1 AND winner_notified = FALSE`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ExpiringBefore lists active announcements whose window closes before the
// cutoff and that have not yet received a reminder.
func (r *PostgresAnnouncementRepository) ExpiringBefore(ctx context.Context, cutoff time.Time) ([]models.Announcement, error) {
	rows, err := r.DB.Query(ctx, `
       SELECT `+announcementColumns+`
       FROM announcement
       WHERE status = 'Active' AND reminder_sent = FALSE
         AND bidding_end > NOW() AND bidding_end <= $1
       ORDER BY bidding_end`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, *a)
	}
	return announcements, rows.Err()
}

// MarkReminderSent latches the reminder flag so the event fires at most once.
func (r *PostgresAnnouncementRepository) MarkReminderSent(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `UPDATE announcement SET reminder_sent = TRUE WHERE id = $1`, id)
	return err
}

// AwaitingReview lists completed announcements whose move date has passed and
// that have not yet been asked for a review.
func (r *PostgresAnnouncementRepository) AwaitingReview(ctx context.Context, now time.Time) ([]models.Announcement, error) {
	rows, err := r.DB.Query(ctx, `
       SELECT `+announcementColumns+`
       FROM announcement
       WHERE status = 'Completed' AND review_requested = FALSE
         AND COALESCE(preferred_date, bidding_end) <= $1
       ORDER BY bidding_end`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, *a)
	}
	return announcements, rows.Err()
}

// MarkReviewRequested latches the review request flag.
func (r *PostgresAnnouncementRepository) MarkReviewRequested(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `UPDATE announcement SET review_requested = TRUE WHERE id = $1`, id)
	return err
}
