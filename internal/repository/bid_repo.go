package repository

import (
	"context"
	"errors"
	"time"

	"github.com/movebid/moving-auction-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrWindowClosed is returned when the store-level guard rejects a bid
// because the announcement was no longer accepting bids at write time.
var ErrWindowClosed = errors.New("announcement is not accepting bids")

// BidRepository is the persistence port for bids.
type BidRepository interface {
	CreateBid(ctx context.Context, announcementID string, req models.BidRequest) (*models.Bid, error)
	GetAnnouncementBids(ctx context.Context, announcementID string) ([]models.Bid, error)
	GetBidByID(ctx context.Context, bidID string) (*models.Bid, error)
}

// PostgresBidRepository implements BidRepository on pgx.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

// CreateBid inserts a new bid. The insert is guarded on the announcement
// still being Active with an open window at write time, so two concurrent
// submissions race against the store, not against each other: the check and
// the insert are one atomic statement. Returns ErrWindowClosed when the
// guard rejects the write.
func (r *PostgresBidRepository) CreateBid(ctx context.Context, announcementID string, req models.BidRequest) (*models.Bid, error) {
	newBid := models.Bid{
		ID:             uuid.New().String(),
		AnnouncementID: announcementID,
		CompanyName:    req.CompanyName,
		ContactEmail:   req.ContactEmail,
		Phone:          req.Phone,
		Price:          req.Price,
		Notes:          req.Notes,
		CreatedAt:      time.Now().UTC(),
	}

	tag, err := r.DB.Exec(ctx, `
       INSERT INTO bid (id, announcement_id, company_name, contact_email, phone, price, notes, created_at)
       SELECT $1, $2, $3, $4, $5, $6, $7, $8
       WHERE EXISTS (
           SELECT 1 FROM announcement
           WHERE id = $2 AND status = 'Active' AND bidding_end > $8
       )`,
		newBid.ID,
		newBid.AnnouncementID,
		newBid.CompanyName,
		newBid.ContactEmail,
		newBid.Phone,
		newBid.Price,
		newBid.Notes,
		newBid.CreatedAt)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrWindowClosed
	}
	return &newBid, nil
}

// GetAnnouncementBids returns all bids for one announcement in submission
// order. Ranking is applied by the caller on the full snapshot.
func (r *PostgresBidRepository) GetAnnouncementBids(ctx context.Context, announcementID string) ([]models.Bid, error) {
	rows, err := r.DB.Query(ctx, `
       SELECT id, announcement_id, company_name, contact_email, phone, price, notes, created_at
       FROM bid
       WHERE announcement_id = $1
       ORDER BY created_at, id`, announcementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		var bid models.Bid
		if err := rows.Scan(
			&bid.ID,
			&bid.AnnouncementID,
			&bid.CompanyName,
			&bid.ContactEmail,
			&bid.Phone,
			&bid.Price,
			&bid.Notes,
			&bid.CreatedAt); err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	return bids, rows.Err()
}

// GetBidByID returns one bid or ErrNotFound.
func (r *PostgresBidRepository) GetBidByID(ctx context.Context, bidID string) (*models.Bid, error) {
	var bid models.Bid
	err := r.DB.QueryRow(ctx, `
       SELECT id, announcement_id, company_name, contact_email, phone, price, notes, created_at
       FROM bid WHERE id = $1`, bidID).Scan(
		&bid.ID,
		&bid.AnnouncementID,
		&bid.CompanyName,
		&bid.ContactEmail,
		&bid.Phone,
		&bid.Price,
		&bid.Notes,
		&bid.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &bid, nil
}
