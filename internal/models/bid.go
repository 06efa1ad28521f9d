package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid represents a company's price offer against an announcement.
// A bid is immutable once created; a price correction requires a new bid.
type Bid struct {
	ID             string          `json:"id"`
	AnnouncementID string          `json:"announcementId"`
	CompanyName    string          `json:"companyName"`
	ContactEmail   string          `json:"contactEmail"`
	Phone          string          `json:"phone,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// BidRequest represents the structure of a company submission.
type BidRequest struct {
	CompanyName  string          `json:"companyName"`
	ContactEmail string          `json:"contactEmail"`
	Phone        string          `json:"phone,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Notes        string          `json:"notes,omitempty"`
}
