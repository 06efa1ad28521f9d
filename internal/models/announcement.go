package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AnnouncementStatus string

const (
	ActiveAnnouncement    AnnouncementStatus = "Active"    // bidding window open
	ExpiredAnnouncement   AnnouncementStatus = "Expired"   // window closed without a confirmed winner
	CompletedAnnouncement AnnouncementStatus = "Completed" // winner confirmed
)

// Announcement represents a customer's published moving request.
type Announcement struct {
	ID              string             `json:"id"`
	FromCity        string             `json:"fromCity"`
	ToCity          string             `json:"toCity"`
	ApartmentSize   string             `json:"apartmentSize"`
	VolumeM3        float64            `json:"volumeM3"`
	Floor           int                `json:"floor"`
	HasElevator     bool               `json:"hasElevator"`
	NeedsPacking    bool               `json:"needsPacking"`
	NeedsAssembly   bool               `json:"needsAssembly"`
	PreferredDate   *time.Time         `json:"preferredDate,omitempty"`
	Description     string             `json:"description,omitempty"`
	Status          AnnouncementStatus `json:"status"`
	WinningBidID    *string            `json:"winningBidId,omitempty"`
	BiddingStart    time.Time          `json:"biddingStart"`
	BiddingEnd      time.Time          `json:"biddingEnd"`
	CreatedAt       time.Time          `json:"createdAt"`
	WinnerNotified  bool               `json:"-"`
	ReminderSent    bool               `json:"-"`
	ReviewRequested bool               `json:"-"`
	ContactEmail    string             `json:"-"`
}

// AnnouncementRequest represents the structure of a customer submission.
type AnnouncementRequest struct {
	FromCity      string     `json:"fromCity"`
	ToCity        string     `json:"toCity"`
	ApartmentSize string     `json:"apartmentSize"`
	VolumeM3      float64    `json:"volumeM3"`
	Floor         int        `json:"floor"`
	HasElevator   bool       `json:"hasElevator"`
	NeedsPacking  bool       `json:"needsPacking"`
	NeedsAssembly bool       `json:"needsAssembly"`
	PreferredDate *time.Time `json:"preferredDate,omitempty"`
	Description   string     `json:"description,omitempty"`
	ContactEmail  string     `json:"contactEmail"`
	BiddingEnd    time.Time  `json:"biddingEnd"`
}

// AnnouncementView is the read model returned to callers: the stored record
// plus the derived fields every reader needs.
type AnnouncementView struct {
	Announcement
	EffectiveStatus  AnnouncementStatus `json:"effectiveStatus"`
	TimeRemaining    string             `json:"timeRemaining"`
	PresumptiveBidID *string            `json:"presumptiveBidId,omitempty"`
	LowestPrice      *decimal.Decimal   `json:"lowestPrice,omitempty"`
	BidCount         int                `json:"bidCount"`
}
