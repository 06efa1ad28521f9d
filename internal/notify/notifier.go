package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// EventType enumerates the notification events consumed by the external
// dispatcher. Delivery is at-least-once; idempotency is the consumer's job.
type EventType string

const (
	EventBookingConfirmation EventType = "booking_confirmation"
	EventBidReceived         EventType = "bid_received"
	EventWinnerDetermined    EventType = "winner_determined"
	EventReminder            EventType = "reminder"
	EventReviewRequest       EventType = "review_request"
)

// Event is the payload published for the external notification dispatcher.
type Event struct {
	ID             string    `json:"id"`
	Type           EventType `json:"type"`
	AnnouncementID string    `json:"announcementId"`
	Recipient      string    `json:"recipient"`
	Locale         string    `json:"locale"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Notifier publishes notification events. Implementations are fire-and-forget
// from the caller's perspective; a publish failure must never roll back the
// state change that triggered it.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}

// NATSNotifier publishes events to a NATS subject per event type.
type NATSNotifier struct {
	conn *nats.Conn
}

// NewNATSNotifier connects to the NATS server.
func NewNATSNotifier(url string) (*NATSNotifier, error) {
	conn, err := nats.Connect(url, nats.Name("moving-auction-service"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSNotifier{conn: conn}, nil
}

// Publish sends the event to "moving.events.<type>".
func (n *NATSNotifier) Publish(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	subject := fmt.Sprintf("moving.events.%s", event.Type)
	if err := n.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Close drains the connection.
func (n *NATSNotifier) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
}

// NewEvent builds an event for an announcement with the message rendered in
// the given locale.
func NewEvent(t EventType, announcementID, fromCity, toCity, recipient, locale string) Event {
	subject, body := Render(t, locale, fromCity, toCity)
	return Event{
		ID:             uuid.New().String(),
		Type:           t,
		AnnouncementID: announcementID,
		Recipient:      recipient,
		Locale:         locale,
		Subject:        subject,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}
}
