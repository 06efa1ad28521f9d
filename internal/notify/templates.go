package notify

import (
	"fmt"

	"github.com/movebid/moving-auction-service/internal/models"
)

// Message templates. The locale is always passed in explicitly; the German
// variant is selected through LocalizedText, never through process state.
// Bodies take the origin and destination city, in that order.

var subjects = map[EventType]models.LocalizedText{
	EventBookingConfirmation: {
		Default:  "Your moving request is live",
		Variants: map[string]string{"de": "Ihre Umzugsanfrage ist online"},
	},
	EventBidReceived: {
		Default:  "New offer for your moving request",
		Variants: map[string]string{"de": "Neues Angebot für Ihre Umzugsanfrage"},
	},
	EventWinnerDetermined: {
		Default:  "A moving company has been selected",
		Variants: map[string]string{"de": "Ein Umzugsunternehmen wurde ausgewählt"},
	},
	EventReminder: {
		Default:  "Your bidding window closes soon",
		Variants: map[string]string{"de": "Ihre Angebotsfrist endet bald"},
	},
	EventReviewRequest: {
		Default:  "How was your move?",
		Variants: map[string]string{"de": "Wie war Ihr Umzug?"},
	},
}

var bodies = map[EventType]models.LocalizedText{
	EventBookingConfirmation: {
		Default:  "Your moving request from %s to %s has been published. Companies can now place offers.",
		Variants: map[string]string{"de": "Ihre Umzugsanfrage von %s nach %s wurde veröffentlicht. Unternehmen können jetzt Angebote abgeben."},
	},
	EventBidReceived: {
		Default:  "A company has placed an offer for your move from %s to %s.",
		Variants: map[string]string{"de": "Ein Unternehmen hat ein Angebot für Ihren Umzug von %s nach %s abgegeben."},
	},
	EventWinnerDetermined: {
		Default:  "A winning offer has been confirmed for your move from %s to %s.",
		Variants: map[string]string{"de": "Für Ihren Umzug von %s nach %s wurde ein Angebot bestätigt."},
	},
	EventReminder: {
		Default:  "The bidding window for your move from %s to %s closes soon. Review your offers now.",
		Variants: map[string]string{"de": "Die Angebotsfrist für Ihren Umzug von %s nach %s endet bald. Prüfen Sie jetzt Ihre Angebote."},
	},
	EventReviewRequest: {
		Default:  "Your move from %s to %s should be done. Tell us how it went.",
		Variants: map[string]string{"de": "Ihr Umzug von %s nach %s sollte abgeschlossen sein. Erzählen Sie uns, wie es lief."},
	},
}

// Render resolves the subject and body for an event type in a locale.
func Render(t EventType, locale, fromCity, toCity string) (subject, body string) {
	subject = subjects[t].Resolve(locale)
	body = fmt.Sprintf(bodies[t].Resolve(locale), fromCity, toCity)
	return subject, body
}
