package router

import (
	"net/http"

	"github.com/movebid/moving-auction-service/internal/handlers"
)

func InitRoutes(announcementHandler *handlers.AnnouncementHandler, bidHandler *handlers.BidHandler, pricingHandler *handlers.PricingHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)

	mux.HandleFunc("/api/announcements", announcementHandler.GetAnnouncements)
	mux.HandleFunc("/api/announcements/new", announcementHandler.CreateAnnouncement)
	mux.HandleFunc("/api/announcements/remind", announcementHandler.SendReminders)
	mux.HandleFunc("/api/announcements/review_requests", announcementHandler.SendReviewRequests)
	mux.HandleFunc("GET /api/announcements/{announcementId}", announcementHandler.GetAnnouncement)
	mux.HandleFunc("PUT /api/announcements/{announcementId}/winner", announcementHandler.ConfirmWinner)

	mux.HandleFunc("/api/announcements/{announcementId}/bids/new", bidHandler.SubmitBid)
	mux.HandleFunc("GET /api/announcements/{announcementId}/bids", bidHandler.GetAnnouncementBids)
	mux.HandleFunc("GET /api/announcements/{announcementId}/bids/summary", bidHandler.GetBidSummary)

	mux.HandleFunc("/api/prices/compare", pricingHandler.ComparePrices)
	mux.HandleFunc("/api/competitors", pricingHandler.GetCompetitors)

	return mux
}
