package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/movebid/moving-auction-service/internal/models"
	"github.com/movebid/moving-auction-service/internal/services"
	"github.com/movebid/moving-auction-service/internal/utils"
)

// BidHandler handles HTTP requests for bids.
type BidHandler struct {
	Service       *services.BidService
	Logger        *log.Logger
	Timeout       time.Duration
	DefaultLocale string
}

// NewBidHandler creates a new BidHandler.
func NewBidHandler(service *services.BidService, logger *log.Logger, timeout time.Duration, defaultLocale string) *BidHandler {
	return &BidHandler{
		Service:       service,
		Logger:        logger,
		Timeout:       timeout,
		DefaultLocale: defaultLocale,
	}
}

func (h *BidHandler) respondError(w http.ResponseWriter, err error, fallback string) {
	if errorResponse, ok := err.(*models.ErrorResponse); ok {
		h.Logger.Println(err)
		utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	h.Logger.Println(err)
	utils.SendErrorResponse(w, http.StatusInternalServerError, fallback)
}

// SubmitBid handles requests to place an offer against an announcement.
func (h *BidHandler) SubmitBid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.BidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bid, err := h.Service.SubmitBid(ctx, r.PathValue("announcementId"), req, utils.Locale(r, h.DefaultLocale))
	if err != nil {
		h.respondError(w, err, "failed to create bid")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(bid); err != nil {
		h.Logger.Println(err)
	}
}

// GetAnnouncementBids handles requests for the ranked bid list.
func (h *BidHandler) GetAnnouncementBids(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	bids, err := h.Service.ListBids(ctx, r.PathValue("announcementId"))
	if err != nil {
		h.respondError(w, err, "failed to retrieve bids")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(bids); err != nil {
		h.Logger.Println(err)
	}
}

// GetBidSummary handles requests for the per-announcement bid statistics.
func (h *BidHandler) GetBidSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	summary, err := h.Service.GetBidSummary(ctx, r.PathValue("announcementId"))
	if err != nil {
		h.respondError(w, err, "failed to retrieve bid summary")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		h.Logger.Println(err)
	}
}
