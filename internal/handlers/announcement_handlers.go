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

// AnnouncementHandler handles HTTP requests for announcements.
type AnnouncementHandler struct {
	Service       *services.AnnouncementService
	Logger        *log.Logger
	Timeout       time.Duration
	DefaultLocale string
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(service *services.AnnouncementService, logger *log.Logger, timeout time.Duration, defaultLocale string) *AnnouncementHandler {
	return &AnnouncementHandler{
		Service:       service,
		Logger:        logger,
		Timeout:       timeout,
		DefaultLocale: defaultLocale,
	}
}

func (h *AnnouncementHandler) respondError(w http.ResponseWriter, err error, fallback string) {
	if errorResponse, ok := err.(*models.ErrorResponse); ok {
		h.Logger.Println(err)
		utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	h.Logger.Println(err)
	utils.SendErrorResponse(w, http.StatusInternalServerError, fallback)
}

// CreateAnnouncement handles requests to publish a moving request.
func (h *AnnouncementHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.AnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	announcement, err := h.Service.CreateAnnouncement(ctx, req, utils.Locale(r, h.DefaultLocale))
	if err != nil {
		h.respondError(w, err, "failed to create announcement")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(announcement); err != nil {
		h.Logger.Println(err)
	}
}

// GetAnnouncements handles requests for the announcement list.
func (h *AnnouncementHandler) GetAnnouncements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	fromCities := r.URL.Query()["from_city"]
	toCities := r.URL.Query()["to_city"]

	views, err := h.Service.GetAnnouncements(ctx, limitStr, offsetStr, fromCities, toCities)
	if err != nil {
		h.respondError(w, err, "failed to fetch announcements")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(views); err != nil {
		h.Logger.Println(err)
	}
}

// GetAnnouncement handles requests for a single announcement.
func (h *AnnouncementHandler) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	view, err := h.Service.GetAnnouncement(ctx, r.PathValue("announcementId"))
	if err != nil {
		h.respondError(w, err, "failed to fetch announcement")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(view); err != nil {
		h.Logger.Println(err)
	}
}

// ConfirmWinner handles requests to confirm a winning bid.
func (h *AnnouncementHandler) ConfirmWinner(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	announcementID := r.PathValue("announcementId")
	bidID := r.URL.Query().Get("bidId")

	announcement, err := h.Service.ConfirmWinner(ctx, announcementID, bidID, utils.Locale(r, h.DefaultLocale))
	if err != nil {
		h.respondError(w, err, "failed to confirm winner")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(announcement); err != nil {
		h.Logger.Println(err)
	}
}

// SendReminders handles the scheduler-driven reminder sweep.
func (h *AnnouncementHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	window := 24 * time.Hour
	if windowStr := r.URL.Query().Get("window"); windowStr != "" {
		parsed, err := time.ParseDuration(windowStr)
		if err != nil || parsed <= 0 {
			utils.SendErrorResponse(w, http.StatusBadRequest, "invalid window parameter, must be a positive duration")
			return
		}
		window = parsed
	}

	sent, err := h.Service.SendReminders(ctx, window, utils.Locale(r, h.DefaultLocale))
	if err != nil {
		h.respondError(w, err, "failed to send reminders")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]int{"sent": sent}); err != nil {
		h.Logger.Println(err)
	}
}

// SendReviewRequests handles the scheduler-driven review request sweep.
func (h *AnnouncementHandler) SendReviewRequests(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	sent, err := h.Service.SendReviewRequests(ctx, utils.Locale(r, h.DefaultLocale))
	if err != nil {
		h.respondError(w, err, "failed to send review requests")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]int{"sent": sent}); err != nil {
		h.Logger.Println(err)
	}
}
