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

// PricingHandler handles HTTP requests for price comparisons.
type PricingHandler struct {
	Service *services.PricingService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(service *services.PricingService, logger *log.Logger, timeout time.Duration) *PricingHandler {
	return &PricingHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

func (h *PricingHandler) respondError(w http.ResponseWriter, err error, fallback string) {
	if errorResponse, ok := err.(*models.ErrorResponse); ok {
		h.Logger.Println(err)
		utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	h.Logger.Println(err)
	utils.SendErrorResponse(w, http.StatusInternalServerError, fallback)
}

// ComparePrices handles requests to benchmark our price against competitors.
func (h *PricingHandler) ComparePrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.PriceComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.ComputeComparisons(ctx, req)
	if err != nil {
		h.respondError(w, err, "failed to compute price comparisons")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.Logger.Println(err)
	}
}

// GetCompetitors handles requests for the active competitor profiles.
func (h *PricingHandler) GetCompetitors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	profiles, err := h.Service.ListCompetitors(ctx)
	if err != nil {
		h.respondError(w, err, "failed to fetch competitor profiles")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(profiles); err != nil {
		h.Logger.Println(err)
	}
}
