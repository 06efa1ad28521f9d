package services

import (
	"context"
	"log"

	"github.com/movebid/moving-auction-service/internal/auction"
	"github.com/movebid/moving-auction-service/internal/models"
	"github.com/movebid/moving-auction-service/internal/repository"
)

type PricingService struct {
	Repo   repository.CompetitorRepository
	Logger *log.Logger
}

// NewPricingService creates a new PricingService.
func NewPricingService(repo repository.CompetitorRepository, logger *log.Logger) *PricingService {
	return &PricingService{Repo: repo, Logger: logger}
}

// ComputeComparisons runs the pricing calculator against the supplied
// competitor profiles, falling back to the stored active profiles when the
// request carries none. An empty result means "no data", not a failure.
func (s *PricingService) ComputeComparisons(ctx context.Context, req models.PriceComparisonRequest) (*models.PriceComparisonResult, error) {
	if !req.OurPrice.IsPositive() {
		return nil, models.NewValidationError("ourPrice must be positive")
	}

	profiles := req.Competitors
	if len(profiles) == 0 {
		var err error
		profiles, err = s.Repo.GetActiveProfiles(ctx)
		if err != nil {
			s.Logger.Printf("failed to fetch competitor profiles: %v", err)
			return nil, models.NewDependencyFailure("competitor store unavailable")
		}
	}

	comparisons := auction.ComputeComparisons(profiles, req.OurPrice, req.Costs)

	result := &models.PriceComparisonResult{
		Comparisons:    comparisons,
		AverageSavings: auction.AverageSavings(comparisons),
	}
	if best, ok := auction.MaxSavings(comparisons); ok {
		result.MaxSavings = &best
	}
	return result, nil
}

// ListCompetitors returns the active competitor profiles.
func (s *PricingService) ListCompetitors(ctx context.Context) ([]models.CompetitorProfile, error) {
	profiles, err := s.Repo.GetActiveProfiles(ctx)
	if err != nil {
		s.Logger.Printf("failed to fetch competitor profiles: %v", err)
		return nil, models.NewDependencyFailure("competitor store unavailable")
	}
	return profiles, nil
}
