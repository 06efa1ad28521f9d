package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/movebid/moving-auction-service/internal/models"

	"github.com/shopspring/decimal"
)

type fakeCompetitorRepo struct {
	profiles []models.CompetitorProfile
	err      error
	calls    int
}

func (f *fakeCompetitorRepo) GetActiveProfiles(_ context.Context) ([]models.CompetitorProfile, error) {
	f.calls++
	return f.profiles, f.err
}

func mover(name, base string) models.CompetitorProfile {
	b, _ := decimal.NewFromString(base)
	return models.CompetitorProfile{
		Name:               name,
		BaseMultiplier:     b,
		DistanceMultiplier: decimal.NewFromFloat(1.1),
		FloorMultiplier:    decimal.NewFromFloat(1.2),
		Active:             true,
	}
}

func standardCosts() models.CostBreakdown {
	return models.CostBreakdown{
		BaseCost:     decimal.NewFromInt(449),
		DistanceCost: decimal.NewFromInt(120),
		FloorCost:    decimal.NewFromInt(60),
	}
}

func TestComputeComparisonsRejectsNonPositivePrice(t *testing.T) {
	repo := &fakeCompetitorRepo{}
	svc := NewPricingService(repo, testLogger())

	_, err := svc.ComputeComparisons(context.Background(), models.PriceComparisonRequest{
		OurPrice: decimal.Zero,
		Costs:    standardCosts(),
	})
	assertStatusCode(t, err, http.StatusBadRequest)

	if repo.calls != 0 {
		t.Fatalf("competitor store queried %d times on invalid input, want 0", repo.calls)
	}
}

func TestComputeComparisonsWithSuppliedProfiles(t *testing.T) {
	repo := &fakeCompetitorRepo{}
	svc := NewPricingService(repo, testLogger())

	result, err := svc.ComputeComparisons(context.Background(), models.PriceComparisonRequest{
		Competitors: []models.CompetitorProfile{mover("Alpha", "1.3")},
		OurPrice:    decimal.NewFromFloat(712.11),
		Costs:       standardCosts(),
	})
	if err != nil {
		t.Fatalf("ComputeComparisons: %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("competitor store queried %d times despite supplied profiles, want 0", repo.calls)
	}
	if len(result.Comparisons) != 1 {
		t.Fatalf("comparisons = %d, want 1", len(result.Comparisons))
	}
	got := result.Comparisons[0]
	if !got.CompetitorPrice.Equal(decimal.NewFromFloat(937.36)) {
		t.Fatalf("competitor price = %s, want 937.36", got.CompetitorPrice)
	}
	if !got.Savings.Equal(decimal.NewFromFloat(225.25)) {
		t.Fatalf("savings = %s, want 225.25", got.Savings)
	}
	if result.MaxSavings == nil || result.MaxSavings.CompetitorName != "Alpha" {
		t.Fatalf("max savings = %v, want Alpha", result.MaxSavings)
	}
}

func TestComputeComparisonsFallsBackToStoredProfiles(t *testing.T) {
	repo := &fakeCompetitorRepo{profiles: []models.CompetitorProfile{
		mover("Alpha", "1.3"),
		mover("Beta", "1.5"),
	}}
	svc := NewPricingService(repo, testLogger())

	result, err := svc.ComputeComparisons(context.Background(), models.PriceComparisonRequest{
		OurPrice: decimal.NewFromInt(700),
		Costs:    standardCosts(),
	})
	if err != nil {
		t.Fatalf("ComputeComparisons: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("competitor store queried %d times, want 1", repo.calls)
	}
	if len(result.Comparisons) != 2 {
		t.Fatalf("comparisons = %d, want 2", len(result.Comparisons))
	}
}

func TestComputeComparisonsNoProfilesIsNoData(t *testing.T) {
	svc := NewPricingService(&fakeCompetitorRepo{}, testLogger())

	result, err := svc.ComputeComparisons(context.Background(), models.PriceComparisonRequest{
		OurPrice: decimal.NewFromInt(700),
		Costs:    standardCosts(),
	})
	if err != nil {
		t.Fatalf("ComputeComparisons: %v", err)
	}
	if len(result.Comparisons) != 0 {
		t.Fatalf("comparisons = %d, want 0", len(result.Comparisons))
	}
	if result.MaxSavings != nil {
		t.Fatalf("max savings = %v, want nil", result.MaxSavings)
	}
	if !result.AverageSavings.IsZero() {
		t.Fatalf("average savings = %s, want 0", result.AverageSavings)
	}
}

func TestComputeComparisonsStoreOutage(t *testing.T) {
	repo := &fakeCompetitorRepo{err: errors.New("connection refused")}
	svc := NewPricingService(repo, testLogger())

	_, err := svc.ComputeComparisons(context.Background(), models.PriceComparisonRequest{
		OurPrice: decimal.NewFromInt(700),
		Costs:    standardCosts(),
	})
	assertStatusCode(t, err, http.StatusBadGateway)
}

func TestListCompetitors(t *testing.T) {
	repo := &fakeCompetitorRepo{profiles: []models.CompetitorProfile{mover("Alpha", "1.3")}}
	svc := NewPricingService(repo, testLogger())

	profiles, err := svc.ListCompetitors(context.Background())
	if err != nil {
		t.Fatalf("ListCompetitors: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Name != "Alpha" {
		t.Fatalf("profiles = %v, want [Alpha]", profiles)
	}
}
