package auction

import (
	"testing"

	"github.com/movebid/moving-auction-service/internal/models"

	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func profile(name string, base, dist, floor string) models.CompetitorProfile {
	return models.CompetitorProfile{
		Name:               name,
		BaseMultiplier:     dec(base),
		DistanceMultiplier: dec(dist),
		FloorMultiplier:    dec(floor),
		Active:             true,
	}
}

func TestComputeComparisons_KnownBreakdown(t *testing.T) {
	profiles := []models.CompetitorProfile{profile("CityMovers", "1.3", "1.1", "1.2")}
	costs := models.CostBreakdown{
		BaseCost:     dec("449"),
		DistanceCost: dec("120"),
		FloorCost:    dec("60"),
	}

	comparisons := ComputeComparisons(profiles, dec("712.11"), costs)

	check.Equal(t, 1, len(comparisons))
	c := comparisons[0]
	check.Equal(t, "CityMovers", c.CompetitorName)
	// net 449*1.3 + 120*1.1 + 60*1.2 = 787.70, gross 787.70*1.19 = 937.36
	check.True(t, c.CompetitorPrice.Equal(dec("937.36")))
	check.True(t, c.Savings.Equal(dec("225.25")))
	check.True(t, c.SavingsPercent.Equal(dec("24.03")))
}

func TestComputeComparisons_OnePerActiveCompetitor(t *testing.T) {
	inactive := profile("Ghost", "1.0", "1.0", "1.0")
	inactive.Active = false
	profiles := []models.CompetitorProfile{
		profile("A", "1.1", "1.0", "1.0"),
		inactive,
		profile("B", "1.5", "1.2", "1.3"),
	}
	costs := models.CostBreakdown{BaseCost: dec("100"), DistanceCost: dec("50"), FloorCost: dec("20")}

	comparisons := ComputeComparisons(profiles, dec("200"), costs)

	check.Equal(t, 2, len(comparisons))
	check.Equal(t, "A", comparisons[0].CompetitorName)
	check.Equal(t, "B", comparisons[1].CompetitorName)
}

func TestComputeComparisons_EmptySet(t *testing.T) {
	comparisons := ComputeComparisons(nil, dec("500"), models.CostBreakdown{
		BaseCost: dec("100"), DistanceCost: dec("0"), FloorCost: dec("0"),
	})

	check.Equal(t, 0, len(comparisons))
	check.True(t, AverageSavings(comparisons).IsZero())

	_, ok := MaxSavings(comparisons)
	check.False(t, ok)
}

func TestComputeComparisons_NegativeSavingsIsValid(t *testing.T) {
	// Competitor grosses 100*1.0*1.19 = 119, cheaper than our 300.
	profiles := []models.CompetitorProfile{profile("Cheapo", "1.0", "0", "0")}
	costs := models.CostBreakdown{BaseCost: dec("100"), DistanceCost: dec("0"), FloorCost: dec("0")}

	comparisons := ComputeComparisons(profiles, dec("300"), costs)

	check.Equal(t, 1, len(comparisons))
	check.True(t, comparisons[0].Savings.IsNegative())
	check.True(t, comparisons[0].Savings.Equal(dec("-181")))
}

func TestComputeComparisons_MultiplierMonotonicity(t *testing.T) {
	costs := models.CostBreakdown{BaseCost: dec("200"), DistanceCost: dec("80"), FloorCost: dec("40")}
	our := dec("400")

	base := ComputeComparisons([]models.CompetitorProfile{profile("P", "1.2", "1.1", "1.0")}, our, costs)[0]

	bumpedBase := ComputeComparisons([]models.CompetitorProfile{profile("P", "1.3", "1.1", "1.0")}, our, costs)[0]
	bumpedDist := ComputeComparisons([]models.CompetitorProfile{profile("P", "1.2", "1.2", "1.0")}, our, costs)[0]
	bumpedFloor := ComputeComparisons([]models.CompetitorProfile{profile("P", "1.2", "1.1", "1.1")}, our, costs)[0]

	check.True(t, bumpedBase.CompetitorPrice.GreaterThan(base.CompetitorPrice))
	check.True(t, bumpedDist.CompetitorPrice.GreaterThan(base.CompetitorPrice))
	check.True(t, bumpedFloor.CompetitorPrice.GreaterThan(base.CompetitorPrice))
}

func TestMaxSavings_TieKeepsFirst(t *testing.T) {
	comparisons := []models.PriceComparison{
		{CompetitorName: "first", Savings: dec("50")},
		{CompetitorName: "second", Savings: dec("50")},
		{CompetitorName: "third", Savings: dec("10")},
	}

	best, ok := MaxSavings(comparisons)
	check.True(t, ok)
	check.Equal(t, "first", best.CompetitorName)
}

func TestAverageSavings(t *testing.T) {
	comparisons := []models.PriceComparison{
		{Savings: dec("100")},
		{Savings: dec("-20")},
		{Savings: dec("40")},
	}

	check.True(t, AverageSavings(comparisons).Equal(dec("40")))
}
