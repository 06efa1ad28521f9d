package auction

import (
	"github.com/movebid/moving-auction-service/internal/models"

	"github.com/shopspring/decimal"
)

// taxMultiplier converts a net competitor price to its tax-inclusive form.
var taxMultiplier = decimal.NewFromFloat(1.19)

var hundred = decimal.NewFromInt(100)

// ComputeComparisons produces one PriceComparison per active competitor
// profile. ourPrice is tax-inclusive; the competitor price is computed net
// from the cost breakdown and then grossed up with the tax multiplier.
//
// Precondition: multipliers are non-negative (validated on the admin side).
// Savings may be negative when the competitor is cheaper than us.
// An empty or fully inactive competitor set yields an empty slice, not an error.
func ComputeComparisons(profiles []models.CompetitorProfile, ourPrice decimal.Decimal, costs models.CostBreakdown) []models.PriceComparison {
	comparisons := make([]models.PriceComparison, 0, len(profiles))
	for _, p := range profiles {
		if !p.Active {
			continue
		}

		net := costs.BaseCost.Mul(p.BaseMultiplier).
			Add(costs.DistanceCost.Mul(p.DistanceMultiplier)).
			Add(costs.FloorCost.Mul(p.FloorMultiplier))
		gross := net.Mul(taxMultiplier).Round(2)

		savings := gross.Sub(ourPrice)
		var percent decimal.Decimal
		if !gross.IsZero() {
			percent = savings.Div(gross).Mul(hundred).Round(2)
		}

		comparisons = append(comparisons, models.PriceComparison{
			CompetitorName:  p.Name,
			CompetitorPrice: gross,
			Savings:         savings,
			SavingsPercent:  percent,
		})
	}
	return comparisons
}

// MaxSavings returns the comparison with the largest savings. Ties keep the
// first-encountered comparison. The second return is false for empty input.
func MaxSavings(comparisons []models.PriceComparison) (models.PriceComparison, bool) {
	if len(comparisons) == 0 {
		return models.PriceComparison{}, false
	}
	best := comparisons[0]
	for _, c := range comparisons[1:] {
		if c.Savings.GreaterThan(best.Savings) {
			best = c
		}
	}
	return best, true
}

// AverageSavings returns the arithmetic mean of savings across all
// comparisons, rounded to cents. Empty input yields zero, not an error.
func AverageSavings(comparisons []models.PriceComparison) decimal.Decimal {
	if len(comparisons) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, c := range comparisons {
		sum = sum.Add(c.Savings)
	}
	return sum.Div(decimal.NewFromInt(int64(len(comparisons)))).Round(2)
}
