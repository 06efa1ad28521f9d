package models

import "github.com/shopspring/decimal"

// CompetitorProfile is a named pricing formula used to estimate a rival's
// price. Multipliers are validated on the admin side; the calculator treats
// non-negative multipliers as a precondition.
type CompetitorProfile struct {
	Name               string          `json:"name"`
	BaseMultiplier     decimal.Decimal `json:"baseMultiplier"`
	DistanceMultiplier decimal.Decimal `json:"distanceMultiplier"`
	FloorMultiplier    decimal.Decimal `json:"floorMultiplier"`
	Active             bool            `json:"active"`
}

// CostBreakdown is the three-part cost input to the pricing formula.
type CostBreakdown struct {
	BaseCost     decimal.Decimal `json:"baseCost"`
	DistanceCost decimal.Decimal `json:"distanceCost"`
	FloorCost    decimal.Decimal `json:"floorCost"`
}

// PriceComparison is derived fresh on each pricing request, never stored.
// Savings may be negative when the competitor is cheaper.
type PriceComparison struct {
	CompetitorName  string          `json:"competitorName"`
	CompetitorPrice decimal.Decimal `json:"competitorPrice"`
	Savings         decimal.Decimal `json:"savings"`
	SavingsPercent  decimal.Decimal `json:"savingsPercent"`
}

// PriceComparisonRequest carries the pricing endpoint input. When Competitors
// is empty the active profiles from the store are used instead.
type PriceComparisonRequest struct {
	Competitors []CompetitorProfile `json:"competitors,omitempty"`
	OurPrice    decimal.Decimal     `json:"ourPrice"`
	Costs       CostBreakdown       `json:"costs"`
}

// PriceComparisonResult bundles the comparisons with their aggregates.
// MaxSavings is absent when there is no data; an empty comparison list is
// "no data", not a failure.
type PriceComparisonResult struct {
	Comparisons    []PriceComparison `json:"comparisons"`
	MaxSavings     *PriceComparison  `json:"maxSavings,omitempty"`
	AverageSavings decimal.Decimal   `json:"averageSavings"`
}
