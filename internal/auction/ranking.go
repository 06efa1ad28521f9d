package auction

import (
	"sort"

	"github.com/movebid/moving-auction-service/internal/models"

	"github.com/shopspring/decimal"
)

// Rank returns the bids of one announcement in their total order: price
// ascending, equal prices broken by creation time ascending, then id
// ascending so the order is fully deterministic. The input slice is not
// modified.
func Rank(bids []models.Bid) []models.Bid {
	ranked := make([]models.Bid, len(bids))
	copy(ranked, bids)

	sort.SliceStable(ranked, func(i, j int) bool {
		if !ranked[i].Price.Equal(ranked[j].Price) {
			return ranked[i].Price.LessThan(ranked[j].Price)
		}
		if !ranked[i].CreatedAt.Equal(ranked[j].CreatedAt) {
			return ranked[i].CreatedAt.Before(ranked[j].CreatedAt)
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// PresumptiveWinner returns the first bid in the ranked order, or nil when
// there are no bids. A confirmed winner on the announcement always takes
// precedence over the presumptive one; that override lives with the caller
// holding the announcement record.
func PresumptiveWinner(bids []models.Bid) *models.Bid {
	ranked := Rank(bids)
	if len(ranked) == 0 {
		return nil
	}
	return &ranked[0]
}

// Summary holds the bid statistics for one announcement. A zero-bid
// announcement reports Count 0 with nil prices rather than numeric zeros.
type Summary struct {
	Count        int              `json:"count"`
	LowestPrice  *decimal.Decimal `json:"lowestPrice,omitempty"`
	HighestPrice *decimal.Decimal `json:"highestPrice,omitempty"`
}

// Summarize computes the bid summary from the full current bid set.
func Summarize(bids []models.Bid) Summary {
	if len(bids) == 0 {
		return Summary{}
	}
	lowest := bids[0].Price
	highest := bids[0].Price
	for _, b := range bids[1:] {
		if b.Price.LessThan(lowest) {
			lowest = b.Price
		}
		if b.Price.GreaterThan(highest) {
			highest = b.Price
		}
	}
	return Summary{Count: len(bids), LowestPrice: &lowest, HighestPrice: &highest}
}
