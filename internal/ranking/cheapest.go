package ranking

import (
	"math"

	"github.com/dharmasatrya/aviasearch/internal/models"
)

// Cheapest returns the ticket with the lowest resolved price. Ties keep the
// first ticket encountered and tickets without a price rank last. It
// returns nil for an empty list.
func Cheapest(tickets []models.TicketSummary) *models.TicketSummary {
	best := -1
	bestPrice := math.Inf(1)
	for i, t := range tickets {
		price := effectivePrice(t)
		if best < 0 || price < bestPrice {
			best = i
			bestPrice = price
		}
	}
	if best < 0 {
		return nil
	}
	cheapest := tickets[best]
	return &cheapest
}

func effectivePrice(t models.TicketSummary) float64 {
	if !t.Price.Known {
		return math.Inf(1)
	}
	return t.Price.Value
}
