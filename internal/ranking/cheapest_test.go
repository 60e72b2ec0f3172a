package ranking

import (
	"testing"

	"github.com/dharmasatrya/aviasearch/internal/models"
)

func ticket(id string, price float64) models.TicketSummary {
	return models.TicketSummary{ID: id, Price: models.Price{Value: price, Known: true}}
}

func TestCheapestStableOnTies(t *testing.T) {
	tickets := []models.TicketSummary{
		ticket("a", 300),
		ticket("b", 100),
		ticket("c", 100),
	}
	got := Cheapest(tickets)
	if got == nil || got.ID != "b" {
		t.Fatalf("Cheapest = %+v, want b", got)
	}
}

func TestCheapestUnpricedRankLast(t *testing.T) {
	tickets := []models.TicketSummary{
		{ID: "unpriced"},
		ticket("priced", 5000),
	}
	if got := Cheapest(tickets); got == nil || got.ID != "priced" {
		t.Fatalf("Cheapest = %+v, want priced", got)
	}

	if got := Cheapest([]models.TicketSummary{{ID: "only"}}); got == nil || got.ID != "only" {
		t.Fatalf("Cheapest of unpriced list = %+v, want only", got)
	}
}

func TestCheapestEmpty(t *testing.T) {
	if got := Cheapest(nil); got != nil {
		t.Fatalf("Cheapest(nil) = %+v, want nil", got)
	}
}

func TestCheapestReturnsCopy(t *testing.T) {
	tickets := []models.TicketSummary{ticket("a", 1)}
	got := Cheapest(tickets)
	got.ID = "changed"
	if tickets[0].ID != "a" {
		t.Fatal("Cheapest must not alias the input slice")
	}
}
