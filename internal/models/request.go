package models

import (
	"strings"
	"time"
)

type Direction struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

type Passengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// SearchRequest is immutable once submitted. Directions order defines the
// outbound/return split of the resulting tickets.
type SearchRequest struct {
	Directions  []Direction `json:"directions"`
	Passengers  Passengers  `json:"passengers"`
	TripClass   string      `json:"trip_class"`
	Market      string      `json:"market"`
	Currency    string      `json:"currency"`
	Citizenship string      `json:"citizenship,omitempty"`
}

func (r *SearchRequest) Validate() error {
	if len(r.Directions) == 0 {
		return ErrMissingDirections
	}
	for i := range r.Directions {
		d := &r.Directions[i]
		d.Origin = strings.ToUpper(strings.TrimSpace(d.Origin))
		d.Destination = strings.ToUpper(strings.TrimSpace(d.Destination))
		if d.Origin == "" {
			return ErrMissingOrigin
		}
		if d.Destination == "" {
			return ErrMissingDestination
		}
		if d.Date == "" {
			return ErrMissingDate
		}
		if _, err := time.Parse("2006-01-02", d.Date); err != nil {
			return ErrInvalidDate
		}
	}
	if r.Passengers.Adults <= 0 {
		r.Passengers.Adults = 1
	}
	if r.Passengers.Children < 0 || r.Passengers.Infants < 0 {
		return ErrInvalidPassengers
	}
	if r.TripClass == "" {
		r.TripClass = "Y"
	}
	if r.Market == "" {
		r.Market = "kz"
	}
	if r.Currency == "" {
		r.Currency = "kzt"
	}
	if r.Citizenship == "" {
		r.Citizenship = "KZ"
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingDirections  ValidationError = "at least one direction is required"
	ErrMissingOrigin      ValidationError = "direction origin is required"
	ErrMissingDestination ValidationError = "direction destination is required"
	ErrMissingDate        ValidationError = "direction date is required"
	ErrInvalidDate        ValidationError = "direction date must be YYYY-MM-DD"
	ErrInvalidPassengers  ValidationError = "children and infants must not be negative"
)
