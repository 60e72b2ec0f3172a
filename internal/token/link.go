package token

import "strings"

const DefaultLinkBase = "https://www.aviasales.kz"

// passengerPlaceholder is written regardless of the actual party size.
const passengerPlaceholder = "1"

// Endpoints are the route ends and calendar dates (YYYY-MM-DD) written into
// the search path of a deep link.
type Endpoints struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
}

// DeepLink assembles <base>/search/<origin><DDMM><destination><DDMM>1?t=<token>.
func DeepLink(base string, ep Endpoints, token string) string {
	if base == "" {
		base = DefaultLinkBase
	}
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	b.WriteString("/search/")
	b.WriteString(ep.Origin)
	b.WriteString(dayMonth(ep.DepartureDate))
	b.WriteString(ep.Destination)
	b.WriteString(dayMonth(ep.ReturnDate))
	b.WriteString(passengerPlaceholder)
	b.WriteString("?t=")
	b.WriteString(token)
	return b.String()
}

func dayMonth(date string) string {
	if len(date) < 10 {
		return ""
	}
	return date[8:10] + date[5:7]
}
