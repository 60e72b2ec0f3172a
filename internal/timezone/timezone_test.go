package timezone

import "testing"

func TestLocalDate(t *testing.T) {
	// 2025-07-09T20:00:00Z is already the 10th in Almaty.
	const instant = 1752091200

	if got := LocalDate(instant, "ALA"); got != "2025-07-10" {
		t.Errorf("LocalDate ALA = %q, want 2025-07-10", got)
	}
	if got := LocalDate(instant, "zzz"); got != "2025-07-09" {
		t.Errorf("LocalDate unknown = %q, want 2025-07-09", got)
	}
	if got := LocalDate(0, "ALA"); got != "" {
		t.Errorf("LocalDate zero = %q, want empty", got)
	}
}

func TestLocationByAirportIsCaseInsensitive(t *testing.T) {
	if LocationByAirport("nqz") != KZT {
		t.Error("expected KZT for nqz")
	}
}

func TestDateFromLocal(t *testing.T) {
	tests := map[string]string{
		"2025-07-09T06:45:00": "2025-07-09",
		"2025-07-09":          "2025-07-09",
		"2025-13-09T06:45:00": "",
		"09.07":               "",
	}
	for in, want := range tests {
		if got := DateFromLocal(in); got != want {
			t.Errorf("DateFromLocal(%q) = %q, want %q", in, got, want)
		}
	}
}
