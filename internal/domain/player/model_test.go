package player

import "testing"

func TestDistinctRefs(t *testing.T) {
	t.Parallel()

	stats := []Stat{
		{Name: "Jan Peeters", Team: "FC Kessel-Lo", URL: "https://www.lzvcup.be/players/1"},
		{Name: "Tom Claes", Team: "FC Kessel-Lo", URL: "https://www.lzvcup.be/players/2"},
		{Name: "Jan Peeters", Team: "Zaal Leuven", URL: "https://www.lzvcup.be/players/1"},
		{Name: "Jan Peeters", Team: "Futsal Tienen", URL: "https://www.lzvcup.be/players/9"},
		{Name: "Zonder Profiel", Team: "Futsal Tienen"},
	}

	got := DistinctRefs(stats)
	if len(got) != 3 {
		t.Fatalf("expected 3 refs, got=%d (%+v)", len(got), got)
	}
	if got[0].URL != "https://www.lzvcup.be/players/1" || got[2].URL != "https://www.lzvcup.be/players/9" {
		t.Fatalf("unexpected order: %+v", got)
	}
}
