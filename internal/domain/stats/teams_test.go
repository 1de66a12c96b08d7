package stats

import "testing"

func TestNormalizeTeamRemapsLegacyAbbreviations(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"BRK", "BKN"},
		{"CHO", "CHA"},
		{"PHO", "PHX"},
		{"DEN", "DEN"},
		{"TOT", "TOT"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeTeam(tc.in); got != tc.want {
			t.Fatalf("NormalizeTeam(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
