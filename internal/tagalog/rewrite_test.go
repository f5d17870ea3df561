package tagalog

import "testing"

func TestRewrite(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"turn right", "Turn right onto Rizal Avenue", "Kumanan onto Rizal Avenue."},
		{"turn left", "Turn left", "Kumaliwa."},
		{"head north", "Head north on Taft Ave", "Dumiretso pahilaga on Taft Ave."},
		{"case insensitive", "TURN LEFT at the corner", "Kumaliwa at the corner."},
		{"slight right", "Slight right toward the plaza", "Bahagyang kumanan toward the plaza."},
		{"keep left", "Keep left at the fork", "Manatili sa kaliwa at the fork."},
		{"u-turn", "Make a U-turn at Quiapo", "Mag-U-turn at Quiapo."},
		{"take the exit whole", "Take the exit", "Dumaan sa labasan."},
		{"bare exit", "Exit the terminal", "Lumabas the terminal."},
		{"destination left", "Destination will be on the left", "Ang pupuntahan ay nasa kaliwa."},
		{"arrived", "You have arrived", "Nakarating na tayo."},
		{"leading walk", "Walk to the pedestrian crossing", "Maglakad to the pedestrian crossing."},
		{"leading go", "Go past the church", "Pumunta past the church."},
		{"walk mid-sentence untouched", "Continue to walk slowly", "Magpatuloy to walk slowly."},
		{"html stripped", "Turn <b>right</b> onto Quirino", "Kumanan onto Quirino."},
		{"smart quotes", "Turn right onto Aling Nena’s street", "Kumanan onto Aling Nena's street."},
		{"whitespace collapsed", "  Turn   right  ", "Kumanan."},
		{"existing punctuation kept", "You have arrived!", "Nakarating na tayo!"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Rewrite(tc.in); got != tc.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDistancePhrase(t *testing.T) {
	cases := []struct {
		meters int
		want   string
	}{
		{0, "Malapit na."},
		{14, "Malapit na."},
		{15, "Pagkalipas ng 15 metro,"},
		{200, "Pagkalipas ng 200 metro,"},
	}
	for _, tc := range cases {
		if got := DistancePhrase(tc.meters); got != tc.want {
			t.Errorf("DistancePhrase(%d) = %q, want %q", tc.meters, got, tc.want)
		}
	}
}

func TestPronounce(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want string
	}{
		{"syllable hints", "Kumanan sa kalye", "ku-ma-nan sa kalye"},
		{"kaliwa", "Manatili sa kaliwa", "Manatili sa ka-li-wa"},
		{"opo", "Opo, sige po", "o-po, sige po"},
		{"case insensitive", "KUMALIWA tapos DUMAAN sa tulay", "KUMALIWA tapos du-ma-an sa tulay"},
		{"prefixed word untouched", "Dumiretso papunta sa palengke", "Dumiretso papunta sa palengke"},
		{"whitespace collapsed", "  malapit   na  ", "ma-la-pit na"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := Pronounce(tc.in); got != tc.want {
				t.Errorf("Pronounce(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
