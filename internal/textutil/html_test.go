package textutil

import "testing"

func TestCleanInstruction(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "Turn left onto Taft Avenue",
			want: "Turn left onto Taft Avenue",
		},
		{
			name: "bold tags stripped",
			in:   "Turn <b>left</b> onto <b>Taft Ave</b>",
			want: "Turn left onto Taft Ave",
		},
		{
			name: "br becomes a space not a join",
			in:   `Head north<br>Destination will be on the right`,
			want: "Head north Destination will be on the right",
		},
		{
			name: "self-closing br with attributes spacing",
			in:   `Continue straight<br/>Pass the market<br />Turn right`,
			want: "Continue straight Pass the market Turn right",
		},
		{
			name: "div wrapped suffix",
			in:   `Turn right<div style="font-size:0.9em">Entering Quezon City</div>`,
			want: "Turn rightEntering Quezon City",
		},
		{
			name: "entities unescaped",
			in:   "Aling Nena&#39;s Store &amp; Bakery",
			want: "Aling Nena's Store & Bakery",
		},
		{
			name: "entity-encoded tags removed",
			in:   "Turn left at the &lt;b&gt;old market&lt;/b&gt;",
			want: "Turn left at the old market",
		},
		{
			name: "doubly escaped markup removed",
			in:   "&amp;lt;i&amp;gt;slow down&amp;lt;/i&amp;gt;",
			want: "slow down",
		},
		{
			name: "whitespace collapsed and trimmed",
			in:   "  Walk   to  \n EDSA  ",
			want: "Walk to EDSA",
		},
		{name: "empty input", in: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanInstruction(tc.in)
			if got != tc.want {
				t.Errorf("CleanInstruction(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanInstruction_Idempotent(t *testing.T) {
	inputs := []string{
		"Turn <b>left</b> onto Taft Ave<br/>Pass Mercury Drug",
		"Head north on EDSA &amp; keep right",
		"Turn left at the &lt;b&gt;old market&lt;/b&gt;",
		"&amp;lt;b&amp;gt;Cross at the light&amp;lt;/b&amp;gt;",
		"Kumanan sa kanto malapit sa tindahan",
		"",
		"  spaced   out  ",
	}
	for _, in := range inputs {
		once := CleanInstruction(in)
		twice := CleanInstruction(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
