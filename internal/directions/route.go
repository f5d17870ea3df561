package directions

// Step is one turn-by-turn instruction, markup already stripped.
type Step struct {
	Instruction     string  `json:"instruction"`
	Maneuver        string  `json:"maneuver,omitempty"`
	Distance        string  `json:"distance,omitempty"`
	DistanceMeters  int     `json:"distance_m,omitempty"`
	Duration        string  `json:"duration,omitempty"`
	DurationSeconds int     `json:"duration_s,omitempty"`
	StartLat        float64 `json:"start_lat"`
	StartLng        float64 `json:"start_lng"`
	EndLat          float64 `json:"end_lat"`
	EndLng          float64 `json:"end_lng"`
	Polyline        string  `json:"polyline,omitempty"`
}

// UnifiedRoute merges whichever provider call(s) supplied usable fields.
//
// Distance and Duration are the provider's localized text, passed through
// untouched; the numeric meter/second values ride alongside when the
// provider supplied them. Steps is non-nil only when step-level detail was
// obtainable.
type UnifiedRoute struct {
	Polyline        string `json:"polyline,omitempty"`
	Distance        string `json:"distance,omitempty"`
	DistanceMeters  int    `json:"distance_m,omitempty"`
	Duration        string `json:"duration,omitempty"`
	DurationSeconds int    `json:"duration_s,omitempty"`
	StartAddress    string `json:"start_address,omitempty"`
	EndAddress      string `json:"end_address,omitempty"`
	Steps           []Step `json:"steps,omitempty"`

	// Source identifies which provider path produced the result:
	// "summary" (primary only), "steps" (step-detailed query, possibly
	// merged with primary aggregates).
	Source string `json:"source"`
}

// Route sources.
const (
	SourceSummary = "summary"
	SourceSteps   = "steps"
)

// Travel modes accepted by GetRoute. Anything else falls back to walking;
// the assistant's users are pedestrians first.
const (
	ModeWalking   = "walking"
	ModeDriving   = "driving"
	ModeTransit   = "transit"
	ModeBicycling = "bicycling"
)

// NormalizeMode maps an arbitrary mode string to a supported travel mode,
// defaulting to walking.
func NormalizeMode(mode string) string {
	switch mode {
	case ModeWalking, ModeDriving, ModeTransit, ModeBicycling:
		return mode
	default:
		return ModeWalking
	}
}
