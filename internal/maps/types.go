package maps

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Prediction is one autocomplete suggestion.
type Prediction struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}

// PlaceDetails is the resolved record for a place_id.
type PlaceDetails struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Phone   string  `json:"phone,omitempty"`
}

// Place is one nearby-search result.
type Place struct {
	Name     string
	Location Coordinate
	Types    []string
}

// DirectionsOptions tunes a legacy Directions API call.
type DirectionsOptions struct {
	// Language is a BCP-47 code for instruction text ("tl" for Tagalog).
	Language string
	// Region biases geocoding of ambiguous addresses ("PH").
	Region string
}

// DirectionsStep is one step of a leg, instruction still HTML-marked-up as
// the provider sent it. Callers strip markup via textutil.
type DirectionsStep struct {
	HTMLInstruction string
	Maneuver        string
	DistanceText    string
	DistanceMeters  int
	DurationText    string
	DurationSeconds int
	Start           Coordinate
	End             Coordinate
	Polyline        string
}

// DirectionsRoute is the parsed first route/leg of a Directions response.
type DirectionsRoute struct {
	DistanceText    string
	DistanceMeters  int
	DurationText    string
	DurationSeconds int
	StartAddress    string
	EndAddress      string
	Polyline        string
	Steps           []DirectionsStep
}

// --- provider JSON shapes (Google Web Service APIs) ---

type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry geometry `json:"geometry"`
	} `json:"results"`
}

type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		Description string `json:"description"`
		PlaceID     string `json:"place_id"`
	} `json:"predictions"`
}

type placeDetailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Name             string   `json:"name"`
		FormattedAddress string   `json:"formatted_address"`
		Geometry         geometry `json:"geometry"`
		FormattedPhone   string   `json:"formatted_phone_number"`
	} `json:"result"`
}

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name     string   `json:"name"`
		Geometry geometry `json:"geometry"`
		Types    []string `json:"types"`
	} `json:"results"`
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance     textValue `json:"distance"`
			Duration     textValue `json:"duration"`
			StartAddress string    `json:"start_address"`
			EndAddress   string    `json:"end_address"`
			Steps        []struct {
				HTMLInstructions string    `json:"html_instructions"`
				Maneuver         string    `json:"maneuver"`
				Distance         textValue `json:"distance"`
				Duration         textValue `json:"duration"`
				StartLocation    latLng    `json:"start_location"`
				EndLocation      latLng    `json:"end_location"`
				Polyline         struct {
					Points string `json:"points"`
				} `json:"polyline"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}
