package metar

// Compound record types decoded from response cells. All sub-fields are
// optional on the wire; absent or null sub-fields decode to nil pointers.

// RunwayVisibility is one visual-range report for a single runway.
type RunwayVisibility struct {
	Runway       *string  `json:"runway"`
	LowestValue  *float64 `json:"lowest_value"`
	HighestValue *float64 `json:"highest_value"`
}

// WeatherCondition is one coded present- or recent-weather group.
type WeatherCondition struct {
	Intensity     *string `json:"intensity"`
	Description   *string `json:"description"`
	Precipitation *string `json:"precipitation"`
	Obscuration   *string `json:"obscuration"`
	Other         *string `json:"other"`
}

// SkyCondition is one cloud layer: coverage code, base height, cloud type.
type SkyCondition struct {
	Cover  *string  `json:"cover"`
	Height *float64 `json:"height"`
	Cloud  *string  `json:"cloud"`
}
