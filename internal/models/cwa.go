package models

// Raw CWA fileapi response shape. Every scalar comes back as a string;
// the forecast package is the only consumer allowed to interpret these.

type RawForecastResponse struct {
	CwaOpenData struct {
		Dataset struct {
			Locations struct {
				Location []RawLocation `json:"Location"`
			} `json:"Locations"`
		} `json:"Dataset"`
	} `json:"cwaopendata"`
}

type RawLocation struct {
	LocationName   string       `json:"LocationName"`
	WeatherElement []RawElement `json:"WeatherElement"`
}

// RawElement is one named time series (temperature, rain probability, ...).
type RawElement struct {
	ElementName string    `json:"ElementName"`
	Time        []RawSlot `json:"Time"`
}

// RawSlot is one timestamped entry. Interval products carry StartTime,
// point-in-time products carry DataTime.
type RawSlot struct {
	StartTime    string           `json:"StartTime"`
	EndTime      string           `json:"EndTime"`
	DataTime     string           `json:"DataTime"`
	ElementValue *RawElementValue `json:"ElementValue"`
}

// RawElementValue is the value bag; which field is populated depends on
// the element the slot belongs to.
type RawElementValue struct {
	Temperature                string `json:"Temperature"`
	MaxTemperature             string `json:"MaxTemperature"`
	MinTemperature             string `json:"MinTemperature"`
	Weather                    string `json:"Weather"`
	WeatherCode                string `json:"WeatherCode"`
	ProbabilityOfPrecipitation string `json:"ProbabilityOfPrecipitation"`
	RelativeHumidity           string `json:"RelativeHumidity"`
	WindSpeed                  string `json:"WindSpeed"`
	WindDirection              string `json:"WindDirection"`
	UVIndex                    string `json:"UVIndex"`
}
