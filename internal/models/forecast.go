package models

// LocationKind identifies one of the two fixed forecast targets.
type LocationKind string

const (
	LocationJiaoxi   LocationKind = "jiaoxi"
	LocationMountain LocationKind = "mountain"
)

// DatasetMode selects which CWA forecast product is requested.
// ModeShortRange is the 3-day hourly-resolution product used when the
// trip is imminent; ModeWeekly is the one-week daily product.
type DatasetMode string

const (
	ModeWeekly     DatasetMode = "weekly"
	ModeShortRange DatasetMode = "3day"
)

// RiskLevel classifies a day's overall travel/hiking hazard.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// DayRecord is one normalized forecast day. Temperature, rain probability
// and humidity are pointers because the upstream series may never supply
// them for a given date.
type DayRecord struct {
	Date           string       `json:"date"`
	DateDisplay    string       `json:"dateDisplay"`
	IsTripDay      bool         `json:"isTripDay"`
	IsHikingDay    bool         `json:"isHikingDay"`
	MaxTemp        *int         `json:"maxTemp,omitempty"`
	MinTemp        *int         `json:"minTemp,omitempty"`
	Weather        string       `json:"weather,omitempty"`
	WeatherCode    string       `json:"weatherCode,omitempty"`
	Icon           string       `json:"icon"`
	RainProb       *int         `json:"rainProb,omitempty"`
	Humidity       *int         `json:"humidity,omitempty"`
	WindSpeed      string       `json:"windSpeed,omitempty"`
	WindDirection  string       `json:"windDirection,omitempty"`
	UVIndex        string       `json:"uvIndex,omitempty"`
	RiskLevel      RiskLevel    `json:"riskLevel"`
	RiskMessages   []string     `json:"riskMessages"`
	HourlyForecast []HourRecord `json:"hourlyForecast,omitempty"`
}

// HourRecord is one hour inside the daylight hiking window of the
// hiking day. Records without a temperature reading are discarded
// before this type is produced, so Temp is always set.
type HourRecord struct {
	Hour        int    `json:"hour"`
	Time        string `json:"time"`
	Temp        int    `json:"temp"`
	Weather     string `json:"weather,omitempty"`
	WeatherCode string `json:"weatherCode,omitempty"`
	Icon        string `json:"icon,omitempty"`
	RainProb    *int   `json:"rainProb,omitempty"`
	Humidity    *int   `json:"humidity,omitempty"`
	WindSpeed   string `json:"windSpeed,omitempty"`
}

// LocationResult is the per-location query result: the normalized days
// plus the dataset mode that produced them.
type LocationResult struct {
	Data []DayRecord `json:"data"`
	Mode DatasetMode `json:"mode"`
}

// SmartMode describes the automatic dataset selection attached to a
// successful combined query.
type SmartMode struct {
	Enabled         bool   `json:"enabled"`
	UsingShortRange bool   `json:"usingShortRange"`
	DaysUntilTrip   int    `json:"daysUntilTrip"`
	Message         string `json:"message"`
}

// ForecastBundle is the combined result for both locations. On failure
// both location slices are nil and Error carries the reason; partial
// bundles are never produced.
type ForecastBundle struct {
	Jiaoxi     []DayRecord `json:"jiaoxi"`
	Mountain   []DayRecord `json:"mountain"`
	LastUpdate string      `json:"lastUpdate,omitempty"`
	Success    bool        `json:"success"`
	Error      string      `json:"error,omitempty"`
	SmartMode  *SmartMode  `json:"smartMode,omitempty"`
}

// RiskSummary condenses the trip/hiking days of one location to the
// highest risk level present.
type RiskSummary struct {
	Level   RiskLevel   `json:"level"`
	Summary string      `json:"summary"`
	Days    []DayRecord `json:"days"`
}
