package forecast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ycwang-tw/matcha-trip-weather/internal/models"
)

// maxForecastDays caps a normalized result set to the nearest week.
const maxForecastDays = 7

// elementKind tags the closed set of recognized weather element names.
// Unknown names fold to a no-op so new upstream elements cannot corrupt
// the output.
type elementKind int

const (
	elementUnknown elementKind = iota
	elementMaxTemp
	elementMinTemp
	elementTemp
	elementWeather
	elementRainProb
	elementHumidity
	elementWindSpeed
	elementWindDirection
	elementUVIndex
)

func kindOf(name string) elementKind {
	switch name {
	case "最高溫度":
		return elementMaxTemp
	case "最低溫度":
		return elementMinTemp
	case "溫度":
		return elementTemp
	case "天氣現象":
		return elementWeather
	case "降雨機率", "3小時降雨機率", "12小時降雨機率", "24小時降雨機率":
		return elementRainProb
	case "相對濕度", "平均相對濕度":
		return elementHumidity
	case "風速":
		return elementWindSpeed
	case "風向":
		return elementWindDirection
	case "紫外線指數":
		return elementUVIndex
	}
	return elementUnknown
}

// dayBuilder accumulates one calendar date while elements are folded.
// It is finalized into a models.DayRecord only after every element has
// been visited.
type dayBuilder struct {
	date          string
	maxTemp       *int
	minTemp       *int
	rawTemps      []int
	weather       string
	weatherCode   string
	rainProb      *int
	humidity      *int
	windSpeed     string
	windDirection string
	uvIndex       string
}

// apply folds one slot value into the builder using the per-field merge
// policy of the element kind.
func (b *dayBuilder) apply(kind elementKind, v *models.RawElementValue) {
	switch kind {
	case elementMaxTemp:
		// Running max across 12-hour aggregate slots.
		if t, ok := tryParseInt(v.MaxTemperature); ok {
			if b.maxTemp == nil || t > *b.maxTemp {
				b.maxTemp = &t
			}
		}
	case elementMinTemp:
		// Running min.
		if t, ok := tryParseInt(v.MinTemperature); ok {
			if b.minTemp == nil || t < *b.minTemp {
				b.minTemp = &t
			}
		}
	case elementTemp:
		// Raw hourly readings; max/min derived later only if the
		// aggregate elements never supplied them.
		if t, ok := tryParseInt(v.Temperature); ok {
			b.rawTemps = append(b.rawTemps, t)
		}
	case elementWeather:
		// First non-empty phenomenon wins, code travels with it.
		if b.weather == "" && v.Weather != "" {
			b.weather = v.Weather
			b.weatherCode = v.WeatherCode
		}
	case elementRainProb:
		// Running max across every recognized probability variant.
		if p, ok := tryParseInt(v.ProbabilityOfPrecipitation); ok {
			if b.rainProb == nil || p > *b.rainProb {
				b.rainProb = &p
			}
		}
	case elementHumidity:
		// First valid value wins.
		if b.humidity == nil {
			if h, ok := tryParseInt(v.RelativeHumidity); ok {
				b.humidity = &h
			}
		}
	case elementWindSpeed:
		if b.windSpeed == "" && v.WindSpeed != "" {
			b.windSpeed = v.WindSpeed
		}
	case elementWindDirection:
		if b.windDirection == "" && v.WindDirection != "" {
			b.windDirection = v.WindDirection
		}
	case elementUVIndex:
		if b.uvIndex == "" && v.UVIndex != "" {
			b.uvIndex = v.UVIndex
		}
	}
}

// dayContext carries the static date sets and terrain flag used while
// finalizing day records.
type dayContext struct {
	tripDays   map[string]struct{}
	hikingDays map[string]struct{}
	mountain   bool
}

// normalizeElements folds heterogeneous weather elements into at most
// seven day records sorted ascending by date, each annotated with icon,
// display date and risk assessment.
func normalizeElements(elements []models.RawElement, ctx dayContext) []models.DayRecord {
	builders := make(map[string]*dayBuilder)

	for _, el := range elements {
		kind := kindOf(el.ElementName)
		for _, slot := range el.Time {
			date, ok := slotDate(slot)
			if !ok {
				continue
			}
			b := builders[date]
			if b == nil {
				b = &dayBuilder{date: date}
				builders[date] = b
			}
			if slot.ElementValue == nil || kind == elementUnknown {
				continue
			}
			b.apply(kind, slot.ElementValue)
		}
	}

	sorted := make([]*dayBuilder, 0, len(builders))
	for _, b := range builders {
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].date < sorted[j].date })
	if len(sorted) > maxForecastDays {
		sorted = sorted[:maxForecastDays]
	}

	days := make([]models.DayRecord, 0, len(sorted))
	for _, b := range sorted {
		days = append(days, b.finalize(ctx))
	}
	return days
}

// finalize backfills max/min from raw readings, freezes the builder into
// a DayRecord and attaches the derived fields.
func (b *dayBuilder) finalize(ctx dayContext) models.DayRecord {
	if len(b.rawTemps) > 0 {
		if b.maxTemp == nil {
			m := maxOf(b.rawTemps)
			b.maxTemp = &m
		}
		if b.minTemp == nil {
			m := minOf(b.rawTemps)
			b.minTemp = &m
		}
	}

	_, isTrip := ctx.tripDays[b.date]
	_, isHiking := ctx.hikingDays[b.date]

	day := models.DayRecord{
		Date:          b.date,
		DateDisplay:   formatDateDisplay(b.date),
		IsTripDay:     isTrip,
		IsHikingDay:   isHiking,
		MaxTemp:       b.maxTemp,
		MinTemp:       b.minTemp,
		Weather:       b.weather,
		WeatherCode:   b.weatherCode,
		Icon:          IconFor(b.weatherCode),
		RainProb:      b.rainProb,
		Humidity:      b.humidity,
		WindSpeed:     b.windSpeed,
		WindDirection: b.windDirection,
		UVIndex:       b.uvIndex,
	}

	risk := Assess(day, ctx.mountain)
	day.RiskLevel = risk.Level
	day.RiskMessages = risk.Messages
	return day
}

// slotDate derives the calendar date from a slot, accepting either of
// the two upstream timestamp field names.
func slotDate(slot models.RawSlot) (string, bool) {
	ts := slotTimestamp(slot)
	if ts == "" {
		return "", false
	}
	date, _, _ := strings.Cut(ts, "T")
	if date == "" {
		return "", false
	}
	return date, true
}

func slotTimestamp(slot models.RawSlot) string {
	if slot.StartTime != "" {
		return slot.StartTime
	}
	return slot.DataTime
}

// tryParseInt is the deliberately lossy numeric parse: a malformed field
// skips that single field update and nothing else.
func tryParseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

var weekdayNames = [7]string{"日", "一", "二", "三", "四", "五", "六"}

// formatDateDisplay renders "M/D (週)" for a YYYY-MM-DD date. Unparsable
// dates fall back to the raw string.
func formatDateDisplay(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d/%d (%s)", int(t.Month()), t.Day(), weekdayNames[int(t.Weekday())])
}

func maxOf(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
