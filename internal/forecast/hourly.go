package forecast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ycwang-tw/matcha-trip-weather/internal/models"
)

// Daylight hiking window, hours inclusive.
const (
	hikingWindowStart = 5
	hikingWindowEnd   = 18
)

type hourBuilder struct {
	hour        int
	temp        *int
	weather     string
	weatherCode string
	icon        string
	rainProb    *int
	humidity    *int
	windSpeed   string
}

// extractHours pulls the hourly records for one calendar date, restricted
// to the daylight hiking window. Hours that never receive a temperature
// reading are dropped; the rest come back sorted ascending.
func extractHours(elements []models.RawElement, targetDate string) []models.HourRecord {
	buckets := make(map[int]*hourBuilder)

	for _, el := range elements {
		kind := kindOf(el.ElementName)
		for _, slot := range el.Time {
			ts := slotTimestamp(slot)
			date, clock, found := strings.Cut(ts, "T")
			if !found || date != targetDate {
				continue
			}
			hour, ok := parseHour(clock)
			if !ok || hour < hikingWindowStart || hour > hikingWindowEnd {
				continue
			}

			b := buckets[hour]
			if b == nil {
				b = &hourBuilder{hour: hour}
				buckets[hour] = b
			}

			v := slot.ElementValue
			if v == nil {
				continue
			}

			switch kind {
			case elementTemp:
				if t, ok := tryParseInt(v.Temperature); ok {
					b.temp = &t
				}
			case elementWeather:
				// First write wins for the phenomenon triple.
				if b.weather == "" {
					b.weather = v.Weather
					b.weatherCode = v.WeatherCode
					b.icon = IconFor(v.WeatherCode)
				}
			case elementRainProb:
				if p, ok := tryParseInt(v.ProbabilityOfPrecipitation); ok {
					b.rainProb = &p
				}
			case elementHumidity:
				if h, ok := tryParseInt(v.RelativeHumidity); ok {
					b.humidity = &h
				}
			case elementWindSpeed:
				if v.WindSpeed != "" {
					b.windSpeed = v.WindSpeed
				}
			}
		}
	}

	hours := make([]models.HourRecord, 0, len(buckets))
	for _, b := range buckets {
		if b.temp == nil {
			continue
		}
		hours = append(hours, models.HourRecord{
			Hour:        b.hour,
			Time:        fmt.Sprintf("%02d:00", b.hour),
			Temp:        *b.temp,
			Weather:     b.weather,
			WeatherCode: b.weatherCode,
			Icon:        b.icon,
			RainProb:    b.rainProb,
			Humidity:    b.humidity,
			WindSpeed:   b.windSpeed,
		})
	}

	sort.Slice(hours, func(i, j int) bool { return hours[i].Hour < hours[j].Hour })
	return hours
}

// parseHour reads the hour component of a "HH:MM:SS..." clock string.
func parseHour(clock string) (int, bool) {
	hh, _, _ := strings.Cut(clock, ":")
	return tryParseInt(hh)
}
