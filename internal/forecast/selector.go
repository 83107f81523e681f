package forecast

import (
	"math"
	"time"

	"github.com/ycwang-tw/matcha-trip-weather/internal/models"
)

// shortRangeWindowDays is the proximity window inside which the 3-day
// hourly-resolution product replaces the weekly one.
const shortRangeWindowDays = 3

// DaysUntilTrip returns the number of whole days from today (normalized
// to midnight) until the earliest configured trip date. ok is false when
// no trip date parses.
func DaysUntilTrip(today time.Time, tripDates []string) (int, bool) {
	earliest, ok := earliestTripDate(today.Location(), tripDates)
	if !ok {
		return 0, false
	}

	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	days := int(math.Ceil(earliest.Sub(midnight).Hours() / 24))
	return days, true
}

// SelectMode decides which dataset mode to use. Pure and total: with no
// usable trip dates it falls back to the weekly product.
func SelectMode(today time.Time, tripDates []string) models.DatasetMode {
	days, ok := DaysUntilTrip(today, tripDates)
	if ok && days >= 0 && days <= shortRangeWindowDays {
		return models.ModeShortRange
	}
	return models.ModeWeekly
}

func earliestTripDate(loc *time.Location, tripDates []string) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, d := range tripDates {
		t, err := time.ParseInLocation("2006-01-02", d, loc)
		if err != nil {
			continue
		}
		if !found || t.Before(earliest) {
			earliest = t
			found = true
		}
	}
	return earliest, found
}
