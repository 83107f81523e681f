package forecast

import (
	"fmt"
	"strings"

	"github.com/ycwang-tw/matcha-trip-weather/internal/models"
)

// Risk is the outcome of assessing one day.
type Risk struct {
	Level    models.RiskLevel
	Messages []string
}

// Phrases that mark a message as high severity. The overall level is
// derived by scanning emitted message text, not by per-rule flags, so a
// message's wording is authoritative.
var highRiskMarkers = []string{"改期", "延期", "失溫", "雪地"}

// Assess maps a normalized day to a risk level with explanatory
// messages. Every rule runs independently; none short-circuits another.
// Mountain terrain uses the stricter cold thresholds.
func Assess(day models.DayRecord, mountain bool) Risk {
	var messages []string

	if day.RainProb != nil {
		switch p := *day.RainProb; {
		case p >= 70:
			messages = append(messages, fmt.Sprintf("降雨機率高達 %d%%，建議攜帶雨具或考慮改期", p))
		case p >= 40:
			messages = append(messages, fmt.Sprintf("降雨機率 %d%%，建議攜帶雨具", p))
		}
	}

	coldThresholdHigh, coldThresholdLow := 10, 15
	if mountain {
		coldThresholdHigh, coldThresholdLow = 5, 10
	}
	if day.MinTemp != nil {
		switch t := *day.MinTemp; {
		case t <= coldThresholdHigh:
			messages = append(messages, fmt.Sprintf("低溫 %d°C，注意保暖與失溫風險", t))
		case t <= coldThresholdLow:
			messages = append(messages, fmt.Sprintf("氣溫偏低 %d°C，建議攜帶保暖衣物", t))
		}
	}

	if day.MaxTemp != nil && *day.MaxTemp >= 33 {
		messages = append(messages, fmt.Sprintf("高溫 %d°C，注意防曬與中暑風險", *day.MaxTemp))
	}

	if day.Weather != "" {
		if strings.Contains(day.Weather, "雷") || strings.Contains(day.Weather, "暴") {
			messages = append(messages, "有雷雨或暴風預報，登山行程應延期")
		}
		if strings.Contains(day.Weather, "雪") && mountain {
			messages = append(messages, "有降雪預報，需具備雪地裝備與經驗")
		}
		if strings.Contains(day.Weather, "霧") {
			messages = append(messages, "有霧，能見度可能受限")
		}
	}

	if day.Humidity != nil && *day.Humidity >= 90 {
		messages = append(messages, fmt.Sprintf("濕度過高 %d%%，戶外活動請留意", *day.Humidity))
	}

	level := models.RiskLow
	if containsHighRiskMarker(messages) {
		level = models.RiskHigh
	} else if len(messages) > 0 {
		level = models.RiskMedium
	}

	return Risk{Level: level, Messages: messages}
}

func containsHighRiskMarker(messages []string) bool {
	for _, m := range messages {
		for _, marker := range highRiskMarkers {
			if strings.Contains(m, marker) {
				return true
			}
		}
	}
	return false
}

// TripRiskSummary condenses the trip/hiking days of a result set to the
// highest risk level present. Returns nil when no trip days exist.
func TripRiskSummary(days []models.DayRecord) *models.RiskSummary {
	var tripDays, highDays, mediumDays []models.DayRecord
	for _, d := range days {
		if !d.IsTripDay && !d.IsHikingDay {
			continue
		}
		tripDays = append(tripDays, d)
		switch d.RiskLevel {
		case models.RiskHigh:
			highDays = append(highDays, d)
		case models.RiskMedium:
			mediumDays = append(mediumDays, d)
		}
	}
	if len(tripDays) == 0 {
		return nil
	}

	switch {
	case len(highDays) > 0:
		return &models.RiskSummary{
			Level:   models.RiskHigh,
			Summary: fmt.Sprintf("⚠️ %d 天有高風險", len(highDays)),
			Days:    highDays,
		}
	case len(mediumDays) > 0:
		return &models.RiskSummary{
			Level:   models.RiskMedium,
			Summary: fmt.Sprintf("⚡ %d 天需注意", len(mediumDays)),
			Days:    mediumDays,
		}
	default:
		return &models.RiskSummary{
			Level:   models.RiskLow,
			Summary: "✅ 天氣狀況良好",
			Days:    tripDays,
		}
	}
}
