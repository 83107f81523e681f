package forecast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ycwang-tw/matcha-trip-weather/internal/cache"
	"github.com/ycwang-tw/matcha-trip-weather/internal/config"
	"github.com/ycwang-tw/matcha-trip-weather/internal/models"
)

// fakeFetcher serves canned responses per dataset ID.
type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]*models.RawForecastResponse
	errs      map[string]error
	calls     []string
}

func (f *fakeFetcher) FetchDataset(_ context.Context, datasetID string) (*models.RawForecastResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, datasetID)
	f.mu.Unlock()
	if err, ok := f.errs[datasetID]; ok {
		return nil, err
	}
	if resp, ok := f.responses[datasetID]; ok {
		return resp, nil
	}
	return nil, errors.New("unexpected dataset " + datasetID)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.CWA.WeeklyDatasets = map[models.LocationKind]string{
		models.LocationJiaoxi:   "F-D0047-003",
		models.LocationMountain: "F-B0053-031",
	}
	cfg.CWA.ShortRangeDatasets = map[models.LocationKind]string{
		models.LocationJiaoxi:   "F-D0047-001",
		models.LocationMountain: "F-B0053-035",
	}
	cfg.CWA.LocationNames = map[models.LocationKind]string{
		models.LocationJiaoxi:   "礁溪鄉",
		models.LocationMountain: "三角崙山",
	}
	cfg.Trip.TripDates = []string{"2026-01-24", "2026-01-25", "2026-01-26"}
	cfg.Trip.HikingDates = []string{"2026-01-25"}
	cfg.Cache.TTL = 30 * time.Minute
	return cfg
}

func responseFor(locationName string, elements ...models.RawElement) *models.RawForecastResponse {
	resp := &models.RawForecastResponse{}
	resp.CwaOpenData.Dataset.Locations.Location = []models.RawLocation{
		{LocationName: "頭城鎮", WeatherElement: nil},
		{LocationName: locationName, WeatherElement: elements},
	}
	return resp
}

func weeklyElements(date string) []models.RawElement {
	return []models.RawElement{
		{ElementName: "最高溫度", Time: []models.RawSlot{
			slotAt(date+"T06:00:00+08:00", models.RawElementValue{MaxTemperature: "18"}),
		}},
		{ElementName: "最低溫度", Time: []models.RawSlot{
			slotAt(date+"T06:00:00+08:00", models.RawElementValue{MinTemperature: "12"}),
		}},
	}
}

func newTestService(t *testing.T, fetcher *fakeFetcher, today string) *Service {
	t.Helper()
	cfg := testConfig()
	store := cache.New(cache.NewMemoryKV(), cfg.Cache.TTL, zap.NewNop())
	svc := NewService(fetcher, store, cfg, zap.NewNop())
	svc.now = func() time.Time { return mustDay(t, today) }
	return svc
}

func TestQueryLocationWeeklyMode(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]*models.RawForecastResponse{
		"F-D0047-003": responseFor("礁溪鄉", weeklyElements("2026-01-24")...),
	}}
	svc := newTestService(t, fetcher, "2026-01-10")

	result, err := svc.QueryLocation(context.Background(), models.LocationJiaoxi)
	require.NoError(t, err)
	assert.Equal(t, models.ModeWeekly, result.Mode)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "2026-01-24", result.Data[0].Date)
	assert.Empty(t, result.Data[0].HourlyForecast)
}

func TestQueryLocationServesFromCache(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]*models.RawForecastResponse{
		"F-D0047-003": responseFor("礁溪鄉", weeklyElements("2026-01-24")...),
	}}
	svc := newTestService(t, fetcher, "2026-01-10")

	first, err := svc.QueryLocation(context.Background(), models.LocationJiaoxi)
	require.NoError(t, err)

	second, err := svc.QueryLocation(context.Background(), models.LocationJiaoxi)
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
	assert.Len(t, fetcher.calls, 1, "second query must be served from cache")
}

func TestQueryLocationModeSwitchBypassesStaleCache(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]*models.RawForecastResponse{
		"F-D0047-003": responseFor("礁溪鄉", weeklyElements("2026-01-24")...),
		"F-D0047-001": responseFor("礁溪鄉", weeklyElements("2026-01-24")...),
	}}
	svc := newTestService(t, fetcher, "2026-01-10")

	_, err := svc.QueryLocation(context.Background(), models.LocationJiaoxi)
	require.NoError(t, err)

	// Move inside the short-range window: the cached weekly entry must
	// not satisfy the new mode's key.
	svc.now = func() time.Time { return mustDay(t, "2026-01-23") }
	result, err := svc.QueryLocation(context.Background(), models.LocationJiaoxi)
	require.NoError(t, err)
	assert.Equal(t, models.ModeShortRange, result.Mode)
	assert.Equal(t, []string{"F-D0047-003", "F-D0047-001"}, fetcher.calls)
}

func TestQueryLocationMissingLocation(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]*models.RawForecastResponse{
		"F-D0047-003": responseFor("頭城鎮"),
	}}
	svc := newTestService(t, fetcher, "2026-01-10")

	_, err := svc.QueryLocation(context.Background(), models.LocationJiaoxi)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestQueryLocationMountainHourlyAttachment(t *testing.T) {
	elements := append(weeklyElements("2026-01-25"),
		models.RawElement{ElementName: "溫度", Time: []models.RawSlot{
			dataSlotAt("2026-01-25T06:00:00+08:00", models.RawElementValue{Temperature: "8"}),
			dataSlotAt("2026-01-25T12:00:00+08:00", models.RawElementValue{Temperature: "12"}),
		}})
	fetcher := &fakeFetcher{responses: map[string]*models.RawForecastResponse{
		"F-B0053-035": responseFor("三角崙山", elements...),
	}}
	svc := newTestService(t, fetcher, "2026-01-23")

	result, err := svc.QueryLocation(context.Background(), models.LocationMountain)
	require.NoError(t, err)
	assert.Equal(t, models.ModeShortRange, result.Mode)

	var hikingDay *models.DayRecord
	for i := range result.Data {
		if result.Data[i].IsHikingDay {
			hikingDay = &result.Data[i]
		}
	}
	require.NotNil(t, hikingDay)
	require.Len(t, hikingDay.HourlyForecast, 2)
	assert.Equal(t, 6, hikingDay.HourlyForecast[0].Hour)
	assert.Equal(t, 12, hikingDay.HourlyForecast[1].Hour)
}

func TestQueryLocationWeeklyModeNeverAttachesHours(t *testing.T) {
	elements := append(weeklyElements("2026-01-25"),
		models.RawElement{ElementName: "溫度", Time: []models.RawSlot{
			dataSlotAt("2026-01-25T12:00:00+08:00", models.RawElementValue{Temperature: "12"}),
		}})
	fetcher := &fakeFetcher{responses: map[string]*models.RawForecastResponse{
		"F-B0053-031": responseFor("三角崙山", elements...),
	}}
	svc := newTestService(t, fetcher, "2026-01-10")

	result, err := svc.QueryLocation(context.Background(), models.LocationMountain)
	require.NoError(t, err)
	assert.Equal(t, models.ModeWeekly, result.Mode)
	for _, day := range result.Data {
		assert.Empty(t, day.HourlyForecast)
	}
}

func TestQueryAllSuccess(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]*models.RawForecastResponse{
		"F-D0047-003": responseFor("礁溪鄉", weeklyElements("2026-01-24")...),
		"F-B0053-031": responseFor("三角崙山", weeklyElements("2026-01-25")...),
	}}
	svc := newTestService(t, fetcher, "2026-01-10")

	bundle := svc.QueryAll(context.Background())
	require.True(t, bundle.Success)
	assert.Empty(t, bundle.Error)
	require.Len(t, bundle.Jiaoxi, 1)
	require.Len(t, bundle.Mountain, 1)
	assert.NotEmpty(t, bundle.LastUpdate)

	require.NotNil(t, bundle.SmartMode)
	assert.True(t, bundle.SmartMode.Enabled)
	assert.False(t, bundle.SmartMode.UsingShortRange)
	assert.Equal(t, 14, bundle.SmartMode.DaysUntilTrip)
	assert.Contains(t, bundle.SmartMode.Message, "一週預報")
}

func TestQueryAllSmartModeShortRange(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]*models.RawForecastResponse{
		"F-D0047-001": responseFor("礁溪鄉", weeklyElements("2026-01-24")...),
		"F-B0053-035": responseFor("三角崙山", weeklyElements("2026-01-25")...),
	}}
	svc := newTestService(t, fetcher, "2026-01-22")

	bundle := svc.QueryAll(context.Background())
	require.True(t, bundle.Success)
	require.NotNil(t, bundle.SmartMode)
	assert.True(t, bundle.SmartMode.UsingShortRange)
	assert.Equal(t, 2, bundle.SmartMode.DaysUntilTrip)
	assert.Contains(t, bundle.SmartMode.Message, "精準預報")
}

func TestQueryAllIsAllOrNothing(t *testing.T) {
	fetcher := &fakeFetcher{
		responses: map[string]*models.RawForecastResponse{
			"F-D0047-003": responseFor("礁溪鄉", weeklyElements("2026-01-24")...),
		},
		errs: map[string]error{
			"F-B0053-031": errors.New("upstream returned HTTP 503"),
		},
	}
	svc := newTestService(t, fetcher, "2026-01-10")

	bundle := svc.QueryAll(context.Background())
	assert.False(t, bundle.Success)
	assert.NotEmpty(t, bundle.Error)
	assert.Nil(t, bundle.Jiaoxi)
	assert.Nil(t, bundle.Mountain)
	assert.Nil(t, bundle.SmartMode)
}
