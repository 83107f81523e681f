package forecast

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ycwang-tw/matcha-trip-weather/internal/config"
	"github.com/ycwang-tw/matcha-trip-weather/internal/models"
)

// ErrLocationNotFound reports a response that decoded fine but does not
// contain the expected location.
var ErrLocationNotFound = errors.New("location not found in dataset")

// Fetcher retrieves a raw forecast dataset.
type Fetcher interface {
	FetchDataset(ctx context.Context, datasetID string) (*models.RawForecastResponse, error)
}

// Store is the TTL cache contract the service depends on. Put is
// best-effort and must never fail the caller.
type Store interface {
	Get(key string, out interface{}) bool
	Put(key string, value interface{})
}

// Service composes dataset selection, retrieval, normalization and
// caching into the two public forecast queries.
type Service struct {
	fetcher Fetcher
	cache   Store
	cfg     *config.Config
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(fetcher Fetcher, cache Store, cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// QueryLocation returns the normalized forecast for one location,
// served from cache when fresh.
func (s *Service) QueryLocation(ctx context.Context, kind models.LocationKind) (*models.LocationResult, error) {
	mode := SelectMode(s.now(), s.cfg.Trip.TripDates)
	key := cacheKey(kind, mode)

	var cached []models.DayRecord
	if s.cache.Get(key, &cached) {
		s.logger.Debug("Cache hit for forecast",
			zap.String("location", string(kind)),
			zap.String("mode", string(mode)))
		return &models.LocationResult{Data: cached, Mode: mode}, nil
	}

	datasetID := s.datasetFor(kind, mode)
	s.logger.Debug("Cache miss for forecast, fetching dataset",
		zap.String("location", string(kind)),
		zap.String("dataset", datasetID))

	raw, err := s.fetcher.FetchDataset(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	days, err := s.parseLocation(raw, kind, mode)
	if err != nil {
		return nil, err
	}

	s.cache.Put(key, days)
	return &models.LocationResult{Data: days, Mode: mode}, nil
}

// QueryAll runs both location queries concurrently. The contract is
// all-or-nothing: any failure yields a failure bundle with neither
// location populated.
func (s *Service) QueryAll(ctx context.Context) *models.ForecastBundle {
	type locResult struct {
		kind models.LocationKind
		res  *models.LocationResult
		err  error
	}

	kinds := []models.LocationKind{models.LocationJiaoxi, models.LocationMountain}
	results := make(chan locResult, len(kinds))

	var wg sync.WaitGroup
	for _, kind := range kinds {
		wg.Add(1)
		go func(kind models.LocationKind) {
			defer wg.Done()
			res, err := s.QueryLocation(ctx, kind)
			results <- locResult{kind: kind, res: res, err: err}
		}(kind)
	}
	wg.Wait()
	close(results)

	bundle := &models.ForecastBundle{}
	var failure error
	for r := range results {
		if r.err != nil {
			failure = r.err
			continue
		}
		switch r.kind {
		case models.LocationJiaoxi:
			bundle.Jiaoxi = r.res.Data
		case models.LocationMountain:
			bundle.Mountain = r.res.Data
		}
	}

	if failure != nil {
		s.logger.Error("Combined forecast query failed", zap.Error(failure))
		return &models.ForecastBundle{
			Success: false,
			Error:   failure.Error(),
		}
	}

	now := s.now()
	bundle.Success = true
	bundle.LastUpdate = now.Format("2006/01/02 15:04:05")
	bundle.SmartMode = s.smartMode(now)
	return bundle
}

func (s *Service) smartMode(now time.Time) *models.SmartMode {
	days, _ := DaysUntilTrip(now, s.cfg.Trip.TripDates)
	usingShortRange := SelectMode(now, s.cfg.Trip.TripDates) == models.ModeShortRange

	message := fmt.Sprintf("距離行程 %d 天，使用一週預報", days)
	if usingShortRange {
		message = fmt.Sprintf("距離行程 %d 天，使用精準預報", days)
	}

	return &models.SmartMode{
		Enabled:         true,
		UsingShortRange: usingShortRange,
		DaysUntilTrip:   days,
		Message:         message,
	}
}

// parseLocation finds the configured location inside the raw response
// and normalizes its elements. The mountain location in short-range mode
// additionally gets the hiking-day hourly window attached.
func (s *Service) parseLocation(raw *models.RawForecastResponse, kind models.LocationKind, mode models.DatasetMode) ([]models.DayRecord, error) {
	name := s.cfg.CWA.LocationNames[kind]

	var loc *models.RawLocation
	for i := range raw.CwaOpenData.Dataset.Locations.Location {
		if raw.CwaOpenData.Dataset.Locations.Location[i].LocationName == name {
			loc = &raw.CwaOpenData.Dataset.Locations.Location[i]
			break
		}
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, name)
	}

	ctx := dayContext{
		tripDays:   dateSet(s.cfg.Trip.TripDates),
		hikingDays: dateSet(s.cfg.Trip.HikingDates),
		mountain:   kind == models.LocationMountain,
	}
	days := normalizeElements(loc.WeatherElement, ctx)

	if ctx.mountain && mode == models.ModeShortRange && len(s.cfg.Trip.HikingDates) > 0 {
		hours := extractHours(loc.WeatherElement, s.cfg.Trip.HikingDates[0])
		if len(hours) > 0 {
			for i := range days {
				if days[i].IsHikingDay {
					days[i].HourlyForecast = hours
				}
			}
		}
	}

	return days, nil
}

func (s *Service) datasetFor(kind models.LocationKind, mode models.DatasetMode) string {
	if mode == models.ModeShortRange {
		return s.cfg.CWA.ShortRangeDatasets[kind]
	}
	return s.cfg.CWA.WeeklyDatasets[kind]
}

func cacheKey(kind models.LocationKind, mode models.DatasetMode) string {
	return fmt.Sprintf("weather_%s_%s", kind, mode)
}

func dateSet(dates []string) map[string]struct{} {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}
