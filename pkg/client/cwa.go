package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/ycwang-tw/matcha-trip-weather/internal/models"
)

// CWAClient fetches forecast datasets from the CWA open data fileapi.
type CWAClient struct {
	*BaseClient
	baseURL string
	apiKey  string
}

func NewCWAClient(baseURL, apiKey string, config ClientConfig, logger *zap.Logger) *CWAClient {
	baseClient := NewBaseClient("cwa", config, logger)
	return &CWAClient{
		BaseClient: baseClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// FetchDataset downloads and decodes one forecast dataset.
func (c *CWAClient) FetchDataset(ctx context.Context, datasetID string) (*models.RawForecastResponse, error) {
	endpoint := fmt.Sprintf("%s/fileapi/v1/opendataapi/%s?Authorization=%s&downloadType=WEB&format=JSON",
		c.baseURL, url.PathEscape(datasetID), url.QueryEscape(c.apiKey))

	data, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset %s: %w", datasetID, err)
	}

	var response models.RawForecastResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s response: %w", datasetID, err)
	}

	return &response, nil
}
