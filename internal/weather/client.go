// client.go - Weather provider client (Open-Meteo compatible API).

package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/agrisense/farm_assist_gemini/configs"
)

// Current holds the present conditions at the requested location.
type Current struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Code        int     `json:"code"`
	Condition   string  `json:"condition"`
}

// ForecastDay is one day of the short forecast.
type ForecastDay struct {
	Date      string  `json:"date"`
	TempMax   float64 `json:"tempMax"`
	TempMin   float64 `json:"tempMin"`
	Code      int     `json:"code"`
	Condition string  `json:"condition"`
}

// Bulletin is the weather payload served to the dashboard.
type Bulletin struct {
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Current   Current       `json:"current"`
	Forecast  []ForecastDay `json:"forecast"`
}

// Client fetches weather data from an Open-Meteo style endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client using the configured base URL and timeout.
func NewClient() *Client {
	return &Client{
		BaseURL: configs.WEATHER_API_URL,
		HTTPClient: &http.Client{
			Timeout: time.Duration(configs.WEATHER_TIMEOUT) * time.Second,
		},
	}
}

// upstream response shape (Open-Meteo field names)
type apiResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Current   struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		Time        []string  `json:"time"`
		TempMax     []float64 `json:"temperature_2m_max"`
		TempMin     []float64 `json:"temperature_2m_min"`
		WeatherCode []int     `json:"weather_code"`
	} `json:"daily"`
}

type apiError struct {
	Reason string `json:"reason"`
}

// Get fetches current conditions plus the multi-day forecast for a location.
func (c *Client) Get(ctx context.Context, lat, lon float64) (*Bulletin, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code")
	params.Set("daily", "temperature_2m_max,temperature_2m_min,weather_code")
	params.Set("forecast_days", strconv.Itoa(configs.FORECAST_DAYS))
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Reason != "" {
			return nil, fmt.Errorf("weather API error: %s", apiErr.Reason)
		}
		return nil, fmt.Errorf("weather API error: HTTP %d", resp.StatusCode)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	bulletin := &Bulletin{
		Latitude:  raw.Latitude,
		Longitude: raw.Longitude,
		Current: Current{
			Temperature: raw.Current.Temperature,
			Humidity:    raw.Current.Humidity,
			WindSpeed:   raw.Current.WindSpeed,
			Code:        raw.Current.WeatherCode,
			Condition:   ConditionFromCode(raw.Current.WeatherCode),
		},
	}

	for i, date := range raw.Daily.Time {
		day := ForecastDay{Date: date}
		if i < len(raw.Daily.TempMax) {
			day.TempMax = raw.Daily.TempMax[i]
		}
		if i < len(raw.Daily.TempMin) {
			day.TempMin = raw.Daily.TempMin[i]
		}
		if i < len(raw.Daily.WeatherCode) {
			day.Code = raw.Daily.WeatherCode[i]
			day.Condition = ConditionFromCode(day.Code)
		}
		bulletin.Forecast = append(bulletin.Forecast, day)
	}

	return bulletin, nil
}
