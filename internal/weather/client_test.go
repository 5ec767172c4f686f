package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionFromCode(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{0, ConditionClear},
		{1, ConditionCloudy},
		{3, ConditionCloudy},
		{45, ConditionFog},
		{48, ConditionFog},
		{51, ConditionRain},
		{61, ConditionRain},
		{67, ConditionRain},
		{71, ConditionSnow},
		{80, ConditionRain},
		{85, ConditionSnow},
		{95, ConditionThunderstorm},
		{99, ConditionThunderstorm},
		{42, ConditionUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ConditionFromCode(tc.code), "code %d", tc.code)
	}
}

func TestClientGet(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-1.2921", r.URL.Query().Get("latitude"))
		assert.Equal(t, "36.8219", r.URL.Query().Get("longitude"))
		assert.NotEmpty(t, r.URL.Query().Get("daily"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"latitude": -1.29,
			"longitude": 36.82,
			"current": {"temperature_2m": 24.5, "relative_humidity_2m": 61, "wind_speed_10m": 14.2, "weather_code": 3},
			"daily": {
				"time": ["2026-09-01", "2026-09-02"],
				"temperature_2m_max": [26.1, 27.3],
				"temperature_2m_min": [14.0, 15.2],
				"weather_code": [61, 95]
			}
		}`))
	}))
	defer ts.Close()

	client := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	bulletin, err := client.Get(context.Background(), -1.2921, 36.8219)
	require.NoError(t, err)

	assert.Equal(t, 24.5, bulletin.Current.Temperature)
	assert.Equal(t, ConditionCloudy, bulletin.Current.Condition)

	require.Len(t, bulletin.Forecast, 2)
	assert.Equal(t, "2026-09-01", bulletin.Forecast[0].Date)
	assert.Equal(t, 26.1, bulletin.Forecast[0].TempMax)
	assert.Equal(t, ConditionRain, bulletin.Forecast[0].Condition)
	assert.Equal(t, ConditionThunderstorm, bulletin.Forecast[1].Condition)
}

func TestClientGetSurfacesAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": true, "reason": "Latitude must be in range of -90 to 90"}`))
	}))
	defer ts.Close()

	client := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := client.Get(context.Background(), 500, 36)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Latitude must be in range")
}
