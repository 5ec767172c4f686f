// weather_handlers.go - Weather bulletin endpoint.

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetWeatherHandler handles GET /api/v1/weather?lat=&lon=.
func GetWeatherHandler(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat must be a number"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lon must be a number"})
		return
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}

	bulletin, err := weatherClient.Get(c.Request.Context(), lat, lon)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "failed to fetch weather",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, bulletin)
}
