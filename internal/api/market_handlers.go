// market_handlers.go - Commodity price lookup with fuzzy crop matching.

package api

import (
	"net/http"

	"github.com/agrisense/farm_assist_gemini/internal/market"
	"github.com/agrisense/farm_assist_gemini/internal/storage"
	"github.com/gin-gonic/gin"
)

// ListMarketPricesHandler handles GET /api/v1/market?crop=&region=.
// A crop query is resolved against known commodities with alias and fuzzy
// matching, so "corn" and "tomatoes" both find the right price list.
func ListMarketPricesHandler(c *gin.Context) {
	crop := c.Query("crop")
	region := c.Query("region")

	commodity := ""
	var match market.MatchResult
	if crop != "" {
		commodities, err := storage.ListCommodities()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "failed to load commodity list",
				"details": err.Error(),
			})
			return
		}

		match = market.MatchCommodity(crop, commodities)
		if !match.Found {
			c.JSON(http.StatusOK, gin.H{
				"prices": []storage.MarketPrice{},
				"match":  match,
			})
			return
		}
		commodity = match.Commodity
	}

	prices, err := storage.GetOrLoadMarketPrices(commodity, region)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to load market prices",
			"details": err.Error(),
		})
		return
	}

	response := gin.H{"prices": prices}
	if crop != "" {
		response["match"] = match
	}
	c.JSON(http.StatusOK, response)
}
