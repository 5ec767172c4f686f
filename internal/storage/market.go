// market.go - Commodity market price records.

package storage

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MarketPrice is one observed price for a commodity in a region.
type MarketPrice struct {
	Commodity  string    `bson:"commodity" json:"commodity"`
	Region     string    `bson:"region" json:"region"`
	Market     string    `bson:"market" json:"market"`
	Price      float64   `bson:"price" json:"price"`
	Unit       string    `bson:"unit" json:"unit"`
	Currency   string    `bson:"currency" json:"currency"`
	ObservedAt time.Time `bson:"observed_at" json:"observedAt"`
}

// ListMarketPrices returns prices filtered by commodity and region. Empty
// arguments match everything. Results are newest first.
func ListMarketPrices(commodity, region string) ([]MarketPrice, error) {
	ctx, cancel := queryContext()
	defer cancel()

	filter := bson.M{}
	if commodity != "" {
		filter["commodity"] = commodity
	}
	if region != "" {
		filter["region"] = region
	}

	opts := options.Find().SetSort(bson.M{"observed_at": -1})
	cursor, err := mongoDB.Collection("market_prices").Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query market prices: %w", err)
	}
	defer cursor.Close(ctx)

	prices := []MarketPrice{}
	if err := cursor.All(ctx, &prices); err != nil {
		return nil, fmt.Errorf("failed to decode market prices: %w", err)
	}
	return prices, nil
}

// ListCommodities returns the distinct commodity names present in the
// price collection, for the matcher's candidate list.
func ListCommodities() ([]string, error) {
	ctx, cancel := queryContext()
	defer cancel()

	values, err := mongoDB.Collection("market_prices").Distinct(ctx, "commodity", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list commodities: %w", err)
	}

	names := []string{}
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			names = append(names, s)
		}
	}
	return names, nil
}
