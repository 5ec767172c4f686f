// inventory.go - Farm input and produce records.

package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Inventory record kinds: purchased inputs vs harvested outputs.
const (
	InventoryInput  = "input"
	InventoryOutput = "output"
)

// InventoryItem is a single input or output record.
type InventoryItem struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"user_id" json:"userId"`
	Kind       string    `bson:"kind" json:"kind"`
	Name       string    `bson:"name" json:"name"`
	Quantity   float64   `bson:"quantity" json:"quantity"`
	Unit       string    `bson:"unit" json:"unit"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	RecordedAt time.Time `bson:"recorded_at" json:"recordedAt"`
}

// CreateInventoryItem inserts an inventory record.
func CreateInventoryItem(item *InventoryItem) error {
	ctx, cancel := queryContext()
	defer cancel()

	if item.Kind != InventoryInput && item.Kind != InventoryOutput {
		return fmt.Errorf("invalid inventory kind: %s", item.Kind)
	}

	item.ID = uuid.New().String()
	item.RecordedAt = time.Now()

	if _, err := mongoDB.Collection("inventory").InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

// ListInventory returns a user's records of one kind, newest first.
func ListInventory(userID, kind string) ([]InventoryItem, error) {
	ctx, cancel := queryContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"recorded_at": -1})
	cursor, err := mongoDB.Collection("inventory").Find(ctx, bson.M{"user_id": userID, "kind": kind}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer cursor.Close(ctx)

	items := []InventoryItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode inventory: %w", err)
	}
	return items, nil
}

// DeleteInventoryItem removes a record the user owns.
func DeleteInventoryItem(userID, itemID string) error {
	ctx, cancel := queryContext()
	defer cancel()

	result, err := mongoDB.Collection("inventory").DeleteOne(ctx, bson.M{"id": itemID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("inventory item not found: %s", itemID)
	}
	return nil
}
