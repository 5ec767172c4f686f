// history.go - Identification history: append-only copies of canonical records.

package storage

import (
	"fmt"
	"time"

	"github.com/agrisense/farm_assist_gemini/internal/identify"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HistoryEntry is one stored identification result. Entries are never
// mutated after creation except for the notes field, and notes may only be
// attached to a user's most recent entry.
type HistoryEntry struct {
	ID        string                        `bson:"id" json:"id"`
	UserID    string                        `bson:"user_id" json:"userId"`
	Record    identify.IdentificationRecord `bson:"record" json:"record"`
	ImagePath string                        `bson:"image_path,omitempty" json:"imagePath,omitempty"`
	Notes     string                        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time                     `bson:"created_at" json:"createdAt"`
}

// AppendHistory stores a copy of a canonical record for later browsing.
func AppendHistory(userID string, record *identify.IdentificationRecord, imagePath string) (*HistoryEntry, error) {
	ctx, cancel := queryContext()
	defer cancel()

	entry := &HistoryEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Record:    *record,
		ImagePath: imagePath,
		CreatedAt: time.Now(),
	}

	if _, err := mongoDB.Collection("identification_history").InsertOne(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append history: %w", err)
	}
	return entry, nil
}

// ListHistory returns a user's identification history, newest first.
func ListHistory(userID string) ([]HistoryEntry, error) {
	ctx, cancel := queryContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := mongoDB.Collection("identification_history").Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []HistoryEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return entries, nil
}

// AddNotesToLatest attaches user notes to the most recently added entry.
// This is the only post-creation mutation history entries allow.
func AddNotesToLatest(userID, notes string) error {
	ctx, cancel := queryContext()
	defer cancel()

	collection := mongoDB.Collection("identification_history")

	opts := options.FindOne().SetSort(bson.M{"created_at": -1})
	var latest HistoryEntry
	err := collection.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&latest)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("no identification history to annotate")
		}
		return fmt.Errorf("failed to find latest history entry: %w", err)
	}

	_, err = collection.UpdateOne(ctx,
		bson.M{"id": latest.ID},
		bson.M{"$set": bson.M{"notes": notes}})
	if err != nil {
		return fmt.Errorf("failed to add notes: %w", err)
	}
	return nil
}
