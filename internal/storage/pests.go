// pests.go - Manually entered pest tracking records and their filters.

package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PestRecord is a manually entered sighting, not an AI identification.
// Date is free text with a lenient parse; records are read-only after
// creation.
type PestRecord struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"user_id" json:"userId"`
	Name           string    `bson:"name" json:"name"`
	Date           string    `bson:"date" json:"date"`
	Location       string    `bson:"location" json:"location"`
	AffectedPlants string    `bson:"affected_plants" json:"affectedPlants"`
	TreatmentPlan  string    `bson:"treatment_plan" json:"treatmentPlan"`
	Notes          string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}

// PestFilter selects records by substring, location and date.
type PestFilter struct {
	Query    string
	Location string
	Date     string
}

// CreatePestRecord inserts a sighting.
func CreatePestRecord(record *PestRecord) error {
	ctx, cancel := queryContext()
	defer cancel()

	record.ID = uuid.New().String()
	record.CreatedAt = time.Now()

	if _, err := mongoDB.Collection("pest_records").InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to create pest record: %w", err)
	}
	return nil
}

// ListPestRecords returns a user's sightings matching the filter, newest
// first. Filtering happens in memory after the fetch, mirroring the lenient
// substring semantics of the dashboard.
func ListPestRecords(userID string, filter PestFilter) ([]PestRecord, error) {
	ctx, cancel := queryContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := mongoDB.Collection("pest_records").Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query pest records: %w", err)
	}
	defer cursor.Close(ctx)

	all := []PestRecord{}
	if err := cursor.All(ctx, &all); err != nil {
		return nil, fmt.Errorf("failed to decode pest records: %w", err)
	}

	return FilterPestRecords(all, filter), nil
}

// FilterPestRecords applies the substring/location/date filter.
func FilterPestRecords(records []PestRecord, filter PestFilter) []PestRecord {
	out := []PestRecord{}
	for _, r := range records {
		if !matchesSubstring(filter.Query, r.Name, r.AffectedPlants, r.TreatmentPlan, r.Notes) {
			continue
		}
		if filter.Location != "" && !containsFold(r.Location, filter.Location) {
			continue
		}
		if filter.Date != "" && !matchesDate(r.Date, filter.Date) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSubstring(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	for _, f := range fields {
		if containsFold(f, query) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Accepted date layouts, tried in order.
var lenientDateFormats = []string{
	"02/01/2006", // DD/MM/YYYY
	"2/1/2006",   // D/M/YYYY
	"02-01-2006", // DD-MM-YYYY
	"2006-01-02", // YYYY-MM-DD
}

// ParseLenientDate parses a free-text date. ok is false when no layout
// matches; callers then fall back to substring comparison.
func ParseLenientDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range lenientDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// matchesDate compares two free-text dates by calendar day when both parse,
// by substring otherwise.
func matchesDate(recordDate, filterDate string) bool {
	rt, rok := ParseLenientDate(recordDate)
	ft, fok := ParseLenientDate(filterDate)
	if rok && fok {
		ry, rm, rd := rt.Date()
		fy, fm, fd := ft.Date()
		return ry == fy && rm == fm && rd == fd
	}
	return containsFold(recordDate, filterDate)
}
