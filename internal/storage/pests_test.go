package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func samplePestRecords() []PestRecord {
	return []PestRecord{
		{Name: "Fall Armyworm", Date: "12/03/2026", Location: "North field", AffectedPlants: "Maize", TreatmentPlan: "Spray emamectin benzoate"},
		{Name: "Aphids", Date: "2026-03-12", Location: "Greenhouse", AffectedPlants: "Tomato", TreatmentPlan: "Neem oil"},
		{Name: "Cutworm", Date: "01-04-2026", Location: "North field", AffectedPlants: "Cabbage", TreatmentPlan: "Hand picking", Notes: "seen at dusk"},
	}
}

func TestFilterPestRecordsNoFilter(t *testing.T) {
	records := samplePestRecords()
	assert.Len(t, FilterPestRecords(records, PestFilter{}), 3)
}

func TestFilterPestRecordsSubstring(t *testing.T) {
	records := samplePestRecords()

	out := FilterPestRecords(records, PestFilter{Query: "armyworm"})
	assert.Len(t, out, 1)
	assert.Equal(t, "Fall Armyworm", out[0].Name)

	// Matches across fields, not just the name
	out = FilterPestRecords(records, PestFilter{Query: "dusk"})
	assert.Len(t, out, 1)
	assert.Equal(t, "Cutworm", out[0].Name)

	assert.Empty(t, FilterPestRecords(records, PestFilter{Query: "locust"}))
}

func TestFilterPestRecordsLocation(t *testing.T) {
	records := samplePestRecords()

	out := FilterPestRecords(records, PestFilter{Location: "north"})
	assert.Len(t, out, 2)
}

func TestFilterPestRecordsDateAcrossFormats(t *testing.T) {
	records := samplePestRecords()

	// DD/MM/YYYY and YYYY-MM-DD refer to the same day
	out := FilterPestRecords(records, PestFilter{Date: "12/03/2026"})
	assert.Len(t, out, 2)

	out = FilterPestRecords(records, PestFilter{Date: "2026-04-01"})
	assert.Len(t, out, 1)
	assert.Equal(t, "Cutworm", out[0].Name)
}

func TestParseLenientDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"12/03/2026", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), true},
		{"2/1/2026", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"12-03-2026", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), true},
		{"2026-03-12", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), true},
		{"  2026-03-12  ", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), true},
		{"next tuesday", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseLenientDate(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.True(t, got.Equal(tt.want), "input %q: got %v", tt.input, got)
		}
	}
}
