package identify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"not json",
		"{}",
		`{"status":"banana"}`,
		`{"status":"identified"}`,
		"{\"status\": \"identified\", \"name\": ",
		"null",
		"[1,2,3]",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			report := Render(in)
			assert.NotEmpty(t, report.Cards, "input %q", in)
		})
	}
}

func TestRenderMalformedInputYieldsErrorCard(t *testing.T) {
	report := Render("not json")
	require.Equal(t, StatusError, report.Status)
	require.Len(t, report.Cards, 1)
	assert.Equal(t, CardError, report.Cards[0].Kind)
	assert.Equal(t, "red", report.Cards[0].Tone)
}

func TestRenderHealthy(t *testing.T) {
	rec := &IdentificationRecord{Status: StatusHealthy, Message: "Looks good"}
	report := Render(rec.Serialize())

	require.Len(t, report.Cards, 1)
	assert.Equal(t, CardAffirmation, report.Cards[0].Kind)
	assert.Equal(t, "green", report.Cards[0].Tone)
	assert.Equal(t, []string{"Looks good"}, report.Cards[0].Lines)
}

func TestRenderErrorRecord(t *testing.T) {
	rec := ErrorRecord("model unavailable")
	report := Render(rec.Serialize())
	require.Equal(t, StatusError, report.Status)
	assert.Equal(t, CardError, report.Cards[0].Kind)
	assert.Contains(t, report.Cards[0].Lines[0], "model unavailable")
}

func TestRenderOmitsEmptySections(t *testing.T) {
	rec := &IdentificationRecord{
		Status:     StatusIdentified,
		Name:       "Rust",
		Confidence: 82,
		Kind:       KindDisease,
		// description, causes, controls and affected plants all empty
		Controls: &Controls{},
	}
	report := Render(rec.Serialize())

	require.Len(t, report.Cards, 1, "only the identity card should render")
	assert.Equal(t, CardIdentity, report.Cards[0].Kind)
}

func TestRenderConfidenceTones(t *testing.T) {
	cases := []struct {
		confidence int
		tone       string
	}{
		{95, "green"},
		{91, "green"},
		{90, "yellow"},
		{80, "yellow"},
		{76, "yellow"},
		{75, "red"},
		{10, "red"},
	}
	for _, tc := range cases {
		rec := &IdentificationRecord{Status: StatusIdentified, Name: "X", Confidence: tc.confidence}
		report := Render(rec.Serialize())
		assert.Equal(t, tc.tone, report.Cards[0].Tone, "confidence %d", tc.confidence)
	}
}

func TestRenderFullRecordOrderAndContent(t *testing.T) {
	rec := Normalize(&UpstreamResult{
		Name:           "Fall Armyworm",
		Confidence:     intPtr(92),
		Type:           "pest",
		Description:    "Feeds inside maize whorls.",
		Causes:         []string{"Warm dry spells"},
		PlantsAffected: []string{"Maize", "Sorghum"},
		ControlMeasures: UpstreamControls{
			Chemical: []UpstreamControlEntry{{Name: "Spinosad"}},
			Organic:  []UpstreamControlEntry{{Name: "Neem oil"}},
			Cultural: []string{"Early planting"},
		},
	})

	report := Render(rec.Serialize())
	require.Equal(t, StatusIdentified, report.Status)

	kinds := make([]string, 0, len(report.Cards))
	for _, c := range report.Cards {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []string{CardIdentity, CardDescription, CardCauses, CardControls, CardPlants}, kinds)

	controls := report.Cards[3]
	require.Len(t, controls.Sections, 3)
	assert.Equal(t, "Chemical Control", controls.Sections[0].Title)
	assert.Equal(t, "Organic Control", controls.Sections[1].Title)
	assert.Equal(t, "Cultural Practices", controls.Sections[2].Title)

	badge := report.Cards[0].Badges[0]
	assert.Contains(t, badge, "Pest")

	// flattened text used for chat history display
	assert.Contains(t, report.Text(), "Fall Armyworm")
}

func TestRenderReSanitizesDefensively(t *testing.T) {
	// a record that skipped the normalizer (e.g. written by an older client)
	rec := &IdentificationRecord{
		Status:      StatusIdentified,
		Name:        "**Aphids**",
		Confidence:  88,
		Kind:        KindPest,
		Description: "*tiny sap-sucking insects*",
	}
	report := Render(rec.Serialize())

	assert.Equal(t, "Aphids", report.Cards[0].Title)
	assert.Equal(t, "tiny sap-sucking insects", report.Cards[1].Lines[0])
}
