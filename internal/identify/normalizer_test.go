package identify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestNormalizeHealthy(t *testing.T) {
	rec := Normalize(&UpstreamResult{
		Name:       "Healthy",
		Confidence: intPtr(95),
		Type:       "plant",
	})

	assert.Equal(t, StatusHealthy, rec.Status)
	assert.NotEmpty(t, rec.Message)
	// healthy collapses to just a status message
	assert.Empty(t, rec.Name)
	assert.Zero(t, rec.Confidence)
	assert.Nil(t, rec.Controls)
	assert.Empty(t, rec.Causes)
}

func TestNormalizeNoDiseaseDetected(t *testing.T) {
	rec := Normalize(&UpstreamResult{Name: "No disease detected", Confidence: intPtr(88)})
	assert.Equal(t, StatusHealthy, rec.Status)
}

func TestNormalizeAnalysisFailed(t *testing.T) {
	rec := Normalize(&UpstreamResult{Name: "Analysis Failed", Confidence: intPtr(0)})
	assert.Equal(t, StatusError, rec.Status)
	assert.NotEmpty(t, rec.Message)
}

func TestNormalizeZeroConfidenceIsError(t *testing.T) {
	rec := Normalize(&UpstreamResult{Name: "Late Blight", Confidence: intPtr(0)})
	assert.Equal(t, StatusError, rec.Status)
}

func TestNormalizeOmittedConfidenceGetsFallback(t *testing.T) {
	for i := 0; i < 50; i++ {
		rec := Normalize(&UpstreamResult{Name: "Late Blight", Type: "disease"})
		require.Equal(t, StatusIdentified, rec.Status)
		assert.GreaterOrEqual(t, rec.Confidence, FallbackConfidenceMin)
		assert.LessOrEqual(t, rec.Confidence, FallbackConfidenceMax)
	}
}

func TestNormalizeClampsConfidence(t *testing.T) {
	rec := Normalize(&UpstreamResult{Name: "Rust", Confidence: intPtr(250)})
	assert.Equal(t, 100, rec.Confidence)
}

func TestNormalizeStripsEmphasisEverywhere(t *testing.T) {
	raw := &UpstreamResult{
		Name:           "**Fall Armyworm**",
		Confidence:     intPtr(92),
		Type:           "*pest*",
		Description:    "A *destructive* caterpillar that feeds on **maize** leaves.",
		Causes:         []string{"*Warm weather*", "**Migration** from nearby fields"},
		PlantsAffected: []string{"**Maize**", "*Sorghum*"},
		ControlMeasures: UpstreamControls{
			Chemical: []UpstreamControlEntry{{
				Name:             "*Lambda-cyhalothrin*",
				ActiveIngredient: "**lambda-cyhalothrin 5%**",
				ApplicationRate:  "*2 ml/L*",
				Method:           "Spray on **whorls**",
			}},
			Organic:  []UpstreamControlEntry{{Name: "**Neem oil**"}},
			Cultural: []string{"*Early planting*", "Hand-pick **egg masses**"},
		},
	}

	rec := Normalize(raw)
	require.Equal(t, StatusIdentified, rec.Status)

	// the single normalization pass all downstream consumers rely on:
	// zero emphasis markers anywhere, recursively
	assert.NotContains(t, rec.Serialize(), "*")
	assert.Equal(t, "Fall Armyworm", rec.Name)
	assert.Equal(t, KindPest, rec.Kind)
}

func TestNormalizeSynthesizesControlTemplates(t *testing.T) {
	raw := &UpstreamResult{
		Name:       "Tomato Leaf Miner",
		Confidence: intPtr(85),
		Type:       "pest",
		ControlMeasures: UpstreamControls{
			Chemical: []UpstreamControlEntry{{Name: "Spinosad"}},
			Organic:  []UpstreamControlEntry{{Name: "Neem extract"}},
		},
	}

	rec := Normalize(raw)
	require.NotNil(t, rec.Controls)
	require.Len(t, rec.Controls.Chemical, 1)
	require.Len(t, rec.Controls.Organic, 1)

	chem := rec.Controls.Chemical[0]
	assert.Equal(t, "Spinosad", chem.Name)
	assert.Equal(t, "1 ml/L water", chem.ApplicationRate)
	assert.Equal(t, 14, chem.SafeDays)
	assert.NotEmpty(t, chem.ActiveIngredient)
	assert.NotEmpty(t, chem.Method)
	assert.Contains(t, chem.Safety, "gloves")

	org := rec.Controls.Organic[0]
	assert.Equal(t, 0, org.SafeDays)
	assert.NotEmpty(t, org.Safety)
}

func TestNormalizeKeepsUpstreamDetailWhenPresent(t *testing.T) {
	raw := &UpstreamResult{
		Name:       "Powdery Mildew",
		Confidence: intPtr(80),
		ControlMeasures: UpstreamControls{
			Chemical: []UpstreamControlEntry{{
				Name:            "Sulfur dust",
				ApplicationRate: "3 g/L water",
			}},
		},
	}
	rec := Normalize(raw)
	assert.Equal(t, "3 g/L water", rec.Controls.Chemical[0].ApplicationRate)
}

func TestNormalizeFallbackLists(t *testing.T) {
	rec := Normalize(&UpstreamResult{Name: "Leaf Spot", Confidence: intPtr(77)})

	assert.NotEmpty(t, rec.Causes, "causes must never be empty for identified records")
	assert.NotEmpty(t, rec.AffectedPlants)
	for _, c := range rec.Causes {
		assert.False(t, strings.Contains(c, "*"))
	}
}

func TestErrorRecord(t *testing.T) {
	rec := ErrorRecord("upstream said **no**")
	assert.Equal(t, StatusError, rec.Status)
	assert.Equal(t, "upstream said no", rec.Message)

	rec = ErrorRecord("")
	assert.NotEmpty(t, rec.Message)
}
