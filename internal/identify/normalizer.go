// normalizer.go - Converts raw vision-model output into the canonical record.

package identify

import "strings"

// Status messages for the collapsed healthy/error records.
const (
	healthyMessage      = "Good news! Your plant looks healthy. No disease or pest was detected."
	analysisFailedName  = "Analysis Failed"
	analysisErrorDetail = "The image could not be analyzed. Please retake the photo in good light, focus on the affected area, and try again."
)

// Templated control-method detail. The model is only trusted for the
// identity of a product; dosage and safety text is fixed for consistency.
const (
	templateActiveIngredient = "See product label"
	templateApplicationRate  = "1 ml/L water"
	templateMethod           = "Mix with clean water at the stated rate. Spray evenly over affected plants in the early morning or late evening. Repeat every 7-10 days until symptoms subside."
	templateChemicalSafety   = "Wear gloves, a mask and eye protection during application. Keep children and livestock away from treated areas until dry."
	templateOrganicSafety    = "Low toxicity. Wash hands and harvested produce before use."
	chemicalSafeDays         = 14
	organicSafeDays          = 0
)

// Fallback lists substituted when the model omits causes or affected plants.
var (
	fallbackCauses = []string{
		"High humidity and poor air circulation",
		"Overwatering or poor soil drainage",
		"Contaminated tools, seed or transplants",
		"Insect damage creating entry points for infection",
	}
	fallbackAffectedPlants = []string{
		"Tomato", "Maize", "Beans", "Peppers", "Potato",
	}
)

// Normalize produces the canonical IdentificationRecord from a raw model
// result. Totally malformed upstream payloads are handled one layer up by
// the caller, which substitutes a complete error record.
func Normalize(raw *UpstreamResult) *IdentificationRecord {
	loweredName := strings.ToLower(raw.Name)

	// Healthy collapses to just a status message.
	if strings.Contains(loweredName, "no disease") || strings.Contains(loweredName, "healthy") {
		return &IdentificationRecord{
			Status:  StatusHealthy,
			Message: healthyMessage,
		}
	}

	// Explicit failure from the model, or a zero confidence score.
	if raw.Name == analysisFailedName || (raw.Confidence != nil && *raw.Confidence == 0) {
		return &IdentificationRecord{
			Status:  StatusError,
			Message: analysisErrorDetail,
		}
	}

	confidence := FallbackConfidence()
	if raw.Confidence != nil {
		confidence = ClampConfidence(*raw.Confidence)
	}

	rec := &IdentificationRecord{
		Status:      StatusIdentified,
		Name:        StripEmphasis(raw.Name),
		Confidence:  confidence,
		Kind:        normalizeKind(raw.Type),
		Description: StripEmphasis(raw.Description),
		Causes:      stripEmphasisList(raw.Causes),
		Controls: &Controls{
			Chemical: normalizeControls(raw.ControlMeasures.Chemical, chemicalSafeDays, templateChemicalSafety),
			Organic:  normalizeControls(raw.ControlMeasures.Organic, organicSafeDays, templateOrganicSafety),
			Cultural: stripEmphasisList(raw.ControlMeasures.Cultural),
		},
		AffectedPlants: stripEmphasisList(raw.PlantsAffected),
	}

	// Never ship an empty causes or affected-plants section.
	if len(rec.Causes) == 0 {
		rec.Causes = append([]string(nil), fallbackCauses...)
	}
	if len(rec.AffectedPlants) == 0 {
		rec.AffectedPlants = append([]string(nil), fallbackAffectedPlants...)
	}

	return rec
}

// ErrorRecord builds a complete error record with a user-facing message.
// The session controller uses this when the upstream call itself failed.
func ErrorRecord(message string) *IdentificationRecord {
	if message == "" {
		message = analysisErrorDetail
	}
	return &IdentificationRecord{
		Status:  StatusError,
		Message: StripEmphasis(message),
	}
}

func normalizeKind(upstreamType string) string {
	switch {
	case strings.Contains(strings.ToLower(upstreamType), "pest"),
		strings.Contains(strings.ToLower(upstreamType), "insect"):
		return KindPest
	case strings.Contains(strings.ToLower(upstreamType), "plant"):
		return KindPlant
	default:
		return KindDisease
	}
}

// normalizeControls fills in templated detail for entries that arrive with
// only a bare product name, and strips emphasis markers everywhere.
func normalizeControls(entries []UpstreamControlEntry, safeDays int, safetyTemplate string) []ControlEntry {
	out := make([]ControlEntry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			continue
		}
		entry := ControlEntry{
			Name:             StripEmphasis(e.Name),
			ActiveIngredient: StripEmphasis(e.ActiveIngredient),
			ApplicationRate:  StripEmphasis(e.ApplicationRate),
			Method:           StripEmphasis(e.Method),
			SafeDays:         safeDays,
			Safety:           safetyTemplate,
		}
		if entry.ActiveIngredient == "" {
			entry.ActiveIngredient = templateActiveIngredient
		}
		if entry.ApplicationRate == "" {
			entry.ApplicationRate = templateApplicationRate
		}
		if entry.Method == "" {
			entry.Method = templateMethod
		}
		out = append(out, entry)
	}
	return out
}

func stripEmphasisList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		out = append(out, StripEmphasis(item))
	}
	return out
}
