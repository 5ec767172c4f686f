// record.go - Canonical identification record and the upstream result shape.

package identify

import "encoding/json"

// Record status values. Every record carries exactly one of these and the
// renderer branches on it.
const (
	StatusHealthy    = "healthy"
	StatusIdentified = "identified"
	StatusError      = "error"
)

// Kind values for an identified subject.
const (
	KindPlant   = "plant"
	KindPest    = "pest"
	KindDisease = "disease"
)

// ControlEntry is a single chemical or organic control method. Dosage and
// safety text is templated, never taken from the model (see normalizer.go).
type ControlEntry struct {
	Name             string `json:"name"`
	ActiveIngredient string `json:"activeIngredient"`
	ApplicationRate  string `json:"applicationRate"`
	Method           string `json:"method"`
	SafeDays         int    `json:"safeDays"`
	Safety           string `json:"safety"`
}

// Controls groups control methods into the three fixed subsections.
type Controls struct {
	Chemical []ControlEntry `json:"chemical"`
	Organic  []ControlEntry `json:"organic"`
	Cultural []string       `json:"cultural"`
}

// IdentificationRecord is the canonical normalized result. All string fields
// are free of emphasis markers after normalization; the renderer depends on
// that but re-sanitizes defensively anyway.
type IdentificationRecord struct {
	Status         string    `json:"status"`
	Message        string    `json:"message,omitempty"`
	Name           string    `json:"name,omitempty"`
	Confidence     int       `json:"confidence,omitempty"`
	Kind           string    `json:"kind,omitempty"`
	Description    string    `json:"description,omitempty"`
	Causes         []string  `json:"causes,omitempty"`
	Controls       *Controls `json:"controls,omitempty"`
	AffectedPlants []string  `json:"affectedPlants,omitempty"`
}

// Serialize returns the record as JSON text, the form it travels in inside
// an assistant message and in the history collection.
func (r *IdentificationRecord) Serialize() string {
	data, err := json.Marshal(r)
	if err != nil {
		// Marshal of this struct cannot fail; keep the renderer total anyway.
		return `{"status":"error","message":"failed to encode identification record"}`
	}
	return string(data)
}

// ParseRecord decodes serialized record text. Failure is an ordinary value
// consumed by the renderer's error card path, never a panic.
func ParseRecord(text string) (*IdentificationRecord, error) {
	var rec IdentificationRecord
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// --- Upstream shape (what the vision model returns) ---

// UpstreamControlEntry is a control method as reported by the model. Only
// the name is trusted; everything else is optional and replaced by templates
// when absent.
type UpstreamControlEntry struct {
	Name             string `json:"name"`
	ActiveIngredient string `json:"active_ingredient,omitempty"`
	ApplicationRate  string `json:"application_rate,omitempty"`
	Method           string `json:"method,omitempty"`
	Safety           string `json:"safety,omitempty"`
}

// UpstreamControls mirrors the control_measures object of the model schema.
type UpstreamControls struct {
	Chemical []UpstreamControlEntry `json:"chemical"`
	Organic  []UpstreamControlEntry `json:"organic"`
	Cultural []string               `json:"cultural"`
}

// UpstreamResult is the raw identification payload from the vision model.
// Confidence is a pointer so an omitted field is distinguishable from an
// explicit zero (zero means the analysis failed).
type UpstreamResult struct {
	Name            string           `json:"name"`
	Confidence      *int             `json:"confidence"`
	Type            string           `json:"type"`
	Description     string           `json:"description"`
	Causes          []string         `json:"causes"`
	PlantsAffected  []string         `json:"plants_affected"`
	ControlMeasures UpstreamControls `json:"control_measures"`
}
