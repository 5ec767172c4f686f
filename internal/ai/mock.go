// mock.go - Canned-data provider used when no Gemini API key is configured.

package ai

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/agrisense/farm_assist_gemini/internal/common"
	"github.com/agrisense/farm_assist_gemini/internal/identify"
)

// MockProvider serves fixed identification data and keyword-based chat
// answers. It mirrors the behavior the prompts ask the live model for, so
// the rest of the pipeline is exercised unchanged.
type MockProvider struct{}

// NewMockProvider creates the mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// GetProviderName returns "mock".
func (p *MockProvider) GetProviderName() string {
	return "mock"
}

func mockConfidence(v int) *int { return &v }

// IdentifyImage returns a canned pest result, or a healthy result when the
// filename hints at one (useful in development and demos).
func (p *MockProvider) IdentifyImage(imagePath string, reqCtx *common.RequestContext) (*identify.UpstreamResult, *common.TokenUsage, error) {
	if reqCtx != nil {
		reqCtx.LogInfo("mock provider: serving canned identification data")
	}

	name := strings.ToLower(filepath.Base(imagePath))
	if strings.Contains(name, "healthy") {
		return &identify.UpstreamResult{
			Name:        "Healthy",
			Confidence:  mockConfidence(97),
			Type:        "plant",
			Description: "The leaves show even color with no lesions or insect damage.",
		}, nil, nil
	}

	return &identify.UpstreamResult{
		Name:           "Fall Armyworm",
		Confidence:     mockConfidence(92),
		Type:           "pest",
		Description:    "A caterpillar pest that feeds inside maize whorls, leaving ragged holes and sawdust-like frass.",
		Causes:         []string{"Moth migration during warm dry spells", "Late planting relative to neighboring fields"},
		PlantsAffected: []string{"Maize", "Sorghum", "Rice", "Sugarcane"},
		ControlMeasures: identify.UpstreamControls{
			Chemical: []identify.UpstreamControlEntry{
				{Name: "Spinosad"},
				{Name: "Emamectin benzoate"},
			},
			Organic: []identify.UpstreamControlEntry{
				{Name: "Neem oil"},
				{Name: "Bacillus thuringiensis (Bt)"},
			},
			Cultural: []string{
				"Plant early and at the same time as neighboring farms",
				"Hand-pick and destroy egg masses and young larvae",
				"Intercrop maize with desmodium to repel moths",
			},
		},
	}, nil, nil
}

// AnswerQuery applies the same in-domain rule the chat prompt gives the live
// model, then returns a short canned answer.
func (p *MockProvider) AnswerQuery(ctx context.Context, query string, reqCtx *common.RequestContext) (string, *common.TokenUsage, error) {
	if !identify.IsInDomain(query) {
		return identify.RefusalMessage, nil, nil
	}
	return "Scout your field twice a week and treat affected plants early. " +
		"For a precise recommendation, add a photo of the affected plant so I can identify the problem first.", nil, nil
}
