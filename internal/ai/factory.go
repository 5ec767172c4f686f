// factory.go - Provider factory, selected once at startup.

package ai

import (
	"fmt"
	"log"

	"github.com/agrisense/farm_assist_gemini/configs"
)

// CreateProvider creates the AI provider named by configuration. An absent
// Gemini API key selects the mock provider so development environments keep
// working with canned identification data.
func CreateProvider() (Provider, error) {
	switch configs.AI_PROVIDER {
	case "gemini":
		log.Printf("🔵 Creating Gemini AI provider (model: %s)", configs.MODEL_NAME)
		return NewGeminiProvider(configs.GEMINI_API_KEY, configs.MODEL_NAME, configs.VISION_MODEL), nil

	case "mock":
		log.Printf("🔷 Creating mock AI provider")
		return NewMockProvider(), nil

	default:
		return nil, fmt.Errorf("unsupported AI provider: %s (supported: gemini, mock)", configs.AI_PROVIDER)
	}
}
