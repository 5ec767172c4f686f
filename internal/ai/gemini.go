// gemini.go - Gemini provider: vision identification and chat answers.

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/agrisense/farm_assist_gemini/configs"
	"github.com/agrisense/farm_assist_gemini/internal/common"
	"github.com/agrisense/farm_assist_gemini/internal/identify"
	"github.com/agrisense/farm_assist_gemini/internal/processor"
	"github.com/agrisense/farm_assist_gemini/internal/ratelimit"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider calls the Gemini API for identification and chat.
type GeminiProvider struct {
	apiKey      string
	chatModel   string
	visionModel string
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(apiKey, chatModel, visionModel string) *GeminiProvider {
	return &GeminiProvider{
		apiKey:      apiKey,
		chatModel:   chatModel,
		visionModel: visionModel,
	}
}

// GetProviderName returns "gemini".
func (p *GeminiProvider) GetProviderName() string {
	return "gemini"
}

// IdentifyImage sends the photo to Gemini Vision with a JSON response schema
// and decodes the raw identification result.
func (p *GeminiProvider) IdentifyImage(imagePath string, reqCtx *common.RequestContext) (*identify.UpstreamResult, *common.TokenUsage, error) {
	// Step 1: Preprocess the image (resize, sharpen, contrast)
	reqCtx.StartSubStep("image_preprocessing")
	imageData, mimeType, err := processor.PreprocessImage(imagePath)
	reqCtx.EndSubStep("")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to prepare image: %w", err)
	}
	reqCtx.LogInfo("📄 Image size: %d bytes (%.2f MB)", len(imageData), float64(len(imageData))/(1024*1024))

	// Step 2: Initialize the Gemini client
	reqCtx.StartSubStep("init_gemini_client")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.IDENTIFY_TIMEOUT)*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.visionModel)
	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: ptr(int32(configs.MAX_OUTPUT_TOKENS)),
		Temperature:     float32Ptr(float32(configs.IDENTIFY_TEMPERATURE)),
	}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = identificationSchema()
	reqCtx.EndSubStep("")

	// Step 3: Call the API with retry, behind the shared rate limit
	reqCtx.StartSubStep("call_gemini_api")
	ratelimit.WaitForRateLimit()
	resp, err := callGeminiWithRetry(ctx, model, reqCtx, DefaultRetryConfig,
		genai.Text(GetIdentifyPrompt()),
		genai.Blob{MIMEType: mimeType, Data: imageData},
	)
	if err != nil {
		reqCtx.EndSubStep("❌ FAILED")
		return nil, nil, err
	}
	reqCtx.EndSubStep("")

	// Step 4: Decode the JSON payload
	reqCtx.StartSubStep("parse_json_response")
	jsonResponse, err := responseText(resp)
	if err != nil {
		reqCtx.EndSubStep("❌ EMPTY")
		return nil, nil, err
	}

	jsonResponse = stripMarkdownFences(jsonResponse)
	jsonResponse = fixJSONEscaping(jsonResponse)

	var result identify.UpstreamResult
	if err := json.Unmarshal([]byte(jsonResponse), &result); err != nil {
		reqCtx.EndSubStep("❌ JSON PARSE FAILED")
		preview := jsonResponse
		if len(preview) > 500 {
			preview = preview[:500] + "... (truncated)"
		}
		reqCtx.LogWarning("Failed to parse identification response. Preview: %s", preview)
		return nil, nil, fmt.Errorf("failed to parse identification response: %w", err)
	}
	reqCtx.EndSubStep("")

	return &result, usageFromResponse(resp), nil
}

// AnswerQuery asks the chat model a free-text question. The prompt instructs
// the model to refuse non-farming questions with the fixed refusal sentence.
func (p *GeminiProvider) AnswerQuery(ctx context.Context, query string, reqCtx *common.RequestContext) (string, *common.TokenUsage, error) {
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(configs.CHAT_TIMEOUT)*time.Second)
	defer cancel()

	client, err := genai.NewClient(callCtx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.chatModel)
	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: ptr(int32(configs.MAX_OUTPUT_TOKENS)),
		Temperature:     float32Ptr(float32(configs.CHAT_TEMPERATURE)),
		TopK:            ptr(int32(40)),
		TopP:            float32Ptr(0.95),
	}

	ratelimit.WaitForRateLimit()
	resp, err := callGeminiWithRetry(callCtx, model, reqCtx, DefaultRetryConfig,
		genai.Text(GetChatPrompt(query)),
	)
	if err != nil {
		return "", nil, err
	}

	answer, err := responseText(resp)
	if err != nil {
		return "", nil, err
	}

	return answer, usageFromResponse(resp), nil
}

// identificationSchema mirrors identify.UpstreamResult.
func identificationSchema() *genai.Schema {
	controlEntrySchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {
				Type:        genai.TypeString,
				Description: "Product or treatment name only, no dosage",
			},
		},
		Required: []string{"name"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {
				Type:        genai.TypeString,
				Description: "Common name of the pest or disease, 'Healthy' for a healthy plant, or 'Analysis Failed'",
			},
			"confidence": {
				Type:        genai.TypeInteger,
				Description: "Confidence 1-100. 0 only when analysis failed",
			},
			"type": {
				Type:        genai.TypeString,
				Description: "One of: plant, pest, disease",
				Enum:        []string{"plant", "pest", "disease"},
			},
			"description": {
				Type:        genai.TypeString,
				Description: "Short plain-text description of the finding",
			},
			"causes": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"plants_affected": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"control_measures": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"chemical": {Type: genai.TypeArray, Items: controlEntrySchema},
					"organic":  {Type: genai.TypeArray, Items: controlEntrySchema},
					"cultural": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
			},
		},
		Required: []string{"name", "confidence", "type", "description"},
	}
}

// responseText pulls the first text part out of a Gemini response.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && string(text) != "" {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("empty response from Gemini API")
}

// usageFromResponse converts response metadata to a cost-annotated usage.
func usageFromResponse(resp *genai.GenerateContentResponse) *common.TokenUsage {
	if resp.UsageMetadata == nil {
		return nil
	}
	usage := common.CalculateTokenCost(
		int(resp.UsageMetadata.PromptTokenCount),
		int(resp.UsageMetadata.CandidatesTokenCount),
	)
	return &usage
}

// stripMarkdownFences removes ```json ... ``` wrappers the model sometimes
// adds despite the JSON response MIME type.
func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

var jsonStringRe = regexp.MustCompile(`"([^"]*(?:\\.[^"]*)*)"`)

// fixJSONEscaping escapes literal control characters inside JSON string
// values. Gemini occasionally emits raw newlines or tabs inside strings,
// which Go's JSON parser rejects.
func fixJSONEscaping(jsonStr string) string {
	return jsonStringRe.ReplaceAllStringFunc(jsonStr, func(match string) string {
		if len(match) < 2 {
			return match
		}
		content := match[1 : len(match)-1]

		content = strings.ReplaceAll(content, "\\ ", "\\\\ ")
		content = strings.ReplaceAll(content, "\n", "\\n")
		content = strings.ReplaceAll(content, "\r", "\\r")
		content = strings.ReplaceAll(content, "\t", "\\t")

		var builder strings.Builder
		for _, ch := range content {
			if ch < 0x20 {
				builder.WriteString(fmt.Sprintf("\\u%04x", ch))
			} else {
				builder.WriteRune(ch)
			}
		}
		return `"` + builder.String() + `"`
	})
}

func ptr(i int32) *int32 {
	return &i
}

func float32Ptr(f float32) *float32 {
	return &f
}
