// gemini_retry.go - Retry logic and error categorization for Gemini calls.

package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/agrisense/farm_assist_gemini/internal/common"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
)

// RetryConfig defines retry behavior for Gemini API calls.
type RetryConfig struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffMultiple float64
}

// DefaultRetryConfig provides sensible defaults for retry behavior.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:     3,
	InitialDelay:    1 * time.Second,
	MaxDelay:        8 * time.Second,
	BackoffMultiple: 2.0,
}

// GeminiError is a categorized Gemini API error.
type GeminiError struct {
	OriginalError error
	Category      string
	StatusCode    int
	Message       string
	Retryable     bool
}

func (e *GeminiError) Error() string {
	return fmt.Sprintf("[%s] %s (status: %d, retryable: %v)", e.Category, e.Message, e.StatusCode, e.Retryable)
}

// UserMessage returns the short explanation surfaced to the client.
func (e *GeminiError) UserMessage() string {
	switch e.Category {
	case "rate_limit":
		return "Too many requests. Please wait a moment and try again."
	case "quota_exceeded":
		return "The daily AI quota has been reached. Please try again later."
	case "unauthorized", "forbidden":
		return "AI service authentication failed. Please contact support."
	case "payload_too_large":
		return "The image is too large. Please upload a smaller photo."
	case "timeout":
		return "The request took too long. Please try again."
	case "server_error", "network_error":
		return "The AI service is temporarily unavailable. Please try again in a few minutes."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// categorizeGeminiError analyzes an error and decides the retry strategy.
func categorizeGeminiError(err error) *GeminiError {
	if err == nil {
		return nil
	}

	geminiErr := &GeminiError{
		OriginalError: err,
		Category:      "unknown",
		Message:       err.Error(),
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		geminiErr.StatusCode = apiErr.Code

		switch apiErr.Code {
		case 400:
			geminiErr.Category = "bad_request"
			geminiErr.Message = "Invalid request format or parameters"
		case 401:
			geminiErr.Category = "unauthorized"
			geminiErr.Message = "Invalid API key or authentication failed"
		case 403:
			geminiErr.Category = "forbidden"
			geminiErr.Message = "API key lacks required permissions"
		case 404:
			geminiErr.Category = "not_found"
			geminiErr.Message = "Model not found or invalid endpoint"
		case 413:
			geminiErr.Category = "payload_too_large"
			geminiErr.Message = "Request size exceeds limit"
		case 429:
			geminiErr.Category = "rate_limit"
			geminiErr.Message = "Rate limit exceeded"
			geminiErr.Retryable = true
		case 500, 502, 503, 504:
			geminiErr.Category = "server_error"
			geminiErr.Message = fmt.Sprintf("Gemini server error (%d)", apiErr.Code)
			geminiErr.Retryable = true
		default:
			geminiErr.Category = "unknown_api_error"
			geminiErr.Message = fmt.Sprintf("API error: %s", apiErr.Message)
			geminiErr.Retryable = apiErr.Code >= 500
		}
		return geminiErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		geminiErr.Category = "timeout"
		geminiErr.Message = "Request timeout"
		geminiErr.Retryable = true
		return geminiErr
	}
	if errors.Is(err, context.Canceled) {
		geminiErr.Category = "canceled"
		geminiErr.Message = "Request was canceled"
		return geminiErr
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "limit"):
		geminiErr.Category = "quota_exceeded"
		geminiErr.Message = "API quota exceeded"
	case strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline"):
		geminiErr.Category = "timeout"
		geminiErr.Message = "Request timeout"
		geminiErr.Retryable = true
	case strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network"):
		geminiErr.Category = "network_error"
		geminiErr.Message = "Network connection error"
		geminiErr.Retryable = true
	}

	return geminiErr
}

// callGeminiWithRetry executes a Gemini API call with exponential backoff.
func callGeminiWithRetry(
	ctx context.Context,
	model *genai.GenerativeModel,
	reqCtx *common.RequestContext,
	config RetryConfig,
	parts ...genai.Part,
) (*genai.GenerateContentResponse, error) {

	var lastGeminiErr *GeminiError

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if attempt > 1 && reqCtx != nil {
			reqCtx.LogInfo("Retry attempt %d/%d", attempt, config.MaxAttempts)
		}

		resp, err := model.GenerateContent(ctx, parts...)
		if err == nil {
			return resp, nil
		}

		lastGeminiErr = categorizeGeminiError(err)
		if reqCtx != nil {
			reqCtx.LogError("API call failed (attempt %d/%d): %s", attempt, config.MaxAttempts, lastGeminiErr.Error())
		}

		if !lastGeminiErr.Retryable {
			return nil, lastGeminiErr
		}
		if attempt >= config.MaxAttempts {
			break
		}

		delay := calculateBackoff(attempt, config)
		if lastGeminiErr.Category == "rate_limit" {
			delay *= 2
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context canceled during retry wait: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("gemini API call failed after %d attempts: %w", config.MaxAttempts, lastGeminiErr)
}

// calculateBackoff computes the exponential backoff delay, capped at MaxDelay.
func calculateBackoff(attempt int, config RetryConfig) time.Duration {
	delay := float64(config.InitialDelay) * math.Pow(config.BackoffMultiple, float64(attempt-1))
	if delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}
	return time.Duration(delay)
}
