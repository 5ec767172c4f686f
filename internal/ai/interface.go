// interface.go - AI provider interface for identification and chat.

package ai

import (
	"context"

	"github.com/agrisense/farm_assist_gemini/internal/common"
	"github.com/agrisense/farm_assist_gemini/internal/identify"
)

// Provider is implemented by every AI backend (Gemini, mock). The factory
// picks one at startup based on configuration; callers never probe for
// capabilities at runtime.
type Provider interface {
	// IdentifyImage analyzes a plant photo and returns the raw upstream
	// identification result, before normalization.
	IdentifyImage(imagePath string, reqCtx *common.RequestContext) (*identify.UpstreamResult, *common.TokenUsage, error)

	// AnswerQuery answers a free-text farming question. The prompt asks the
	// model to refuse out-of-domain questions itself.
	AnswerQuery(ctx context.Context, query string, reqCtx *common.RequestContext) (string, *common.TokenUsage, error)

	// GetProviderName returns the provider name ("gemini" or "mock").
	GetProviderName() string
}
