// handlers.go - Shared handler state and the image identification flow.

package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agrisense/farm_assist_gemini/configs"
	"github.com/agrisense/farm_assist_gemini/internal/ai"
	"github.com/agrisense/farm_assist_gemini/internal/chat"
	"github.com/agrisense/farm_assist_gemini/internal/common"
	"github.com/agrisense/farm_assist_gemini/internal/identify"
	"github.com/agrisense/farm_assist_gemini/internal/storage"
	"github.com/agrisense/farm_assist_gemini/internal/weather"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Package-level handler dependencies, set once by InitHandlers.
var (
	provider      ai.Provider
	chatManager   *chat.Manager
	weatherClient *weather.Client
)

// InitHandlers wires the AI provider, chat manager and weather client. Must
// run after configs.LoadConfig.
func InitHandlers() error {
	p, err := ai.CreateProvider()
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	provider = p
	chatManager = chat.NewManager(p)
	weatherClient = weather.NewClient()
	return nil
}

// Allowed upload extensions for identification images.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// IdentifyHandler handles POST /api/v1/identify.
// It accepts a multipart image upload, runs the vision model, normalizes the
// result into a canonical record, renders the report and stores the record
// in the user's history.
func IdentifyHandler(c *gin.Context) {
	userID := currentUserID(c)
	reqCtx := common.NewRequestContext(userID)

	reqCtx.LogInfo("🚀 New identification request | User: %s | Time: %s", userID, time.Now().Format("15:04:05"))

	// Step 1: Save the uploaded image
	reqCtx.StartStep("save_upload")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		reqCtx.EndStep("failed", nil, err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "image file is required",
			"details":    err.Error(),
			"request_id": reqCtx.RequestID,
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		reqCtx.EndStep("failed", nil, fmt.Errorf("unsupported file type: %s", ext))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      fmt.Sprintf("unsupported file type: %s", ext),
			"allowed":    []string{".jpg", ".jpeg", ".png", ".webp"},
			"request_id": reqCtx.RequestID,
		})
		return
	}

	imagePath := filepath.Join(configs.UPLOAD_DIR, fmt.Sprintf("%s%s", uuid.New().String(), ext))
	if err := c.SaveUploadedFile(fileHeader, imagePath); err != nil {
		reqCtx.EndStep("failed", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "failed to save uploaded image",
			"details":    err.Error(),
			"request_id": reqCtx.RequestID,
		})
		return
	}
	reqCtx.EndStep("success", nil, nil)

	// Auto-cleanup the uploaded file
	defer func() {
		if err := os.Remove(imagePath); err != nil {
			reqCtx.LogWarning("Failed to delete temporary file %s: %v", imagePath, err)
		}
	}()

	// Step 2: Vision model call
	reqCtx.StartStep("identify_image")
	upstream, tokens, err := provider.IdentifyImage(imagePath, reqCtx)

	var record *identify.IdentificationRecord
	if err != nil {
		reqCtx.EndStep("failed", tokens, err)
		reqCtx.LogWarning("⚠️  Identification failed, serving error record: %v", err)
		record = identify.ErrorRecord("The image could not be analyzed. Please try a clearer photo.")
	} else {
		reqCtx.EndStep("success", tokens, nil)

		// Step 3: Normalize into the canonical record
		reqCtx.StartStep("normalize_result")
		record = identify.Normalize(upstream)
		reqCtx.EndStep("success", nil, nil)
	}

	// Step 4: Render the report
	reqCtx.StartStep("render_report")
	report := identify.Render(record.Serialize())
	reqCtx.EndStep("success", nil, nil)

	// Step 5: Store in history (best effort; the result is still returned)
	reqCtx.StartStep("store_history")
	entry, histErr := storage.AppendHistory(userID, record, "")
	if histErr != nil {
		reqCtx.EndStep("failed", nil, histErr)
		reqCtx.LogWarning("⚠️  Failed to store history entry: %v", histErr)
	} else {
		reqCtx.EndStep("success", nil, nil)
	}

	summary := reqCtx.GetSummary()

	response := gin.H{
		"status": record.Status,
		"record": record,
		"report": report,
		"metadata": gin.H{
			"request_id":   reqCtx.RequestID,
			"provider":     provider.GetProviderName(),
			"processed_at": time.Now().Format(time.RFC3339),
			"duration_sec": summary["total_duration_sec"],
			"token_usage":  summary["token_usage"],
		},
	}
	if entry != nil {
		response["history_id"] = entry.ID
	}

	c.JSON(http.StatusOK, response)
}

// ListHistoryHandler handles GET /api/v1/history.
func ListHistoryHandler(c *gin.Context) {
	entries, err := storage.ListHistory(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to load history",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// AddHistoryNotesHandler handles POST /api/v1/history/notes.
// Notes can only be attached to the most recent entry.
func AddHistoryNotesHandler(c *gin.Context) {
	var req struct {
		Notes string `json:"notes" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "notes field is required",
			"details": err.Error(),
		})
		return
	}

	if err := storage.AddNotesToLatest(currentUserID(c), req.Notes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "failed to add notes",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
