// chat_handlers.go - Assistant chat endpoints.

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/agrisense/farm_assist_gemini/configs"
	"github.com/agrisense/farm_assist_gemini/internal/chat"
	"github.com/agrisense/farm_assist_gemini/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type chatSendRequest struct {
	Text string `json:"text" binding:"required"`
}

// SendChatHandler handles POST /api/v1/chat/:session/messages.
// Accepts JSON with a text field, or a multipart form with text and an
// optional image that gets attached to the user turn. While a previous
// message is still being answered the request is rejected with 409 and
// nothing is appended.
func SendChatHandler(c *gin.Context) {
	var req chatSendRequest
	imagePath := ""

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		req.Text = c.PostForm("text")
		if req.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
			return
		}

		if fileHeader, err := c.FormFile("image"); err == nil {
			ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
			if !allowedImageExts[ext] {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   fmt.Sprintf("unsupported file type: %s", ext),
					"allowed": []string{".jpg", ".jpeg", ".png", ".webp"},
				})
				return
			}
			imagePath = filepath.Join(configs.UPLOAD_DIR, fmt.Sprintf("%s%s", uuid.New().String(), ext))
			if err := c.SaveUploadedFile(fileHeader, imagePath); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "failed to save attached image",
					"details": err.Error(),
				})
				return
			}
		}
	} else if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "text is required",
			"details": err.Error(),
		})
		return
	}

	userID := currentUserID(c)
	reqCtx := common.NewRequestContext(userID)

	// Sessions are scoped per user so ids cannot collide across accounts.
	session := chatManager.GetOrCreate(userID + ":" + c.Param("session"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(configs.CHAT_TIMEOUT)*time.Second)
	defer cancel()

	reqCtx.StartStep("chat_model_call")
	reply, err := session.Send(ctx, reqCtx, req.Text, imagePath)
	if err != nil {
		reqCtx.EndStep("failed", nil, err)
		if errors.Is(err, chat.ErrAwaitingResponse) {
			c.JSON(http.StatusConflict, gin.H{
				"error":      "a response is already in flight, wait for it to finish",
				"request_id": reqCtx.RequestID,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      err.Error(),
			"request_id": reqCtx.RequestID,
		})
		return
	}
	reqCtx.EndStep("success", nil, nil)

	c.JSON(http.StatusOK, gin.H{
		"message":    reply,
		"request_id": reqCtx.RequestID,
	})
}

// ListChatMessagesHandler handles GET /api/v1/chat/:session/messages.
func ListChatMessagesHandler(c *gin.Context) {
	session := chatManager.GetOrCreate(currentUserID(c) + ":" + c.Param("session"))
	c.JSON(http.StatusOK, gin.H{"messages": session.Messages()})
}
