// auth_handlers.go - Registration, login and profile management.

package api

import (
	"net/http"

	"github.com/agrisense/farm_assist_gemini/internal/storage"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	FarmName string `json:"farmName"`
	Location string `json:"location"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler handles POST /api/v1/auth/register.
func RegisterHandler(c *gin.Context) {
	var req registerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid registration request",
			"details": err.Error(),
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to hash password",
		})
		return
	}

	user := &storage.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		FarmName:     req.FarmName,
		Location:     req.Location,
	}
	if err := storage.CreateUser(user); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	session, err := storage.CreateAuthSession(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "account created but login failed, please sign in",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": session.Token,
		"user":  user,
	})
}

// LoginHandler handles POST /api/v1/auth/login.
func LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "email and password are required",
			"details": err.Error(),
		})
		return
	}

	user, err := storage.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid email or password",
		})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid email or password",
		})
		return
	}

	session, err := storage.CreateAuthSession(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to create session",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": session.Token,
		"user":  user,
	})
}

// GetProfileHandler handles GET /api/v1/profile.
func GetProfileHandler(c *gin.Context) {
	user, err := storage.GetUserByID(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfileHandler handles PUT /api/v1/profile.
func UpdateProfileHandler(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		FarmName string `json:"farmName"`
		Location string `json:"location"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid profile update",
			"details": err.Error(),
		})
		return
	}

	userID := currentUserID(c)
	if err := storage.UpdateProfile(userID, req.Name, req.FarmName, req.Location); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	user, err := storage.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
