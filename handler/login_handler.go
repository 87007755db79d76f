package handler

import (
	"fmt"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

func LoginHandler(c *gin.Context, userService *usecase.UserService, sessionRepo *repository.SessionRepo) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	user, err := userService.FindUserByUsername(c, req.Username)
	if err != nil {
		utils.TrackAuthAttempt("failure", "login")
		utils.InternalError(c, "Login failed")
		return
	}
	if user == nil {
		utils.TrackAuthAttempt("failure", "login")
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	match, err := services.VerifyPassword(user.Password, req.Password)
	if err != nil || !match {
		utils.TrackAuthAttempt("failure", "login")
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if user.TwoFactorEnabled {
		if req.TOTPCode == "" {
			utils.TrackAuthAttempt("failure", "2fa")
			utils.Unauthorized(c, "Two-factor code required")
			return
		}
		if !totp.Validate(req.TOTPCode, user.TwoFactorSecret) {
			utils.TrackAuthAttempt("failure", "2fa")
			utils.Unauthorized(c, "Invalid two-factor code")
			return
		}
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}

	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	if err := createSession(c, user.UserID, sessionRepo); err != nil {
		utils.Sugar.Errorf("failed to record session: %v", err)
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, gin.H{
		"message": "Login successful",
		"token":   token,
		"refresh": refreshToken,
	})
}

func createSession(c *gin.Context, userID string, sessionRepo *repository.SessionRepo) error {
	browser, os, device := utils.ParseUserAgent(c.Request.UserAgent())
	duration := utils.GetEnvAsDuration("SESSION_DURATION", 24*time.Hour)

	session := &model.Session{
		SessionID:      utils.GenerateID(),
		UserID:         userID,
		CreatedAt:      time.Now(),
		ExpiresAt:      time.Now().Add(duration),
		LastActivityAt: time.Now(),
		DeviceInfo:     fmt.Sprintf("%s on %s (%s)", browser, os, device),
		IPAddress:      c.ClientIP(),
		IsActive:       true,
	}

	return sessionRepo.CreateSession(c, session)
}
