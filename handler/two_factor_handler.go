package handler

import (
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

// Generate2FASecretHandler issues a fresh TOTP secret. The secret is
// not active until the user proves possession via Enable2FAHandler.
func Generate2FASecretHandler(c *gin.Context, userService *usecase.UserService) {
	userID := c.GetString("user_id")

	user, err := userService.FindUser(c, userID)
	if err != nil || user == nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}

	if user.TwoFactorEnabled {
		utils.BadRequest(c, "Two-factor auth is already enabled")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "docdex",
		AccountName: user.Username,
	})
	if err != nil {
		utils.InternalError(c, "Failed to generate secret")
		return
	}

	utils.Success(c, gin.H{
		"secret": key.Secret(),
		"url":    key.URL(),
	})
}

func Enable2FAHandler(c *gin.Context, userService *usecase.UserService) {
	var req struct {
		Secret string `json:"secret" binding:"required"`
		Code   string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	userID := c.GetString("user_id")
	user, err := userService.FindUser(c, userID)
	if err != nil || user == nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}

	if user.TwoFactorEnabled {
		utils.BadRequest(c, "Two-factor auth is already enabled")
		return
	}

	if !totp.Validate(req.Code, req.Secret) {
		utils.TrackAuthAttempt("failure", "2fa")
		utils.BadRequest(c, "Invalid two-factor code")
		return
	}

	if err := userService.UserRepo.EnableTwoFactor(c, userID, req.Secret); err != nil {
		utils.InternalError(c, "Failed to enable two-factor auth")
		return
	}

	utils.TrackAuthAttempt("success", "2fa")
	utils.Success(c, gin.H{"message": "Two-factor auth enabled successfully"})
}

func Disable2FAHandler(c *gin.Context, userService *usecase.UserService) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	userID := c.GetString("user_id")
	user, err := userService.FindUser(c, userID)
	if err != nil || user == nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}

	if !user.TwoFactorEnabled {
		utils.BadRequest(c, "Two-factor auth is not enabled")
		return
	}

	if !totp.Validate(req.Code, user.TwoFactorSecret) {
		utils.TrackAuthAttempt("failure", "2fa")
		utils.BadRequest(c, "Invalid two-factor code")
		return
	}

	if err := userService.UserRepo.DisableTwoFactor(c, userID); err != nil {
		utils.InternalError(c, "Failed to disable two-factor auth")
		return
	}

	utils.Success(c, gin.H{"message": "Two-factor auth disabled successfully"})
}
