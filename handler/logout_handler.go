package handler

import (
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func LogoutHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID := c.GetString("user_id")
	accessToken := c.GetString("access_token")

	var req struct {
		RefreshToken string `json:"refresh"`
	}
	// Missing body just means no refresh token to revoke
	_ = c.ShouldBindJSON(&req)

	if err := services.BlacklistTokens(accessToken, req.RefreshToken); err != nil {
		utils.Sugar.Errorf("failed to blacklist tokens: %v", err)
	}

	if err := sessionRepo.EndAllUserSessions(c, userID); err != nil {
		utils.Sugar.Errorf("failed to end sessions: %v", err)
	}

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}
