package handler

import (
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetUserProfileHandler(c *gin.Context, userService *usecase.UserService) {
	userID := c.GetString("user_id")

	user, err := userService.FindUser(c, userID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch profile")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, gin.H{
		"user_id":            user.UserID,
		"username":           user.Username,
		"email":              user.Email,
		"created_at":         user.CreatedAt,
		"two_factor_enabled": user.TwoFactorEnabled,
	})
}
