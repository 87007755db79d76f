package handler

import (
	"errors"

	"main/dto"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	user, err := userService.CreateUser(c, req)
	if err != nil {
		if errors.Is(err, usecase.ErrUsernameTaken) {
			utils.Conflict(c, "Username already exists")
			return
		}
		utils.Sugar.Errorf("registration failed: %v", err)
		utils.BadRequest(c, "Registration failed")
		return
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

	utils.Created(c, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"refresh": refreshToken,
	})
}
