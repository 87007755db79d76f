package handler

import (
	"time"

	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetActiveSessionsHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID := c.GetString("user_id")

	sessions, err := sessionRepo.GetUserActiveSessions(c, userID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch sessions")
		return
	}

	now := time.Now()
	views := make([]gin.H, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, gin.H{
			"session_id":         s.SessionID,
			"created_at":         s.CreatedAt,
			"last_activity_at":   s.LastActivityAt,
			"device_info":        s.DeviceInfo,
			"ip_address":         s.IPAddress,
			"expires_in_seconds": int64(s.Remaining(now).Seconds()),
		})
	}

	utils.Success(c, gin.H{"sessions": views})
}

func EndSessionHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID := c.GetString("user_id")
	sessionID := c.Param("id")

	sessions, err := sessionRepo.GetUserActiveSessions(c, userID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch sessions")
		return
	}

	owned := false
	for _, s := range sessions {
		if s.SessionID == sessionID {
			owned = true
			break
		}
	}
	if !owned {
		utils.NotFound(c, "Session not found")
		return
	}

	if err := sessionRepo.EndSession(c, sessionID); err != nil {
		utils.InternalError(c, "Failed to end session")
		return
	}

	utils.Success(c, gin.H{"message": "Session ended successfully"})
}

func LogoutAllSessionsHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID := c.GetString("user_id")

	if err := sessionRepo.EndAllUserSessions(c, userID); err != nil {
		utils.InternalError(c, "Failed to end all sessions")
		return
	}

	utils.Success(c, gin.H{"message": "Successfully logged out of all sessions"})
}
