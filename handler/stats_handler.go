package handler

import (
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// GetStatsHandler reports per-user document counts along with host
// resource usage.
func GetStatsHandler(c *gin.Context, svc *usecase.DocumentService, sessionRepo *repository.SessionRepo) {
	userID := c.GetString("user_id")

	docCount, err := svc.CountDocuments(c, userID)
	if err != nil {
		utils.InternalError(c, "Failed to count documents")
		return
	}

	categories, err := svc.ListCategories(c, userID)
	if err != nil {
		utils.InternalError(c, "Failed to list categories")
		return
	}

	activeSessions, err := sessionRepo.CountActiveSessions(c)
	if err != nil {
		utils.Sugar.Errorf("failed to count sessions: %v", err)
		activeSessions = 0
	}
	utils.UpdateActiveSessions(float64(activeSessions))

	utils.Success(c, gin.H{
		"documents":       docCount,
		"categories":      len(categories) - 1, // minus the "All" sentinel
		"active_sessions": activeSessions,
		"system": gin.H{
			"cpu_percent":    utils.GetCPUUsage(),
			"memory_percent": utils.GetMemoryUsage(),
		},
	})
}
