package handler

import (
	"log"
	"time"

	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// GetUserStatsHandler aggregates goal, check-in, achievement, and activity
// stats into one dashboard payload.
func GetUserStatsHandler(c *gin.Context, goalsService *usecase.GoalsService, achievements *usecase.AchievementService, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	ctx := c.Request.Context()

	goals, err := goalsService.GetUserGoals(ctx, usecase.GoalListOptions{UserID: userID.(string)})
	if err != nil {
		utils.InternalError(c, "Failed to fetch goals")
		return
	}

	stats := usecase.BuildGoalStats(goals, time.Now())

	if state, err := achievements.Load(ctx, userID.(string)); err == nil {
		stats.AchievementStats.Unlocked = len(state.Unlocked)
	} else {
		log.Printf("Warning: failed to load achievements for stats: %v", err)
	}

	if count, err := sessionRepo.CountActiveSessions(userID.(string)); err == nil {
		stats.ActivityStats.TotalSessions = count
	} else {
		log.Printf("Warning: failed to count sessions for stats: %v", err)
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)
	if user, err := userRepo.FindUser(ctx, userID.(string)); err == nil && user != nil {
		stats.ActivityStats.AccountCreated = user.CreatedAt
	}

	utils.Success(c, stats)
}
