package handler

import (
	"log"

	"main/dto"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetUserProfileHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)
	user, err := userRepo.FindUser(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Error fetching user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch user details")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, dto.ToUserResponse(user))
}

func ChangeEmailHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req struct {
		NewEmail string `json:"new_email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)
	user, err := userRepo.FindUser(c.Request.Context(), userID.(string))
	if err != nil || user == nil {
		utils.InternalError(c, "Failed to fetch user details")
		return
	}

	ok, err := services.VerifyPassword(user.Password, req.Password)
	if err != nil || !ok {
		utils.Unauthorized(c, "Incorrect password")
		return
	}

	if _, err := userRepo.UpdateUserEmail(c.Request.Context(), user.UserID, req.NewEmail); err != nil {
		utils.InternalError(c, "Failed to update email")
		return
	}

	utils.Success(c, gin.H{"message": "email updated successfully"})
}

func ChangePasswordHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)
	user, err := userRepo.FindUser(c.Request.Context(), userID.(string))
	if err != nil || user == nil {
		utils.InternalError(c, "Failed to fetch user details")
		return
	}

	ok, err := services.VerifyPassword(user.Password, req.CurrentPassword)
	if err != nil || !ok {
		utils.Unauthorized(c, "Incorrect password")
		return
	}

	hashed, err := services.HashPassword(req.NewPassword)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if _, err := userRepo.UpdateUserPassword(c.Request.Context(), user.UserID, hashed); err != nil {
		utils.InternalError(c, "Failed to update password")
		return
	}

	utils.Success(c, gin.H{"message": "password updated successfully"})
}

func DeleteUserHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	userRepo := repository.GetUserRepo(utils.MongoClient)
	user, err := userRepo.FindUser(ctx, userID.(string))
	if err != nil || user == nil {
		utils.InternalError(c, "Failed to fetch user details")
		return
	}

	ok, err := services.VerifyPassword(user.Password, req.Password)
	if err != nil || !ok {
		utils.Unauthorized(c, "Incorrect password")
		return
	}

	if _, err := sessionRepo.EndAllUserSessions(user.UserID); err != nil {
		log.Printf("Warning: failed to end sessions for deleted user %s: %v", user.UserID, err)
	}
	if err := userRepo.DeleteUser(ctx, user.UserID); err != nil {
		utils.InternalError(c, "Failed to delete account")
		return
	}

	utils.Success(c, gin.H{"message": "account deleted"})
}
