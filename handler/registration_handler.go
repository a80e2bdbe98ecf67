package handler

import (
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context) {
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)
	userService := &usecase.UserService{UsersRepo: userRepo}

	if err := userService.CreateUser(c.Request.Context(), &user); err != nil {
		if err.Error() == "username already exists" {
			utils.Conflict(c, "username already exists")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "failed to generate refresh token")
		return
	}

	utils.Created(c, gin.H{
		"message": "user registered successfully",
		"token":   token,
		"refresh": refreshToken,
	})
}
