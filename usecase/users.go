package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

type UserService struct {
	UsersRepo *repository.UserRepo
}

// CreateUser validates, hashes the password, and stores a new user
func (svc *UserService) CreateUser(ctx context.Context, user *model.User) error {
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.TrimSpace(strings.ToLower(user.Email))

	if err := utils.Validate.Struct(user); err != nil {
		return errors.New("invalid user data")
	}

	existing, err := svc.UsersRepo.FindUserByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("username already exists")
	}

	hashed, err := services.HashPassword(user.Password)
	if err != nil {
		return err
	}

	user.UserID = utils.GenerateID()
	user.Password = hashed
	user.CreatedAt = time.Now()
	user.TwoFactorEnabled = false

	_, err = svc.UsersRepo.AddUser(ctx, user)
	return err
}

func (svc *UserService) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return svc.UsersRepo.FindUserByUsername(ctx, username)
}

func (svc *UserService) FindUser(ctx context.Context, userID string) (*model.User, error) {
	return svc.UsersRepo.FindUser(ctx, userID)
}
