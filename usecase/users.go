package usecase

import (
	"context"
	"errors"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

var ErrUsernameTaken = errors.New("username already exists")

type UserService struct {
	UserRepo *repository.UserRepo
}

// CreateUser registers a new account with a hashed password.
func (svc *UserService) CreateUser(ctx context.Context, req dto.RegistrationRequest) (*model.User, error) {
	existing, err := svc.UserRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := services.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:    utils.GenerateID(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		CreatedAt: time.Now().UTC(),
	}

	if err := svc.UserRepo.AddUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (svc *UserService) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return svc.UserRepo.FindUserByUsername(ctx, username)
}

func (svc *UserService) FindUser(ctx context.Context, userID string) (*model.User, error) {
	return svc.UserRepo.FindUser(ctx, userID)
}
