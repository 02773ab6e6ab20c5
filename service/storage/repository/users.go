package repository

import (
	"context"

	"github.com/openrelay/service-filerelay/service/storage/models"
	"github.com/pitabwire/frame"
)

type UserRepository interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	All(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}

func NewUserRepository(service *frame.Service) UserRepository {
	userRepo := userRepository{
		service: service,
	}
	return &userRepo
}

type userRepository struct {
	service *frame.Service
}

func (ur *userRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	user := &models.User{}
	err := ur.service.DB(ctx, true).First(user, " telegram_id = ?", telegramID).Error
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (ur *userRepository) Save(ctx context.Context, user *models.User) error {
	return ur.service.DB(ctx, false).Save(user).Error
}

func (ur *userRepository) All(ctx context.Context) ([]*models.User, error) {
	userList := make([]*models.User, 0)
	err := ur.service.DB(ctx, true).Find(&userList).Error
	if err != nil {
		return nil, err
	}

	return userList, nil
}

func (ur *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := ur.service.DB(ctx, true).Model(&models.User{}).Count(&total).Error
	return total, err
}
