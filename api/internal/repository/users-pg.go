package repository

import (
	"gateway/api/internal/domain"

	"gorm.io/gorm"
)

type UsersRepo struct {
}

func InitUsersRepo() *UsersRepo {
	return &UsersRepo{}
}

func (r *UsersRepo) Create(tx *gorm.DB, user *domain.Users) error {
	return tx.Create(user).Error
}

func (r *UsersRepo) FindByUserID(tx *gorm.DB, userID string) (*domain.Users, error) {
	var user domain.Users
	return &user, tx.Where(&domain.Users{UserID: userID}).First(&user).Error
}

func (r *UsersRepo) FindByEmail(tx *gorm.DB, email string) (*domain.Users, error) {
	var user domain.Users
	return &user, tx.Where(&domain.Users{Email: email}).First(&user).Error
}

func (r *UsersRepo) List(tx *gorm.DB) ([]domain.Users, error) {
	var users []domain.Users
	return users, tx.Order("created_at desc").Find(&users).Error
}
