package service

import (
	"gateway/api/internal/domain"
	"gateway/api/internal/infra/postgres"
	"gateway/api/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UsersService struct {
	repo repository.Users
	db   *gorm.DB
}

func NewUsersService(db *gorm.DB, repo repository.Users) *UsersService {
	return &UsersService{repo: repo, db: db}
}

func (s *UsersService) Create(name, email, password string) (*domain.Users, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.Users{
		UserID:       uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(s.db, user); err != nil {
		if postgres.IsDuplicate(err) {
			return nil, domain.ErrDuplicateKey
		}
		return nil, err
	}

	return user, nil
}

func (s *UsersService) FindByUserID(userID string) (*domain.Users, error) {
	user, err := s.repo.FindByUserID(s.db, userID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.WrapNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

func (s *UsersService) List() ([]domain.Users, error) {
	return s.repo.List(s.db)
}
