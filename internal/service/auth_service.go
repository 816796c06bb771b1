package service

import (
	"errors"

	"tally/config"
	"tally/internal/auth"
	"tally/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	cfg          *config.Config
	operatorRepo *repository.OperatorRepository
}

func NewAuthService(cfg *config.Config, operatorRepo *repository.OperatorRepository) *AuthService {
	return &AuthService{cfg: cfg, operatorRepo: operatorRepo}
}

// Login verifies operator credentials and returns a signed access token.
func (s *AuthService) Login(email, password string) (string, error) {
	op, err := s.operatorRepo.GetByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return auth.GenerateAccessToken(&s.cfg.JWT, op.ID, op.Email, op.Role)
}
