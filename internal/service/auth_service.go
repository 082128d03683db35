package service

import (
	"errors"
	"fmt"

	"go-retail-backoffice/internal/model"
	"go-retail-backoffice/internal/repository"
	"go-retail-backoffice/pkg/hashing"
	"go-retail-backoffice/pkg/token"
	"go-retail-backoffice/pkg/validator"
)

type AuthService interface {
	Register(username, email, password string, isAdmin bool) (*model.User, error)
	Login(username, password string) (*TokenResponse, error)
	// Refresh verifies the presented token and issues a fresh one for the
	// same subject. There is no revocation list: the old token stays valid
	// until its natural expiry. Documented limitation.
	Refresh(tokenString string) (*TokenResponse, error)
}

// TokenResponse mirrors the OAuth2 bearer token envelope.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type authService struct {
	userRepo repository.UserRepository
	hasher   hashing.Hasher
	issuer   token.Issuer
}

func NewAuthService(userRepo repository.UserRepository, hasher hashing.Hasher, issuer token.Issuer) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
	}
}

func (s *authService) Register(username, email, password string, isAdmin bool) (*model.User, error) {
	// 1. Shape checks before any storage round trip
	probe := &model.User{Username: username, Email: email}
	if errs := validator.ValidateStruct(probe); len(errs) > 0 {
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", model.ErrValidation, errs[0].FailedField, errs[0].Tag)
	}

	// 2. Username must be free
	if existing, _ := s.userRepo.FindByUsername(username); existing != nil {
		return nil, model.ErrUsernameTaken
	}

	// 3. Email must be free
	if existing, _ := s.userRepo.FindByEmail(email); existing != nil {
		return nil, model.ErrEmailTaken
	}

	// 4. Hash password and persist
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hashed,
		IsAdmin:  isAdmin,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(username, password string) (*TokenResponse, error) {
	// Unknown user and wrong password are indistinguishable to the caller.
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(user.Password, password) {
		return nil, model.ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(user.Username)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: signed, TokenType: "bearer"}, nil
}

func (s *authService) Refresh(tokenString string) (*TokenResponse, error) {
	username, err := s.issuer.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	signed, err := s.issuer.Issue(username)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: signed, TokenType: "bearer"}, nil
}
