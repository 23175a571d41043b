package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/montasssar/EcommerceSnazzyWear/models"
	"github.com/montasssar/EcommerceSnazzyWear/repository"
)

type ITokenService interface {
	GenerateToken(userID, email, role string) (string, error)
}

// AuthService handles registration and login. Role assignment happens here:
// the configured bootstrap admin email gets the admin role at registration,
// everyone else is a regular shopper. Authorization downstream reads the
// role claim, never the email.
type AuthService struct {
	users      repository.UserRepository
	tokens     ITokenService
	adminEmail string
}

func NewAuthService(users repository.UserRepository, tokens ITokenService, adminEmail string) *AuthService {
	return &AuthService{users: users, tokens: tokens, adminEmail: strings.ToLower(adminEmail)}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password")
	}

	role := models.RoleUser
	if email == s.adminEmail {
		role = models.RoleAdmin
	}

	user := &models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid email or password")
	}

	token, err := s.tokens.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}
