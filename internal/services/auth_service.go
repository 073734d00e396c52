package services

import (
	"context"
	"fmt"
	"strings"

	"vistoria/internal/models"
	"vistoria/internal/repositories/interfaces"
	"vistoria/internal/utils"
	"vistoria/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, request *RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*utils.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

type authService struct {
	userRepo  interfaces.UserRepository
	jwtSecret string
	logger    *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, jwtSecret string, log *logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (s *authService) Register(ctx context.Context, request *RegisterInput) (*models.User, error) {
	role := request.Role
	if role == "" {
		role = models.RoleAdmin
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", request.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(request.Name),
		Email:    request.Email,
		Password: string(hash),
		Role:     role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithField("email", user.Email).Info("User registered")
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*utils.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Do not leak whether the email exists.
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	pair, err := utils.GenerateTokenPair(user.ID.Hex(), string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.logger.WithField("user_id", user.ID.Hex()).Info("User logged in")
	return pair, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	return utils.GenerateTokenPair(user.ID.Hex(), string(user.Role), user.Email, s.jwtSecret)
}

func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
