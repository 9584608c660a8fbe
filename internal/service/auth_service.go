package service

import (
	"context"
	"errors"
	"time"

	"golang-stock-advisor/config"
	"golang-stock-advisor/internal/dto"
	"golang-stock-advisor/internal/model"
	"golang-stock-advisor/internal/repository"
	"golang-stock-advisor/pkg/logger"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailExists        = errors.New("an account already exists with that email")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (uint, error)
	Login(ctx context.Context, req dto.LoginRequest) (string, error)
	GetDashboard(ctx context.Context, userID uint) (*dto.DashboardResponse, error)
}

type authService struct {
	cfg      *config.Config
	log      *logger.Logger
	userRepo repository.UserRepository
}

func NewAuthService(cfg *config.Config, log *logger.Logger, userRepo repository.UserRepository) AuthService {
	return &authService{
		cfg:      cfg,
		log:      log,
		userRepo: userRepo,
	}
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (uint, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrEmailExists
	}

	// Only the one-way hash is stored.
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	user := &model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "User registered", logger.IntField("user_id", int(user.ID)))
	return user.ID, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.Auth.TokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return "", err
	}
	return signed, nil
}

func (s *authService) GetDashboard(ctx context.Context, userID uint) (*dto.DashboardResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &dto.DashboardResponse{FirstName: user.FirstName}, nil
}
