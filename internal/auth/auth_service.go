package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "leavehub/internal/auth/errors"
	"leavehub/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type Service interface {
	Login(ctx context.Context, clientKey string, req LoginRequest) (TokenPairResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPairResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
}

type service struct {
	employees employee.Repository
	limiter   LoginLimiter
	logger    *zap.Logger
}

func NewService(employees employee.Repository, limiter LoginLimiter, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{employees: employees, limiter: limiter, logger: l}
}

func (s *service) Login(ctx context.Context, clientKey string, req LoginRequest) (TokenPairResponse, error) {
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, clientKey)
		if err != nil {
			s.logger.Error("login limiter check failed", zap.Error(err))
			return TokenPairResponse{}, err
		}
		if !allowed {
			s.logger.Warn("login throttled", zap.String("client", clientKey))
			return TokenPairResponse{}, autherrors.ErrTooManyAttempts
		}
	}

	empl, err := s.employees.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPairResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return TokenPairResponse{}, err
	}
	if !empl.IsActive {
		return TokenPairResponse{}, autherrors.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(empl.PasswordHash), []byte(req.Password)); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, clientKey); err != nil {
			s.logger.Warn("login limiter reset failed", zap.Error(err))
		}
	}

	access, err := generateToken(empl.ID.String(), empl.Role, accessTokenTTL)
	if err != nil {
		s.logger.Error("access token generation failed", zap.Error(err))
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := generateToken(empl.ID.String(), empl.Role, refreshTokenTTL)
	if err != nil {
		s.logger.Error("refresh token generation failed", zap.Error(err))
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("employee_id", empl.ID.String()),
		zap.String("role", empl.Role),
	)

	return TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         mapToAuthResponse(empl),
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPairResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}
	if _, err := uuid.Parse(userID); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidUserID
	}

	empl, err := s.employees.FindByID(ctx, userID)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrUserNotFound
	}
	if !empl.IsActive {
		return TokenPairResponse{}, autherrors.ErrAccountInactive
	}

	access, err := generateToken(empl.ID.String(), empl.Role, accessTokenTTL)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := generateToken(empl.ID.String(), empl.Role, refreshTokenTTL)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         mapToAuthResponse(empl),
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	empl, err := s.employees.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		s.logger.Error("get me lookup failed", zap.Error(err))
		return AuthResponse{}, err
	}
	return mapToAuthResponse(empl), nil
}

func (s *service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	empl, err := s.employees.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrUserNotFound
		}
		s.logger.Error("change password lookup failed", zap.Error(err))
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(empl.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return autherrors.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("change password hash failed", zap.Error(err))
		return err
	}

	if err := s.employees.UpdatePassword(ctx, userID, string(hash)); err != nil {
		s.logger.Error("change password persist failed", zap.Error(err))
		return err
	}

	s.logger.Info("password changed", zap.String("employee_id", userID))
	return nil
}

func generateToken(userID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(e *employee.Employee) AuthResponse {
	return AuthResponse{
		ID:             e.ID.String(),
		EmployeeNumber: e.EmployeeNumber,
		Email:          e.Email,
		Name:           e.Name,
		Role:           e.Role,
		Department:     e.Department,
	}
}
