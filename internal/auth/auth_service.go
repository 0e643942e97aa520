package auth

import (
	"context"
	"errors"
	"time"

	autherrors "go-elra/internal/auth/errors"
	"go-elra/internal/directory"
	directoryerrors "go-elra/internal/directory/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// UserLookup is the part of the directory that authentication reads.
type UserLookup interface {
	GetUser(ctx context.Context, id uuid.UUID) (*directory.User, error)
	GetUserByEmail(ctx context.Context, email string) (*directory.User, error)
}

type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
}

type service struct {
	users  UserLookup
	secret []byte
	now    func() time.Time
	logger *zap.Logger
}

func NewService(users UserLookup, jwtSecret string, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, secret: []byte(jwtSecret), now: time.Now, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, directoryerrors.ErrUserNotFound) {
			s.logger.Error("login lookup failed", zap.Error(err))
			return TokenPair{}, AuthResponse{}, err
		}
		s.logger.Warn("login unknown email")
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login wrong password", zap.String("user_id", user.ID.String()))
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInactiveUser
	}

	pair, err := s.issue(user.ID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	s.logger.Info("login success", zap.String("user_id", user.ID.String()), zap.Int("role_level", user.RoleLevel()))
	return pair, mapToResponse(user), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	userID, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, directoryerrors.ErrUserNotFound) {
			return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
		}
		return TokenPair{}, AuthResponse{}, err
	}
	if !user.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInactiveUser
	}

	pair, err := s.issue(user.ID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	return pair, mapToResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		return AuthResponse{}, err
	}
	return mapToResponse(u), nil
}

func (s *service) issue(userID uuid.UUID) (TokenPair, error) {
	access, err := s.generateToken(userID, tokenTypeAccess, AccessTokenTTL)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Error(err))
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.generateToken(userID, tokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		s.logger.Error("sign refresh token failed", zap.Error(err))
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) generateToken(userID uuid.UUID, typ string, expiry time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"typ":     typ,
		"iat":     now.Unix(),
		"exp":     now.Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *service) parse(tokenString, typ string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != typ {
		return uuid.Nil, autherrors.ErrInvalidToken
	}
	raw, _ := claims["user_id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, autherrors.ErrInvalidUserID
	}
	return id, nil
}
