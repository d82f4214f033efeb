package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"todocore/internal/models"
	"todocore/internal/storage"
)

type authServiceImpl struct {
	logger        zerolog.Logger
	users         storage.UserStore
	jwtIssuer     string
	jwtSigningKey []byte
	jwtAccessTTL  time.Duration
}

func NewAuthService(
	logger zerolog.Logger,
	users storage.UserStore,
	jwtIssuer string,
	jwtSigningKey []byte,
	jwtAccessTTL time.Duration,
) AuthService {
	return &authServiceImpl{
		logger:        logger,
		users:         users,
		jwtIssuer:     jwtIssuer,
		jwtSigningKey: jwtSigningKey,
		jwtAccessTTL:  jwtAccessTTL,
	}
}

// accessClaims carries the caller's role on top of the registered
// claim set; the subject is the user id.
type accessClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.Warn().
				Str("email", email).
				Msg("login for unknown email")
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Str("email", email).
			Msg("failed to select user by email")
		return nil, err
	}

	// argon2id comparison is constant-time.
	match, err := argon2id.ComparePasswordAndHash(password, user.PasswordHash)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		s.logger.Warn().
			Str("user_id", user.ID).
			Msg("password mismatch")
		return nil, ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.issueAccessToken(user)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue access token")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("logged in")
	return &LoginResult{
		UserID:      user.ID,
		Role:        user.Role,
		Name:        user.FullName,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *authServiceImpl) ParseToken(token string) (*Identity, error) {
	t, err := jwt.ParseWithClaims(
		token,
		&accessClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.jwtSigningKey, nil
		},
		jwt.WithIssuer(s.jwtIssuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	claims, ok := t.Claims.(*accessClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrUnauthenticated
	}

	return &Identity{
		UserID: claims.Subject,
		Role:   claims.Role,
	}, nil
}

func (s *authServiceImpl) CurrentUser(ctx context.Context, identity Identity) (*models.User, error) {
	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", identity.UserID).
			Msg("failed to select user by id")
		return nil, err
	}
	return user, nil
}

func (s *authServiceImpl) ListUsers(ctx context.Context, identity Identity) ([]models.User, error) {
	if !identity.IsAdmin() {
		return nil, ErrForbidden
	}

	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *authServiceImpl) issueAccessToken(user *models.User) (string, time.Time, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(s.jwtAccessTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenUUID.String(),
			Issuer:    s.jwtIssuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(s.jwtSigningKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}
