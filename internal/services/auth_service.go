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

	"github.com/adanyl0v/go-task-manager/internal/models"
)

type authServiceImpl struct {
	logger        zerolog.Logger
	users         UserStore
	jwtIssuer     string
	jwtSigningKey []byte
	jwtTokenTTL   time.Duration
}

func NewAuthService(
	logger zerolog.Logger,
	users UserStore,
	jwtIssuer string,
	jwtSigningKey []byte,
	jwtTokenTTL time.Duration,
) AuthService {
	return &authServiceImpl{
		logger:        logger,
		users:         users,
		jwtIssuer:     jwtIssuer,
		jwtSigningKey: jwtSigningKey,
		jwtTokenTTL:   jwtTokenTTL,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	now := time.Now()
	user := &models.User{
		Username:  params.Username,
		Email:     params.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}
	user.ID = userUUID.String()

	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}
	user.Password = passwordHash

	err = s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailRegistered) {
			s.logger.Warn().
				Str("username", user.Username).
				Msg("duplicate registration")
			return nil, err
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("inserted user")

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("registered user")

	// Callers must never see the hash.
	user.Password = ""
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	user, err := s.users.ByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.logger.Warn().
				Str("username", params.Username).
				Msg("login for unknown username")
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select user by username")
		return nil, err
	}

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		// Same error as an unknown username, so usernames
		// cannot be enumerated through the login form.
		s.logger.Warn().
			Str("user_id", user.ID).
			Msg("password mismatch")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.generateAccessToken(user)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate access token")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("logged in")
	return &LoginResult{
		UserID:    user.ID,
		Username:  user.Username,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authServiceImpl) VerifyToken(token string) (*AccessTokenClaims, error) {
	t, err := jwt.ParseWithClaims(
		token,
		&AccessTokenClaims{},
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
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := t.Claims.(*AccessTokenClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authServiceImpl) generateAccessToken(user *models.User) (string, time.Time, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(s.jwtTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessTokenClaims{
		UserID:   user.ID,
		Username: user.Username,
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
