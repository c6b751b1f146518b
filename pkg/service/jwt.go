package service

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "room-inventory/pkg/errors"
)

const issuer = "room-inventory"

type JwtCustomClaim struct {
	UserID         uuid.UUID `json:"userId"`
	IsRefreshToken bool      `json:"isRefreshToken"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateTokens(userID uuid.UUID) (string, string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

type jwtService struct {
	SecretKey       string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
	now             func() time.Time
}

func NewJWTService(secretKey string, accessTokenExp, refreshTokenExp time.Duration) JWTService {
	return &jwtService{
		SecretKey:       secretKey,
		AccessTokenExp:  accessTokenExp,
		RefreshTokenExp: refreshTokenExp,
		now:             time.Now,
	}
}

func (s *jwtService) sign(userID uuid.UUID, refresh bool, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &JwtCustomClaim{
		UserID:         userID,
		IsRefreshToken: refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(s.SecretKey))
}

func (s *jwtService) GenerateTokens(userID uuid.UUID) (string, string, error) {
	access, err := s.sign(userID, false, s.AccessTokenExp)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.sign(userID, true, s.RefreshTokenExp)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *jwtService) GetAccessTokenTTL() time.Duration  { return s.AccessTokenExp }
func (s *jwtService) GetRefreshTokenTTL() time.Duration { return s.RefreshTokenExp }

func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return []byte(s.SecretKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
			return nil, apperrors.ErrTokenNotYetValid
		case errors.Is(err, apperrors.ErrInvalidSigningMethod):
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
