package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

//go:generate mockgen -source=jwt.go -destination=mock_jwt.go -package=auth

const (
	Issuer   = "steake-casino"
	Audience = "steake-users"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// Identity is who a token speaks for.
type Identity struct {
	UserID  int
	Login   string
	IsAdmin bool
}

type JWTServiceInterface interface {
	GenerateJWT(identity Identity, expirationTime time.Time) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type Claims struct {
	UserID  int    `json:"user_id"`
	Login   string `json:"login"`
	IsAdmin bool   `json:"is_admin"`
	jwt.StandardClaims
}

func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Login: c.Login, IsAdmin: c.IsAdmin}
}

type JWTService struct {
	secret []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

func (s *JWTService) GenerateJWT(identity Identity, expirationTime time.Time) (string, error) {
	claims := Claims{
		UserID:  identity.UserID,
		Login:   identity.Login,
		IsAdmin: identity.IsAdmin,
		StandardClaims: jwt.StandardClaims{
			Audience:  Audience,
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
			Issuer:    Issuer,
			Subject:   fmt.Sprint(identity.UserID),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == 0 || claims.Issuer != Issuer || !claims.VerifyAudience(Audience, true) {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
