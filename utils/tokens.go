package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"

	"sharedesk/internal/models"
)

var ErrInvalidToken = errors.New("invalid access token")

// Manager signs and verifies HS256 access tokens carrying a user id.
type Manager struct {
	signingKey string
}

func NewManager(signingKey string) (*Manager, error) {
	if signingKey == "" {
		return nil, errors.New("empty signing key")
	}

	return &Manager{signingKey: signingKey}, nil
}

// NewJWT issues a token for userID. A zero ttl issues a token that never expires.
func (m *Manager) NewJWT(userID int, email string, ttl time.Duration) (string, error) {
	claims := models.Claims{
		UserID: userID,
		Email:  email,
		StandardClaims: jwt.StandardClaims{
			Subject:  strconv.Itoa(userID),
			IssuedAt: time.Now().Unix(),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = time.Now().Add(ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.signingKey))
}

func (m *Manager) Parse(accessToken string) (models.Claims, error) {
	var claims models.Claims
	token, err := jwt.ParseWithClaims(accessToken, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.signingKey), nil
	})
	if err != nil {
		return models.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return models.Claims{}, ErrInvalidToken
	}

	return claims, nil
}
