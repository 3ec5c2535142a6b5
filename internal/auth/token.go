package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"os"
	"strings"
	"time"
)

const Issuer = "company-directory"

var TokenSecretKey = os.Getenv("SESSION_SECRET")

// Session identifies the signed-in user.
type Session struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type TokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func (c *TokenClaims) Session() *Session {
	return &Session{Email: c.Email, Name: c.Name}
}

func GenerateToken(session *Session, dur time.Duration) (string, error) {
	if session == nil || strings.TrimSpace(session.Email) == "" {
		return "", ErrMissingEmail
	}

	now := time.Now()
	claims := TokenClaims{
		Email: session.Email,
		Name:  session.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   strings.ToLower(session.Email),
			ExpiresAt: jwt.NewNumericDate(now.Add(dur)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(TokenSecretKey))
}

func VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			alg, _ := token.Header["alg"].(string)
			return nil, errors.Wrap(ErrInvalidSigningMethod, alg)
		}
		return []byte(TokenSecretKey), nil
	}, jwt.WithIssuer(Issuer))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid && claims.Email != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// SessionFromToken returns the session carried by a valid token.
func SessionFromToken(tokenString string) (*Session, bool) {
	claims, err := VerifyToken(tokenString)
	if err != nil {
		return nil, false
	}
	return claims.Session(), true
}
