package authUtils

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const adminRole = "admin"

// GenerateAdminToken signs a JWT for an authenticated admin session.
func GenerateAdminToken(secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": adminRole,
		"exp":  time.Now().Add(ttl).Unix(),
	})

	return token.SignedString([]byte(secret))
}

// ValidateAdminToken checks the signature, expiry and role of tokenString.
func ValidateAdminToken(secret, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != adminRole {
		return fmt.Errorf("invalid token claims")
	}
	return nil
}
