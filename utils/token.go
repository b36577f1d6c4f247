package authUtils

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 72 * time.Hour

// GenerateToken signs an HS256 token carrying userID.
func GenerateToken(secret, userID string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT secret is not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenTTL).Unix(),
	})

	return token.SignedString([]byte(secret))
}

// ParseToken validates tokenString and returns its user_id claim.
func ParseToken(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("invalid token claims")
	}
	return userID, nil
}
