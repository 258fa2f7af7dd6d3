package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/ougirez/eracalc/internal/pkg/constants"
)

const authTokenTTL = 24 * time.Hour

// AuthTokenWrapper is the claim set of a game-master console token.
type AuthTokenWrapper struct {
	jwt.StandardClaims
	GameMaster string `json:"game_master"`
}

func GenerateAuthToken(wrapper *AuthTokenWrapper, secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("empty signing secret: %w", constants.ErrInvalidArgument)
	}

	if wrapper.ExpiresAt == 0 {
		wrapper.ExpiresAt = time.Now().Add(authTokenTTL).Unix()
	}
	if wrapper.IssuedAt == 0 {
		wrapper.IssuedAt = time.Now().Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wrapper)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("token.SignedString: %w", err)
	}

	return signed, nil
}

func ParseAuthToken(tokenString string, secret string) (*AuthTokenWrapper, error) {
	if secret == "" {
		return nil, constants.ErrUnauthorized
	}

	wrapper := new(AuthTokenWrapper)
	token, err := jwt.ParseWithClaims(tokenString, wrapper, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("jwt.ParseWithClaims: %s: %w", err.Error(), constants.ErrUnauthorized)
	}
	if !token.Valid {
		return nil, constants.ErrUnauthorized
	}

	return wrapper, nil
}
