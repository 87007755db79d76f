package services

import (
	"errors"
	"fmt"
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "docdex"

// GenerateToken issues a short-lived access token for the user.
func GenerateToken(userID string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(utils.JWTExpirationTime) * time.Second)

	claims := jwt.MapClaims{
		"user_id": userID,
		"iss":     tokenIssuer,
		"iat":     time.Now().Unix(),
		"exp":     expirationTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// GenerateRefreshToken issues a long-lived refresh token, marked with a
// type claim so it cannot be used on protected routes.
func GenerateRefreshToken(userID string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(utils.RefreshTokenExpirationTime) * time.Second)

	claims := jwt.MapClaims{
		"user_id": userID,
		"iss":     tokenIssuer,
		"iat":     time.Now().Unix(),
		"exp":     expirationTime.Unix(),
		"type":    "refresh",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// ParseToken validates the signature and returns the claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
