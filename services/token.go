package services

import (
	"fmt"
	"strings"
	"time"

	"rentalsite/errors"

	"github.com/dgrijalva/jwt-go"
)

type AdminInfo struct {
	Username string `json:"username"`
}

type Claims struct {
	AdminInfo AdminInfo `json:"admininfo"`
	jwt.StandardClaims
}

// GenerateAdminToken ký token HS256 cho admin
func GenerateAdminToken(secret []byte, username string, issuedAt time.Time, expiry time.Duration) (string, time.Time, error) {
	expiresAt := issuedAt.Add(expiry)
	claims := &Claims{
		AdminInfo: AdminInfo{Username: username},
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  issuedAt.Unix(),
			ExpiresAt: expiresAt.Unix(),
			Subject:   username,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Cannot sign token", err)
	}
	return token, expiresAt, nil
}

// GetAdminFromToken kiểm tra chữ ký, hạn dùng và trả về username
func GetAdminFromToken(secret []byte, tokenString string) (string, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return "", errors.NewAppError(errors.ErrCodeMissingToken, "Missing token", nil)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid token", err)
	}
	if claims.AdminInfo.Username == "" {
		return "", errors.NewAppError(errors.ErrCodeInvalidToken, "Token has no admin info", nil)
	}
	return claims.AdminInfo.Username, nil
}
