package services

import (
	"crypto/subtle"
	"time"

	"rentalsite/constants"
	"rentalsite/errors"

	"golang.org/x/crypto/bcrypt"
)

// AuthService đăng nhập cho tài khoản admin duy nhất cấu hình qua biến môi trường
type AuthService struct {
	username     string
	passwordHash []byte
	secret       []byte
	expiry       time.Duration
	now          func() time.Time
}

func NewAuthService(username, passwordHash, secret string) *AuthService {
	return &AuthService{
		username:     username,
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		expiry:       constants.AdminTokenExpiry,
		now:          time.Now,
	}
}

// Enabled báo đã cấu hình đủ thông tin đăng nhập admin
func (s *AuthService) Enabled() bool {
	return s.username != "" && len(s.passwordHash) > 0 && len(s.secret) > 0
}

// Login trả về token khi đúng username và mật khẩu
func (s *AuthService) Login(username, password string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, errors.NewAppError(errors.ErrCodeFeatureDisabled, "Admin login is not configured", nil)
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) != 1 {
		return "", time.Time{}, errors.NewAppError(errors.ErrCodeUnauthorized, "Invalid username or password", nil)
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, errors.NewAppError(errors.ErrCodeInvalidPassword, "Invalid username or password", err)
	}
	return GenerateAdminToken(s.secret, s.username, s.now(), s.expiry)
}

// Verify kiểm tra token từ header Authorization
func (s *AuthService) Verify(token string) (string, error) {
	if !s.Enabled() {
		return "", errors.NewAppError(errors.ErrCodeFeatureDisabled, "Admin login is not configured", nil)
	}
	username, err := GetAdminFromToken(s.secret, token)
	if err != nil {
		return "", err
	}
	if username != s.username {
		return "", errors.ErrUnauthorized
	}
	return username, nil
}
