package controllers

import (
	"rentalsite/dto"
	"rentalsite/response"
	"rentalsite/services"
	"rentalsite/services/logger"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth   *services.AuthService
	logger logger.Logger
}

func NewAuthController(auth *services.AuthService, log logger.Logger) *AuthController {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &AuthController{auth: auth, logger: log}
}

// Login đăng nhập admin, trả về JWT dùng cho các API /admin
func (a *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Username and password are required")
		return
	}

	token, expiresAt, err := a.auth.Login(req.Username, req.Password)
	if err != nil {
		a.logger.Warn("admin login failed for %q from %s", req.Username, c.ClientIP())
		respondError(c, a.logger, err)
		return
	}
	a.logger.Info("admin %q logged in", req.Username)
	response.Success(c, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}
