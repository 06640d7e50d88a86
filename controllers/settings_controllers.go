package controllers

import (
	"rentalsite/models"
	"rentalsite/response"
	"rentalsite/services"
	"rentalsite/services/logger"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	settings *services.SettingsService
	logger   logger.Logger
}

func NewSettingsController(settings *services.SettingsService, log logger.Logger) *SettingsController {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &SettingsController{settings: settings, logger: log}
}

func (s *SettingsController) GetGlobalPricing(c *gin.Context) {
	cfg, err := s.settings.GlobalPricing(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	response.Success(c, cfg)
}

func (s *SettingsController) UpdateGlobalPricing(c *gin.Context) {
	var cfg models.GlobalPricingConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		response.ValidationError(c, "Invalid pricing config: "+err.Error())
		return
	}
	if err := s.settings.SaveGlobalPricing(c.Request.Context(), cfg); err != nil {
		respondError(c, s.logger, err)
		return
	}
	response.Success(c, cfg)
}

func (s *SettingsController) GetCurrencies(c *gin.Context) {
	rates, err := s.settings.Currencies(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	response.Success(c, rates)
}

func (s *SettingsController) UpdateCurrencies(c *gin.Context) {
	var rates []models.CurrencyRate
	if err := c.ShouldBindJSON(&rates); err != nil {
		response.ValidationError(c, "Invalid currencies: "+err.Error())
		return
	}
	if err := s.settings.SaveCurrencies(c.Request.Context(), rates); err != nil {
		respondError(c, s.logger, err)
		return
	}
	response.Success(c, rates)
}

func (s *SettingsController) GetContent(c *gin.Context) {
	content, err := s.settings.Content(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	response.Success(c, content)
}

func (s *SettingsController) UpdateContent(c *gin.Context) {
	var content models.SiteContent
	if err := c.ShouldBindJSON(&content); err != nil {
		response.ValidationError(c, "Invalid content: "+err.Error())
		return
	}
	if err := s.settings.SaveContent(c.Request.Context(), content); err != nil {
		respondError(c, s.logger, err)
		return
	}
	response.Success(c, content)
}

func (s *SettingsController) GetServices(c *gin.Context) {
	list, err := s.settings.Services(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	response.Success(c, list)
}

func (s *SettingsController) UpdateServices(c *gin.Context) {
	var list []models.Service
	if err := c.ShouldBindJSON(&list); err != nil {
		response.ValidationError(c, "Invalid services: "+err.Error())
		return
	}
	if err := s.settings.SaveServices(c.Request.Context(), list); err != nil {
		respondError(c, s.logger, err)
		return
	}
	response.Success(c, list)
}

func (s *SettingsController) GetProvinces(c *gin.Context) {
	provinces, err := s.settings.Provinces(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	response.Success(c, provinces)
}

func (s *SettingsController) UpdateProvinces(c *gin.Context) {
	var provinces []models.Province
	if err := c.ShouldBindJSON(&provinces); err != nil {
		response.ValidationError(c, "Invalid provinces: "+err.Error())
		return
	}
	if err := s.settings.SaveProvinces(c.Request.Context(), provinces); err != nil {
		respondError(c, s.logger, err)
		return
	}
	response.Success(c, provinces)
}
