package routes

import (
	"net/http"

	"rentalsite/controllers"
	middlewares "rentalsite/middleware"
	"rentalsite/services"
	"rentalsite/services/logger"
	"rentalsite/validator"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies là các service mà router cần
type Dependencies struct {
	Rooms      *services.RoomService
	Settings   *services.SettingsService
	Auth       *services.AuthService
	Dispatcher *services.Dispatcher
	Uploader   services.ImageUploader
	Metrics    *services.Metrics
	Gatherer   prometheus.Gatherer
	Logger     logger.Logger
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	if deps.Logger == nil {
		deps.Logger = logger.NopLogger{}
	}
	if err := validator.RegisterBinding(); err != nil {
		deps.Logger.Error("register whatsapp validator: %v", err)
	}

	if deps.Metrics != nil {
		router.Use(middlewares.Metrics(deps.Metrics))
	}
	router.Use(middlewares.SessionMiddleware(), middlewares.RequestLogger(deps.Logger), middlewares.ErrorHandler())

	roomController := controllers.NewRoomController(controllers.RoomControllerOptions{
		Rooms:        deps.Rooms,
		Settings:     deps.Settings,
		Availability: services.NewAvailabilityChecker(deps.Logger),
		Dispatcher:   deps.Dispatcher,
		Logger:       deps.Logger,
	})
	adminController := controllers.NewAdminController(controllers.AdminControllerOptions{
		Rooms:    deps.Rooms,
		Settings: deps.Settings,
		Uploader: deps.Uploader,
		Logger:   deps.Logger,
	})
	settingsController := controllers.NewSettingsController(deps.Settings, deps.Logger)
	authController := controllers.NewAuthController(deps.Auth, deps.Logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")

	v1.GET("/rooms", roomController.GetRooms)
	v1.GET("/rooms/search", roomController.SearchRooms)
	v1.GET("/rooms/:id", roomController.GetRoomDetail)
	v1.GET("/rooms/:id/prices", roomController.GetRoomPrices)
	v1.POST("/rooms/:id/availability", roomController.CheckAvailability)
	v1.POST("/rooms/:id/quote", roomController.QuoteRoom)
	v1.POST("/rooms/:id/reservations", roomController.CreateReservation)

	v1.GET("/services", settingsController.GetServices)
	v1.GET("/provinces", settingsController.GetProvinces)
	v1.GET("/content", settingsController.GetContent)
	v1.GET("/currencies", settingsController.GetCurrencies)

	v1.POST("/auth/login", authController.Login)

	admin := v1.Group("/admin", middlewares.AdminMiddleware(deps.Auth))

	admin.POST("/rooms", adminController.CreateRoom)
	admin.PUT("/rooms/:id", adminController.UpdateRoom)
	admin.DELETE("/rooms/:id", adminController.DeleteRoom)
	admin.PUT("/rooms/:id/availability", adminController.SetAvailability)
	admin.POST("/rooms/:id/hosts", adminController.AddHost)
	admin.DELETE("/rooms/:id/hosts/:hostId", adminController.RemoveHost)
	admin.PUT("/rooms/:id/hosts/:hostId/primary", adminController.SetPrimaryHost)

	admin.GET("/export", adminController.ExportRooms)
	admin.POST("/import", adminController.ImportRooms)
	admin.GET("/export/ts/:file", adminController.ExportTS)

	admin.GET("/settings/pricing", settingsController.GetGlobalPricing)
	admin.PUT("/settings/pricing", settingsController.UpdateGlobalPricing)
	admin.GET("/settings/currencies", settingsController.GetCurrencies)
	admin.PUT("/settings/currencies", settingsController.UpdateCurrencies)
	admin.GET("/settings/content", settingsController.GetContent)
	admin.PUT("/settings/content", settingsController.UpdateContent)
	admin.GET("/settings/services", settingsController.GetServices)
	admin.PUT("/settings/services", settingsController.UpdateServices)
	admin.GET("/settings/provinces", settingsController.GetProvinces)
	admin.PUT("/settings/provinces", settingsController.UpdateProvinces)

	admin.POST("/images", adminController.UploadImage)
}
