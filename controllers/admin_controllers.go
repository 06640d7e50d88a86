package controllers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"rentalsite/dto"
	"rentalsite/models"
	"rentalsite/response"
	"rentalsite/services"
	"rentalsite/services/logger"

	"github.com/gin-gonic/gin"
)

// Giới hạn kích thước file import
const maxImportSize = 10 << 20

type AdminControllerOptions struct {
	Rooms    *services.RoomService
	Settings *services.SettingsService
	// Uploader = nil khi chưa cấu hình Cloudinary
	Uploader services.ImageUploader
	Logger   logger.Logger
}

// AdminController phục vụ các API quản trị phòng
type AdminController struct {
	rooms    *services.RoomService
	settings *services.SettingsService
	uploader services.ImageUploader
	logger   logger.Logger
}

func NewAdminController(opts AdminControllerOptions) *AdminController {
	if opts.Logger == nil {
		opts.Logger = logger.NopLogger{}
	}
	return &AdminController{
		rooms:    opts.Rooms,
		settings: opts.Settings,
		uploader: opts.Uploader,
		logger:   opts.Logger,
	}
}

func (a *AdminController) fail(c *gin.Context, err error) {
	respondError(c, a.logger, err)
}

func (a *AdminController) CreateRoom(c *gin.Context) {
	// phòng mới mặc định còn nhận khách khi body không có "available"
	room := models.Room{Available: true}
	if err := c.ShouldBindJSON(&room); err != nil {
		response.ValidationError(c, "Invalid room: "+err.Error())
		return
	}
	created, err := a.rooms.CreateRoom(c.Request.Context(), &room)
	if err != nil {
		a.fail(c, err)
		return
	}
	response.Created(c, created)
}

func (a *AdminController) UpdateRoom(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		response.ValidationError(c, "Invalid room: "+err.Error())
		return
	}
	updated, err := a.rooms.UpdateRoom(c.Request.Context(), id, &room)
	if err != nil {
		a.fail(c, err)
		return
	}
	response.Success(c, updated)
}

func (a *AdminController) DeleteRoom(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}
	if err := a.rooms.DeleteRoom(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

func (a *AdminController) SetAvailability(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}
	var req dto.AvailabilityToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request: "+err.Error())
		return
	}
	room, err := a.rooms.SetAvailability(c.Request.Context(), id, *req.Available)
	if err != nil {
		a.fail(c, err)
		return
	}
	response.Success(c, room)
}

func (a *AdminController) AddHost(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}
	var req dto.HostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid host: "+err.Error())
		return
	}
	room, err := a.rooms.AddHost(c.Request.Context(), id, req.ToModel())
	if err != nil {
		a.fail(c, err)
		return
	}
	response.Created(c, room)
}

func (a *AdminController) RemoveHost(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}
	room, err := a.rooms.RemoveHost(c.Request.Context(), id, c.Param("hostId"))
	if err != nil {
		a.fail(c, err)
		return
	}
	response.Success(c, room)
}

func (a *AdminController) SetPrimaryHost(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}
	room, err := a.rooms.SetPrimaryHost(c.Request.Context(), id, c.Param("hostId"))
	if err != nil {
		a.fail(c, err)
		return
	}
	response.Success(c, room)
}

// ExportRooms tải về file JSON {rooms, exportDate, version}
func (a *AdminController) ExportRooms(c *gin.Context) {
	data, err := a.rooms.ExportJSON(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	filename := fmt.Sprintf("rooms-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// ImportRooms nhận file qua multipart (field "file") hoặc JSON trong body
func (a *AdminController) ImportRooms(c *gin.Context) {
	var (
		data []byte
		err  error
	)
	if file, ferr := c.FormFile("file"); ferr == nil {
		src, oerr := file.Open()
		if oerr != nil {
			response.BadRequest(c, "Cannot open file")
			return
		}
		defer src.Close()
		data, err = io.ReadAll(io.LimitReader(src, maxImportSize))
	} else {
		data, err = io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	}
	if err != nil {
		a.logger.Error("import read failed: %v", err)
		response.BadRequest(c, "Cannot read import file")
		return
	}

	count, err := a.rooms.ImportJSON(c.Request.Context(), data)
	if err != nil {
		a.fail(c, err)
		return
	}
	response.Success(c, dto.ImportResponse{Imported: count})
}

// ExportTS sinh file TypeScript rooms.ts, services.ts hoặc provinces.ts
func (a *AdminController) ExportTS(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		data []byte
		err  error
	)
	file := c.Param("file")
	switch file {
	case services.RoomsTSFile:
		var rooms []models.Room
		if rooms, err = a.rooms.ListRooms(ctx); err == nil {
			data, err = services.GenerateRoomsTS(rooms)
		}
	case services.ServicesTSFile:
		var list []models.Service
		if list, err = a.settings.Services(ctx); err == nil {
			data, err = services.GenerateServicesTS(list)
		}
	case services.ProvincesTSFile:
		var provinces []models.Province
		if provinces, err = a.settings.Provinces(ctx); err == nil {
			data, err = services.GenerateProvincesTS(provinces)
		}
	default:
		response.NotFound(c)
		return
	}
	if err != nil {
		a.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}

func (a *AdminController) UploadImage(c *gin.Context) {
	if a.uploader == nil {
		response.ServiceUnavailable(c, "Image upload is not configured")
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file")
		return
	}
	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "Cannot open file")
		return
	}
	defer src.Close()

	url, publicID, err := a.uploader.Upload(c.Request.Context(), src, services.RoomImageFolder)
	if err != nil {
		a.fail(c, err)
		return
	}
	response.Success(c, dto.ImageUploadResponse{URL: url, PublicID: publicID})
}
