package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"rentalsite/builders"
	"rentalsite/constants"
	"rentalsite/dto"
	"rentalsite/errors"
	"rentalsite/models"
	"rentalsite/response"
	"rentalsite/services"
	"rentalsite/services/logger"

	"github.com/gin-gonic/gin"
)

type RoomControllerOptions struct {
	Rooms        *services.RoomService
	Settings     *services.SettingsService
	Availability *services.AvailabilityChecker
	Dispatcher   *services.Dispatcher
	Logger       logger.Logger
}

// RoomController phục vụ các API công khai của site đặt phòng
type RoomController struct {
	rooms        *services.RoomService
	settings     *services.SettingsService
	availability *services.AvailabilityChecker
	dispatcher   *services.Dispatcher
	logger       logger.Logger
}

func NewRoomController(opts RoomControllerOptions) *RoomController {
	if opts.Logger == nil {
		opts.Logger = logger.NopLogger{}
	}
	if opts.Availability == nil {
		opts.Availability = services.NewAvailabilityChecker(opts.Logger)
	}
	return &RoomController{
		rooms:        opts.Rooms,
		settings:     opts.Settings,
		availability: opts.Availability,
		dispatcher:   opts.Dispatcher,
		logger:       opts.Logger,
	}
}

func parseRoomID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid room id")
		return 0, false
	}
	return id, true
}

// loadRoom đọc phòng theo :id, tự trả response khi lỗi
func (rc *RoomController) loadRoom(c *gin.Context) (*models.Room, bool) {
	id, ok := parseRoomID(c)
	if !ok {
		return nil, false
	}
	room, err := rc.rooms.GetRoom(c.Request.Context(), id)
	if err != nil {
		rc.fail(c, err)
		return nil, false
	}
	return room, true
}

func (rc *RoomController) fail(c *gin.Context, err error) {
	respondError(c, rc.logger, err)
}

func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.rooms.ListRooms(c.Request.Context())
	if err != nil {
		rc.fail(c, err)
		return
	}

	if province := strings.TrimSpace(c.Query("province")); province != "" {
		filtered := make([]models.Room, 0, len(rooms))
		for _, room := range rooms {
			if strings.EqualFold(room.Province, province) {
				filtered = append(filtered, room)
			}
		}
		rooms = filtered
	}
	if c.Query("available") == "true" {
		filtered := make([]models.Room, 0, len(rooms))
		for _, room := range rooms {
			if room.Available {
				filtered = append(filtered, room)
			}
		}
		rooms = filtered
	}

	response.SuccessWithTotal(c, rooms, len(rooms))
}

func (rc *RoomController) GetRoomDetail(c *gin.Context) {
	room, ok := rc.loadRoom(c)
	if !ok {
		return
	}
	response.Success(c, room)
}

func (rc *RoomController) SearchRooms(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		response.BadRequest(c, "Query q is required")
		return
	}
	rooms, err := rc.rooms.ListRooms(c.Request.Context())
	if err != nil {
		rc.fail(c, err)
		return
	}
	results := services.SearchRooms(rooms, query)
	response.SuccessWithTotal(c, dto.RoomSearchResponse{Query: query, Results: results}, len(results))
}

func (rc *RoomController) GetRoomPrices(c *gin.Context) {
	room, ok := rc.loadRoom(c)
	if !ok {
		return
	}
	tourism := c.Query("tourism")
	global, err := rc.settings.GlobalPricing(c.Request.Context())
	if err != nil {
		rc.fail(c, err)
		return
	}

	options := services.ConfiguredPrices(room, tourism)
	response.Success(c, dto.RoomPricesResponse{
		RoomID:  room.ID,
		Primary: options[0],
		Options: options,
		Effective: map[string]services.PriceOption{
			constants.PricingModeNightly: services.EffectivePriceOption(room, tourism, constants.PricingModeNightly, global),
			constants.PricingModeHourly:  services.EffectivePriceOption(room, tourism, constants.PricingModeHourly, global),
		},
	})
}

func (rc *RoomController) CheckAvailability(c *gin.Context) {
	room, ok := rc.loadRoom(c)
	if !ok {
		return
	}
	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request: "+err.Error())
		return
	}
	result := rc.availability.Check(room, req.CheckIn, req.CheckOut, req.Guests)
	response.Success(c, result)
}

// buildDraft tạo booking draft từ form; giá toàn cục và danh mục dịch vụ đọc từ settings
func (rc *RoomController) buildDraft(c *gin.Context, room *models.Room, req dto.QuoteRequest) (*services.BookingDraft, error) {
	ctx := c.Request.Context()
	global, err := rc.settings.GlobalPricing(ctx)
	if err != nil {
		return nil, err
	}
	catalogue, err := rc.settings.Services(ctx)
	if err != nil {
		return nil, err
	}
	return builders.NewDraftBuilder(room).
		WithDates(req.CheckIn, req.CheckOut).
		WithHours(req.Hours).
		WithGuests(req.Guests).
		WithPricingMode(req.PricingMode).
		WithTourism(req.TourismType).
		WithServices(catalogue, req.Services).
		WithGlobalPricing(global).
		Build()
}

func (rc *RoomController) checkDraft(room *models.Room, draft *services.BookingDraft) *services.AvailabilityResult {
	if draft.CheckIn == "" || draft.CheckOut == "" {
		return nil
	}
	result := rc.availability.Check(room, draft.CheckIn, draft.CheckOut, draft.Guests)
	return &result
}

func (rc *RoomController) convert(c *gin.Context, draft *services.BookingDraft, code string) (*dto.CurrencyTotals, error) {
	if code == "" {
		return nil, nil
	}
	rate, found, err := rc.settings.Currency(c.Request.Context(), code)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Unknown currency: "+code, nil)
	}
	t := draft.Totals
	return &dto.CurrencyTotals{
		Code:             rate.Code,
		Symbol:           rate.Symbol,
		Rate:             rate.Rate,
		EffectivePrice:   services.ConvertPrice(draft.EffectivePrice, rate.Rate),
		RoomSubtotal:     services.ConvertPrice(t.RoomSubtotal, rate.Rate),
		ServicesSubtotal: services.ConvertPrice(t.ServicesSubtotal, rate.Rate),
		CleaningFee:      services.ConvertPrice(t.CleaningFee, rate.Rate),
		ServiceFee:       services.ConvertPrice(t.ServiceFee, rate.Rate),
		GrandTotal:       services.ConvertPrice(t.GrandTotal, rate.Rate),
	}, nil
}

func (rc *RoomController) QuoteRoom(c *gin.Context) {
	room, ok := rc.loadRoom(c)
	if !ok {
		return
	}
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request: "+err.Error())
		return
	}

	draft, err := rc.buildDraft(c, room, req)
	if err != nil {
		rc.fail(c, err)
		return
	}
	converted, err := rc.convert(c, draft, req.Currency)
	if err != nil {
		rc.fail(c, err)
		return
	}
	response.Success(c, dto.QuoteResponse{
		Draft:        draft,
		Availability: rc.checkDraft(room, draft),
		Converted:    converted,
	})
}

// CreateReservation gửi yêu cầu đặt phòng qua WhatsApp cho host.
// Không lưu gì phía server.
func (rc *RoomController) CreateReservation(c *gin.Context) {
	room, ok := rc.loadRoom(c)
	if !ok {
		return
	}
	var req dto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request: "+err.Error())
		return
	}

	draft, err := rc.buildDraft(c, room, req.QuoteRequest)
	if err != nil {
		rc.fail(c, err)
		return
	}
	if draft.Units() <= 0 {
		response.ValidationError(c, "Select your dates or number of hours")
		return
	}
	// theo giờ không có ngày nên checkDraft không xét cờ available
	if !room.Available {
		response.ValidationError(c, services.MessageRoomUnavailable)
		return
	}
	if result := rc.checkDraft(room, draft); result != nil && !result.Available {
		response.ValidationError(c, result.Message)
		return
	}
	if draft.Guests.Total() > room.Capacity.MaxGuests {
		response.ValidationError(c, "Too many guests for this room")
		return
	}

	session := c.GetString(constants.SessionContextKey)
	message := services.FormatReservationMessage(draft, room, req.Customer)
	result := rc.dispatcher.Dispatch(c.Request.Context(), session, room, message)

	resp := dto.ReservationResponse{Draft: draft, Message: message, Dispatch: result}
	if !result.Success {
		rc.logger.Warn("reservation for room %d not sent: %v", room.ID, result.Errors)
		c.JSON(http.StatusUnprocessableEntity, response.Response{
			Code: 0,
			Mess: "Reservation could not be sent",
			Data: resp,
		})
		return
	}
	response.Success(c, resp)
}
