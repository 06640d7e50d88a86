package builders

import (
	"fmt"
	"strings"

	"rentalsite/constants"
	"rentalsite/errors"
	"rentalsite/models"
	"rentalsite/services"
)

// DraftBuilder giúp tạo booking draft theo từng bước
type DraftBuilder struct {
	room       *models.Room
	draft      *services.BookingDraft
	catalogue  []models.Service
	serviceIDs []string
	global     models.GlobalPricingConfig
}

// NewDraftBuilder tạo builder cho một phòng
func NewDraftBuilder(room *models.Room) *DraftBuilder {
	return &DraftBuilder{
		room: room,
		draft: &services.BookingDraft{
			RoomID:      room.ID,
			PricingMode: constants.PricingModeNightly,
			Services:    []models.Service{},
		},
	}
}

// WithDates thêm ngày nhận / trả phòng (YYYY-MM-DD)
func (b *DraftBuilder) WithDates(checkIn, checkOut string) *DraftBuilder {
	b.draft.CheckIn = strings.TrimSpace(checkIn)
	b.draft.CheckOut = strings.TrimSpace(checkOut)
	return b
}

// WithHours thêm số giờ cho chế độ tính theo giờ
func (b *DraftBuilder) WithHours(hours int) *DraftBuilder {
	b.draft.Hours = hours
	return b
}

func (b *DraftBuilder) WithGuests(guests services.GuestCounts) *DraftBuilder {
	b.draft.Guests = guests
	return b
}

func (b *DraftBuilder) WithPricingMode(mode string) *DraftBuilder {
	b.draft.PricingMode = services.NormalizeMode(mode)
	return b
}

func (b *DraftBuilder) WithTourism(tourism string) *DraftBuilder {
	b.draft.TourismType = services.NormalizeTourism(tourism)
	return b
}

// WithServices chọn dịch vụ theo id trong danh mục
func (b *DraftBuilder) WithServices(catalogue []models.Service, ids []string) *DraftBuilder {
	b.catalogue = catalogue
	b.serviceIDs = ids
	return b
}

// WithGlobalPricing thêm cấu hình giá toàn cục
func (b *DraftBuilder) WithGlobalPricing(cfg models.GlobalPricingConfig) *DraftBuilder {
	b.global = cfg
	return b
}

// Build tính số đêm, giá hiệu lực và tổng tiền
func (b *DraftBuilder) Build() (*services.BookingDraft, error) {
	d := b.draft

	if d.PricingMode == constants.PricingModeHourly {
		if d.Hours < 0 {
			return nil, errors.NewAppError(errors.ErrCodeValidation, "Hours must not be negative", nil)
		}
	} else if d.CheckIn != "" || d.CheckOut != "" {
		in, err := services.ParseDate(d.CheckIn)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCodeInvalidDate, "Invalid check-in date", err)
		}
		out, err := services.ParseDate(d.CheckOut)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCodeInvalidDate, "Invalid check-out date", err)
		}
		d.Nights = services.NightsBetween(in, out)
	}

	byID := make(map[string]models.Service, len(b.catalogue))
	for _, s := range b.catalogue {
		byID[s.ID] = s
	}
	d.Services = make([]models.Service, 0, len(b.serviceIDs))
	for _, id := range b.serviceIDs {
		s, ok := byID[id]
		if !ok {
			return nil, errors.NewAppError(errors.ErrCodeValidation, fmt.Sprintf("Unknown service: %s", id), nil)
		}
		d.Services = append(d.Services, s)
	}

	option := services.EffectivePriceOption(b.room, d.TourismType, d.PricingMode, b.global)
	d.EffectivePrice = option.Price
	d.PriceSource = option.Source
	d.Recalculate()
	return d, nil
}
