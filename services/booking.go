package services

import (
	"time"

	"rentalsite/constants"
	"rentalsite/models"
)

// GuestCounts là số khách theo nhóm
type GuestCounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Babies   int `json:"babies"`
	Pets     int `json:"pets"`
}

// Total là số khách tính vào sức chứa; em bé và thú cưng không tính
func (g GuestCounts) Total() int {
	return g.Adults + g.Children
}

// BookingTotals là bảng tổng tiền của một booking draft
type BookingTotals struct {
	RoomSubtotal     float64 `json:"roomSubtotal"`
	ServicesSubtotal float64 `json:"servicesSubtotal"`
	CleaningFee      float64 `json:"cleaningFee"`
	ServiceFee       float64 `json:"serviceFee"`
	GrandTotal       float64 `json:"grandTotal"`
}

// BookingDraft là trạng thái đặt phòng tạm thời, không bao giờ được lưu
type BookingDraft struct {
	RoomID         int              `json:"roomId"`
	CheckIn        string           `json:"checkIn,omitempty"`
	CheckOut       string           `json:"checkOut,omitempty"`
	Nights         int              `json:"nights"`
	Hours          int              `json:"hours"`
	Guests         GuestCounts      `json:"guests"`
	PricingMode    string           `json:"pricingMode"`
	TourismType    string           `json:"tourismType,omitempty"`
	Services       []models.Service `json:"services"`
	EffectivePrice float64          `json:"effectivePrice"`
	PriceSource    string           `json:"priceSource"`
	Totals         BookingTotals    `json:"totals"`
}

// Units trả về số đơn vị tính tiền theo chế độ giá
func (d *BookingDraft) Units() int {
	if d.PricingMode == constants.PricingModeHourly {
		return d.Hours
	}
	return d.Nights
}

// Recalculate tính lại Totals từ giá hiệu lực, số đơn vị và dịch vụ đã chọn
func (d *BookingDraft) Recalculate() {
	d.Totals = ComputeTotals(d.EffectivePrice, d.Units(), d.Services)
}

// ComputeTotals cộng tiền phòng, dịch vụ và hai khoản phí cố định.
// units = 0 cho tiền phòng 0; units âm không được kiểm tra ở đây.
func ComputeTotals(effectivePrice float64, units int, services []models.Service) BookingTotals {
	totals := BookingTotals{
		RoomSubtotal: effectivePrice * float64(units),
		CleaningFee:  constants.CleaningFee,
		ServiceFee:   constants.ServiceFee,
	}
	for _, s := range services {
		totals.ServicesSubtotal += s.Price
	}
	totals.GrandTotal = totals.RoomSubtotal + totals.ServicesSubtotal + totals.CleaningFee + totals.ServiceFee
	return totals
}

// NightsBetween đếm số đêm giữa hai ngày (ngày trả phòng không tính)
func NightsBetween(checkIn, checkOut time.Time) int {
	in := truncateDay(checkIn)
	out := truncateDay(checkOut)
	if !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
