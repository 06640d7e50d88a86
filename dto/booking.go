package dto

import (
	"rentalsite/services"
)

type AvailabilityRequest struct {
	CheckIn  string               `json:"checkIn" binding:"required"`
	CheckOut string               `json:"checkOut" binding:"required"`
	Guests   services.GuestCounts `json:"guests"`
}

// QuoteRequest là dữ liệu khách chọn trên form đặt phòng
type QuoteRequest struct {
	CheckIn     string               `json:"checkIn"`
	CheckOut    string               `json:"checkOut"`
	Hours       int                  `json:"hours" binding:"gte=0"`
	Guests      services.GuestCounts `json:"guests"`
	PricingMode string               `json:"pricingMode" binding:"omitempty,oneof=nightly hourly"`
	TourismType string               `json:"tourismType" binding:"omitempty,oneof=national international"`
	Services    []string             `json:"services"`
	Currency    string               `json:"currency"`
}

// CurrencyTotals là tổng tiền đã quy đổi sang tiền hiển thị
type CurrencyTotals struct {
	Code             string  `json:"code"`
	Symbol           string  `json:"symbol"`
	Rate             float64 `json:"rate"`
	EffectivePrice   float64 `json:"effectivePrice"`
	RoomSubtotal     float64 `json:"roomSubtotal"`
	ServicesSubtotal float64 `json:"servicesSubtotal"`
	CleaningFee      float64 `json:"cleaningFee"`
	ServiceFee       float64 `json:"serviceFee"`
	GrandTotal       float64 `json:"grandTotal"`
}

type QuoteResponse struct {
	Draft        *services.BookingDraft      `json:"draft"`
	Availability *services.AvailabilityResult `json:"availability,omitempty"`
	Converted    *CurrencyTotals             `json:"converted,omitempty"`
}

type ReservationRequest struct {
	QuoteRequest
	Customer services.CustomerContact `json:"customer" binding:"required"`
}

type ReservationResponse struct {
	Draft    *services.BookingDraft  `json:"draft"`
	Message  string                  `json:"message"`
	Dispatch services.DispatchResult `json:"dispatch"`
}
