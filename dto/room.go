package dto

import (
	"rentalsite/models"
	"rentalsite/services"
)

// RoomPricesResponse là các mức giá hiển thị của phòng
type RoomPricesResponse struct {
	RoomID  int                    `json:"roomId"`
	Primary services.PriceOption   `json:"primary"`
	Options []services.PriceOption `json:"options"`
	// Effective là giá sau khi áp cấu hình giá toàn cục, theo chế độ đêm và giờ
	Effective map[string]services.PriceOption `json:"effective"`
}

type RoomSearchResponse struct {
	Query   string                `json:"query"`
	Results []services.ScoredRoom `json:"results"`
}

type AvailabilityToggleRequest struct {
	Available *bool `json:"available" binding:"required"`
}

type HostRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name" binding:"required"`
	HostSince string `json:"hostSince"`
	Bio       string `json:"bio"`
	Avatar    string `json:"avatar"`
	Phone     string `json:"phone" binding:"omitempty,whatsapp"`
	IsPrimary bool   `json:"isPrimary"`
}

func (r HostRequest) ToModel() models.Host {
	return models.Host{
		ID:        r.ID,
		Name:      r.Name,
		HostSince: r.HostSince,
		Bio:       r.Bio,
		Avatar:    r.Avatar,
		Phone:     r.Phone,
		IsPrimary: r.IsPrimary,
	}
}

type ImportResponse struct {
	Imported int `json:"imported"`
}

type ImageUploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}
