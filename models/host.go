package models

type Host struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	HostSince string `json:"hostSince"`
	Bio       string `json:"bio,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
}

// HostWhatsApp cấu hình số WhatsApp nhận yêu cầu đặt phòng
type HostWhatsApp struct {
	Enabled         bool   `json:"enabled"`
	Primary         string `json:"primary"`
	Secondary       string `json:"secondary,omitempty"`
	SendToPrimary   bool   `json:"sendToPrimary"`
	SendToSecondary bool   `json:"sendToSecondary"`
}
