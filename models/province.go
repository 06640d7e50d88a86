package models

type Province struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Service là dịch vụ đi kèm khách có thể chọn khi đặt phòng
type Service struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// CurrencyRate quy đổi từ đơn vị tiền gốc sang Code
type CurrencyRate struct {
	Code   string  `json:"code"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

// SiteContent ánh xạ khóa nội dung sang văn bản hiển thị
type SiteContent map[string]string
