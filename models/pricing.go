package models

// Rate là một mức giá (theo đêm hoặc theo giờ)
type Rate struct {
	Enabled bool    `json:"enabled"`
	Price   float64 `json:"price"`
}

// Priced báo mức giá đang bật và có giá > 0. Giá 0 coi như chưa định giá.
func (r *Rate) Priced() bool {
	return r != nil && r.Enabled && r.Price > 0
}

// TourismTier là cấu hình giá cho một loại du lịch (trong nước / quốc tế)
type TourismTier struct {
	Enabled     bool  `json:"enabled"`
	NightlyRate *Rate `json:"nightlyRate,omitempty"`
	HourlyRate  *Rate `json:"hourlyRate,omitempty"`
}

func (t *TourismTier) Active() bool {
	return t != nil && t.Enabled
}

type RoomPricing struct {
	NationalTourism      *TourismTier `json:"nationalTourism,omitempty"`
	InternationalTourism *TourismTier `json:"internationalTourism,omitempty"`
}

// GlobalRateRule ghi đè giá của một chế độ tính giá
type GlobalRateRule struct {
	Enabled bool `json:"enabled"`
	// Strategy là "multiplier" hoặc "fixed"
	Strategy   string  `json:"strategy"`
	Multiplier float64 `json:"multiplier"`
	FixedPrice float64 `json:"fixedPrice"`
}

type GlobalTierRule struct {
	Nightly GlobalRateRule `json:"nightly"`
	Hourly  GlobalRateRule `json:"hourly"`
}

// GlobalPricingConfig là cấu hình giá toàn cục áp cho mọi phòng
type GlobalPricingConfig struct {
	Enabled              bool           `json:"enabled"`
	ApplyToAllRooms      bool           `json:"applyToAllRooms"`
	NationalTourism      GlobalTierRule `json:"nationalTourism"`
	InternationalTourism GlobalTierRule `json:"internationalTourism"`
}

func (c GlobalPricingConfig) Active() bool {
	return c.Enabled && c.ApplyToAllRooms
}

const (
	StrategyMultiplier = "multiplier"
	StrategyFixed      = "fixed"
)
