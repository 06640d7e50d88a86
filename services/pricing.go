package services

import (
	"math"
	"strings"

	"rentalsite/constants"
	"rentalsite/models"
)

const (
	PriceSourceTier   = "tier"
	PriceSourceBase   = "base"
	PriceSourceGlobal = "global"
)

// PriceOption là một mức giá hiển thị cho phòng
type PriceOption struct {
	Tourism string  `json:"tourism,omitempty"`
	Mode    string  `json:"mode"`
	Price   float64 `json:"price"`
	Primary bool    `json:"primary"`
	Source  string  `json:"source"`
}

type priceSlot struct {
	tourism string
	mode    string
}

// Thứ tự ưu tiên khi không chỉ định loại du lịch
var defaultPriceOrder = []priceSlot{
	{constants.TourismInternational, constants.PricingModeNightly},
	{constants.TourismNational, constants.PricingModeNightly},
	{constants.TourismNational, constants.PricingModeHourly},
}

// NormalizeTourism chuẩn hóa loại du lịch; giá trị không nhận diện được trả về ""
func NormalizeTourism(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case constants.TourismNational, "nationaltourism":
		return constants.TourismNational
	case constants.TourismInternational, "internationaltourism":
		return constants.TourismInternational
	default:
		return ""
	}
}

// NormalizeMode trả về "hourly" hoặc "nightly" (mặc định)
func NormalizeMode(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), constants.PricingModeHourly) {
		return constants.PricingModeHourly
	}
	return constants.PricingModeNightly
}

func priceSlots(tourism string) []priceSlot {
	switch NormalizeTourism(tourism) {
	case constants.TourismNational:
		return []priceSlot{
			{constants.TourismNational, constants.PricingModeNightly},
			{constants.TourismNational, constants.PricingModeHourly},
		}
	case constants.TourismInternational:
		return []priceSlot{
			{constants.TourismInternational, constants.PricingModeNightly},
			{constants.TourismInternational, constants.PricingModeHourly},
		}
	default:
		return defaultPriceOrder
	}
}

func tierOf(p *models.RoomPricing, tourism string) *models.TourismTier {
	if p == nil {
		return nil
	}
	switch tourism {
	case constants.TourismNational:
		return p.NationalTourism
	case constants.TourismInternational:
		return p.InternationalTourism
	}
	return nil
}

func rateOf(t *models.TourismTier, mode string) *models.Rate {
	if t == nil {
		return nil
	}
	if mode == constants.PricingModeHourly {
		return t.HourlyRate
	}
	return t.NightlyRate
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func basePriceOption(room *models.Room, mode string) PriceOption {
	return PriceOption{Mode: mode, Price: nonNegative(room.Price), Source: PriceSourceBase}
}

// tieredOptions lists every slot that is enabled at tier and rate level with price > 0,
// in priority order.
func tieredOptions(room *models.Room, slots []priceSlot) []PriceOption {
	var options []PriceOption
	for _, slot := range slots {
		tier := tierOf(room.Pricing, slot.tourism)
		if !tier.Active() {
			continue
		}
		rate := rateOf(tier, slot.mode)
		if !rate.Priced() {
			continue
		}
		options = append(options, PriceOption{
			Tourism: slot.tourism,
			Mode:    slot.mode,
			Price:   nonNegative(rate.Price),
			Source:  PriceSourceTier,
		})
	}
	return options
}

// ResolvePrice trả về giá chính của phòng. Không bao giờ lỗi: mọi nhánh đều
// rơi về room.Price khi không có tier nào được cấu hình.
func ResolvePrice(room *models.Room, tourism string) float64 {
	if room == nil {
		return 0
	}
	if options := tieredOptions(room, priceSlots(tourism)); len(options) > 0 {
		return options[0].Price
	}
	return nonNegative(room.Price)
}

// ConfiguredPrices trả về mọi mức giá cần hiển thị, mức đầu tiên là giá chính
func ConfiguredPrices(room *models.Room, tourism string) []PriceOption {
	if room == nil {
		return nil
	}
	options := tieredOptions(room, priceSlots(tourism))
	if len(options) == 0 {
		options = []PriceOption{basePriceOption(room, constants.PricingModeNightly)}
	}
	options[0].Primary = true
	return options
}

// PriceForMode chọn giá tier cho một chế độ tính tiền, rơi về room.Price nếu không có
func PriceForMode(room *models.Room, tourism, mode string) PriceOption {
	mode = NormalizeMode(mode)
	if room == nil {
		return PriceOption{Mode: mode, Source: PriceSourceBase}
	}
	var slots []priceSlot
	for _, slot := range priceSlots(tourism) {
		if slot.mode == mode {
			slots = append(slots, slot)
		}
	}
	if options := tieredOptions(room, slots); len(options) > 0 {
		return options[0]
	}
	return basePriceOption(room, mode)
}

func globalRule(cfg models.GlobalPricingConfig, tourism, mode string) models.GlobalRateRule {
	tier := cfg.NationalTourism
	if tourism == constants.TourismInternational {
		tier = cfg.InternationalTourism
	}
	if mode == constants.PricingModeHourly {
		return tier.Hourly
	}
	return tier.Nightly
}

// EffectivePrice là giá dùng để tính tổng tiền (getEffectiveRoomPrice).
// Giá tier được tính trước; nếu cấu hình toàn cục đang bật cho đúng loại du lịch
// và chế độ thì nó thay thế hoàn toàn giá tier.
func EffectivePrice(room *models.Room, tourism, mode string, global models.GlobalPricingConfig) float64 {
	return EffectivePriceOption(room, tourism, mode, global).Price
}

// EffectivePriceOption như EffectivePrice nhưng trả về cả nguồn của giá
func EffectivePriceOption(room *models.Room, tourism, mode string, global models.GlobalPricingConfig) PriceOption {
	mode = NormalizeMode(mode)
	option := PriceForMode(room, tourism, mode)
	if room == nil || !global.Active() {
		return option
	}

	ruleTourism := option.Tourism
	if ruleTourism == "" {
		ruleTourism = NormalizeTourism(tourism)
	}
	if ruleTourism == "" {
		ruleTourism = constants.TourismNational
	}

	rule := globalRule(global, ruleTourism, mode)
	if !rule.Enabled {
		return option
	}

	switch strings.ToLower(rule.Strategy) {
	case models.StrategyFixed:
		option.Price = nonNegative(rule.FixedPrice)
	default:
		if rule.Multiplier <= 0 {
			return option
		}
		option.Price = nonNegative(room.Price * rule.Multiplier)
	}
	option.Tourism = ruleTourism
	option.Source = PriceSourceGlobal
	return option
}
