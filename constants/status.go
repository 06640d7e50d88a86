package constants

import "time"

// Tourism types
const (
	TourismNational      = "national"
	TourismInternational = "international"
)

// Pricing modes
const (
	PricingModeNightly = "nightly"
	PricingModeHourly  = "hourly"
)

// Fixed booking fees, not configurable per room
const (
	CleaningFee = 25.0
	ServiceFee  = 15.0
)

// Room defaults
const (
	DefaultMaxGuests = 4
	DefaultBeds      = 1
	DefaultBedrooms  = 1
	DefaultBathrooms = 1
)

// Export format
const (
	ExportVersion = "1.0"
	DateLayout    = "2006-01-02"
)

// Reservation dispatch
const (
	WhatsAppBaseURL        = "https://wa.me/"
	DefaultSecondaryDelay  = 2 * time.Second
	DefaultReloadSchedule  = "@every 10s"
	RoomListCacheTTL       = 10 * time.Minute
	RoomsChangedEventType  = "rooms:changed"
	WhatsAppLinkEventType  = "whatsapp:open"
	SessionHeader          = "X-Session-ID"
	SessionContextKey      = "sessionId"
	AdminContextKey        = "adminUsername"
	AdminTokenExpiry       = 3 * 24 * time.Hour
	RoomListCacheKey       = "rooms:all"
	GlobalPricingSetting   = "global_pricing"
	CurrencyRatesSetting   = "currency_rates"
	SiteContentSetting     = "site_content"
	ServicesCatalogSetting = "services"
	ProvincesSetting       = "provinces"
)
