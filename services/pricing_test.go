package services

import (
	"math"
	"testing"

	"rentalsite/constants"
	"rentalsite/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(enabled bool, price float64) *models.Rate {
	return &models.Rate{Enabled: enabled, Price: price}
}

func tier(enabled bool, nightly, hourly *models.Rate) *models.TourismTier {
	return &models.TourismTier{Enabled: enabled, NightlyRate: nightly, HourlyRate: hourly}
}

func pricedRoom() *models.Room {
	return &models.Room{
		ID:    1,
		Name:  "Sea view",
		Price: 80,
		Pricing: &models.RoomPricing{
			NationalTourism:      tier(true, rate(true, 50), rate(true, 12)),
			InternationalTourism: tier(true, rate(true, 120), rate(true, 30)),
		},
	}
}

func TestResolvePrice_InternationalNightlyWinsByDefault(t *testing.T) {
	room := pricedRoom()
	assert.Equal(t, 120.0, ResolvePrice(room, ""))
}

func TestResolvePrice_DefaultOrder(t *testing.T) {
	room := pricedRoom()

	room.Pricing.InternationalTourism.NightlyRate.Enabled = false
	assert.Equal(t, 50.0, ResolvePrice(room, ""), "national nightly is second")

	room.Pricing.NationalTourism.NightlyRate.Price = 0
	assert.Equal(t, 12.0, ResolvePrice(room, ""), "national hourly is third")

	room.Pricing.NationalTourism.Enabled = false
	assert.Equal(t, 80.0, ResolvePrice(room, ""), "international hourly is not in the default order")
}

func TestResolvePrice_ExplicitTourism(t *testing.T) {
	room := pricedRoom()
	assert.Equal(t, 50.0, ResolvePrice(room, "national"))
	assert.Equal(t, 120.0, ResolvePrice(room, "international"))

	room.Pricing.InternationalTourism.NightlyRate = nil
	assert.Equal(t, 30.0, ResolvePrice(room, "international"), "falls back to the tier's hourly rate")

	room.Pricing.InternationalTourism.Enabled = false
	assert.Equal(t, 80.0, ResolvePrice(room, "international"), "disabled tier falls back to base price")
}

func TestResolvePrice_NoTierEnabledUsesBasePrice(t *testing.T) {
	room := pricedRoom()
	room.Pricing.NationalTourism.Enabled = false
	room.Pricing.InternationalTourism.Enabled = false

	for _, tourism := range []string{"", "national", "international", "somewhere"} {
		assert.Equal(t, 80.0, ResolvePrice(room, tourism), tourism)
	}

	room.Pricing = nil
	assert.Equal(t, 80.0, ResolvePrice(room, ""))
}

func TestResolvePrice_ZeroPriceBehavesLikeDisabled(t *testing.T) {
	zero := pricedRoom()
	zero.Pricing.InternationalTourism.NightlyRate = rate(true, 0)

	disabled := pricedRoom()
	disabled.Pricing.InternationalTourism.NightlyRate = rate(false, 999)

	for _, tourism := range []string{"", "national", "international"} {
		assert.Equal(t, ResolvePrice(disabled, tourism), ResolvePrice(zero, tourism), tourism)
	}
}

func TestResolvePrice_AlwaysFiniteAndNonNegative(t *testing.T) {
	rooms := []*models.Room{
		nil,
		{Price: -10},
		{Price: math.NaN()},
		{Price: math.Inf(1)},
		{Price: 10, Pricing: &models.RoomPricing{NationalTourism: tier(true, rate(true, -5), nil)}},
		{Price: 10, Pricing: &models.RoomPricing{InternationalTourism: tier(true, nil, nil)}},
		pricedRoom(),
	}
	for i, room := range rooms {
		for _, tourism := range []string{"", "national", "international"} {
			p := ResolvePrice(room, tourism)
			assert.False(t, math.IsNaN(p) || math.IsInf(p, 0), "room %d %q", i, tourism)
			assert.GreaterOrEqual(t, p, 0.0, "room %d %q", i, tourism)
		}
	}
}

func TestConfiguredPrices(t *testing.T) {
	options := ConfiguredPrices(pricedRoom(), "")
	require.Len(t, options, 3)
	assert.True(t, options[0].Primary)
	assert.Equal(t, constants.TourismInternational, options[0].Tourism)
	assert.False(t, options[1].Primary)
	assert.Equal(t, 12.0, options[2].Price)

	base := ConfiguredPrices(&models.Room{Price: 40}, "national")
	require.Len(t, base, 1)
	assert.Equal(t, PriceOption{Mode: constants.PricingModeNightly, Price: 40, Primary: true, Source: PriceSourceBase}, base[0])
}

func TestPriceForMode(t *testing.T) {
	room := pricedRoom()
	assert.Equal(t, 12.0, PriceForMode(room, "", "hourly").Price, "default order only has national hourly")
	assert.Equal(t, 30.0, PriceForMode(room, "international", "hourly").Price)
	assert.Equal(t, 120.0, PriceForMode(room, "", "").Price, "mode defaults to nightly")

	room.Pricing.NationalTourism.HourlyRate = nil
	got := PriceForMode(room, "national", "hourly")
	assert.Equal(t, 80.0, got.Price)
	assert.Equal(t, PriceSourceBase, got.Source)
}

func TestEffectivePrice_GlobalOverrideReplacesTierPrice(t *testing.T) {
	room := pricedRoom()
	global := models.GlobalPricingConfig{
		Enabled:         true,
		ApplyToAllRooms: true,
		InternationalTourism: models.GlobalTierRule{
			Nightly: models.GlobalRateRule{Enabled: true, Strategy: models.StrategyMultiplier, Multiplier: 1.5},
		},
		NationalTourism: models.GlobalTierRule{
			Nightly: models.GlobalRateRule{Enabled: true, Strategy: models.StrategyFixed, FixedPrice: 65},
		},
	}

	// 80 * 1.5, not 120 * 1.5
	assert.Equal(t, 120.0, EffectivePrice(room, "", "nightly", global))
	assert.Equal(t, 65.0, EffectivePrice(room, "national", "nightly", global))

	option := EffectivePriceOption(room, "national", "nightly", global)
	assert.Equal(t, PriceSourceGlobal, option.Source)

	// hourly rule not enabled: tier price kept
	assert.Equal(t, 12.0, EffectivePrice(room, "national", "hourly", global))
}

func TestEffectivePrice_InactiveOverrideIgnored(t *testing.T) {
	room := pricedRoom()
	global := models.GlobalPricingConfig{
		Enabled: true,
		NationalTourism: models.GlobalTierRule{
			Nightly: models.GlobalRateRule{Enabled: true, Strategy: models.StrategyFixed, FixedPrice: 1},
		},
	}
	assert.Equal(t, 50.0, EffectivePrice(room, "national", "nightly", global), "applyToAllRooms is off")

	global.ApplyToAllRooms = true
	global.NationalTourism.Nightly = models.GlobalRateRule{Enabled: true, Strategy: models.StrategyMultiplier}
	assert.Equal(t, 50.0, EffectivePrice(room, "national", "nightly", global), "zero multiplier is ignored")
}

func TestEffectivePrice_BasePriceRoomUsesNationalRule(t *testing.T) {
	room := &models.Room{Price: 100}
	global := models.GlobalPricingConfig{
		Enabled:         true,
		ApplyToAllRooms: true,
		NationalTourism: models.GlobalTierRule{
			Nightly: models.GlobalRateRule{Enabled: true, Strategy: models.StrategyMultiplier, Multiplier: 0.9},
		},
	}
	assert.InDelta(t, 90.0, EffectivePrice(room, "", "nightly", global), 1e-9)
}

func TestNormalizeTourism(t *testing.T) {
	assert.Equal(t, constants.TourismNational, NormalizeTourism(" National "))
	assert.Equal(t, constants.TourismInternational, NormalizeTourism("internationalTourism"))
	assert.Equal(t, "", NormalizeTourism("domestic"))
}
