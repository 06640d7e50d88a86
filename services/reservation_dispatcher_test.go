package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"rentalsite/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOpener struct {
	mu    sync.Mutex
	links []string
	fail  map[string]error
	blank map[string]bool
}

func (f *fakeOpener) Open(_ context.Context, _ string, link string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for number, err := range f.fail {
		if strings.Contains(link, number) {
			return "", err
		}
	}
	for number := range f.blank {
		if strings.Contains(link, number) {
			return "", nil
		}
	}
	f.links = append(f.links, link)
	return fmt.Sprintf("handle-%d", len(f.links)), nil
}

func whatsappRoom() *models.Room {
	return &models.Room{
		ID:   2,
		Name: "Casa Azul",
		HostWhatsApp: models.HostWhatsApp{
			Enabled:         true,
			Primary:         "+5355555555",
			Secondary:       "+5366666666",
			SendToPrimary:   true,
			SendToSecondary: true,
		},
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+53 5555-5555", "Hola amigo & co\n100% sure?")
	assert.Equal(t, "https://wa.me/5355555555?text=Hola%20amigo%20%26%20co%0A100%25%20sure%3F", link)
	assert.NotContains(t, link, "+")
}

func TestPlanTasks(t *testing.T) {
	d := NewDispatcher(&fakeOpener{}, 3*time.Second, nil, nil)

	tasks, err := d.PlanTasks(whatsappRoom().HostWhatsApp)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, TargetPrimary, tasks[0].Target)
	assert.Zero(t, tasks[0].Delay)
	assert.Equal(t, 3*time.Second, tasks[1].Delay)

	secondaryOnly := whatsappRoom().HostWhatsApp
	secondaryOnly.SendToPrimary = false
	tasks, err = d.PlanTasks(secondaryOnly)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Zero(t, tasks[0].Delay, "first task is never delayed")
}

func TestPlanTasks_InvalidConfig(t *testing.T) {
	d := NewDispatcher(&fakeOpener{}, 0, nil, nil)

	cases := map[string]func(cfg *models.HostWhatsApp){
		"disabled":        func(cfg *models.HostWhatsApp) { cfg.Enabled = false },
		"missing primary": func(cfg *models.HostWhatsApp) { cfg.Primary = "" },
		"bad primary":     func(cfg *models.HostWhatsApp) { cfg.Primary = "5551234" },
		"bad secondary":   func(cfg *models.HostWhatsApp) { cfg.Secondary = "abc" },
		"no recipient": func(cfg *models.HostWhatsApp) {
			cfg.SendToPrimary = false
			cfg.SendToSecondary = false
		},
		"secondary without number": func(cfg *models.HostWhatsApp) {
			cfg.SendToPrimary = false
			cfg.Secondary = ""
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := whatsappRoom().HostWhatsApp
			mutate(&cfg)
			tasks, err := d.PlanTasks(cfg)
			assert.Error(t, err)
			assert.Empty(t, tasks)
		})
	}
}

func TestDispatch_SendsToBothNumbersInOrder(t *testing.T) {
	opener := &fakeOpener{}
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	d := NewDispatcher(opener, 0, nil, metrics)

	res := d.Dispatch(context.Background(), "session-1", whatsappRoom(), "hello")

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.SentCount)
	assert.Empty(t, res.Errors)
	require.Len(t, opener.links, 2)
	assert.Contains(t, opener.links[0], "5355555555")
	assert.Contains(t, opener.links[1], "5366666666")
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ReservationLinks.WithLabelValues(TargetPrimary, "sent"))+
		testutil.ToFloat64(metrics.ReservationLinks.WithLabelValues(TargetSecondary, "sent")))
}

func TestDispatch_PartialFailureStillSucceeds(t *testing.T) {
	opener := &fakeOpener{fail: map[string]error{"5355555555": fmt.Errorf("blocked")}}
	d := NewDispatcher(opener, 0, nil, nil)

	res := d.Dispatch(context.Background(), "s", whatsappRoom(), "hello")

	assert.True(t, res.Success)
	assert.Equal(t, 1, res.SentCount)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], TargetPrimary)
}

func TestDispatch_BlankHandleCountsAsFailure(t *testing.T) {
	opener := &fakeOpener{blank: map[string]bool{"5355555555": true, "5366666666": true}}
	d := NewDispatcher(opener, 0, nil, nil)

	res := d.Dispatch(context.Background(), "s", whatsappRoom(), "hello")

	assert.False(t, res.Success)
	assert.Zero(t, res.SentCount)
	assert.Len(t, res.Errors, 2)
}

func TestDispatch_DisabledRoomSendsNothing(t *testing.T) {
	opener := &fakeOpener{}
	d := NewDispatcher(opener, 0, nil, nil)
	room := whatsappRoom()
	room.HostWhatsApp.Enabled = false

	res := d.Dispatch(context.Background(), "s", room, "hello")

	assert.False(t, res.Success)
	assert.Len(t, res.Errors, 1)
	assert.Empty(t, opener.links)
}

func TestDispatch_CancelledDuringDelay(t *testing.T) {
	opener := &fakeOpener{}
	d := NewDispatcher(opener, time.Minute, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	res := d.Dispatch(ctx, "s", whatsappRoom(), "hello")

	assert.Less(t, time.Since(start), 10*time.Second)
	assert.True(t, res.Success, "primary was already sent")
	assert.Equal(t, 1, res.SentCount)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], TargetSecondary)
}

func TestNewDispatcher_NegativeDelayUsesDefault(t *testing.T) {
	d := NewDispatcher(&fakeOpener{}, -1, nil, nil)
	tasks, err := d.PlanTasks(whatsappRoom().HostWhatsApp)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, tasks[1].Delay)
}

func TestFormatReservationMessage(t *testing.T) {
	draft := &BookingDraft{
		RoomID:         2,
		CheckIn:        "2025-05-05",
		CheckOut:       "2025-05-08",
		Nights:         3,
		Guests:         GuestCounts{Adults: 2, Children: 1},
		PricingMode:    "nightly",
		Services:       []models.Service{{ID: "breakfast", Title: "Breakfast", Price: 10}},
		EffectivePrice: 100,
	}
	draft.Recalculate()

	msg := FormatReservationMessage(draft, whatsappRoom(), CustomerContact{Name: "Ana", Phone: "+5377777777", Message: "Late arrival"})

	assert.True(t, strings.HasPrefix(msg, "New reservation request"))
	for _, want := range []string{
		"Room: Casa Azul (#2)",
		"Check-in: 2025-05-05",
		"Nights: 3",
		"Guests: 2 adults, 1 children, 0 babies, 0 pets",
		"Price: 100.00 per night",
		"- Breakfast: 10.00",
		"Total: 350.00",
		"Name: Ana",
		"Message: Late arrival",
	} {
		assert.Contains(t, msg, want)
	}
	assert.NotContains(t, msg, "Email:")
	assert.False(t, strings.HasSuffix(msg, "\n"))
}
