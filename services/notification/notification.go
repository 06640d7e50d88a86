package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rentalsite/constants"
	"rentalsite/services/logger"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// Event là gói tin gửi qua websocket
type Event struct {
	Type   string    `json:"type"`
	Reason string    `json:"reason,omitempty"`
	URL    string    `json:"url,omitempty"`
	At     time.Time `json:"at"`
}

// RoomsChangedBroadcaster báo cho mọi client biết danh sách phòng đã đổi
type RoomsChangedBroadcaster struct {
	service Service
	logger  logger.Logger
}

func NewRoomsChangedBroadcaster(service Service, log logger.Logger) *RoomsChangedBroadcaster {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &RoomsChangedBroadcaster{service: service, logger: log}
}

func (b *RoomsChangedBroadcaster) RoomsChanged(reason string) {
	payload, _ := json.Marshal(Event{Type: constants.RoomsChangedEventType, Reason: reason, At: time.Now().UTC()})
	if err := b.service.SendMessage(string(payload)); err != nil {
		b.logger.Warn("broadcast %s failed: %v", constants.RoomsChangedEventType, err)
	}
}

// MelodyOpener đẩy link WhatsApp tới các websocket session có cùng X-Session-ID
type MelodyOpener struct {
	m *melody.Melody
}

func NewMelodyOpener(m *melody.Melody) *MelodyOpener {
	return &MelodyOpener{m: m}
}

func (o *MelodyOpener) Open(_ context.Context, session, link string) (string, error) {
	if session == "" {
		return "", fmt.Errorf("missing visitor session")
	}
	sessions, err := o.m.Sessions()
	if err != nil {
		return "", err
	}
	payload, _ := json.Marshal(Event{Type: constants.WhatsAppLinkEventType, URL: link, At: time.Now().UTC()})

	delivered := 0
	for _, s := range sessions {
		id, ok := s.Get(constants.SessionContextKey)
		if !ok || id != session {
			continue
		}
		if err := s.Write(payload); err == nil {
			delivered++
		}
	}
	if delivered == 0 {
		return "", nil
	}
	return fmt.Sprintf("%s/%d", session, delivered), nil
}

// LogOpener chỉ ghi lại link và luôn thành công; dùng khi không có websocket và trong test
type LogOpener struct {
	mu     sync.Mutex
	logger logger.Logger
	Opened []string
}

func NewLogOpener(log logger.Logger) *LogOpener {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &LogOpener{logger: log}
}

func (o *LogOpener) Open(_ context.Context, session, link string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Opened = append(o.Opened, link)
	o.logger.Info("session %s: open %s", session, link)
	return fmt.Sprintf("log-%d", len(o.Opened)), nil
}

// Links trả về bản sao các link đã mở
func (o *LogOpener) Links() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.Opened...)
}
