package notification

import (
	"context"
	"fmt"
	"testing"

	"rentalsite/constants"
	"rentalsite/services/logger"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureService struct {
	messages []string
	err      error
}

func (s *captureService) SendMessage(message string) error {
	s.messages = append(s.messages, message)
	return s.err
}

func TestRoomsChangedBroadcaster(t *testing.T) {
	svc := &captureService{}
	NewRoomsChangedBroadcaster(svc, nil).RoomsChanged("import")

	require.Len(t, svc.messages, 1)
	var ev Event
	require.NoError(t, json.Unmarshal([]byte(svc.messages[0]), &ev))
	assert.Equal(t, constants.RoomsChangedEventType, ev.Type)
	assert.Equal(t, "import", ev.Reason)
	assert.False(t, ev.At.IsZero())
}

func TestRoomsChangedBroadcaster_LogsFailure(t *testing.T) {
	rec := &logger.Recorder{}
	svc := &captureService{err: fmt.Errorf("no clients")}

	NewRoomsChangedBroadcaster(svc, rec).RoomsChanged("delete")

	assert.True(t, rec.Contains("no clients"))
}

func TestMelodyService_NilInstance(t *testing.T) {
	assert.Error(t, NewMelodyService(nil).SendMessage("x"))
}

func TestMelodyOpener_NoMatchingSession(t *testing.T) {
	opener := NewMelodyOpener(melody.New())

	handle, err := opener.Open(context.Background(), "visitor-1", "https://wa.me/1")
	require.NoError(t, err)
	assert.Empty(t, handle)

	_, err = opener.Open(context.Background(), "", "https://wa.me/1")
	assert.Error(t, err)
}

func TestLogOpener(t *testing.T) {
	opener := NewLogOpener(nil)

	h1, err := opener.Open(context.Background(), "s", "https://wa.me/1")
	require.NoError(t, err)
	h2, err := opener.Open(context.Background(), "s", "https://wa.me/2")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.Equal(t, []string{"https://wa.me/1", "https://wa.me/2"}, opener.Links())
}
