package services

import (
	"context"
	"fmt"
	"time"

	"rentalsite/constants"
	"rentalsite/errors"
	"rentalsite/models"
	"rentalsite/services/logger"
	"rentalsite/validator"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ChangeNotifier được gọi sau mỗi thay đổi dữ liệu phòng
type ChangeNotifier interface {
	RoomsChanged(reason string)
}

// RoomExport là định dạng file export/import
type RoomExport struct {
	Rooms      []models.Room `json:"rooms"`
	ExportDate time.Time     `json:"exportDate"`
	Version    string        `json:"version"`
}

type RoomService struct {
	repo     RoomRepository
	logger   logger.Logger
	notifier ChangeNotifier
	now      func() time.Time
}

func NewRoomService(repo RoomRepository, log logger.Logger) *RoomService {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &RoomService{repo: repo, logger: log, now: time.Now}
}

// WithNotifier gắn notifier nhận sự kiện rooms:changed
func (s *RoomService) WithNotifier(n ChangeNotifier) *RoomService {
	s.notifier = n
	return s
}

func (s *RoomService) notify(reason string) {
	if s.notifier != nil {
		s.notifier.RoomsChanged(reason)
	}
}

func (s *RoomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.repo.List(ctx)
}

func (s *RoomService) GetRoom(ctx context.Context, id int) (*models.Room, error) {
	if id <= 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRoomID, "Invalid room id", nil)
	}
	return s.repo.Get(ctx, id)
}

// CreateRoom validate, điền mặc định rồi lưu; repository gán id = max(id) + 1
func (s *RoomService) CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	if err := validator.ValidateRoom(room); err != nil {
		return nil, err
	}
	room.ApplyDefaults()
	prepareHosts(room)
	room.LastUpdated = s.now().UTC()

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	s.logger.Info("room %d created", room.ID)
	s.notify("create")
	return room, nil
}

// UpdateRoom thay toàn bộ dữ liệu phòng, giữ nguyên id
func (s *RoomService) UpdateRoom(ctx context.Context, id int, room *models.Room) (*models.Room, error) {
	if id <= 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRoomID, "Invalid room id", nil)
	}
	if err := validator.ValidateRoom(room); err != nil {
		return nil, err
	}
	room.ApplyDefaults()
	prepareHosts(room)

	updated, err := s.repo.Update(ctx, id, func(existing *models.Room) error {
		*existing = *room
		existing.LastUpdated = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("room %d updated", id)
	s.notify("update")
	return updated, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.NewAppError(errors.ErrCodeInvalidRoomID, "Invalid room id", nil)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("room %d deleted", id)
	s.notify("delete")
	return nil
}

// SetAvailability bật/tắt cờ available, không đụng tới ngày bị chặn
func (s *RoomService) SetAvailability(ctx context.Context, id int, available bool) (*models.Room, error) {
	return s.mutate(ctx, id, "availability", func(room *models.Room) error {
		room.Available = available
		return nil
	})
}

// AddHost thêm host; host đầu tiên hoặc host được đánh dấu isPrimary trở thành host chính
func (s *RoomService) AddHost(ctx context.Context, roomID int, host models.Host) (*models.Room, error) {
	return s.mutate(ctx, roomID, "hosts", func(room *models.Room) error {
		if host.Name == "" {
			return errors.NewAppError(errors.ErrCodeRequiredField, "Host name is required", nil)
		}
		if host.ID == "" {
			host.ID = uuid.NewString()
		}
		for _, h := range room.Hosts {
			if h.ID == host.ID {
				return errors.NewAppError(errors.ErrCodeDBDuplicate, "Host already exists: "+host.ID, nil)
			}
		}
		if len(room.Hosts) == 0 {
			host.IsPrimary = true
		}
		if host.IsPrimary {
			for i := range room.Hosts {
				room.Hosts[i].IsPrimary = false
			}
		}
		room.Hosts = append(room.Hosts, host)
		return nil
	})
}

// RemoveHost xóa host; nếu host chính bị xóa thì host đầu tiên còn lại lên thay
func (s *RoomService) RemoveHost(ctx context.Context, roomID int, hostID string) (*models.Room, error) {
	return s.mutate(ctx, roomID, "hosts", func(room *models.Room) error {
		idx := hostIndex(room.Hosts, hostID)
		if idx < 0 {
			return errors.ErrHostNotFound
		}
		wasPrimary := room.Hosts[idx].IsPrimary
		room.Hosts = append(room.Hosts[:idx], room.Hosts[idx+1:]...)
		if wasPrimary && len(room.Hosts) > 0 {
			room.Hosts[0].IsPrimary = true
		}
		return nil
	})
}

func (s *RoomService) SetPrimaryHost(ctx context.Context, roomID int, hostID string) (*models.Room, error) {
	return s.mutate(ctx, roomID, "hosts", func(room *models.Room) error {
		idx := hostIndex(room.Hosts, hostID)
		if idx < 0 {
			return errors.ErrHostNotFound
		}
		for i := range room.Hosts {
			room.Hosts[i].IsPrimary = i == idx
		}
		return nil
	})
}

func (s *RoomService) mutate(ctx context.Context, id int, reason string, fn func(room *models.Room) error) (*models.Room, error) {
	if id <= 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRoomID, "Invalid room id", nil)
	}
	room, err := s.repo.Update(ctx, id, func(room *models.Room) error {
		if err := fn(room); err != nil {
			return err
		}
		room.LastUpdated = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(reason)
	return room, nil
}

// ExportJSON xuất toàn bộ phòng kèm ngày export và version
func (s *RoomService) ExportJSON(ctx context.Context) ([]byte, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	export := RoomExport{Rooms: rooms, ExportDate: s.now().UTC(), Version: constants.ExportVersion}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeIOError, "cannot encode export", err)
	}
	return data, nil
}

// ImportJSON thay toàn bộ phòng bằng nội dung file. Lỗi ở bất kỳ phòng nào
// thì dữ liệu hiện tại giữ nguyên.
func (s *RoomService) ImportJSON(ctx context.Context, data []byte) (int, error) {
	rooms, err := validator.ValidateImportPayload(data)
	if err != nil {
		return 0, err
	}
	now := s.now().UTC()
	for i := range rooms {
		room := &rooms[i]
		if err := validator.ValidateRoom(room); err != nil {
			return 0, errors.NewAppError(errors.ErrCodeImportRejected, fmt.Sprintf("Room %d (%s) rejected", room.ID, room.Name), err)
		}
		room.ApplyDefaults()
		if room.LastUpdated.IsZero() {
			room.LastUpdated = now
		}
	}
	if err := s.repo.ReplaceAll(ctx, rooms); err != nil {
		return 0, err
	}
	s.logger.Info("imported %d rooms", len(rooms))
	s.notify("import")
	return len(rooms), nil
}

// Reload đọc lại dữ liệu nếu repository hỗ trợ, báo sự kiện khi có thay đổi
func (s *RoomService) Reload(ctx context.Context) (bool, error) {
	reloader, ok := s.repo.(Reloader)
	if !ok {
		return false, nil
	}
	changed, err := reloader.Reload(ctx)
	if err != nil {
		return false, err
	}
	if changed {
		s.logger.Info("rooms changed outside the process, reloaded")
		s.notify("reload")
	}
	return changed, nil
}

// prepareHosts gán id cho host thiếu id và đảm bảo chỉ có một host chính
func prepareHosts(room *models.Room) {
	primary := -1
	for i := range room.Hosts {
		if room.Hosts[i].ID == "" {
			room.Hosts[i].ID = uuid.NewString()
		}
		if room.Hosts[i].IsPrimary {
			if primary >= 0 {
				room.Hosts[i].IsPrimary = false
			} else {
				primary = i
			}
		}
	}
	if primary < 0 && len(room.Hosts) > 0 {
		room.Hosts[0].IsPrimary = true
	}
}

func hostIndex(hosts []models.Host, id string) int {
	for i := range hosts {
		if hosts[i].ID == id {
			return i
		}
	}
	return -1
}
