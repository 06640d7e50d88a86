package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"rentalsite/errors"
	"rentalsite/models"
	"rentalsite/services/logger"

	"github.com/goccy/go-json"
)

// RoomRepository lưu trữ danh sách phòng
type RoomRepository interface {
	List(ctx context.Context) ([]models.Room, error)
	Get(ctx context.Context, id int) (*models.Room, error)
	// Save thêm mới hoặc ghi đè phòng có cùng id
	Save(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id int) error
	// ReplaceAll thay toàn bộ dữ liệu; lỗi thì dữ liệu cũ giữ nguyên
	ReplaceAll(ctx context.Context, rooms []models.Room) error
	// Create gán room.ID = max(id) + 1 (bắt đầu từ 1) và thêm phòng, không chồng lên phòng khác
	Create(ctx context.Context, room *models.Room) error
	// Update đọc phòng, chạy fn rồi ghi lại; không có thay đổi nào chen vào giữa
	Update(ctx context.Context, id int, fn func(room *models.Room) error) (*models.Room, error)
}

// Reloader được cài đặt bởi repository có thể bị sửa từ bên ngoài tiến trình
type Reloader interface {
	// Reload đọc lại nguồn dữ liệu, changed = true khi nội dung khác lần đọc trước
	Reload(ctx context.Context) (changed bool, err error)
}

// FileRoomRepository lưu phòng trong một file JSON duy nhất
type FileRoomRepository struct {
	mu       sync.RWMutex
	path     string
	rooms    []models.Room
	checksum [sha256.Size]byte
	logger   logger.Logger
}

// NewFileRoomRepository mở (hoặc tạo mới) file dữ liệu trong dir
func NewFileRoomRepository(dir string, log logger.Logger) (*FileRoomRepository, error) {
	if log == nil {
		log = logger.NopLogger{}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeIOError, "cannot create data dir", err)
	}
	repo := &FileRoomRepository{
		path:   filepath.Join(dir, "rooms.json"),
		rooms:  []models.Room{},
		logger: log,
	}
	if _, err := repo.Reload(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *FileRoomRepository) Path() string { return r.path }

func (r *FileRoomRepository) Reload(_ context.Context) (bool, error) {
	// đọc file trong lock, tránh cài lại dữ liệu cũ sau một lần Save
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		data = []byte("[]")
	} else if err != nil {
		return false, errors.NewAppError(errors.ErrCodeIOError, "cannot read rooms file", err)
	}

	sum := sha256.Sum256(bytes.TrimSpace(data))
	if sum == r.checksum {
		return false, nil
	}

	var rooms []models.Room
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &rooms); err != nil {
			// Giữ dữ liệu cũ khi file hỏng
			return false, errors.NewAppError(errors.ErrCodeInvalidFormat, "rooms file is not valid JSON", err)
		}
	}
	for i := range rooms {
		rooms[i].ApplyDefaults()
	}
	sortRooms(rooms)

	changed := r.checksum != [sha256.Size]byte{}
	r.rooms = rooms
	r.checksum = sum
	r.logger.Debug("rooms file loaded: %d rooms", len(rooms))
	return changed, nil
}

func (r *FileRoomRepository) List(_ context.Context) ([]models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneRooms(r.rooms), nil
}

func (r *FileRoomRepository) Get(_ context.Context, id int) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		room := cloneRoom(r.rooms[i])
		return &room, nil
	}
	return nil, errors.ErrRoomNotFound
}

func (r *FileRoomRepository) Save(_ context.Context, room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rooms := cloneRooms(r.rooms)
	if i := r.indexOf(room.ID); i >= 0 {
		rooms[i] = cloneRoom(*room)
	} else {
		rooms = append(rooms, cloneRoom(*room))
		sortRooms(rooms)
	}
	return r.persist(rooms)
}

func (r *FileRoomRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return errors.ErrRoomNotFound
	}
	rooms := append(cloneRooms(r.rooms[:i]), cloneRooms(r.rooms[i+1:])...)
	return r.persist(rooms)
}

func (r *FileRoomRepository) ReplaceAll(_ context.Context, rooms []models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := cloneRooms(rooms)
	sortRooms(next)
	return r.persist(next)
}

func (r *FileRoomRepository) Create(_ context.Context, room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room.ID = nextID(r.rooms)
	rooms := append(cloneRooms(r.rooms), cloneRoom(*room))
	sortRooms(rooms)
	return r.persist(rooms)
}

func (r *FileRoomRepository) Update(_ context.Context, id int, fn func(room *models.Room) error) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, errors.ErrRoomNotFound
	}
	room := cloneRoom(r.rooms[i])
	if err := fn(&room); err != nil {
		return nil, err
	}
	room.ID = id

	rooms := cloneRooms(r.rooms)
	rooms[i] = cloneRoom(room)
	if err := r.persist(rooms); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *FileRoomRepository) indexOf(id int) int {
	for i := range r.rooms {
		if r.rooms[i].ID == id {
			return i
		}
	}
	return -1
}

// persist ghi ra file tạm rồi rename, chỉ cập nhật bộ nhớ khi ghi thành công.
// Phải giữ r.mu.
func (r *FileRoomRepository) persist(rooms []models.Room) error {
	data, err := json.MarshalIndent(rooms, "", "  ")
	if err != nil {
		return errors.NewAppError(errors.ErrCodeIOError, "cannot encode rooms", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".rooms-*.json")
	if err != nil {
		return errors.NewAppError(errors.ErrCodeIOError, "cannot write rooms file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.NewAppError(errors.ErrCodeIOError, "cannot write rooms file", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewAppError(errors.ErrCodeIOError, "cannot write rooms file", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return errors.NewAppError(errors.ErrCodeIOError, "cannot replace rooms file", err)
	}

	r.rooms = rooms
	r.checksum = sha256.Sum256(bytes.TrimSpace(data))
	return nil
}

func nextID(rooms []models.Room) int {
	max := 0
	for _, room := range rooms {
		if room.ID > max {
			max = room.ID
		}
	}
	return max + 1
}

func sortRooms(rooms []models.Room) {
	sort.SliceStable(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
}

// cloneRoom sao chép sâu qua JSON để caller không sửa được dữ liệu trong repository
func cloneRoom(room models.Room) models.Room {
	data, err := json.Marshal(room)
	if err != nil {
		return room
	}
	var out models.Room
	if err := json.Unmarshal(data, &out); err != nil {
		return room
	}
	return out
}

func cloneRooms(rooms []models.Room) []models.Room {
	out := make([]models.Room, len(rooms))
	for i := range rooms {
		out[i] = cloneRoom(rooms[i])
	}
	return out
}
