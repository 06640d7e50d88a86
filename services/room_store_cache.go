package services

import (
	"context"
	"time"

	"rentalsite/constants"
	"rentalsite/models"
	"rentalsite/services/logger"

	"github.com/redis/go-redis/v9"
)

// CachedRoomRepository bọc một RoomRepository, cache danh sách phòng trên Redis.
// Lỗi Redis chỉ ghi log, luôn đọc được từ repository gốc.
type CachedRoomRepository struct {
	inner  RoomRepository
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedRoomRepository(inner RoomRepository, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedRoomRepository {
	if ttl <= 0 {
		ttl = constants.RoomListCacheTTL
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &CachedRoomRepository{inner: inner, rdb: rdb, ttl: ttl, logger: log}
}

func (c *CachedRoomRepository) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	found, err := GetFromRedis(ctx, c.rdb, constants.RoomListCacheKey, &rooms)
	if err != nil {
		c.logger.Warn("room cache read failed: %v", err)
	}
	if found {
		return rooms, nil
	}

	rooms, err = c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := SetToRedis(ctx, c.rdb, constants.RoomListCacheKey, rooms, c.ttl); err != nil {
		c.logger.Warn("room cache write failed: %v", err)
	}
	return rooms, nil
}

func (c *CachedRoomRepository) Get(ctx context.Context, id int) (*models.Room, error) {
	return c.inner.Get(ctx, id)
}

func (c *CachedRoomRepository) Save(ctx context.Context, room *models.Room) error {
	defer c.Invalidate(ctx)
	return c.inner.Save(ctx, room)
}

func (c *CachedRoomRepository) Delete(ctx context.Context, id int) error {
	defer c.Invalidate(ctx)
	return c.inner.Delete(ctx, id)
}

func (c *CachedRoomRepository) ReplaceAll(ctx context.Context, rooms []models.Room) error {
	defer c.Invalidate(ctx)
	return c.inner.ReplaceAll(ctx, rooms)
}

func (c *CachedRoomRepository) Create(ctx context.Context, room *models.Room) error {
	defer c.Invalidate(ctx)
	return c.inner.Create(ctx, room)
}

func (c *CachedRoomRepository) Update(ctx context.Context, id int, fn func(room *models.Room) error) (*models.Room, error) {
	defer c.Invalidate(ctx)
	return c.inner.Update(ctx, id, fn)
}

// Reload chuyển tiếp tới repository gốc và xóa cache khi dữ liệu đổi
func (c *CachedRoomRepository) Reload(ctx context.Context) (bool, error) {
	reloader, ok := c.inner.(Reloader)
	if !ok {
		return false, nil
	}
	changed, err := reloader.Reload(ctx)
	if changed {
		c.Invalidate(ctx)
	}
	return changed, err
}

func (c *CachedRoomRepository) Invalidate(ctx context.Context) {
	if err := DeleteFromRedis(ctx, c.rdb, constants.RoomListCacheKey); err != nil {
		c.logger.Warn("room cache invalidate failed: %v", err)
	}
}
