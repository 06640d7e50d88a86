package services

import (
	"context"

	"rentalsite/errors"
	"rentalsite/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRoomRepository lưu phòng trong bảng rooms (Postgres)
type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "cannot list rooms", err)
	}
	for i := range rooms {
		rooms[i].ApplyDefaults()
	}
	return rooms, nil
}

func (r *GormRoomRepository) Get(ctx context.Context, id int) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.ErrRoomNotFound
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "cannot load room", err)
	}
	room.ApplyDefaults()
	return &room, nil
}

func (r *GormRoomRepository) Save(ctx context.Context, room *models.Room) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(room).Error
	if err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "cannot save room", err)
	}
	return nil
}

func (r *GormRoomRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&models.Room{}, id)
	if result.Error != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "cannot delete room", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrRoomNotFound
	}
	return nil
}

func (r *GormRoomRepository) ReplaceAll(ctx context.Context, rooms []models.Room) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Room{}).Error; err != nil {
			return err
		}
		if len(rooms) == 0 {
			return nil
		}
		return tx.CreateInBatches(rooms, 100).Error
	})
	if err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "cannot replace rooms", err)
	}
	return nil
}

// Create khóa bảng rooms trong transaction để lấy max(id) + 1 và insert
func (r *GormRoomRepository) Create(ctx context.Context, room *models.Room) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("LOCK TABLE rooms IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
			return err
		}
		var max int
		if err := tx.Model(&models.Room{}).Select("COALESCE(MAX(id), 0)").Scan(&max).Error; err != nil {
			return err
		}
		room.ID = max + 1
		return tx.Create(room).Error
	})
	if err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "cannot create room", err)
	}
	return nil
}

// Update dùng SELECT ... FOR UPDATE để các lần sửa cùng phòng chạy tuần tự
func (r *GormRoomRepository) Update(ctx context.Context, id int, fn func(room *models.Room) error) (*models.Room, error) {
	var (
		room  models.Room
		fnErr error
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, id).Error; err != nil {
			return err
		}
		room.ApplyDefaults()
		if fnErr = fn(&room); fnErr != nil {
			return fnErr
		}
		room.ID = id
		return tx.Save(&room).Error
	})
	switch {
	case fnErr != nil:
		return nil, fnErr
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errors.ErrRoomNotFound
	case err != nil:
		return nil, errors.NewAppError(errors.ErrCodeDBError, "cannot update room", err)
	}
	return &room, nil
}
