package models

import (
	"time"

	"gorm.io/datatypes"
)

// Setting lưu một khóa cấu hình dạng JSON, mỗi khóa đọc/ghi độc lập
type Setting struct {
	Key       string         `json:"key" gorm:"primaryKey;size:64"`
	Value     datatypes.JSON `json:"value"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}
