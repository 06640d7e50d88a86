package validator

import (
	"fmt"
	"regexp"
	"strings"

	"rentalsite/errors"
	"rentalsite/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var whatsappRegex = regexp.MustCompile(`^\+\d{10,15}$`)

// Validate dùng chung cho DTO, đã đăng ký tag "whatsapp"
var Validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("whatsapp", whatsappTag)
	return v
}

func whatsappTag(fl validator.FieldLevel) bool {
	return ValidateWhatsAppNumber(fl.Field().String())
}

// RegisterBinding đăng ký tag "whatsapp" cho binding engine của gin
func RegisterBinding() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("whatsapp", whatsappTag)
}

// ValidateWhatsAppNumber kiểm tra số dạng +<10-15 chữ số>
func ValidateWhatsAppNumber(number string) bool {
	return whatsappRegex.MatchString(strings.TrimSpace(number))
}

// ValidateRoom validate phòng trước khi lưu
func ValidateRoom(room *models.Room) error {
	if strings.TrimSpace(room.Name) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Room name is required", nil)
	}
	if room.Price < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Price must not be negative", nil)
	}
	if err := ValidateHostWhatsApp(room.HostWhatsApp); err != nil {
		return err
	}
	for _, block := range append(append([]models.DateBlock{}, room.ReservedDates...), room.BookedDates...) {
		if _, err := block.Days(); err != nil {
			return errors.NewAppError(errors.ErrCodeInvalidDate, "Invalid date block", err)
		}
	}
	return nil
}

// ValidateHostWhatsApp: khi bật thì bắt buộc số chính hợp lệ, số phụ (nếu có) cũng phải hợp lệ
func ValidateHostWhatsApp(cfg models.HostWhatsApp) error {
	if !cfg.Enabled {
		return nil
	}
	if strings.TrimSpace(cfg.Primary) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Primary WhatsApp number is required", nil)
	}
	if !ValidateWhatsAppNumber(cfg.Primary) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Invalid primary WhatsApp number: "+cfg.Primary, nil)
	}
	if cfg.Secondary != "" && !ValidateWhatsAppNumber(cfg.Secondary) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Invalid secondary WhatsApp number: "+cfg.Secondary, nil)
	}
	return nil
}

// ValidateImportPayload kiểm tra file import và trả về danh sách phòng.
// Chỉ cần một phần tử sai là từ chối toàn bộ.
func ValidateImportPayload(data []byte) ([]models.Room, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidFormat, "Import file is not valid JSON", err)
	}
	raw, ok := payload["rooms"]
	if !ok {
		return nil, errors.NewAppError(errors.ErrCodeImportRejected, "Import file has no rooms array", nil)
	}
	var entries []map[string]interface{}
	if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
		return nil, errors.NewAppError(errors.ErrCodeImportRejected, "rooms must be an array of objects", err)
	}

	seen := make(map[int]bool, len(entries))
	for i, entry := range entries {
		id, ok := entry["id"].(float64)
		if !ok {
			return nil, errors.NewAppError(errors.ErrCodeImportRejected, fmt.Sprintf("room #%d: id is required", i+1), nil)
		}
		if seen[int(id)] {
			return nil, errors.NewAppError(errors.ErrCodeImportRejected, fmt.Sprintf("room #%d: duplicate id %d", i+1, int(id)), nil)
		}
		seen[int(id)] = true
		if name, ok := entry["name"].(string); !ok || strings.TrimSpace(name) == "" {
			return nil, errors.NewAppError(errors.ErrCodeImportRejected, fmt.Sprintf("room #%d: name is required", i+1), nil)
		}
		if _, ok := entry["price"].(float64); !ok {
			return nil, errors.NewAppError(errors.ErrCodeImportRejected, fmt.Sprintf("room #%d: price must be a number", i+1), nil)
		}
	}

	var rooms []models.Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeImportRejected, "rooms could not be decoded", err)
	}
	return rooms, nil
}
