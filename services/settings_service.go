package services

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"rentalsite/constants"
	"rentalsite/errors"
	"rentalsite/models"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository đọc/ghi từng khóa cấu hình độc lập, không có giao dịch giữa các khóa
type SettingsRepository interface {
	// Load parse giá trị của key vào target, trả về ErrSettingNotFound nếu chưa có
	Load(ctx context.Context, key string, target interface{}) error
	Store(ctx context.Context, key string, value interface{}) error
}

// GormSettingsRepository lưu cấu hình trong bảng settings
type GormSettingsRepository struct {
	db *gorm.DB
}

func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

func (r *GormSettingsRepository) Load(ctx context.Context, key string, target interface{}) error {
	var setting models.Setting
	err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.ErrSettingNotFound
	}
	if err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "cannot load setting "+key, err)
	}
	if err := json.Unmarshal(setting.Value, target); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "setting "+key+" is not valid JSON", err)
	}
	return nil
}

func (r *GormSettingsRepository) Store(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "cannot encode setting "+key, err)
	}
	setting := models.Setting{Key: key, Value: datatypes.JSON(data)}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "cannot save setting "+key, err)
	}
	return nil
}

// FileSettingsRepository lưu mỗi khóa thành một file <key>.json
type FileSettingsRepository struct {
	mu  sync.Mutex
	dir string
}

func NewFileSettingsRepository(dir string) (*FileSettingsRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeIOError, "cannot create settings dir", err)
	}
	return &FileSettingsRepository{dir: dir}, nil
}

func (r *FileSettingsRepository) file(key string) string {
	return filepath.Join(r.dir, "setting_"+key+".json")
}

func (r *FileSettingsRepository) Load(_ context.Context, key string, target interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := os.ReadFile(r.file(key))
	if os.IsNotExist(err) {
		return errors.ErrSettingNotFound
	}
	if err != nil {
		return errors.NewAppError(errors.ErrCodeIOError, "cannot read setting "+key, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "setting "+key+" is not valid JSON", err)
	}
	return nil
}

func (r *FileSettingsRepository) Store(_ context.Context, key string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "cannot encode setting "+key, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	tmp := r.file(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.NewAppError(errors.ErrCodeIOError, "cannot write setting "+key, err)
	}
	if err := os.Rename(tmp, r.file(key)); err != nil {
		return errors.NewAppError(errors.ErrCodeIOError, "cannot write setting "+key, err)
	}
	return nil
}

// Giá trị mặc định khi khóa chưa được lưu
var (
	defaultCurrencies = []models.CurrencyRate{
		{Code: "USD", Symbol: "$", Rate: 1},
	}
	defaultServices = []models.Service{
		{ID: "airport-transfer", Title: "Airport transfer", Price: 30},
		{ID: "breakfast", Title: "Breakfast", Price: 10},
		{ID: "late-checkout", Title: "Late check-out", Price: 20},
	}
)

// SettingsService cung cấp các cấu hình của site theo kiểu dữ liệu cụ thể
type SettingsService struct {
	repo SettingsRepository
}

func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// load trả về false (không lỗi) khi khóa chưa có để caller dùng giá trị mặc định
func (s *SettingsService) load(ctx context.Context, key string, target interface{}) (bool, error) {
	err := s.repo.Load(ctx, key, target)
	if errors.Is(err, errors.ErrSettingNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *SettingsService) GlobalPricing(ctx context.Context) (models.GlobalPricingConfig, error) {
	var cfg models.GlobalPricingConfig
	if _, err := s.load(ctx, constants.GlobalPricingSetting, &cfg); err != nil {
		return models.GlobalPricingConfig{}, err
	}
	return cfg, nil
}

func (s *SettingsService) SaveGlobalPricing(ctx context.Context, cfg models.GlobalPricingConfig) error {
	for _, rule := range []models.GlobalRateRule{
		cfg.NationalTourism.Nightly, cfg.NationalTourism.Hourly,
		cfg.InternationalTourism.Nightly, cfg.InternationalTourism.Hourly,
	} {
		if !rule.Enabled {
			continue
		}
		switch strings.ToLower(rule.Strategy) {
		case models.StrategyMultiplier, "":
			if rule.Multiplier < 0 {
				return errors.NewAppError(errors.ErrCodeInvalidAmount, "Multiplier must not be negative", nil)
			}
		case models.StrategyFixed:
			if rule.FixedPrice < 0 {
				return errors.NewAppError(errors.ErrCodeInvalidAmount, "Fixed price must not be negative", nil)
			}
		default:
			return errors.NewAppError(errors.ErrCodeValidation, "Unknown pricing strategy: "+rule.Strategy, nil)
		}
	}
	return s.repo.Store(ctx, constants.GlobalPricingSetting, cfg)
}

func (s *SettingsService) Currencies(ctx context.Context) ([]models.CurrencyRate, error) {
	var rates []models.CurrencyRate
	found, err := s.load(ctx, constants.CurrencyRatesSetting, &rates)
	if err != nil {
		return nil, err
	}
	if !found {
		return append([]models.CurrencyRate{}, defaultCurrencies...), nil
	}
	return rates, nil
}

func (s *SettingsService) SaveCurrencies(ctx context.Context, rates []models.CurrencyRate) error {
	seen := make(map[string]bool, len(rates))
	for i := range rates {
		rates[i].Code = strings.ToUpper(strings.TrimSpace(rates[i].Code))
		if rates[i].Code == "" {
			return errors.NewAppError(errors.ErrCodeRequiredField, "Currency code is required", nil)
		}
		if seen[rates[i].Code] {
			return errors.NewAppError(errors.ErrCodeDBDuplicate, "Duplicate currency: "+rates[i].Code, nil)
		}
		seen[rates[i].Code] = true
		if rates[i].Rate <= 0 || math.IsNaN(rates[i].Rate) {
			return errors.NewAppError(errors.ErrCodeInvalidAmount, "Rate must be positive for "+rates[i].Code, nil)
		}
	}
	return s.repo.Store(ctx, constants.CurrencyRatesSetting, rates)
}

// Currency tìm tỷ giá theo mã, không phân biệt hoa thường
func (s *SettingsService) Currency(ctx context.Context, code string) (models.CurrencyRate, bool, error) {
	rates, err := s.Currencies(ctx)
	if err != nil {
		return models.CurrencyRate{}, false, err
	}
	for _, r := range rates {
		if strings.EqualFold(r.Code, code) {
			return r, true, nil
		}
	}
	return models.CurrencyRate{}, false, nil
}

func (s *SettingsService) Content(ctx context.Context) (models.SiteContent, error) {
	content := models.SiteContent{}
	if _, err := s.load(ctx, constants.SiteContentSetting, &content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *SettingsService) SaveContent(ctx context.Context, content models.SiteContent) error {
	return s.repo.Store(ctx, constants.SiteContentSetting, content)
}

func (s *SettingsService) Services(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	found, err := s.load(ctx, constants.ServicesCatalogSetting, &services)
	if err != nil {
		return nil, err
	}
	if !found {
		return append([]models.Service{}, defaultServices...), nil
	}
	return services, nil
}

func (s *SettingsService) SaveServices(ctx context.Context, services []models.Service) error {
	seen := make(map[string]bool, len(services))
	for _, svc := range services {
		if svc.ID == "" || svc.Title == "" {
			return errors.NewAppError(errors.ErrCodeRequiredField, "Service id and title are required", nil)
		}
		if seen[svc.ID] {
			return errors.NewAppError(errors.ErrCodeDBDuplicate, "Duplicate service: "+svc.ID, nil)
		}
		seen[svc.ID] = true
		if svc.Price < 0 {
			return errors.NewAppError(errors.ErrCodeInvalidAmount, "Service price must not be negative", nil)
		}
	}
	return s.repo.Store(ctx, constants.ServicesCatalogSetting, services)
}

func (s *SettingsService) Provinces(ctx context.Context) ([]models.Province, error) {
	provinces := []models.Province{}
	if _, err := s.load(ctx, constants.ProvincesSetting, &provinces); err != nil {
		return nil, err
	}
	return provinces, nil
}

func (s *SettingsService) SaveProvinces(ctx context.Context, provinces []models.Province) error {
	for _, p := range provinces {
		if strings.TrimSpace(p.Name) == "" {
			return errors.NewAppError(errors.ErrCodeRequiredField, "Province name is required", nil)
		}
	}
	return s.repo.Store(ctx, constants.ProvincesSetting, provinces)
}

// ConvertPrice quy đổi giá từ tiền gốc, làm tròn 2 chữ số. Tỷ giá không hợp lệ giữ nguyên giá.
func ConvertPrice(amount, rate float64) float64 {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nonNegative(amount)
	}
	return math.Round(nonNegative(amount)*rate*100) / 100
}
