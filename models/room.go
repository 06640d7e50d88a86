package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"rentalsite/constants"

	"github.com/lib/pq"
)

type Room struct {
	ID            int            `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Location      string         `json:"location"`
	Province      string         `json:"province"`
	Images        pq.StringArray `json:"images" gorm:"type:text[]"`
	Price         float64        `json:"price"`
	Pricing       *RoomPricing   `json:"pricing,omitempty" gorm:"serializer:json"`
	Capacity      Capacity       `json:"capacity" gorm:"serializer:json"`
	Features      pq.StringArray `json:"features" gorm:"type:text[]"`
	Hosts         []Host         `json:"hosts" gorm:"serializer:json"`
	HostWhatsApp  HostWhatsApp   `json:"hostWhatsApp" gorm:"serializer:json"`
	ReservedDates []DateBlock    `json:"reservedDates" gorm:"serializer:json"`
	BookedDates   []DateBlock    `json:"bookedDates" gorm:"serializer:json"`
	Available     bool           `json:"available"`
	IsAvailable   *bool          `json:"isAvailable,omitempty" gorm:"-"`
	LastUpdated   time.Time      `json:"lastUpdated"`
}

type Capacity struct {
	MaxGuests int `json:"maxGuests"`
	Beds      int `json:"beds"`
	Bedrooms  int `json:"bedrooms"`
	Bathrooms int `json:"bathrooms"`
}

// DateBlock là một ngày đơn lẻ (chỉ có Start) hoặc một khoảng ngày tính cả hai đầu
type DateBlock struct {
	Start  string `json:"start"`
	End    string `json:"end,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Days trả về các ngày lịch thuộc block
func (b DateBlock) Days() ([]time.Time, error) {
	start, err := time.Parse(constants.DateLayout, strings.TrimSpace(b.Start))
	if err != nil {
		return nil, fmt.Errorf("invalid block start %q: %w", b.Start, err)
	}
	if strings.TrimSpace(b.End) == "" {
		return []time.Time{start}, nil
	}
	end, err := time.Parse(constants.DateLayout, strings.TrimSpace(b.End))
	if err != nil {
		return nil, fmt.Errorf("invalid block end %q: %w", b.End, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("block end %s before start %s", b.End, b.Start)
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// BlockedDays gộp reservedDates và bookedDates thành danh sách ngày, sắp xếp tăng dần.
// Block không hợp lệ được bỏ qua và trả về trong danh sách lỗi.
func (r *Room) BlockedDays() ([]time.Time, []error) {
	seen := make(map[string]bool)
	var (
		days []time.Time
		errs []error
	)
	for _, block := range append(append([]DateBlock{}, r.ReservedDates...), r.BookedDates...) {
		blockDays, err := block.Days()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, d := range blockDays {
			key := d.Format(constants.DateLayout)
			if !seen[key] {
				seen[key] = true
				days = append(days, d)
			}
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, errs
}

// PrimaryHost trả về host chính; nếu không có host nào được đánh dấu thì lấy host đầu tiên
func (r *Room) PrimaryHost() (Host, bool) {
	for _, h := range r.Hosts {
		if h.IsPrimary {
			return h, true
		}
	}
	if len(r.Hosts) > 0 {
		return r.Hosts[0], true
	}
	return Host{}, false
}

// ApplyDefaults điền giá trị mặc định cho các trường bị thiếu
func (r *Room) ApplyDefaults() {
	if r.IsAvailable != nil {
		r.Available = *r.IsAvailable
		r.IsAvailable = nil
	}
	if r.Capacity.MaxGuests <= 0 {
		r.Capacity.MaxGuests = constants.DefaultMaxGuests
	}
	if r.Capacity.Beds <= 0 {
		r.Capacity.Beds = constants.DefaultBeds
	}
	if r.Capacity.Bedrooms <= 0 {
		r.Capacity.Bedrooms = constants.DefaultBedrooms
	}
	if r.Capacity.Bathrooms <= 0 {
		r.Capacity.Bathrooms = constants.DefaultBathrooms
	}
	if r.Features == nil {
		r.Features = pq.StringArray{}
	}
	if r.Images == nil {
		r.Images = pq.StringArray{}
	}
	if r.Hosts == nil {
		r.Hosts = []Host{}
	}
	if r.ReservedDates == nil {
		r.ReservedDates = []DateBlock{}
	}
	if r.BookedDates == nil {
		r.BookedDates = []DateBlock{}
	}
	if r.Price < 0 {
		r.Price = 0
	}
}

// FeatureTitle tách phần tiêu đề của một feature dạng "Title\nDescription"
func FeatureTitle(feature string) string {
	title, _, _ := strings.Cut(feature, "\n")
	return strings.TrimSpace(title)
}
