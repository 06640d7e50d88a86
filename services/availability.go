package services

import (
	"fmt"
	"strings"
	"time"

	"rentalsite/constants"
	"rentalsite/models"
	"rentalsite/services/logger"
)

const (
	AvailabilityReasonCapacity    = "capacity"
	AvailabilityReasonDates       = "dates"
	AvailabilityReasonUnavailable = "unavailable"
	AvailabilityReasonInvalid     = "invalid"

	MessageRoomUnavailable = "This room is not available for booking"
)

// AvailabilityResult là kết quả kiểm tra phòng trống
type AvailabilityResult struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message"`
}

// AvailabilityChecker kiểm tra phòng trống theo danh sách ngày bị chặn
type AvailabilityChecker struct {
	logger logger.Logger
}

func NewAvailabilityChecker(log logger.Logger) *AvailabilityChecker {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &AvailabilityChecker{logger: log}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsRangeAvailable trả về true khi mọi ngày trong [checkIn, checkOut] (tính cả hai đầu)
// không nằm trong danh sách bị chặn. So sánh theo ngày lịch, bỏ qua giờ.
func (a *AvailabilityChecker) IsRangeAvailable(checkIn, checkOut time.Time, blocked []time.Time) bool {
	start := truncateDay(checkIn)
	end := truncateDay(checkOut)
	if end.Before(start) {
		a.logger.Warn("availability: check-out %s before check-in %s", checkOut.Format(constants.DateLayout), checkIn.Format(constants.DateLayout))
		return false
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for _, b := range blocked {
			if sameDay(day, b) {
				return false
			}
		}
	}
	return true
}

// IsRangeAvailable dùng checker không ghi log
func IsRangeAvailable(checkIn, checkOut time.Time, blocked []time.Time) bool {
	return NewAvailabilityChecker(nil).IsRangeAvailable(checkIn, checkOut, blocked)
}

// ParseDate đọc ngày dạng YYYY-MM-DD (chấp nhận cả RFC 3339)
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(constants.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// Check kiểm tra sức chứa trước, sau đó trạng thái phòng và ngày bị chặn.
// Dữ liệu không hợp lệ trả về không trống và được ghi log, không trả lỗi.
func (a *AvailabilityChecker) Check(room *models.Room, checkIn, checkOut string, guests GuestCounts) AvailabilityResult {
	if room == nil {
		return AvailabilityResult{Reason: AvailabilityReasonInvalid, Message: "Room not found"}
	}
	if guests.Total() > room.Capacity.MaxGuests {
		return AvailabilityResult{
			Reason:  AvailabilityReasonCapacity,
			Message: fmt.Sprintf("This room accepts at most %d guests", room.Capacity.MaxGuests),
		}
	}

	in, err := ParseDate(checkIn)
	if err != nil {
		a.logger.Warn("availability: room %d: %v", room.ID, err)
		return AvailabilityResult{Reason: AvailabilityReasonInvalid, Message: "Invalid check-in date"}
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		a.logger.Warn("availability: room %d: %v", room.ID, err)
		return AvailabilityResult{Reason: AvailabilityReasonInvalid, Message: "Invalid check-out date"}
	}
	if truncateDay(out).Before(truncateDay(in)) {
		a.logger.Warn("availability: room %d: check-out %s before check-in %s", room.ID, checkOut, checkIn)
		return AvailabilityResult{Reason: AvailabilityReasonInvalid, Message: "Check-out must not be before check-in"}
	}

	if !room.Available {
		return AvailabilityResult{Reason: AvailabilityReasonUnavailable, Message: MessageRoomUnavailable}
	}

	blocked, blockErrs := room.BlockedDays()
	for _, e := range blockErrs {
		a.logger.Warn("availability: room %d: skipping block: %v", room.ID, e)
	}
	if !a.IsRangeAvailable(in, out, blocked) {
		return AvailabilityResult{Reason: AvailabilityReasonDates, Message: "The selected dates are not available"}
	}
	return AvailabilityResult{Available: true, Message: "Available"}
}

// CheckAvailability dùng checker không ghi log
func CheckAvailability(room *models.Room, checkIn, checkOut string, guests GuestCounts) AvailabilityResult {
	return NewAvailabilityChecker(nil).Check(room, checkIn, checkOut, guests)
}
