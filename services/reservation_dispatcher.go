package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"rentalsite/constants"
	"rentalsite/models"
	"rentalsite/services/logger"
	"rentalsite/validator"
)

const (
	TargetPrimary   = "primary"
	TargetSecondary = "secondary"
)

// CustomerContact là thông tin liên hệ khách điền khi gửi yêu cầu đặt phòng
type CustomerContact struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message,omitempty"`
}

// LinkOpener mở deep link cho khách. handle rỗng nghĩa là không mở được.
type LinkOpener interface {
	Open(ctx context.Context, session, link string) (handle string, err error)
}

// DispatchTask là một lần mở link, chạy tuần tự theo thứ tự trong danh sách
type DispatchTask struct {
	Target string        `json:"target"`
	Number string        `json:"number"`
	Delay  time.Duration `json:"delay"`
}

type DispatchResult struct {
	SentCount int      `json:"sentCount"`
	Errors    []string `json:"errors"`
	Links     []string `json:"links"`
	Success   bool     `json:"success"`
}

type Dispatcher struct {
	opener         LinkOpener
	secondaryDelay time.Duration
	logger         logger.Logger
	metrics        *Metrics
}

func NewDispatcher(opener LinkOpener, secondaryDelay time.Duration, log logger.Logger, metrics *Metrics) *Dispatcher {
	if secondaryDelay < 0 {
		secondaryDelay = constants.DefaultSecondaryDelay
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Dispatcher{opener: opener, secondaryDelay: secondaryDelay, logger: log, metrics: metrics}
}

// WhatsAppLink tạo link https://wa.me/<chữ số>?text=<message đã encode>
func WhatsAppLink(number, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return constants.WhatsAppBaseURL + digits + "?text=" + text
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatReservationMessage ghép booking draft và thông tin khách thành nội dung tin nhắn
func FormatReservationMessage(draft *BookingDraft, room *models.Room, customer CustomerContact) string {
	var b strings.Builder
	b.WriteString("New reservation request\n\n")
	fmt.Fprintf(&b, "Room: %s (#%d)\n", room.Name, room.ID)
	if room.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", room.Location)
	}
	if draft.CheckIn != "" {
		fmt.Fprintf(&b, "Check-in: %s\n", draft.CheckIn)
	}
	if draft.CheckOut != "" {
		fmt.Fprintf(&b, "Check-out: %s\n", draft.CheckOut)
	}
	if draft.PricingMode == constants.PricingModeHourly {
		fmt.Fprintf(&b, "Hours: %d\n", draft.Hours)
	} else {
		fmt.Fprintf(&b, "Nights: %d\n", draft.Nights)
	}
	g := draft.Guests
	fmt.Fprintf(&b, "Guests: %d adults, %d children, %d babies, %d pets\n", g.Adults, g.Children, g.Babies, g.Pets)
	if draft.TourismType != "" {
		fmt.Fprintf(&b, "Tourism: %s\n", draft.TourismType)
	}
	fmt.Fprintf(&b, "Price: %s per %s\n", formatMoney(draft.EffectivePrice), strings.TrimSuffix(draft.PricingMode, "ly"))

	if len(draft.Services) > 0 {
		b.WriteString("\nServices:\n")
		for _, s := range draft.Services {
			fmt.Fprintf(&b, "- %s: %s\n", s.Title, formatMoney(s.Price))
		}
	}

	t := draft.Totals
	b.WriteString("\n")
	fmt.Fprintf(&b, "Room subtotal: %s\n", formatMoney(t.RoomSubtotal))
	fmt.Fprintf(&b, "Services subtotal: %s\n", formatMoney(t.ServicesSubtotal))
	fmt.Fprintf(&b, "Cleaning fee: %s\n", formatMoney(t.CleaningFee))
	fmt.Fprintf(&b, "Service fee: %s\n", formatMoney(t.ServiceFee))
	fmt.Fprintf(&b, "Total: %s\n", formatMoney(t.GrandTotal))

	b.WriteString("\nCustomer:\n")
	fmt.Fprintf(&b, "Name: %s\n", customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", customer.Phone)
	if customer.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", customer.Email)
	}
	if customer.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", customer.Message)
	}
	return strings.TrimRight(b.String(), "\n")
}

// PlanTasks lập danh sách link cần mở. Cấu hình sai thì trả lỗi và không có task nào.
func (d *Dispatcher) PlanTasks(cfg models.HostWhatsApp) ([]DispatchTask, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("WhatsApp reservations are disabled for this room")
	}
	if err := validator.ValidateHostWhatsApp(cfg); err != nil {
		return nil, err
	}

	var tasks []DispatchTask
	if cfg.SendToPrimary {
		tasks = append(tasks, DispatchTask{Target: TargetPrimary, Number: cfg.Primary})
	}
	if cfg.SendToSecondary && cfg.Secondary != "" {
		task := DispatchTask{Target: TargetSecondary, Number: cfg.Secondary}
		if len(tasks) > 0 {
			task.Delay = d.secondaryDelay
		}
		tasks = append(tasks, task)
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("no WhatsApp recipient is selected for this room")
	}
	return tasks, nil
}

// Dispatch mở lần lượt từng link cho session của khách.
// Task lỗi không dừng các task sau; ctx bị hủy thì các task còn lại được ghi lỗi.
func (d *Dispatcher) Dispatch(ctx context.Context, session string, room *models.Room, message string) DispatchResult {
	result := DispatchResult{Errors: []string{}, Links: []string{}}

	tasks, err := d.PlanTasks(room.HostWhatsApp)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	for _, task := range tasks {
		if task.Delay > 0 {
			timer := time.NewTimer(task.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", task.Target, ctx.Err()))
				d.count(task.Target, "cancelled")
				continue
			case <-timer.C:
			}
		}

		link := WhatsAppLink(task.Number, message)
		handle, err := d.opener.Open(ctx, session, link)
		switch {
		case err != nil:
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", task.Target, err))
			d.count(task.Target, "error")
		case handle == "":
			result.Errors = append(result.Errors, fmt.Sprintf("%s: link was not opened", task.Target))
			d.count(task.Target, "error")
		default:
			result.SentCount++
			result.Links = append(result.Links, link)
			d.count(task.Target, "sent")
		}
	}

	result.Success = result.SentCount > 0
	d.logger.Info("reservation for room %d: sent %d of %d links", room.ID, result.SentCount, len(tasks))
	return result
}

func (d *Dispatcher) count(target, outcome string) {
	if d.metrics != nil {
		d.metrics.ReservationLinks.WithLabelValues(target, outcome).Inc()
	}
}
