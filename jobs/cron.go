package jobs

import (
	"context"
	"time"

	"rentalsite/services/logger"

	"github.com/robfig/cron/v3"
)

// RoomReloader đọc lại dữ liệu phòng, changed = true khi có thay đổi từ bên ngoài
type RoomReloader interface {
	Reload(ctx context.Context) (changed bool, err error)
}

// ReloadObserver nhận kết quả mỗi lần chạy job, dùng cho metrics
type ReloadObserver func(outcome string)

// InitCronJobs đăng ký job đọc lại dữ liệu phòng theo schedule (mặc định @every 10s).
// Job không tự start; caller quyết định vòng đời của cron.
func InitCronJobs(c *cron.Cron, schedule string, reloader RoomReloader, log logger.Logger, observe ReloadObserver) (cron.EntryID, error) {
	if observe == nil {
		observe = func(string) {}
	}
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		changed, err := reloader.Reload(ctx)
		switch {
		case err != nil:
			log.Warn("room reload failed: %v", err)
			observe("error")
		case changed:
			log.Info("room data reloaded")
			observe("changed")
		default:
			observe("unchanged")
		}
	}))
	return c.AddJob(schedule, job)
}
