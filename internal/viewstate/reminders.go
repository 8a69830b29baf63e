package viewstate

import (
	"context"
	"log/slog"
	"time"

	"makeupsales/internal/usecase"
)

type ReminderChecker interface {
	Check(ctx context.Context) (usecase.Reminder, error)
}

type ReminderConfig struct {
	Interval   time.Duration
	MaxRetries int
	// 最初の再試行までの待ち。以後2倍ずつ
	RetryDelay time.Duration
	// 通知先。nilならログだけ
	Notify func(usecase.Reminder)
}

// RunReminders はctxが終わるまで定期的にチェックする。
// 失敗したら待ち時間を倍にしながら再試行し、それでもだめなら次の周期に回す
func RunReminders(ctx context.Context, checker ReminderChecker, cfg ReminderConfig, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		runReminderOnce(ctx, checker, cfg, log)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func runReminderOnce(ctx context.Context, checker ReminderChecker, cfg ReminderConfig, log *slog.Logger) {
	delay := cfg.RetryDelay
	for attempt := 0; ; attempt++ {
		r, err := checker.Check(ctx)
		if err == nil {
			if !r.ShouldNotify() {
				log.Debug("reminder: nothing to do")
				return
			}
			log.Info("reminder", "pending_orders", r.PendingOrders, "low_stock", r.LowStockCount, "message", r.Message)
			if cfg.Notify != nil {
				cfg.Notify(r)
			}
			return
		}

		if attempt >= cfg.MaxRetries {
			log.Error("reminder check failed", "attempts", attempt+1, "err", err)
			return
		}
		log.Warn("reminder check failed, retrying", "attempt", attempt+1, "retry_in", delay, "err", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
	}
}
