package viewstate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"makeupsales/internal/logging"
	"makeupsales/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 先頭からfailures回だけ失敗する
type flakyChecker struct {
	mu       sync.Mutex
	failures int
	calls    int
	result   usecase.Reminder
}

func (c *flakyChecker) Check(ctx context.Context) (usecase.Reminder, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.calls <= c.failures {
		return usecase.Reminder{}, errors.New("db locked")
	}
	return c.result, nil
}

func (c *flakyChecker) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestRunReminderOnce_RetriesThenNotifies(t *testing.T) {
	checker := &flakyChecker{failures: 2, result: usecase.Reminder{PendingOrders: 1, Message: "Pending orders: 1"}}
	var got []usecase.Reminder

	runReminderOnce(context.Background(), checker, ReminderConfig{
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
		Notify:     func(r usecase.Reminder) { got = append(got, r) },
	}, logging.Discard())

	assert.Equal(t, 3, checker.count())
	require.Len(t, got, 1)
	assert.Equal(t, "Pending orders: 1", got[0].Message)
}

func TestRunReminderOnce_GivesUp(t *testing.T) {
	checker := &flakyChecker{failures: 10}
	notified := false

	runReminderOnce(context.Background(), checker, ReminderConfig{
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
		Notify:     func(usecase.Reminder) { notified = true },
	}, logging.Discard())

	assert.Equal(t, 3, checker.count())
	assert.False(t, notified)
}

func TestRunReminderOnce_NothingToNotify(t *testing.T) {
	checker := &flakyChecker{}
	notified := false

	runReminderOnce(context.Background(), checker, ReminderConfig{
		Notify: func(usecase.Reminder) { notified = true },
	}, logging.Discard())

	assert.Equal(t, 1, checker.count())
	assert.False(t, notified)
}

func TestRunReminderOnce_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	checker := &flakyChecker{failures: 10}

	runReminderOnce(ctx, checker, ReminderConfig{MaxRetries: 5, RetryDelay: time.Hour}, logging.Discard())

	assert.Equal(t, 1, checker.count())
}

func TestRunReminders_TicksUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	checker := &flakyChecker{result: usecase.Reminder{LowStockCount: 2, Message: "Low-stock products: 2"}}
	notified := make(chan usecase.Reminder, 16)

	done := make(chan struct{})
	go func() {
		defer close(done)
		RunReminders(ctx, checker, ReminderConfig{
			Interval: 5 * time.Millisecond,
			Notify: func(r usecase.Reminder) {
				select {
				case notified <- r:
				default:
				}
			},
		}, logging.Discard())
	}()

	for i := 0; i < 2; i++ {
		select {
		case r := <-notified:
			assert.Equal(t, 2, r.LowStockCount)
		case <-time.After(2 * time.Second):
			t.Fatal("reminder was not delivered")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunReminders did not stop")
	}
}
