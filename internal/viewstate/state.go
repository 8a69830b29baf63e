package viewstate

import (
	"context"
	"log/slog"
	"sync"

	"makeupsales/internal/repository"
)

type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// State はLoading/Ready/Failedのどれか。
// Readyのときだけ Items が意味を持つ
type State[T any] struct {
	Status Status `json:"status"`
	Items  []T    `json:"items"`
	Error  string `json:"error,omitempty"`
}

type subscribeFunc[T any] func(ctx context.Context, onSnapshot func([]T)) (repository.Unsubscribe, error)

// live はライブビューの最新スナップショットを持つ
type live[T any] struct {
	name string
	log  *slog.Logger

	mu          sync.RWMutex
	state       State[T]
	unsubscribe repository.Unsubscribe
	listeners   []func(State[T])
}

func newLive[T any](name string, log *slog.Logger) *live[T] {
	if log == nil {
		log = slog.Default()
	}
	return &live[T]{
		name:  name,
		log:   log,
		state: State[T]{Status: StatusLoading, Items: []T{}},
	}
}

func (l *live[T]) start(ctx context.Context, sub subscribeFunc[T]) error {
	unsubscribe, err := sub(ctx, l.set)
	if err != nil {
		l.log.Error("live view subscribe failed", "view", l.name, "err", err)
		l.mu.Lock()
		if l.state.Status == StatusReady {
			l.mu.Unlock()
			return err
		}
		next := State[T]{Status: StatusFailed, Items: []T{}, Error: "failed to load"}
		l.state = next
		listeners := append([]func(State[T]){}, l.listeners...)
		l.mu.Unlock()

		for _, fn := range listeners {
			fn(next)
		}
		return err
	}

	l.mu.Lock()
	l.unsubscribe = unsubscribe
	l.mu.Unlock()
	return nil
}

func (l *live[T]) set(items []T) {
	if items == nil {
		items = []T{}
	}
	next := State[T]{Status: StatusReady, Items: items}

	l.mu.Lock()
	l.state = next
	listeners := append([]func(State[T]){}, l.listeners...)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

// Current は今の状態のコピー
func (l *live[T]) Current() State[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := l.state
	out.Items = append([]T{}, l.state.Items...)
	return out
}

// OnChange は状態が変わるたびに呼ばれる。中で書き込みをしてはいけない
func (l *live[T]) OnChange(fn func(State[T])) {
	l.mu.Lock()
	l.listeners = append(l.listeners, fn)
	l.mu.Unlock()
}

func (l *live[T]) Close() {
	l.mu.Lock()
	unsubscribe := l.unsubscribe
	l.unsubscribe = nil
	l.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// 失敗は記録だけして状態はそのまま。次のスナップショットで正しい値に戻る
func (l *live[T]) intentFailed(intent string, err error) {
	l.log.Warn("intent failed", "view", l.name, "intent", intent, "err", err)
}
