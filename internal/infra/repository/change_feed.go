package repository

import (
	"context"
	"log/slog"
	"sync"

	repo "makeupsales/internal/repository"
)

const (
	tableProducts   = "products"
	tableCustomers  = "customers"
	tableOrders     = "orders"
	tableOrderItems = "order_items"
)

// 書き込みのあったテーブルを受け取る。
// ChangeFeedはすぐ通知し、txChangesはcommitまで溜める
type changeTracker interface {
	touched(ctx context.Context, tables ...string)
}

func markTouched(ctx context.Context, t changeTracker, tables ...string) {
	if t == nil {
		return
	}
	t.touched(ctx, tables...)
}

type watcher struct {
	mu     sync.Mutex
	closed bool
	reload func(ctx context.Context)
}

// ChangeFeed はテーブル単位のライブビュー購読を管理する。
// commit後にPublishされたテーブルの購読者ごとに全件を読み直して渡す。
// 同じテーブルへの通知は直列化されるのでcommit順に届く。
type ChangeFeed struct {
	log      *slog.Logger
	mu       sync.Mutex
	nextID   int64
	watchers map[string]map[int64]*watcher
	delivery map[string]*sync.Mutex
}

func NewChangeFeed(log *slog.Logger) *ChangeFeed {
	if log == nil {
		log = slog.Default()
	}
	return &ChangeFeed{
		log:      log,
		watchers: map[string]map[int64]*watcher{},
		delivery: map[string]*sync.Mutex{},
	}
}

func (f *ChangeFeed) touched(ctx context.Context, tables ...string) {
	f.Publish(ctx, tables...)
}

// watch はtablesのどれかが変わるたびにw.reloadを呼ぶ。
func (f *ChangeFeed) watch(w *watcher, tables ...string) repo.Unsubscribe {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	for _, t := range tables {
		if f.watchers[t] == nil {
			f.watchers[t] = map[int64]*watcher{}
		}
		f.watchers[t][id] = w
	}
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			for _, t := range tables {
				delete(f.watchers[t], id)
			}
			f.mu.Unlock()

			//配信中ならそれが終わるのを待つ
			w.mu.Lock()
			w.closed = true
			w.mu.Unlock()
		})
	}
}

// Publish はcommit済みの変更を購読者へ同期的に届ける。
func (f *ChangeFeed) Publish(ctx context.Context, tables ...string) {
	//リクエストが終わっても読み直しは最後までやる
	ctx = context.WithoutCancel(ctx)

	seen := map[*watcher]struct{}{}
	for _, t := range dedupe(tables) {
		lock := f.deliveryLock(t)
		lock.Lock()

		f.mu.Lock()
		ws := make([]*watcher, 0, len(f.watchers[t]))
		for id := range f.watchers[t] {
			ws = append(ws, f.watchers[t][id])
		}
		f.mu.Unlock()

		for _, w := range ws {
			//複数テーブルを見ている購読者には1回だけ
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}

			w.mu.Lock()
			if !w.closed {
				w.reload(ctx)
			}
			w.mu.Unlock()
		}

		lock.Unlock()
	}
}

func (f *ChangeFeed) deliveryLock(table string) *sync.Mutex {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.delivery[table]
	if !ok {
		l = &sync.Mutex{}
		f.delivery[table] = l
	}
	return l
}

func dedupe(tables []string) []string {
	out := make([]string, 0, len(tables))
	seen := map[string]struct{}{}
	for _, t := range tables {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Tx中の変更テーブルを溜める
type txChanges struct {
	mu     sync.Mutex
	tables []string
}

func (c *txChanges) touched(_ context.Context, tables ...string) {
	c.mu.Lock()
	c.tables = append(c.tables, tables...)
	c.mu.Unlock()
}

func (c *txChanges) list() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return dedupe(c.tables)
}

// subscribe は最初のスナップショットを渡してから以後の変更を届ける共通処理。
// 登録を先にして、最初の配信が終わるまで再読込を待たせるので取りこぼさない
func subscribe[T any](
	ctx context.Context,
	feed *ChangeFeed,
	name string,
	load func(ctx context.Context) ([]T, error),
	onSnapshot func([]T),
	tables ...string,
) (repo.Unsubscribe, error) {
	if feed == nil {
		return nil, repo.ErrLiveViewUnavailable
	}

	w := &watcher{}
	w.reload = func(ctx context.Context) {
		items, err := load(ctx)
		if err != nil {
			feed.log.Error("live view reload failed", "view", name, "err", err)
			return
		}
		onSnapshot(items)
	}

	w.mu.Lock()
	unsubscribe := feed.watch(w, tables...)
	first, err := load(ctx)
	if err != nil {
		w.mu.Unlock()
		unsubscribe()
		return nil, err
	}
	onSnapshot(first)
	w.mu.Unlock()

	return unsubscribe, nil
}
