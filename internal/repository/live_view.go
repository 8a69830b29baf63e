package repository

import "errors"

// 購読解除。返った後はコールバックは呼ばれない。
// コールバックの中から呼んではいけない
type Unsubscribe func()

// Tx内のリポジトリにはライブビューがない
var ErrLiveViewUnavailable = errors.New("live view unavailable")
