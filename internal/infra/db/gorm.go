package db

import (
	"fmt"

	"makeupsales/internal/config"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
// 呼び出し側で1つだけ作ってリポジトリに渡す
func Connect(cfg config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{}
	if !cfg.IsDev() {
		gcfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	switch cfg.DBDriver {
	case config.DriverPostgres:
		return gorm.Open(postgres.Open(cfg.PostgresDSN()), gcfg)
	case config.DriverSQLite:
		return OpenSQLite(cfg.SQLitePath, gcfg)
	default:
		return nil, fmt.Errorf("unknown db driver: %s", cfg.DBDriver)
	}
}

// OpenSQLite はローカルDBを開く。書き込みは1本の接続に絞る
func OpenSQLite(path string, gcfg *gorm.Config) (*gorm.DB, error) {
	if gcfg == nil {
		gcfg = &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	}

	gdb, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)"), gcfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	//:memory: は接続ごとに別DBになるので1本に固定
	sqlDB.SetMaxOpenConns(1)

	return gdb, nil
}
