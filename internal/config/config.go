package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DBDriver   string // sqlite / postgres
	SQLitePath string // sqliteのファイル（:memory: も可）

	DatabaseURL      string // あれば最優先
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string

	JWTSecret string // JWT署名シークレット

	GoEnv string // dev/prod

	StrictStock       bool          // trueなら在庫不足の注文を拒否
	LowStockThreshold int64         // 在庫少なめの閾値
	ReminderInterval  time.Duration // リマインダーの間隔
}

func (c Config) IsDev() bool {
	return c.GoEnv == "" || c.GoEnv == "dev"
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	threshold, err := atoiDefault("LOW_STOCK_THRESHOLD", 3)
	if err != nil {
		return Config{}, err
	}
	strict, err := boolDefault("STRICT_STOCK", false)
	if err != nil {
		return Config{}, err
	}
	interval, err := durationDefault("REMINDER_INTERVAL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		DBDriver:   getenv("DB_DRIVER", DriverSQLite),
		SQLitePath: getenv("SQLITE_PATH", "makeup_sales.db"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "makeupsales"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv: getenv("GO_ENV", "dev"),

		StrictStock:       strict,
		LowStockThreshold: int64(threshold),
		ReminderInterval:  interval,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

//必須チェック
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" && c.PostgresHost == "" {
			return fmt.Errorf("POSTGRES_HOST is required")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be %s or %s", DriverSQLite, DriverPostgres)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("LOW_STOCK_THRESHOLD must be >= 0")
	}
	if c.ReminderInterval <= 0 {
		return fmt.Errorf("REMINDER_INTERVAL must be positive")
	}
	return nil
}

// PostgresDSN はDATABASE_URLがあればそれを返す
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func boolDefault(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be bool: %w", key, err)
	}
	return b, nil
}

func durationDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}
