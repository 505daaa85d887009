package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs        int
	IdempotencyRequired bool

	LogLevel  string
	LogFormat string

	KafkaBrokers []string
	KafkaTopic   string

	CustomerCacheTTLSecs int
	ReconcileSchedule    string
	MigrateOnStart       bool
}

var defaults = map[string]any{
	"APP_PORT":                   "8080",
	"MYSQL_HOST":                 "mysql",
	"MYSQL_PORT":                 "3306",
	"MYSQL_DB":                   "lending",
	"MYSQL_USER":                 "lending",
	"MYSQL_PASS":                 "lending",
	"REDIS_ADDR":                 "redis:6379",
	"REDIS_DB":                   0,
	"IDEMPOTENCY_TTL_SECONDS":    300,
	"IDEMPOTENCY_REQUIRED":       false,
	"LOG_LEVEL":                  "info",
	"LOG_FORMAT":                 "json",
	"KAFKA_BROKERS":              "",
	"KAFKA_TOPIC":                "loan-lifecycle",
	"CUSTOMER_CACHE_TTL_SECONDS": 600,
	"RECONCILE_SCHEDULE":         "0 */5 * * * *",
	"MIGRATE_ON_START":           false,
}

// Load reads the environment, falling back to defaults for unset keys.
func Load() (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	c := &Config{
		AppPort:   v.GetString("APP_PORT"),
		MySQLHost: v.GetString("MYSQL_HOST"),
		MySQLPort: v.GetString("MYSQL_PORT"),
		MySQLDB:   v.GetString("MYSQL_DB"),
		MySQLUser: v.GetString("MYSQL_USER"),
		MySQLPass: v.GetString("MYSQL_PASS"),

		RedisAddr: v.GetString("REDIS_ADDR"),
		RedisDB:   v.GetInt("REDIS_DB"),

		IdempTTLSecs:        v.GetInt("IDEMPOTENCY_TTL_SECONDS"),
		IdempotencyRequired: v.GetBool("IDEMPOTENCY_REQUIRED"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		KafkaBrokers: splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:   v.GetString("KAFKA_TOPIC"),

		CustomerCacheTTLSecs: v.GetInt("CUSTOMER_CACHE_TTL_SECONDS"),
		ReconcileSchedule:    v.GetString("RECONCILE_SCHEDULE"),
		MigrateOnStart:       v.GetBool("MIGRATE_ON_START"),
	}
	return c, c.Validate()
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be positive, got %d", c.IdempTTLSecs)
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	if _, err := cron.NewParser(CronSpec).Parse(c.ReconcileSchedule); err != nil {
		return fmt.Errorf("invalid RECONCILE_SCHEDULE %q: %w", c.ReconcileSchedule, err)
	}
	return nil
}

// CronSpec accepts an optional leading seconds field and descriptors such as @every.
const CronSpec = cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) CustomerCacheTTL() time.Duration {
	return time.Duration(c.CustomerCacheTTLSecs) * time.Second
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
