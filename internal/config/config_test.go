package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, "mysql", c.MySQLHost)
	assert.Equal(t, 5*time.Minute, c.IdempotencyTTL())
	assert.Equal(t, 10*time.Minute, c.CustomerCacheTTL())
	assert.Empty(t, c.KafkaBrokers)
	assert.Equal(t, "loan-lifecycle", c.KafkaTopic)
	assert.False(t, c.MigrateOnStart)
	assert.Equal(t, "lending:lending@tcp(mysql:3306)/lending?multiStatements=true&parseTime=true&charset=utf8mb4,utf8", c.MySQLDSN())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("MIGRATE_ON_START", "true")
	t.Setenv("RECONCILE_SCHEDULE", "@every 1m")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", c.AppPort)
	assert.Equal(t, "db.internal", c.MySQLHost)
	assert.Equal(t, 3, c.RedisDB)
	assert.Equal(t, time.Minute, c.IdempotencyTTL())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.KafkaBrokers)
	assert.True(t, c.MigrateOnStart)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			AppPort: "8080", MySQLHost: "h", MySQLPort: "3306", MySQLDB: "d", MySQLUser: "u",
			IdempTTLSecs: 10, KafkaTopic: "t", ReconcileSchedule: "0 */5 * * * *",
		}
	}
	require.NoError(t, valid().Validate())

	cases := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"missing host", func(c *Config) { c.MySQLHost = "" }, "missing MySQL config"},
		{"bad port", func(c *Config) { c.MySQLPort = "not-a-port" }, "invalid MYSQL_PORT"},
		{"missing app port", func(c *Config) { c.AppPort = "" }, "missing APP_PORT"},
		{"zero ttl", func(c *Config) { c.IdempTTLSecs = 0 }, "IDEMPOTENCY_TTL_SECONDS"},
		{"brokers without topic", func(c *Config) { c.KafkaBrokers = []string{"k:9092"}; c.KafkaTopic = "" }, "KAFKA_TOPIC"},
		{"bad schedule", func(c *Config) { c.ReconcileSchedule = "every tuesday" }, "invalid RECONCILE_SCHEDULE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
