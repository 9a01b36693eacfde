package config

import (
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
host = "localhost"
dbname = "studio"

[user_service]
url = "http://users:8080"
`

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse(minimalConfig)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "Europe/London", cfg.Studio.Timezone)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5, cfg.UserService.Timeout)

	loc, err := cfg.Studio.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", loc.String())
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse(minimalConfig + `
[server]
http_port = 9090

[redis]
enabled = true
addr = "redis:6379"
ttl = 60

[rate_limit]
enabled = true
requests_per_minute = 2
burst = 1

[studio]
timezone = "UTC"
`)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 60, cfg.Redis.TTL)
	assert.Equal(t, 2.0, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, "UTC", cfg.Studio.Timezone)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing database", data: "[user_service]\nurl = \"http://users\"\n"},
		{name: "missing user service", data: "[database]\nhost = \"db\"\ndbname = \"studio\"\n"},
		{name: "bad port", data: minimalConfig + "[server]\nhttp_port = 70000\n"},
		{name: "redis without addr", data: minimalConfig + "[redis]\nenabled = true\n"},
		{name: "bad timezone", data: minimalConfig + "[studio]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "bad rate limit", data: minimalConfig + "[rate_limit]\nenabled = true\nburst = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse("[server\nhttp_port = ")
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(minimalConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Database.Host)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "studio", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=studio sslmode=disable", c.DSN())
}
