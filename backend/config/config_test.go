package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("TOKEN_TTL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "", cfg.RedisURL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.LoginMaxAttempts)
	assert.Equal(t, "9090", cfg.ServerPort)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DBDriver:         "postgres",
			JWTSecret:        "s",
			TokenTTL:         time.Hour,
			BcryptCost:       10,
			LoginMaxAttempts: 5,
			LoginWindow:      time.Minute,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"sqlite", func(c *Config) { c.DBDriver = "sqlite" }, false},
		{"unknown driver", func(c *Config) { c.DBDriver = "mongo" }, true},
		{"empty secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"zero ttl", func(c *Config) { c.TokenTTL = 0 }, true},
		{"cost too high", func(c *Config) { c.BcryptCost = 99 }, true},
		{"zero attempts", func(c *Config) { c.LoginMaxAttempts = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "Validate() error = %v", err)
		})
	}
}

func TestDSN(t *testing.T) {
	c := &Config{DBDriver: "sqlite", DBPath: "portal.db"}
	assert.Equal(t, "portal.db", c.DSN())

	c = &Config{DBDriver: "postgres", DatabaseURL: "postgres://u:p@h:5432/db"}
	assert.Equal(t, "postgres://u:p@h:5432/db", c.DSN())

	c = &Config{DBDriver: "postgres", DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable TimeZone=UTC", c.DSN())
}
