package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("JWT_ACCESS_EXPIRY", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("DB_AUTO_MIGRATE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.False(t, cfg.App.AutoMigrate)
	assert.Equal(t, 60*time.Minute, cfg.JWT.AccessTTL())
	assert.Equal(t, 10*time.Minute, cfg.Redis.CacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.App.AutoMigrate)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, 0, cfg.Redis.DB, "invalid ints fall back to the default")
}

func TestValidate_Production(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "default secret rejected",
			cfg: Config{
				App:      AppConfig{Environment: "production"},
				JWT:      JWTConfig{Secret: defaultJWTSecret, AccessTokenExpiry: 15},
				Database: DatabaseConfig{Password: "pw"},
			},
			wantErr: "JWT_SECRET",
		},
		{
			name: "missing db password rejected",
			cfg: Config{
				App: AppConfig{Environment: "production"},
				JWT: JWTConfig{Secret: "real", AccessTokenExpiry: 15},
			},
			wantErr: "DB_PASSWORD",
		},
		{
			name: "non-positive expiry rejected",
			cfg: Config{
				App: AppConfig{Environment: "development"},
				JWT: JWTConfig{Secret: "x", AccessTokenExpiry: 0},
			},
			wantErr: "JWT_ACCESS_EXPIRY",
		},
		{
			name: "valid production config",
			cfg: Config{
				App:      AppConfig{Environment: "production"},
				JWT:      JWTConfig{Secret: "real", AccessTokenExpiry: 15},
				Database: DatabaseConfig{Password: "pw"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, int32(25), cfg.MaxConns)
	assert.Contains(t, cfg.DSN(), "db.internal:6543")
}

func TestLoadDatabaseConfig_InvalidValues(t *testing.T) {
	t.Setenv("DB_CONNECT_TIMEOUT", "soon")

	_, err := LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_CONNECT_TIMEOUT")
}
