package config

import (
	"os"
	"testing"
	"time"

	"dealership/internal/auth"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Env)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	require.Equal(t, "disable", cfg.DB.SSLMode)
	require.False(t, cfg.Redis.Enabled())
}

func TestLoad_UnsetEnvKeepsCookieSecure(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "")
	require.NoError(t, os.Unsetenv("APP_ENV"))

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, auth.NewSessionCarrier(cfg.Env).Secure())

	t.Setenv("APP_ENV", auth.EnvDevelopment)
	cfg, err = Load()
	require.NoError(t, err)
	require.False(t, auth.NewSessionCarrier(cfg.Env).Secure())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "cse")
	t.Setenv("DB_PASSWORD", "p@ss")
	t.Setenv("DB_NAME", "motors")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Env)
	require.Equal(t, ":9000", cfg.Addr())
	require.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, "postgres://cse:p%40ss@db:6543/motors?sslmode=require", cfg.DB.DSN())
	require.True(t, cfg.Redis.Enabled())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, err := Load()
	require.Error(t, err)
}

func TestDBConfig_DSNWithoutPassword(t *testing.T) {
	cfg := DBConfig{Host: "localhost", Port: "5432", User: "postgres", Name: "dealership", SSLMode: "disable"}
	require.Equal(t, "postgres://postgres@localhost:5432/dealership?sslmode=disable", cfg.DSN())
}
