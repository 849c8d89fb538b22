package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "calora.explore.v1", cfg.Storage.Key)
	assert.Equal(t, "me", cfg.Session.FallbackID)
	assert.Equal(t, 8081, cfg.Server.Port)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CALORA_STORAGE_DRIVER", "memory")
	t.Setenv("CALORA_RATELIMIT_BURST", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Storage: StorageConfig{Driver: "file", Dir: "d", Key: "k", SessionKey: "s"},
			Session: SessionConfig{FallbackID: "me"},
		}
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Storage.Driver = "mongo"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Storage.SessionKey = "k"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Storage.Driver = "sqlite"
	assert.Error(t, cfg.Validate())
}
