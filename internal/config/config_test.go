package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:             "8375",
		Env:              "test",
		JWTSecret:        "test-secret-key-12345678901234567890123456789012",
		AccessTTLMin:     60,
		RefreshTTLMin:    1440,
		UserDeletePolicy: DeletePolicySelf,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Port = "" }, wantErr: true},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: true},
		{name: "zero access TTL", mutate: func(c *Config) { c.AccessTTLMin = 0 }, wantErr: true},
		{name: "bad delete policy", mutate: func(c *Config) { c.UserDeletePolicy = "admin" }, wantErr: true},
		{name: "any delete policy", mutate: func(c *Config) { c.UserDeletePolicy = DeletePolicyAny }},
		{
			name: "production default secret",
			mutate: func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "your-secret-key-change-in-production"
			},
			wantErr: true,
		},
		{
			name: "production short secret",
			mutate: func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "short"
			},
			wantErr: true,
		},
		{
			name: "production weak db password",
			mutate: func(c *Config) {
				c.Env = "production"
				c.DBPassword = "password"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "8375", cfg.Port)
	assert.Equal(t, 60, cfg.AccessTTLMin)
	assert.Equal(t, 1440, cfg.RefreshTTLMin)
	assert.Equal(t, DeletePolicySelf, cfg.UserDeletePolicy)
}
