package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	content := `
region: eu-west-1
lookback_hours: 48
workers: 4

tagging:
  owner_tag_name: CreatedBy
  additional_tags:
    team: platform
    env: prod
`
	path := filepath.Join(t.TempDir(), "merkki.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, 48, cfg.LookbackHours)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "CreatedBy", cfg.Tagging.OwnerTagName)
	assert.Equal(t, map[string]string{"team": "platform", "env": "prod"}, cfg.Tagging.AdditionalTags)

	// Absent fields keep their defaults.
	assert.Equal(t, 30*time.Second, cfg.TagTimeout)
	assert.Equal(t, "created_at", cfg.Tagging.CreationTimeTagName)
	assert.True(t, cfg.Tagging.IncludeCreationTime)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merkki.yaml")
	require.NoError(t, os.WriteFile(path, []byte("region: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty region", func(c *Config) { c.Region = "" }, true},
		{"zero lookback", func(c *Config) { c.LookbackHours = 0 }, true},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"empty owner tag", func(c *Config) { c.Tagging.OwnerTagName = "" }, true},
		{
			"creation time tag required when enabled",
			func(c *Config) { c.Tagging.CreationTimeTagName = "" },
			true,
		},
		{
			"creation time tag optional when disabled",
			func(c *Config) {
				c.Tagging.IncludeCreationTime = false
				c.Tagging.CreationTimeTagName = ""
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
