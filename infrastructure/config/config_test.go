package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "todos", cfg.TodosTable)
	assert.Equal(t, "TodoIdIndex", cfg.TodoIDIndex)
	assert.Equal(t, 300*time.Second, cfg.UploadURLExpiry)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TODOS_TABLE", "todos-prod")
	t.Setenv("TODOS_TODO_ID_INDEX", "ByTodoId")
	t.Setenv("ATTACHMENT_S3_BUCKET", "todo-attachments")
	t.Setenv("SIGNED_URL_EXPIRATION", "600")
	t.Setenv("ENABLE_CORS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "todos-prod", cfg.TodosTable)
	assert.Equal(t, "ByTodoId", cfg.TodoIDIndex)
	assert.Equal(t, "todo-attachments", cfg.AttachmentBucket)
	assert.Equal(t, 600*time.Second, cfg.UploadURLExpiry)
	assert.False(t, cfg.EnableCORS)
}

func TestValidate_ProductionRequirements(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing bucket",
			mutate:  func(c *Config) { c.AttachmentBucket = "" },
			wantErr: "ATTACHMENT_S3_BUCKET",
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.JWTSecret = "" },
			wantErr: "JWT_SECRET",
		},
		{
			name:    "missing table",
			mutate:  func(c *Config) { c.TodosTable = "" },
			wantErr: "TODOS_TABLE",
		},
		{
			name:    "non-positive expiry",
			mutate:  func(c *Config) { c.UploadURLExpiry = 0 },
			wantErr: "SIGNED_URL_EXPIRATION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Environment:      "production",
				TodosTable:       "todos",
				TodoIDIndex:      "TodoIdIndex",
				AttachmentBucket: "bucket",
				UploadURLExpiry:  300 * time.Second,
				JWTSecret:        "secret",
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
