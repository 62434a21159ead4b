package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configData := `
database:
  url: "postgres://localhost:5432/vectordb"
  name: "vectordb"
  container: "Container3"
  vector_dim: 1536
  batch_size: 25
  batch_delay_ms: 500

seed:
  file: "data/text-sample.json"

llm:
  base_url: "http://localhost:11434"
  model: "nomic-embed-text:latest"

ui:
  quiet: true
`
	err := os.WriteFile(configPath, []byte(configData), 0644)
	require.NoError(t, err)

	// Test loading config
	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	// Verify loaded values
	assert.Equal(t, "postgres://localhost:5432/vectordb", config.Database.URL)
	assert.Equal(t, "vectordb", config.Database.Name)
	assert.Equal(t, "Container3", config.Database.Container)
	assert.Equal(t, 1536, config.Database.VectorDim)
	assert.Equal(t, 25, config.Database.BatchSize)
	assert.Equal(t, 500, config.Database.BatchDelayMS)
	assert.Equal(t, "data/text-sample.json", config.Seed.File)
	assert.Equal(t, "http://localhost:11434", config.LLM.BaseURL)
	assert.True(t, config.UI.Quiet)
}

func TestDefaults(t *testing.T) {
	config := &Config{}
	applyDefaults(config)

	assert.Equal(t, "vectordb", config.Database.Name)
	assert.Equal(t, "Container3", config.Database.Container)
	assert.Equal(t, 1536, config.Database.VectorDim)
	assert.Equal(t, 10, config.Database.BatchSize)
	assert.Equal(t, 1000, config.Database.BatchDelayMS)
	assert.Equal(t, "data/text-sample.json", config.Seed.File)
	assert.Equal(t, "http://localhost:11434", config.LLM.BaseURL)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name          string
		config        Config
		expectedErrs  int
		errorMessages []string
	}{
		{
			name: "valid config",
			config: Config{
				Database: DatabaseConfig{
					URL:          "postgres://localhost:5432/vectordb",
					Name:         "vectordb",
					Container:    "Container3",
					VectorDim:    1536,
					BatchSize:    10,
					BatchDelayMS: 1000,
				},
				Seed: SeedConfig{File: "data/text-sample.json"},
				LLM:  LLMConfig{BaseURL: "http://localhost:11434"},
			},
			expectedErrs: 0,
		},
		{
			name: "invalid config",
			config: Config{
				Database: DatabaseConfig{
					Name:         "vectordb",
					Container:    "",
					VectorDim:    -1,
					BatchSize:    0,
					BatchDelayMS: -5,
				},
			},
			expectedErrs: 6,
			errorMessages: []string{
				"database.url: database URL is required",
				"database.container: container name is required",
				"database.vector_dim: vector_dim must be positive",
				"database.batch_size: batch_size must be positive",
				"database.batch_delay_ms: batch_delay_ms must be non-negative",
				"seed.file: seed file path is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := tt.config.Validate()
			assert.Len(t, errors, tt.expectedErrs)

			if tt.errorMessages != nil {
				for i, msg := range tt.errorMessages {
					assert.Contains(t, errors[i].Error(), msg)
				}
			}
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env-db:5432/vectordb")
	t.Setenv("OLLAMA_BASE_URL", "http://env-ollama:11434")

	config := &Config{}
	mergeWithEnv(config)

	assert.Equal(t, "postgres://env-db:5432/vectordb", config.Database.URL)
	assert.Equal(t, "http://env-ollama:11434", config.LLM.BaseURL)
}
