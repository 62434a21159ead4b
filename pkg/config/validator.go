package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Database config
	if c.Database.URL == "" {
		errors = append(errors, ValidationError{
			Field:   "database.url",
			Message: "database URL is required",
		})
	} else if _, err := url.Parse(c.Database.URL); err != nil {
		errors = append(errors, ValidationError{
			Field:   "database.url",
			Message: "invalid database URL",
		})
	}

	if c.Database.Name == "" {
		errors = append(errors, ValidationError{
			Field:   "database.name",
			Message: "database name is required",
		})
	}

	if c.Database.Container == "" {
		errors = append(errors, ValidationError{
			Field:   "database.container",
			Message: "container name is required",
		})
	}

	if c.Database.VectorDim < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.vector_dim",
			Message: "vector_dim must be positive",
		})
	}

	if c.Database.BatchSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.batch_size",
			Message: "batch_size must be positive",
		})
	}

	if c.Database.BatchDelayMS < 0 {
		errors = append(errors, ValidationError{
			Field:   "database.batch_delay_ms",
			Message: "batch_delay_ms must be non-negative",
		})
	}

	// Validate Seed config
	if c.Seed.File == "" {
		errors = append(errors, ValidationError{
			Field:   "seed.file",
			Message: "seed file path is required",
		})
	}

	// Validate LLM config
	if _, err := url.Parse(c.LLM.BaseURL); err != nil {
		errors = append(errors, ValidationError{
			Field:   "llm.base_url",
			Message: "invalid Ollama base URL",
		})
	}

	return errors
}
