package neostore

import (
	"fmt"
	"time"
)

// Config holds the Neo4j connection settings. Values come from flags
// and the NEO4J_* environment variables wired up in cmd.
type Config struct {
	URI          string        `json:"uri"`
	Username     string        `json:"username"`
	Password     string        `json:"password"`
	Database     string        `json:"database,omitempty"`
	FetchTimeout time.Duration `json:"fetch_timeout"`
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("neo4j uri is required (set --neo4j-uri or NEO4J_URI)")
	}
	if c.Username == "" {
		return fmt.Errorf("neo4j username is required (set --neo4j-username or NEO4J_USERNAME)")
	}
	if c.Password == "" {
		return fmt.Errorf("neo4j password is required (set --neo4j-password or NEO4J_PASSWORD)")
	}
	return nil
}

// RetryConfig defines the retry behavior for the initial connection.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultRetryConfig returns the retry settings used by the CLI.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{MaxRetries: 3, BaseDelay: time.Second}
}
