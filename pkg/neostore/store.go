// Package neostore retrieves the memory graph from a Neo4j database.
// It is strictly read-only: the playground observes memories written by
// the memory library, it never creates or mutates them.
package neostore

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"iremember/pkg/logger"
	"iremember/pkg/memgraph"
)

// overviewQuery fetches every node together with its optional outgoing
// relationships. Nodes without relationships come back with nil
// relationship columns.
const overviewQuery = `
MATCH (n)
OPTIONAL MATCH (n)-[r]->(m)
RETURN n.name AS source_name, type(r) AS relationship_type, m.name AS target_name
`

// Store wraps a Neo4j driver with the read operations the playground
// needs.
type Store struct {
	cfg    Config
	retry  RetryConfig
	driver neo4j.DriverWithContext
	log    *logger.Logger
}

// New validates the configuration and creates an unconnected store.
func New(cfg Config, log *logger.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{cfg: cfg, retry: DefaultRetryConfig(), log: log}, nil
}

// Connect establishes and verifies the driver connection, retrying
// with a linear backoff.
func (s *Store) Connect(ctx context.Context) error {
	driver, err := neo4j.NewDriverWithContext(s.cfg.URI, neo4j.BasicAuth(s.cfg.Username, s.cfg.Password, ""))
	if err != nil {
		return fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	for attempt := 1; attempt <= s.retry.MaxRetries; attempt++ {
		if attempt > 1 {
			delay := time.Duration(attempt-1) * s.retry.BaseDelay
			s.log.Infof("retrying neo4j connection (attempt %d/%d) after %v", attempt, s.retry.MaxRetries, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				_ = driver.Close(ctx)
				return ctx.Err()
			}
		}

		err = driver.VerifyConnectivity(ctx)
		if err == nil {
			s.driver = driver
			s.log.Infof("connected to neo4j at %s", s.cfg.URI)
			return nil
		}
		s.log.Warnf("neo4j connectivity check failed (attempt %d): %v", attempt, err)
	}

	_ = driver.Close(ctx)
	return fmt.Errorf("failed to connect to neo4j at %s after %d attempts: %w", s.cfg.URI, s.retry.MaxRetries, err)
}

// FetchOverview runs the overview query in a read transaction and
// builds the memory graph from its rows.
func (s *Store) FetchOverview(ctx context.Context) (*memgraph.Graph, error) {
	if s.driver == nil {
		return nil, fmt.Errorf("store is not connected")
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.cfg.Database,
	})
	defer session.Close(ctx)

	raw, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, overviewQuery, nil)
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]memgraph.Record, 0, len(records))
		for _, rec := range records {
			rows = append(rows, rec)
		}
		return rows, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch memory graph: %w", err)
	}

	rows := raw.([]memgraph.Record)
	g := memgraph.FromRecords(rows)
	s.log.WithFields(map[string]any{
		"nodes": g.NodeCount(),
		"edges": g.EdgeCount(),
	}).Infof("fetched memory graph overview")
	return g, nil
}

// Ping verifies the connection is still healthy.
func (s *Store) Ping(ctx context.Context) error {
	if s.driver == nil {
		return fmt.Errorf("store is not connected")
	}
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("neo4j ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying driver.
func (s *Store) Close(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	err := s.driver.Close(ctx)
	s.driver = nil
	return err
}
