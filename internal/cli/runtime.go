// Package cli holds the glue shared by the subcommands: building the
// logger, the Neo4j store and the snapshot store from viper-backed
// configuration.
package cli

import (
	"context"
	"time"

	"github.com/spf13/viper"

	"iremember/pkg/logger"
	"iremember/pkg/memgraph"
	"iremember/pkg/neostore"
	"iremember/pkg/snapshot"
)

// LayoutOptions reads the spring-layout settings from the global flags.
func LayoutOptions() memgraph.LayoutOptions {
	opts := memgraph.DefaultLayoutOptions()
	if seed := viper.GetInt64("seed"); seed != 0 {
		opts.Seed = seed
	}
	if iters := viper.GetInt("layout-iterations"); iters > 0 {
		opts.Iterations = iters
	}
	return opts
}

// NewLogger builds the process logger from the global logging flags.
func NewLogger() (*logger.Logger, error) {
	return logger.New(logger.Options{
		Level:  viper.GetString("log-level"),
		Format: viper.GetString("log-format"),
		File:   viper.GetString("log-file"),
	})
}

// Neo4jConfig assembles the graph database settings from flags and the
// NEO4J_* environment.
func Neo4jConfig() neostore.Config {
	timeout := viper.GetDuration("fetch-timeout")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return neostore.Config{
		URI:          viper.GetString("neo4j-uri"),
		Username:     viper.GetString("neo4j-username"),
		Password:     viper.GetString("neo4j-password"),
		Database:     viper.GetString("neo4j-database"),
		FetchTimeout: timeout,
	}
}

// ConnectStore creates and connects the Neo4j store.
func ConnectStore(ctx context.Context, log *logger.Logger) (*neostore.Store, error) {
	store, err := neostore.New(Neo4jConfig(), log)
	if err != nil {
		return nil, err
	}
	if err := store.Connect(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// OpenSnapshots opens the local snapshot database.
func OpenSnapshots() (*snapshot.Store, error) {
	return snapshot.Open(viper.GetString("snapshot-db"))
}
