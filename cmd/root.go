package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"iremember/cmd/docs"
	"iremember/cmd/graph"
	"iremember/cmd/mcp"
	"iremember/cmd/serve"
	"iremember/cmd/snapshot"
)

var cfgFile string

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "iremember",
	Short: "Explore the long-term memory graph of a generative AI agent",
	Long: `iremember is a playground for looking at the long-term memory of a
generative AI agent. It reads the memory graph from Neo4j and lets you
explore it interactively in the browser, export it, snapshot it over
time and expose it to MCP clients.

The playground is read-only: it observes memories, it never writes them.`,
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.iremember.yaml)")

	// Graph database connection
	rootCmd.PersistentFlags().String("neo4j-uri", "bolt://localhost:7687", "Neo4j connection URI")
	rootCmd.PersistentFlags().String("neo4j-username", "neo4j", "Neo4j username")
	rootCmd.PersistentFlags().String("neo4j-password", "", "Neo4j password")
	rootCmd.PersistentFlags().String("neo4j-database", "", "Neo4j database name (optional)")
	rootCmd.PersistentFlags().Duration("fetch-timeout", 0, "timeout for graph fetches (default 30s)")

	// Local state
	rootCmd.PersistentFlags().String("snapshot-db", "iremember.db", "path of the local snapshot database")

	// Layout
	rootCmd.PersistentFlags().Int64("seed", 42, "seed for the spring layout")
	rootCmd.PersistentFlags().Int("layout-iterations", 100, "iterations of the spring layout")

	// Logging
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().String("log-file", "", "log file path (stderr when empty)")

	for _, flag := range []string{
		"neo4j-uri", "neo4j-username", "neo4j-password", "neo4j-database",
		"fetch-timeout", "snapshot-db", "seed", "layout-iterations",
		"log-level", "log-format", "log-file",
	} {
		cobra.CheckErr(viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)))
	}

	cobra.CheckErr(viper.BindEnv("neo4j-uri", "NEO4J_URI"))
	cobra.CheckErr(viper.BindEnv("neo4j-username", "NEO4J_USERNAME"))
	cobra.CheckErr(viper.BindEnv("neo4j-password", "NEO4J_PASSWORD"))
	cobra.CheckErr(viper.BindEnv("neo4j-database", "NEO4J_DATABASE"))

	rootCmd.AddCommand(graph.GraphCmd)
	rootCmd.AddCommand(serve.ServeCmd)
	rootCmd.AddCommand(snapshot.SnapshotCmd)
	rootCmd.AddCommand(mcp.MCPCmd)
	rootCmd.AddCommand(docs.DocsCmd)
}

// initConfig reads in the config file and environment variables.
func initConfig() {
	// A .env next to the binary keeps credentials out of the shell.
	if err := godotenv.Load(".env"); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment from .env")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".iremember")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
