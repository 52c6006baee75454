package serve

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"iremember/internal/cli"
	"iremember/pkg/viewer"
)

// ServeCmd starts the interactive graph viewer.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive memory-graph viewer",
	Long: `Start the HTTP server that renders the memory graph in the browser
with scroll-to-zoom and drag-to-pan.

Examples:
  iremember serve                 # http://127.0.0.1:8080
  iremember serve --port 3000`,
	RunE: runServe,
}

func init() {
	ServeCmd.Flags().String("host", "127.0.0.1", "address to bind")
	ServeCmd.Flags().Int("port", 8080, "port to listen on")
	cobra.CheckErr(viper.BindPFlag("serve.host", ServeCmd.Flags().Lookup("host")))
	cobra.CheckErr(viper.BindPFlag("serve.port", ServeCmd.Flags().Lookup("port")))
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := cli.NewLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	ctx := cmd.Context()
	store, err := cli.ConnectStore(ctx, log)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	server := viewer.New(viewer.Config{
		Host:   viper.GetString("serve.host"),
		Port:   viper.GetInt("serve.port"),
		Layout: cli.LayoutOptions(),
	}, store, log)

	return server.Run(ctx)
}
