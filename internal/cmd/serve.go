package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jquagga/tr-log-analyzer/internal/logger"
	"github.com/jquagga/tr-log-analyzer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Parse a log and serve the call table over HTTP",
	Long: `Serve runs one parse pass and exposes the result read-only:

  GET /healthz
  GET /api/stats
  GET /api/calls?class=encrypted&talkgroup=1007`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", ":8080", "address to listen on")
	cobra.CheckErr(viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen")))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rows, stats, err := runPass(passConfig{
		Inputs:   viper.GetStringSlice("input"),
		ChanList: viper.GetString("chanlist"),
	}, logger.GetLogger())
	if err != nil {
		return err
	}

	srv := server.New(rows, stats, viper.GetString("listen"), logger.WithComponent("server"))
	return srv.Start(ctx)
}
