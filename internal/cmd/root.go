package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jquagga/tr-log-analyzer/internal/logger"
)

var cfgFile string

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "trlog",
	Short: "trlog — trunk-recorder call log analyzer",
	Long: `trlog reads a trunk-recorder log, reconstructs one record per call,
classifies each call (standard, excluded, encrypted, unknown talkgroup,
no source) and writes the calls as a table sorted by start time.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Config{
			Level:  viper.GetString("log-level"),
			Pretty: viper.GetBool("log-pretty"),
		})
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.trlog.yaml)")
	flags.StringSliceP("input", "i", []string{"tr.log.gz"}, "log files or glob patterns, read in order")
	flags.String("chanlist", "ChanList.csv", "talkgroup table with Decimal and Alpha Tag columns (optional)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.Bool("log-pretty", false, "human-readable console logs")

	for _, name := range []string{"input", "chanlist", "log-level", "log-pretty"} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".trlog")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("trlog")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}
