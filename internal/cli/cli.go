package cli

import (
	"fmt"
	"os"

	"github.com/ashcraft-tech/contact-api/internal/config"
	"github.com/ashcraft-tech/contact-api/internal/logging"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "contact-api",
	Short: "Portfolio contact form API",
	Long: `contact-api accepts contact form submissions, filters spam and
forwards legitimate messages to the site owner.`,
	SilenceUsage: true,
}

func init() {
	serveCmd := newServeCmd()
	// Running the binary without a subcommand serves
	rootCmd.RunE = serveCmd.RunE
	rootCmd.AddCommand(serveCmd, newSendTestCmd(), newVersionCmd())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and installs the global logger
func bootstrap() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logConfig := logging.DefaultLogConfig()
	logConfig.Level = cfg.LogLevel
	logConfig.File = cfg.LogFile
	if err := logConfig.Validate(); err != nil {
		return nil, nil, err
	}
	if err := logging.InitLogger(logConfig); err != nil {
		return nil, nil, err
	}
	return cfg, logging.GetGlobalLogger(), nil
}
