// Package cmd implements the command-line interface for golocator.
// It provides the root command and subcommands for generating and resolving
// locator expressions.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/golocator/cmd/batch"
	"github.com/jonesrussell/golocator/cmd/generate"
	"github.com/jonesrussell/golocator/cmd/httpd"
	"github.com/jonesrussell/golocator/cmd/resolve"
	"github.com/jonesrussell/golocator/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the golocator CLI.
	rootCmd = &cobra.Command{
		Use:   "golocator",
		Short: "Generate robust locators for HTML nodes",
		Long: `golocator synthesizes robust XPath locators that re-find the same
logical node after a document reloads or re-renders with different
generated identifiers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("golocator version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(generate.Command())
	rootCmd.AddCommand(resolve.Command())
	rootCmd.AddCommand(batch.Command())
	rootCmd.AddCommand(httpd.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Environment variables take precedence over file values and defaults.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config.SetDefaults()

	// Config file is optional; defaults and environment variables cover the
	// common case.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: config file not read: %v\n", err)
		}
	}

	if err := viper.BindEnv("logger.level", "LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}
	if err := viper.BindEnv("logger.encoding", "LOG_FORMAT"); err != nil {
		return fmt.Errorf("failed to bind LOG_FORMAT: %w", err)
	}
	if err := viper.BindEnv("server.address", "SERVER_ADDRESS"); err != nil {
		return fmt.Errorf("failed to bind SERVER_ADDRESS: %w", err)
	}

	if Debug {
		viper.Set("logger.level", "debug")
		viper.Set("logger.development", true)
	}

	return nil
}
