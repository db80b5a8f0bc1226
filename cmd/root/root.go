// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/expense-report/internal/config"
	"fjacquet/expense-report/internal/container"
	"fjacquet/expense-report/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GlobalFlags are the persistent flags shared by every command
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig *config.Config

	// Flags holds the persistent flag values
	Flags = GlobalFlags{}

	appContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "expense-report",
		Short: "Classify transactions and report spending per category.",
		Long: `expense-report fetches a user's transactions, classifies every description
through a classification service and reports the amount spent per category.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to expense-report!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := Close(); err != nil {
				Log.Warnf("Failed to release resources: %v", err)
			}
			config.LoadEnv(Log)
			return LoadConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if err := Close(); err != nil {
				Log.Warnf("Failed to release resources: %v", err)
			}
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&Flags.ConfigFile, "config", "c", "", "Config file (default: config.yaml in $HOME/.expense-report, .expense-report or .)")
	Cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&Flags.LogFormat, "log-format", "", "Log format (text or json)")
}

// LoadConfig reads the configuration, applies the logging flags and
// reconfigures Log accordingly.
func LoadConfig() error {
	cfg, err := config.InitializeConfigFromFile(Flags.ConfigFile)
	if err != nil {
		return err
	}
	if Flags.LogLevel != "" {
		if _, err := logrus.ParseLevel(Flags.LogLevel); err != nil {
			return fmt.Errorf("invalid log level: %s", Flags.LogLevel)
		}
		cfg.Log.Level = Flags.LogLevel
	}
	if Flags.LogFormat != "" {
		if Flags.LogFormat != "text" && Flags.LogFormat != "json" {
			return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", Flags.LogFormat)
		}
		cfg.Log.Format = Flags.LogFormat
	}
	AppConfig = cfg
	Log = config.ConfigureLoggingFromConfig(cfg)
	return nil
}

// GetContainer returns the application container, building it from AppConfig
// on first use.
func GetContainer() (*container.Container, error) {
	if appContainer != nil {
		return appContainer, nil
	}
	if AppConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	c, err := container.NewContainer(AppConfig, container.WithLogger(logging.NewLogrusAdapterFromLogger(Log)))
	if err != nil {
		return nil, err
	}
	appContainer = c
	return c, nil
}

// SetContainer replaces the application container.
func SetContainer(c *container.Container) {
	appContainer = c
}

// Close releases the application container, if one was built.
func Close() error {
	if appContainer == nil {
		return nil
	}
	err := appContainer.Close()
	appContainer = nil
	return err
}
