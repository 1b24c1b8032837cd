// internal/commands/root.go
package promptforge

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nerrospl/promptforge/internal/appconfig"
	"github.com/nerrospl/promptforge/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "promptforge",
	Short: "promptforge — enrich generation prompts with a local Ollama daemon",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		cfg := appconfig.Config{
			DaemonURL:             viper.GetString("daemonUrl"),
			ModelTool:             viper.GetString("modelTool"),
			EnhancementModel:      viper.GetString("enhancementModel"),
			VisionModel:           viper.GetString("visionModel"),
			CheckTimeoutSeconds:   viper.GetInt("checkTimeout"),
			UnloadTimeoutSeconds:  viper.GetInt("unloadTimeout"),
			DeleteTimeoutSeconds:  viper.GetInt("deleteTimeout"),
			EnhanceTimeoutSeconds: viper.GetInt("enhanceTimeout"),
			ExpandTimeoutSeconds:  viper.GetInt("expandTimeout"),
			Debug:                 viper.GetBool("debug"),
			LogFile:               viper.GetString("logFile"),
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("daemonUrl", appconfig.DefaultDaemonURL, "base URL of the Ollama daemon")
	rootCmd.PersistentFlags().String("modelTool", appconfig.DefaultModelTool, "model management executable for pull/rm")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("daemonUrl", rootCmd.PersistentFlags().Lookup("daemonUrl"))
	_ = viper.BindPFlag("modelTool", rootCmd.PersistentFlags().Lookup("modelTool"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config and tolerates a missing file, in which
// case flags and built-in defaults apply.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
